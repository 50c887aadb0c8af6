package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tricoach/internal/config"
	"tricoach/internal/feed"
	"tricoach/internal/service"
	"tricoach/internal/store"
	"tricoach/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	importPath := flag.String("import", "", "import a JSON activity export and exit")
	asJSON := flag.Bool("json", false, "print the brief as JSON instead of launching the TUI")
	asPrompt := flag.Bool("prompt", false, "print the brief as an AI coach prompt")
	trendDays := flag.Int("days", 0, "override the trend window in days (7-90)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Set your max/threshold heart rate and, if you have a power meter, your FTP.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if *trendDays != 0 {
		cfg.Analysis.TrendWindowDays = *trendDays
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if *importPath != "" {
		return runImport(db, *importPath)
	}

	briefSvc := service.NewBriefService(db, cfg)

	if *asJSON || *asPrompt {
		brief, err := briefSvc.Generate(time.Now())
		if err != nil {
			return fmt.Errorf("generating brief: %w", err)
		}
		if *asJSON {
			out, err := brief.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Print(service.AIPrompt(brief))
		return nil
	}

	// Launch TUI
	app := tui.NewApp(briefSvc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func runImport(db *store.Store, path string) error {
	raws, err := feed.LoadFile(path)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	imported, skipped, err := feed.Import(db, raws, logger)
	if err != nil {
		return fmt.Errorf("importing feed: %w", err)
	}

	fmt.Printf("Imported %d activities", imported)
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()
	return nil
}
