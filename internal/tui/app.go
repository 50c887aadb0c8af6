package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tricoach/internal/service"
)

// App is the root Bubble Tea model: a single scrolling brief view.
type App struct {
	briefs *service.BriefService

	viewport viewport.Model
	ready    bool

	brief   *service.Brief
	loading bool
	err     error

	width  int
	height int
}

// NewApp creates the app around a brief service.
func NewApp(briefs *service.BriefService) *App {
	return &App{
		briefs:  briefs,
		loading: true,
	}
}

// Init kicks off the first brief generation.
func (a *App) Init() tea.Cmd {
	return a.loadBrief
}

func (a *App) loadBrief() tea.Msg {
	brief, err := a.briefs.Generate(time.Now())
	return briefMsg{brief: brief, err: err}
}

type briefMsg struct {
	brief *service.Brief
	err   error
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "r":
			a.loading = true
			return a, a.loadBrief
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		chromeHeight := lipgloss.Height(a.renderHeader()) + lipgloss.Height(a.renderFooter())
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = msg.Height - chromeHeight
		}
		a.viewport.SetContent(a.renderBrief())

	case briefMsg:
		a.loading = false
		a.err = msg.err
		a.brief = msg.brief
		if a.ready {
			a.viewport.SetContent(a.renderBrief())
			a.viewport.GotoTop()
		}
	}

	if a.ready {
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View renders the app.
func (a *App) View() string {
	if !a.ready {
		return "\n  Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.viewport.View(),
		a.renderFooter(),
	)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Triathlon Coaching Brief")
}

func (a *App) renderFooter() string {
	scroll := ""
	if a.ready {
		scroll = fmt.Sprintf("  %3.0f%%", a.viewport.ScrollPercent()*100)
	}
	return statusStyle.Render("[r] refresh  [↑/↓] scroll  [q] quit" + scroll)
}
