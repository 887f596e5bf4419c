package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/halverson/doorlist/pkg/ledger"
)

type view int

const (
	viewRegister view = iota
	viewAdmin
)

// App is the root Bubbletea model: a header with the event name and
// signup count, two tabs, and a context-sensitive help line.
type App struct {
	store    *ledger.Store
	view     view
	register registerModel
	admin    adminModel
	width    int
	height   int
}

// NewApp creates the TUI over an already-loaded ledger store.
func NewApp(store *ledger.Store) App {
	return App{
		store:    store,
		register: newRegisterModel(store),
		admin:    newAdminModel(store),
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

// isEditing reports whether a text input currently owns the keyboard,
// in which case global keys (tab switching, quit) stay inert.
func (a App) isEditing() bool {
	switch a.view {
	case viewRegister:
		return a.register.isEditing()
	case viewAdmin:
		return a.admin.isEditing()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(1) + blank(1) + tabs(1) + blank(1) + help(1)
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.register, _ = a.register.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		return a, nil

	case quickAddMsg:
		a.view = viewRegister
		a.register = newRegisterModel(a.store)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				a.view = viewRegister
				return a, nil
			case "2":
				a.view = viewAdmin
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	case viewAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var b strings.Builder

	count := pillStyle.Render(fmt.Sprintf("%d signed up", a.store.Len()))
	b.WriteString(titleStyle.Render(a.store.EventName()) + "  " + count + "\n\n")

	tabs := []string{"1 RSVP", "2 Check-in"}
	var rendered []string
	for i, tab := range tabs {
		if view(i) == a.view {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabStyle.Render(tab))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n\n")

	switch a.view {
	case viewRegister:
		b.WriteString(a.register.View())
	case viewAdmin:
		b.WriteString(a.admin.View())
	}

	b.WriteString("\n" + helpStyle.Render(a.helpLine()) + "\n")
	return b.String()
}

func (a App) helpLine() string {
	if a.view == viewRegister {
		if a.register.ticket != nil {
			return "c copy code · s save ticket · n new registration · q quit"
		}
		return "tab next field · space agree · enter submit · esc blur"
	}
	switch a.admin.state {
	case adminLocked:
		return "enter unlock · ctrl+s set & unlock · esc back · ctrl+c quit"
	case adminTable:
		return "/ search · a attended · f free item · d delete · o codes · e csv · E json · i import · g settings · n quick add · q quit"
	default:
		return "enter confirm · esc back"
	}
}
