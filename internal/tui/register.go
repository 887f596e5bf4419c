package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halverson/doorlist/pkg/domain"
	"github.com/halverson/doorlist/pkg/ledger"
)

type regField int

const (
	fieldName regField = iota
	fieldHandle
	fieldEmail
	fieldAgree
	numRegFields
)

type copyResultMsg struct{ err error }

type ticketSavedMsg struct {
	path string
	err  error
}

// registerModel is the self-registration form and, once a record is
// created, the attendee's ticket panel.
type registerModel struct {
	store     *ledger.Store
	fields    [3]string
	focus     regField
	agree     bool
	editing   bool // typing in a text field
	ticket    *domain.RSVP
	statusMsg string
	errMsg    string
	width     int
	height    int
}

func newRegisterModel(store *ledger.Store) registerModel {
	return registerModel{store: store, editing: true}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "could not reach the clipboard"
		} else {
			m.statusMsg = "code copied"
		}
		return m, nil

	case ticketSavedMsg:
		if msg.err != nil {
			m.statusMsg = "could not save the ticket file"
		} else {
			m.statusMsg = "ticket saved to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if m.ticket != nil {
			return m.updateTicketKeys(msg)
		}
		return m.updateFormKeys(msg)
	}
	return m, nil
}

func (m registerModel) updateFormKeys(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "esc":
		m.editing = false
	case "tab", "down":
		m.focus = (m.focus + 1) % numRegFields
		m.editing = m.focus != fieldAgree
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numRegFields) % numRegFields
		m.editing = m.focus != fieldAgree
	case "enter":
		if m.focus == fieldAgree {
			return m.submit()
		}
		m.focus++
		m.editing = m.focus != fieldAgree
	case " ":
		if m.focus == fieldAgree {
			m.agree = !m.agree
		} else if m.editing {
			m.fields[m.focus] = editRune(m.fields[m.focus], " ")
		}
	default:
		if m.editing && m.focus != fieldAgree {
			m.errMsg = ""
			m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		} else if !m.editing && m.focus != fieldAgree && msg.String() == "i" {
			m.editing = true
		}
	}
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	if !m.agree {
		m.errMsg = "please confirm you will attend"
		return m, nil
	}
	rec, err := m.store.Create(ledger.CreateInput{
		Name:   m.fields[fieldName],
		Handle: m.fields[fieldHandle],
		Email:  m.fields[fieldEmail],
	})
	if err != nil {
		if ledger.IsValidation(err) {
			m.errMsg = err.Error()
		} else {
			m.errMsg = "registration failed"
		}
		return m, nil
	}
	m.ticket = &rec
	m.fields = [3]string{}
	m.agree = false
	m.focus = fieldName
	m.editing = false
	m.errMsg = ""
	return m, nil
}

func (m registerModel) updateTicketKeys(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	switch msg.String() {
	case "c":
		code := m.ticket.Code
		return m, func() tea.Msg {
			return copyResultMsg{err: clipboard.WriteAll(code)}
		}
	case "s":
		rec := *m.ticket
		return m, func() tea.Msg {
			path := ledger.TicketFilename(rec.Code)
			err := os.WriteFile(path, ledger.EncodeTicket(rec), 0o644)
			return ticketSavedMsg{path: path, err: err}
		}
	case "n", "esc":
		m.ticket = nil
		m.statusMsg = ""
		m.editing = true
	}
	return m, nil
}

func (m registerModel) isEditing() bool {
	return m.ticket == nil && m.editing
}

func (m registerModel) View() string {
	if m.ticket != nil {
		return m.ticketView()
	}
	return m.formView()
}

func (m registerModel) formView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Get your free ticket") + "\n\n")
	b.WriteString(renderInput("Name    ", m.fields[fieldName], "what should we call you?", m.editing && m.focus == fieldName) + "\n")
	b.WriteString(renderInput("Handle  ", m.fields[fieldHandle], "@YourChatName", m.editing && m.focus == fieldHandle) + "\n")
	b.WriteString(renderInput("Email   ", m.fields[fieldEmail], "optional, for confirmation", m.editing && m.focus == fieldEmail) + "\n\n")

	check := "[ ]"
	if m.agree {
		check = accentStyle.Render("[x]")
	}
	agreeLine := fmt.Sprintf("%s I will attend %s and I know I get a free item when I show up", check, m.store.EventName())
	if m.focus == fieldAgree {
		agreeLine = selectedRowStyle.Render("> ") + agreeLine
	} else {
		agreeLine = "  " + agreeLine
	}
	b.WriteString(agreeLine + "\n")

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m registerModel) ticketView() string {
	rec := m.ticket
	var b strings.Builder

	b.WriteString(titleStyle.Render("You're all set!") + "\n\n")
	b.WriteString(dimStyle.Render("Show this code when you arrive:") + "\n")
	b.WriteString(codeStyle.Render(rec.Code) + "\n\n")
	b.WriteString(rec.Name + " · " + rec.Handle + "\n")
	if rec.Email != "" {
		b.WriteString(rec.Email + "\n")
	}
	b.WriteString(dimStyle.Render(rec.Event) + "\n")
	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
