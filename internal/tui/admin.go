package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halverson/doorlist/pkg/domain"
	"github.com/halverson/doorlist/pkg/ledger"
)

type adminState int

const (
	adminLocked adminState = iota
	adminTable
	adminSettings
	adminImport
)

type settingsField int

const (
	settingEventName settingsField = iota
	settingPassphrase
	numSettingsFields
)

// quickAddMsg asks the app shell to open the registration form
// (the staff quick-add path uses the same create flow).
type quickAddMsg struct{}

type importDoneMsg struct {
	readErr error
	data    []byte
}

// adminModel is the passphrase-gated check-in table plus its settings
// and import sub-screens.
type adminModel struct {
	store      *ledger.Store
	state      adminState
	secret     string
	query      string
	searching  bool
	cursor     int
	showCodes  bool
	settings   [numSettingsFields]string
	setFocus   settingsField
	importPath string
	statusMsg  string
	width      int
	height     int
}

func newAdminModel(store *ledger.Store) adminModel {
	return adminModel{store: store}
}

// visible is the filtered view the table, exports, and cursor operate on.
func (m adminModel) visible() []domain.RSVP {
	return ledger.Search(m.store.All(), m.query)
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case importDoneMsg:
		m.state = adminTable
		if msg.readErr != nil {
			m.statusMsg = "could not read that file"
			return m, nil
		}
		if err := m.store.Import(msg.data); err != nil {
			// bad payload: ledger unchanged, nothing escalates
			m.statusMsg = "not a valid export, ledger unchanged"
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("import merged, %d records total", m.store.Len())
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case adminLocked:
			return m.updateLockedKeys(msg)
		case adminSettings:
			return m.updateSettingsKeys(msg)
		case adminImport:
			return m.updateImportKeys(msg)
		default:
			return m.updateTableKeys(msg)
		}
	}
	return m, nil
}

func (m adminModel) updateLockedKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// back to the registration tab without unlocking
		m.secret = ""
		return m, func() tea.Msg { return quickAddMsg{} }
	case "enter":
		if m.secret == m.store.Passphrase() {
			m.state = adminTable
		}
		// wrong passphrase: stay locked, no message, no lockout
		m.secret = ""
	case "ctrl+s":
		// trust-on-first-use reset: whatever was typed becomes the passphrase
		m.store.SetPassphrase(m.secret)
		m.secret = ""
		m.state = adminTable
	default:
		m.secret = editRune(m.secret, msg.String())
	}
	return m, nil
}

func (m adminModel) updateTableKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
		default:
			m.query = editRune(m.query, msg.String())
			m.cursor = 0
		}
		return m, nil
	}

	m.statusMsg = ""
	rows := m.visible()

	switch msg.String() {
	case "/":
		m.searching = true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "a":
		if m.cursor < len(rows) {
			// unknown ids are silent no-ops
			_, _ = m.store.Toggle(rows[m.cursor].ID, ledger.FieldAttended)
		}
	case "f":
		if m.cursor < len(rows) {
			_, _ = m.store.Toggle(rows[m.cursor].ID, ledger.FieldClaimed)
		}
	case "d":
		if m.cursor < len(rows) {
			m.store.Delete(rows[m.cursor].ID)
			if m.cursor >= m.store.Len() && m.cursor > 0 {
				m.cursor--
			}
		}
	case "o":
		m.showCodes = !m.showCodes
	case "e":
		m.statusMsg = m.exportCSV(rows)
	case "E":
		m.statusMsg = m.exportJSON(rows)
	case "i":
		m.state = adminImport
		m.importPath = ""
	case "g":
		m.state = adminSettings
		m.settings[settingEventName] = m.store.EventName()
		m.settings[settingPassphrase] = m.store.Passphrase()
		m.setFocus = settingEventName
	case "n":
		return m, func() tea.Msg { return quickAddMsg{} }
	}
	return m, nil
}

func (m adminModel) exportCSV(rows []domain.RSVP) string {
	name := ledger.CSVFilename(time.Now())
	if err := os.WriteFile(name, []byte(ledger.EncodeCSV(rows, nil)), 0o644); err != nil {
		return "could not write " + name
	}
	return fmt.Sprintf("exported %d records to %s", len(rows), name)
}

func (m adminModel) exportJSON(rows []domain.RSVP) string {
	if err := os.WriteFile(ledger.JSONFilename, ledger.EncodeJSON(rows), 0o644); err != nil {
		return "could not write " + ledger.JSONFilename
	}
	return fmt.Sprintf("exported %d records to %s", len(rows), ledger.JSONFilename)
}

func (m adminModel) updateImportKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = adminTable
	case "enter":
		path := strings.TrimSpace(m.importPath)
		if path == "" {
			m.state = adminTable
			return m, nil
		}
		return m, func() tea.Msg {
			data, err := os.ReadFile(path)
			return importDoneMsg{data: data, readErr: err}
		}
	default:
		m.importPath = editRune(m.importPath, msg.String())
	}
	return m, nil
}

func (m adminModel) updateSettingsKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = adminTable
	case "tab", "down", "shift+tab", "up":
		m.setFocus = (m.setFocus + 1) % numSettingsFields
	case "enter":
		m.store.SetEventName(strings.TrimSpace(m.settings[settingEventName]))
		m.store.SetPassphrase(m.settings[settingPassphrase])
		m.state = adminTable
		m.statusMsg = "settings saved"
	default:
		m.settings[m.setFocus] = editRune(m.settings[m.setFocus], msg.String())
	}
	return m, nil
}

func (m adminModel) isEditing() bool {
	switch m.state {
	case adminLocked, adminSettings, adminImport:
		return true
	default:
		return m.searching
	}
}

func (m adminModel) View() string {
	switch m.state {
	case adminLocked:
		return m.lockedView()
	case adminSettings:
		return m.settingsView()
	case adminImport:
		return m.importView()
	default:
		return m.tableView()
	}
}

func (m adminModel) lockedView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Check-in tools") + "\n\n")
	b.WriteString(renderInput("Passphrase ", strings.Repeat("*", len(m.secret)), "enter passphrase", true) + "\n\n")
	b.WriteString(dimStyle.Render("enter unlock · ctrl+s set & unlock") + "\n")
	return b.String()
}

func (m adminModel) settingsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Event settings") + "\n\n")
	b.WriteString(renderInput("Event name ", m.settings[settingEventName], "", m.setFocus == settingEventName) + "\n")
	b.WriteString(renderInput("Passphrase ", m.settings[settingPassphrase], "", m.setFocus == settingPassphrase) + "\n\n")
	b.WriteString(dimStyle.Render("share the passphrase with trusted helpers only") + "\n\n")
	b.WriteString(helpStyle.Render("enter save · tab next field · esc cancel") + "\n")
	return b.String()
}

func (m adminModel) importView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import records") + "\n\n")
	b.WriteString(renderInput("File ", m.importPath, "path to rsvp_export.json", true) + "\n\n")
	b.WriteString(dimStyle.Render("records merge by code, newer timestamps win, nothing is removed") + "\n\n")
	b.WriteString(helpStyle.Render("enter import · esc cancel") + "\n")
	return b.String()
}

// table column widths
const (
	colName   = 18
	colHandle = 16
	colEmail  = 22
	colCode   = 10
	colWhen   = 14
)

func (m adminModel) tableView() string {
	rows := m.visible()
	var b strings.Builder

	search := m.query
	if m.searching {
		search += cursorGlyph
	}
	if search == "" {
		search = dimStyle.Render("press / to search")
	}
	b.WriteString("Search: " + search + "\n\n")

	b.WriteString(headerRowStyle.Render(
		padCell("Name", colName)+padCell("Handle", colHandle)+
			padCell("Email", colEmail)+padCell("Code", colCode)+
			padCell("RSVP", colWhen)+"Att  Item") + "\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("No RSVPs yet.") + "\n")
	}

	for i, rec := range rows {
		code := rec.Code
		if !m.showCodes {
			code = maskCode(code)
		}
		att := dimStyle.Render("no ")
		if rec.Attended {
			att = accentStyle.Render("yes")
		}
		item := dimStyle.Render("no ")
		if rec.Claimed {
			item = accentStyle.Render("yes")
		}
		line := padCell(rec.Name, colName) + padCell(rec.Handle, colHandle) +
			padCell(rec.Email, colEmail) + padCell(code, colCode) +
			padCell(formatStamp(rec.CreatedAt), colWhen) + att + "  " + item
		if i == m.cursor {
			line = selectedRowStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
