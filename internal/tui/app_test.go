package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(newTestLedger(t))
	a.width = 80
	a.height = 30
	return a
}

func TestAppStartsOnRegister(t *testing.T) {
	a := newTestApp(t)
	if a.view != viewRegister {
		t.Errorf("initial view = %d, want register", a.view)
	}
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp(t)
	// blur the form so global keys work
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)

	model, _ = a.Update(keyRune("2"))
	a = model.(App)
	if a.view != viewAdmin {
		t.Fatalf("view = %d after '2', want admin", a.view)
	}

	// admin gate owns the keyboard, so "1" types into the passphrase
	model, _ = a.Update(keyRune("1"))
	a = model.(App)
	if a.view != viewAdmin {
		t.Error("'1' should type into the gate, not switch tabs")
	}
	if a.admin.secret != "1" {
		t.Errorf("admin.secret = %q", a.admin.secret)
	}
}

func TestAppQuitOnQWhenNotEditing(t *testing.T) {
	a := newTestApp(t)
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)

	_, cmd := a.Update(keyRune("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q'")
	}
}

func TestAppQDoesNotQuitWhileTyping(t *testing.T) {
	a := newTestApp(t)
	model, cmd := a.Update(keyRune("q"))
	a = model.(App)
	if cmd != nil {
		t.Fatal("'q' should type into the focused name field")
	}
	if a.register.fields[fieldName] != "q" {
		t.Errorf("name field = %q", a.register.fields[fieldName])
	}
}

func TestAppCtrlCAlwaysQuits(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command on ctrl+c")
	}
}

func TestAppHeader(t *testing.T) {
	a := newTestApp(t)
	out := a.View()
	if !strings.Contains(out, "Charity Night") {
		t.Error("header missing event name")
	}
	if !strings.Contains(out, "0 signed up") {
		t.Error("header missing signup count")
	}
}

func TestAppQuickAddSwitchesToRegister(t *testing.T) {
	a := newTestApp(t)
	a.view = viewAdmin
	model, _ := a.Update(quickAddMsg{})
	a = model.(App)
	if a.view != viewRegister {
		t.Error("quick add should open the registration form")
	}
	if !a.register.isEditing() {
		t.Error("quick add form should be focused")
	}
}
