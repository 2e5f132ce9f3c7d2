package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type activatedMsg string

func testMenu() Menu {
	item := func(label, hotkey string) MenuItem {
		return MenuItem{Label: label, Hotkey: hotkey, Action: func() tea.Cmd {
			return func() tea.Msg { return activatedMsg(label) }
		}}
	}
	return NewMenu([]MenuItem{
		item("CONTINUE", "c"),
		item("EASY", "1"),
		item("QUIT", ""),
	})
}

func TestMenu_NavigationWraps(t *testing.T) {
	m := testMenu()

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 2 {
		t.Errorf("up from top: selected %d, want 2", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 0 {
		t.Errorf("down from bottom: selected %d, want 0", m.Selected)
	}
}

func TestMenu_EnterActivatesSelected(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(specialKey(tea.KeyDown))

	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got := cmd(); got != activatedMsg("EASY") {
		t.Errorf("activated %v, want EASY", got)
	}
}

func TestMenu_Hotkey(t *testing.T) {
	m := testMenu()

	m, cmd := m.Update(keyPress('1'))
	if m.Selected != 1 {
		t.Errorf("selected %d, want 1", m.Selected)
	}
	if cmd == nil || cmd() != activatedMsg("EASY") {
		t.Error("expected hotkey to activate EASY")
	}

	_, cmd = m.Update(keyPress('z'))
	if cmd != nil {
		t.Error("unbound key should not activate anything")
	}
}

func TestMenu_View(t *testing.T) {
	view := testMenu().View(true)
	if !strings.Contains(view, "▸ [c] CONTINUE") {
		t.Errorf("selected item not marked:\n%s", view)
	}
	if !strings.Contains(view, "QUIT") {
		t.Errorf("missing item:\n%s", view)
	}
}

func TestMultiChoice_LetterSelectsAndSubmits(t *testing.T) {
	mc := NewMultiChoice([]string{"7", "9", "8", "6"})

	mc, submit := mc.Update(specialKey(tea.KeyDown))
	if submit || mc.Selected != 1 {
		t.Fatalf("down: selected %d submit %v", mc.Selected, submit)
	}

	mc, submit = mc.Update(keyPress('c'))
	if !submit {
		t.Error("expected letter key to submit")
	}
	if mc.Value() != "8" {
		t.Errorf("Value() = %q, want 8", mc.Value())
	}

	// Letters past the last option are ignored.
	short := NewMultiChoice([]string{"<", ">", "="})
	_, submit = short.Update(keyPress('d'))
	if submit {
		t.Error("expected 'd' to be ignored for three options")
	}
}

func TestMultiChoice_LockedIgnoresKeys(t *testing.T) {
	mc := NewMultiChoice([]string{"<", ">", "="})
	mc.Lock(">")

	mc, submit := mc.Update(keyPress('b'))
	if submit || mc.Selected != 0 {
		t.Errorf("locked selector changed: selected %d submit %v", mc.Selected, submit)
	}
	if !strings.Contains(mc.View(), "B)  >") {
		t.Errorf("view missing option:\n%s", mc.View())
	}
}

func TestAnswerInput_NumericFilter(t *testing.T) {
	in := NewAnswerInput("?", true, 6)
	for _, r := range "1x2" {
		in, _ = in.Update(keyPress(r))
	}
	if in.Value() != "12" {
		t.Errorf("Value() = %q, want 12", in.Value())
	}

	in.Grade(true)
	in, _ = in.Update(keyPress('3'))
	if in.Value() != "12" {
		t.Errorf("graded input accepted keys: %q", in.Value())
	}
	if !strings.Contains(in.View(), "✓") {
		t.Error("expected check mark after correct grade")
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	for _, p := range []float64{-1, 0.5, 2} {
		bar := NewProgressBar("Next", p, 30)
		if view := bar.View(); !strings.Contains(view, "Next") {
			t.Errorf("percent %v: missing label in %q", p, view)
		}
	}
	bar := NewProgressBar("", 2, 20)
	if !strings.Contains(bar.View(), "100%") {
		t.Errorf("expected clamped caption, got %q", bar.View())
	}
	bar.Caption = "3 / 5"
	if !strings.Contains(bar.View(), "3 / 5") {
		t.Errorf("expected custom caption, got %q", bar.View())
	}
}
