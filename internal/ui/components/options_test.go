package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestOptionList_NumberKeys(t *testing.T) {
	o := NewOptionList([]string{"A", "B", "C"}, "")
	if o.Value() != "" {
		t.Fatalf("expected no initial choice, got %q", o.Value())
	}

	o, changed := o.Update(key('2'))
	if !changed || o.Value() != "B" || o.Cursor != 1 {
		t.Errorf("after '2': value=%q cursor=%d changed=%v", o.Value(), o.Cursor, changed)
	}

	o, changed = o.Update(key('2'))
	if changed {
		t.Error("choosing the same option again should not report a change")
	}

	o, changed = o.Update(key('9'))
	if changed || o.Value() != "B" {
		t.Error("out of range number should be ignored")
	}
}

func TestOptionList_CursorAndSpace(t *testing.T) {
	o := NewOptionList([]string{"true", "false"}, "")

	o, _ = o.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	o, _ = o.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if o.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", o.Cursor)
	}

	o, changed := o.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !changed || o.Value() != "false" {
		t.Errorf("space should choose the cursor option, got %q", o.Value())
	}
}

func TestOptionList_Preselect(t *testing.T) {
	o := NewOptionList([]string{"A", "B", "C"}, "C")
	if o.Chosen != 2 || o.Cursor != 2 {
		t.Errorf("preselect = chosen %d cursor %d, want 2 2", o.Chosen, o.Cursor)
	}
	if NewOptionList([]string{"A"}, "Z").Chosen != -1 {
		t.Error("unknown preselect should choose nothing")
	}
}
