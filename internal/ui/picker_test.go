package ui

import (
	"testing"
)

func newTestPicker(options ...string) pickerModel {
	return newPickerModel("Select files", options)
}

func TestPickerModel_AllSelectedByDefault(t *testing.T) {
	t.Parallel()

	m := newTestPicker("a.cs", "b.cs", "c.cs")
	got := m.selectedOptions()
	if len(got) != 3 {
		t.Fatalf("selectedOptions = %v, want all 3", got)
	}
}

func TestPickerModel_TabTogglesCursorItem(t *testing.T) {
	t.Parallel()

	m := newTestPicker("a.cs", "b.cs", "c.cs")
	updated, _ := m.Update(keyPress("tab"))
	got := updated.(pickerModel).selectedOptions()
	if len(got) != 2 {
		t.Fatalf("selectedOptions after toggle = %v, want 2", got)
	}
	for _, opt := range got {
		if opt == "a.cs" {
			t.Error("a.cs still selected after toggle at cursor 0")
		}
	}
}

func TestPickerModel_CursorNavigation(t *testing.T) {
	t.Parallel()

	m := newTestPicker("a.cs", "b.cs", "c.cs")

	updated, _ := m.Update(keyPress("down"))
	m = updated.(pickerModel)
	if m.cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.cursor)
	}

	updated, _ = m.Update(keyPress("up"))
	m = updated.(pickerModel)
	if m.cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.cursor)
	}

	// Up at top stays put
	updated, _ = m.Update(keyPress("up"))
	m = updated.(pickerModel)
	if m.cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.cursor)
	}
}

func TestPickerModel_ToggleAll(t *testing.T) {
	t.Parallel()

	m := newTestPicker("a.cs", "b.cs")

	// All selected → ctrl+a deselects everything
	updated, _ := m.Update(keyPress("ctrl+a"))
	m = updated.(pickerModel)
	if got := m.selectedOptions(); len(got) != 0 {
		t.Fatalf("selectedOptions after first ctrl+a = %v, want none", got)
	}

	// None selected → ctrl+a selects everything
	updated, _ = m.Update(keyPress("ctrl+a"))
	m = updated.(pickerModel)
	if got := m.selectedOptions(); len(got) != 2 {
		t.Fatalf("selectedOptions after second ctrl+a = %v, want 2", got)
	}
}

func TestPickerModel_FuzzyFilter(t *testing.T) {
	t.Parallel()

	m := newTestPicker("internal/app/main.cs", "internal/app/util.cs", "docs/readme.md")

	filtered := m.filterOptions("util")
	if len(filtered) != 1 {
		t.Fatalf("filterOptions(util) = %v, want 1 match", filtered)
	}
	if m.options[filtered[0]] != "internal/app/util.cs" {
		t.Errorf("filterOptions(util) matched %q", m.options[filtered[0]])
	}

	if got := m.filterOptions(""); len(got) != 3 {
		t.Errorf("filterOptions(empty) = %v, want all", got)
	}
}

func TestPickerModel_EnterAndEscape(t *testing.T) {
	t.Parallel()

	m := newTestPicker("a.cs")
	updated, _ := m.Update(keyPress("enter"))
	if got := updated.(pickerModel); !got.done || got.cancelled {
		t.Errorf("enter: done=%v cancelled=%v, want done and not cancelled", got.done, got.cancelled)
	}

	m = newTestPicker("a.cs")
	updated, _ = m.Update(keyPress("esc"))
	if got := updated.(pickerModel); !got.done || !got.cancelled {
		t.Errorf("esc: done=%v cancelled=%v, want done and cancelled", got.done, got.cancelled)
	}
}

func TestMultiSelect_EmptyOptions(t *testing.T) {
	t.Parallel()

	res, err := MultiSelect("pick", nil)
	if err != nil {
		t.Fatalf("MultiSelect(nil) error = %v", err)
	}
	if res.Cancelled || len(res.Selected) != 0 {
		t.Errorf("MultiSelect(nil) = %+v, want empty result", res)
	}
}
