package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/database/mock"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/kozaktomas/photo-selector/internal/gallery"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

const storageKey = "selections"

var testNow = time.Date(2026, 10, 18, 17, 5, 9, 0, time.UTC)

type fixture struct {
	model  *Model
	ctrl   *gallery.Controller
	kv     *mock.MockKVStore
	copied []string
	dir    string
}

func newFixture(t *testing.T, size int, initial selection.Map) *fixture {
	t.Helper()
	cat, err := catalog.New(size, "images/foto%04d.webp")
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	kv := mock.NewMockKVStore()
	if initial != nil {
		data, err := selection.Encode(initial)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		kv.Set(storageKey, data)
	}
	ctrl := gallery.New(cat, selection.NewStore(kv, storageKey, size, nil), selection.Limits{selection.Print: 1}, nil)
	ctrl.Load(context.Background())

	f := &fixture{ctrl: ctrl, kv: kv, dir: t.TempDir()}
	f.model = NewModel(context.Background(), ctrl, Options{
		Meta:      export.Meta{EventName: "XV Años", Location: time.UTC},
		ExportDir: f.dir,
		Copy: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
		Now: func() time.Time { return testNow },
	})
	return f
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys in order and returns the last command.
func (f *fixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.model.Update(keyMsg(k))
	}
	return cmd
}

func (f *fixture) statusText() string {
	var parts []string
	for _, s := range f.model.status {
		parts = append(parts, s.text)
	}
	return strings.Join(parts, "\n")
}

func TestOpenToggleSave(t *testing.T) {
	f := newFixture(t, 5, nil)

	f.press("right", "enter")
	if f.model.view != detailView {
		t.Fatalf("expected detail view, got %v", f.model.view)
	}
	if i, _ := f.ctrl.Cursor(); i != 1 {
		t.Fatalf("expected photo index 1 open, got %d", i)
	}

	f.press("p", "s")
	if !f.ctrl.Dirty() {
		t.Fatal("expected a dirty draft after toggling")
	}

	f.press("enter")
	if f.model.view != gridView {
		t.Errorf("expected grid view after save, got %v", f.model.view)
	}
	if got := f.ctrl.Record(1); got != (selection.Record{Print: true, Social: true}) {
		t.Errorf("unexpected record %+v", got)
	}
	if f.kv.PutCalls != 1 {
		t.Errorf("expected one save, got %d", f.kv.PutCalls)
	}
	if f.model.focus != 1 {
		t.Errorf("expected focus to stay on photo 1, got %d", f.model.focus)
	}
}

func TestDiscardIsExclusive(t *testing.T) {
	f := newFixture(t, 3, nil)

	f.press("enter", "p", "e", "d")
	draft, _ := f.ctrl.Draft()
	if draft != (selection.Record{Discard: true}) {
		t.Errorf("expected discard only, got %+v", draft)
	}
}

func TestUnsavedChangesPrompt(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		wantCursor int
		wantRecord selection.Record
		wantView   viewState
	}{
		{"save", "y", 1, selection.Record{Social: true}, detailView},
		{"discard", "n", 1, selection.Record{}, detailView},
		{"cancel", "esc", 0, selection.Record{}, detailView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 3, nil)
			f.press("enter", "s", "right")
			if f.model.view != decisionView {
				t.Fatalf("expected decision view, got %v", f.model.view)
			}

			f.press(tt.answer)
			if f.model.view != tt.wantView {
				t.Errorf("expected view %v, got %v", tt.wantView, f.model.view)
			}
			if i, _ := f.ctrl.Cursor(); i != tt.wantCursor {
				t.Errorf("expected cursor %d, got %d", tt.wantCursor, i)
			}
			if got := f.ctrl.Record(0); got != tt.wantRecord {
				t.Errorf("expected stored record %+v, got %+v", tt.wantRecord, got)
			}
		})
	}
}

func TestEscClosesCleanDraft(t *testing.T) {
	f := newFixture(t, 3, nil)

	f.press("enter", "esc")
	if f.model.view != gridView {
		t.Errorf("expected grid view, got %v", f.model.view)
	}
	if _, open := f.ctrl.Cursor(); open {
		t.Error("expected no photo open")
	}
}

func TestFilterKeys(t *testing.T) {
	f := newFixture(t, 6, selection.Map{
		2: {Print: true},
		4: {Discard: true},
	})

	f.press("2")
	if f.ctrl.Filter() != selection.FilterPrint {
		t.Fatalf("expected print filter, got %s", f.ctrl.Filter())
	}
	if f.model.focus != 2 {
		t.Errorf("expected focus on the only print photo, got %d", f.model.focus)
	}

	f.press("u")
	if f.ctrl.Filter() != selection.FilterUnclassified {
		t.Fatalf("expected unclassified filter, got %s", f.ctrl.Filter())
	}
	if f.model.focus != 3 {
		t.Errorf("expected focus to move to the next unclassified photo, got %d", f.model.focus)
	}

	f.press("a")
	if f.ctrl.Filter() != selection.FilterAll {
		t.Errorf("expected all filter, got %s", f.ctrl.Filter())
	}
}

func TestNavigationFollowsFilter(t *testing.T) {
	f := newFixture(t, 6, selection.Map{
		1: {Print: true},
		4: {Print: true},
	})

	f.press("2", "enter")
	if i, _ := f.ctrl.Cursor(); i != 1 {
		t.Fatalf("expected photo 1 open, got %d", i)
	}
	f.press("right")
	if i, _ := f.ctrl.Cursor(); i != 4 {
		t.Errorf("expected next print photo 4, got %d", i)
	}
	f.press("right")
	if i, _ := f.ctrl.Cursor(); i != 4 {
		t.Errorf("expected to stay on the last print photo, got %d", i)
	}
}

func TestLimitNoticeShown(t *testing.T) {
	f := newFixture(t, 3, selection.Map{0: {Print: true}})

	f.press("right", "enter", "p")
	if !strings.Contains(f.statusText(), "limit is 1") {
		t.Errorf("expected projected limit notice, got %q", f.statusText())
	}
}

func TestClearAllNeedsConfirmation(t *testing.T) {
	f := newFixture(t, 3, selection.Map{0: {Print: true}})

	f.press("X", "n")
	if len(f.ctrl.Selections()) != 1 {
		t.Fatal("selections cleared without confirmation")
	}

	f.press("X")
	if f.model.view != confirmClearView {
		t.Fatalf("expected confirmation view, got %v", f.model.view)
	}
	f.press("y")
	if len(f.ctrl.Selections()) != 0 {
		t.Errorf("expected empty selections, got %v", f.ctrl.Selections())
	}
	if raw, _ := f.kv.Raw(storageKey); string(raw) != "{}" {
		t.Errorf("expected empty persisted map, got %s", raw)
	}
}

func TestCopySummary(t *testing.T) {
	f := newFixture(t, 3, selection.Map{2: {Enlargement: true}})

	f.press("c")
	if len(f.copied) != 1 {
		t.Fatalf("expected one copy, got %d", len(f.copied))
	}
	if !strings.Contains(f.copied[0], "PHOTO SELECTION - XV AÑOS") {
		t.Errorf("unexpected summary:\n%s", f.copied[0])
	}
}

func TestCopySummaryFailure(t *testing.T) {
	f := newFixture(t, 3, nil)
	f.model.opts.Copy = func(string) error { return errors.New("no clipboard") }

	f.press("c")
	if !strings.Contains(f.statusText(), "no clipboard") {
		t.Errorf("expected clipboard error in status, got %q", f.statusText())
	}
}

func TestExportWritesFile(t *testing.T) {
	f := newFixture(t, 3, selection.Map{0: {Social: true}})

	f.press("x")
	path := filepath.Join(f.dir, "selection-xv-anos-2026-10-18.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.Contains(string(data), `"social": true`) {
		t.Errorf("unexpected export:\n%s", data)
	}
}

func TestQuitFlushesCommittedOnly(t *testing.T) {
	f := newFixture(t, 3, nil)

	f.press("enter", "p")
	cmd := f.press("q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
	raw, ok := f.kv.Raw(storageKey)
	if !ok {
		t.Fatal("expected flush on quit")
	}
	if string(raw) != "{}" {
		t.Errorf("draft must not be persisted, got %s", raw)
	}
}

func TestViewRenders(t *testing.T) {
	f := newFixture(t, 4, selection.Map{1: {Print: true}})
	f.model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	grid := f.model.View()
	for _, want := range []string{"XV Años", "Print 1/1", "Unclassified 3"} {
		if !strings.Contains(grid, want) {
			t.Errorf("grid view missing %q:\n%s", want, grid)
		}
	}

	f.press("enter", "e")
	detail := f.model.View()
	for _, want := range []string{"Photo 1 of 4", "[x]", "unsaved changes"} {
		if !strings.Contains(detail, want) {
			t.Errorf("detail view missing %q:\n%s", want, detail)
		}
	}
}
