// Package tui is a terminal gallery over the same controller commands the
// web interface uses.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/kozaktomas/photo-selector/internal/gallery"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

// viewState represents the current view in the TUI.
type viewState int

const (
	gridView viewState = iota
	detailView
	decisionView
	confirmClearView
)

const cellWidth = 9

// Options configures side effects of the model.
type Options struct {
	Meta      export.Meta
	ExportDir string             // where x writes the JSON export
	Copy      func(string) error // defaults to the system clipboard
	Now       func() time.Time   // defaults to time.Now
}

// action is a gated controller command that can be re-issued once the
// user has decided what to do with unsaved changes.
type action func(gallery.Resolution) (gallery.Result, error)

type statusLine struct {
	level gallery.NoticeLevel
	text  string
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	ctrl    *gallery.Controller
	opts    Options
	view    viewState
	focus   int
	pending action
	status  []statusLine
	width   int
	help    help.Model
	keys    keyMap
}

// NewModel creates a model over a loaded controller.
func NewModel(ctx context.Context, ctrl *gallery.Controller, opts Options) *Model {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	m := &Model{
		ctx:  ctx,
		ctrl: ctrl,
		opts: opts,
		help: help.New(),
		keys: newKeyMap(),
	}
	if i, ok := ctrl.Cursor(); ok {
		m.view = detailView
		m.focus = i
	}
	m.ensureFocus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && m.view != decisionView {
			return m, m.quit()
		}
		switch m.view {
		case gridView:
			return m.handleGridKeys(msg)
		case detailView:
			return m.handleDetailKeys(msg)
		case decisionView:
			return m.handleDecisionKeys(msg)
		case confirmClearView:
			return m.handleConfirmClearKeys(msg)
		}
	}
	return m, nil
}

// quit persists the committed selections and exits. An unsaved draft is
// dropped, like closing the page.
func (m *Model) quit() tea.Cmd {
	if err := m.ctrl.Flush(m.ctx); err != nil {
		m.setStatus(gallery.LevelError, fmt.Sprintf("could not save selections: %v", err))
	}
	return tea.Quit
}

func (m *Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for i, b := range m.keys.filters {
		if key.Matches(msg, b) {
			m.ctrl.SetFilter(selection.Filters[i])
			m.ensureFocus()
			m.status = nil
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.left):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.right):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.up):
		m.moveFocus(-m.columns())
	case key.Matches(msg, m.keys.down):
		m.moveFocus(m.columns())
	case key.Matches(msg, m.keys.enter):
		if !slices.Contains(m.ctrl.Visible(), m.focus) {
			return m, nil
		}
		index := m.focus
		m.run(func(res gallery.Resolution) (gallery.Result, error) {
			return m.ctrl.Open(m.ctx, index, res)
		})
	case key.Matches(msg, m.keys.clear):
		m.view = confirmClearView
	case key.Matches(msg, m.keys.copy):
		m.copySummary()
	case key.Matches(msg, m.keys.export):
		m.writeExport()
	}
	return m, nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for i, b := range m.keys.toggles {
		if key.Matches(msg, b) {
			notices, err := m.ctrl.ToggleCategory(selection.Categories[i])
			m.status = nil
			m.report(notices, err)
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		notices, err := m.ctrl.SaveDraft(m.ctx)
		m.status = nil
		if err != nil {
			m.report(nil, err)
			return m, nil
		}
		m.report(notices, nil)
		m.run(func(res gallery.Resolution) (gallery.Result, error) {
			return m.ctrl.Close(m.ctx, res)
		})
	case key.Matches(msg, m.keys.left):
		m.navigate(selection.Previous)
	case key.Matches(msg, m.keys.right):
		m.navigate(selection.Next)
	case key.Matches(msg, m.keys.back):
		m.status = nil
		m.run(func(res gallery.Resolution) (gallery.Result, error) {
			return m.ctrl.Close(m.ctx, res)
		})
	}
	return m, nil
}

func (m *Model) handleDecisionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var res gallery.Resolution
	switch {
	case key.Matches(msg, m.keys.yes):
		res = gallery.ResolveSave
	case key.Matches(msg, m.keys.no):
		res = gallery.ResolveDiscard
	case key.Matches(msg, m.keys.back), msg.String() == "ctrl+c":
		res = gallery.ResolveCancel
	default:
		return m, nil
	}
	pending := m.pending
	m.pending = nil
	m.view = detailView
	m.run(func(gallery.Resolution) (gallery.Result, error) {
		return pending(res)
	})
	return m, nil
}

func (m *Model) handleConfirmClearKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.view = gridView
	if !key.Matches(msg, m.keys.yes) {
		m.setStatus(gallery.LevelInfo, "Nothing was deleted")
		return m, nil
	}
	result := m.ctrl.ClearAll(m.ctx, true)
	m.status = nil
	m.report(result.Notices, nil)
	m.setStatus(gallery.LevelInfo, "All selections were deleted")
	m.ensureFocus()
	return m, nil
}

func (m *Model) navigate(dir selection.Direction) {
	m.status = nil
	m.run(func(res gallery.Resolution) (gallery.Result, error) {
		return m.ctrl.Navigate(m.ctx, dir, res)
	})
}

// run issues a gated command and asks for a decision when one is needed.
func (m *Model) run(a action) {
	result, err := a(gallery.ResolveAsk)
	if err != nil {
		m.report(nil, err)
		return
	}
	if result.Outcome == gallery.OutcomeNeedsDecision {
		m.pending = a
		m.view = decisionView
		return
	}
	m.report(result.Notices, nil)
	m.syncView()
}

// syncView follows the controller: detail while a photo is open, grid otherwise.
func (m *Model) syncView() {
	if i, ok := m.ctrl.Cursor(); ok {
		m.view = detailView
		m.focus = i
		return
	}
	m.view = gridView
	m.ensureFocus()
}

func (m *Model) report(notices []gallery.Notice, err error) {
	if err != nil {
		m.setStatus(gallery.LevelError, err.Error())
	}
	for _, n := range notices {
		m.setStatus(n.Level, n.Message)
	}
}

func (m *Model) setStatus(level gallery.NoticeLevel, text string) {
	m.status = append(m.status, statusLine{level: level, text: text})
}

func (m *Model) copySummary() {
	text := export.Summary(m.opts.Meta, m.ctrl.Catalog(), m.ctrl.Selections(), m.opts.Now())
	if err := m.opts.Copy(text); err != nil {
		m.setStatus(gallery.LevelError, fmt.Sprintf("could not copy summary: %v", err))
		return
	}
	m.setStatus(gallery.LevelInfo, "Summary copied to the clipboard")
}

func (m *Model) writeExport() {
	path, err := export.WriteFile(m.opts.ExportDir, "json", m.opts.Meta, m.ctrl.Catalog(), m.ctrl.Selections(), m.opts.Now())
	if err != nil {
		m.setStatus(gallery.LevelError, err.Error())
		return
	}
	m.setStatus(gallery.LevelInfo, "Exported to "+path)
}

// ensureFocus keeps the grid focus on a visible photo when there is one.
func (m *Model) ensureFocus() {
	visible := m.ctrl.Visible()
	if len(visible) == 0 || slices.Contains(visible, m.focus) {
		return
	}
	for _, i := range visible {
		if i > m.focus {
			m.focus = i
			return
		}
	}
	m.focus = visible[len(visible)-1]
}

func (m *Model) moveFocus(delta int) {
	visible := m.ctrl.Visible()
	if len(visible) == 0 {
		return
	}
	pos := slices.Index(visible, m.focus)
	if pos < 0 {
		pos = 0
	}
	pos = min(max(pos+delta, 0), len(visible)-1)
	m.focus = visible[pos]
}

func (m *Model) columns() int {
	if m.width < cellWidth {
		return 10
	}
	return m.width / cellWidth
}

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Photo selection · " + m.opts.Meta.EventName))
	b.WriteString("\n")
	b.WriteString(m.viewStats())
	b.WriteString("\n\n")

	switch m.view {
	case gridView, confirmClearView:
		b.WriteString(m.viewFilters())
		b.WriteString("\n\n")
		b.WriteString(m.viewGrid())
	case detailView, decisionView:
		b.WriteString(m.viewDetail())
	}
	b.WriteString("\n")

	switch m.view {
	case decisionView:
		b.WriteString(styles.prompt.Render("You have unsaved changes. Save them? (y save, n discard, esc stay)"))
		b.WriteString("\n")
	case confirmClearView:
		b.WriteString(styles.prompt.Render("Delete ALL selections? This cannot be undone. (y/n)"))
		b.WriteString("\n")
	}

	for _, s := range m.status {
		b.WriteString(statusStyle(s.level).Render(s.text))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

func statusStyle(level gallery.NoticeLevel) lipgloss.Style {
	switch level {
	case gallery.LevelWarning:
		return styles.warn
	case gallery.LevelError:
		return styles.err
	default:
		return styles.info
	}
}

func (m *Model) viewHelp() string {
	switch m.view {
	case detailView:
		return m.help.View(detailKeys(m.keys))
	case decisionView, confirmClearView:
		return m.help.View(promptKeys(m.keys))
	default:
		return m.help.View(gridKeys(m.keys))
	}
}

func (m *Model) viewStats() string {
	stats := m.ctrl.Stats()
	limits := m.ctrl.Limits()
	parts := make([]string, 0, len(selection.Categories)+1)
	for _, c := range selection.Categories {
		n := stats.Count(c)
		text := fmt.Sprintf("%s %d", c.Label(), n)
		style := styles.subtle
		if limit, ok := limits.Limit(c); ok {
			text = fmt.Sprintf("%s %d/%d", c.Label(), n, limit)
			if n > limit {
				style = styles.warn
			}
		}
		parts = append(parts, style.Render(text))
	}
	parts = append(parts, styles.subtle.Render(fmt.Sprintf("Unclassified %d", stats.Unclassified)))
	return strings.Join(parts, styles.subtle.Render(" · "))
}

func (m *Model) viewFilters() string {
	stats := m.ctrl.Stats()
	size := m.ctrl.Catalog().Size()
	current := m.ctrl.Filter()
	parts := make([]string, 0, len(selection.Filters))
	for i, f := range selection.Filters {
		text := fmt.Sprintf("[%s] %s (%d)", m.keys.filters[i].Help().Key, f.Label(), f.Count(stats, size))
		if f == current {
			parts = append(parts, styles.selected.Render(text))
			continue
		}
		parts = append(parts, styles.subtle.Render(text))
	}
	return strings.Join(parts, "  ")
}

func badges(r selection.Record) string {
	var b strings.Builder
	for _, c := range r.Categories() {
		b.WriteString(styles.badges[c.String()].Render(strings.ToUpper(c.String()[:1])))
	}
	return b.String()
}

func (m *Model) viewGrid() string {
	visible := m.ctrl.Visible()
	if len(visible) == 0 {
		return styles.subtle.Render("No photos in this category")
	}
	selections := m.ctrl.Selections()
	cols := m.columns()

	var rows []string
	var row []string
	for _, i := range visible {
		p, _ := m.ctrl.Catalog().Photo(i)
		cell := fmt.Sprintf("%3d %s", p.Number(), badges(selections.Get(i)))
		style := styles.cell
		if i == m.focus {
			style = styles.focused
		}
		row = append(row, style.Render(cell))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) viewDetail() string {
	state := m.ctrl.State()
	if !state.Open {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Photo %d of %d  %s\n\n", state.PhotoNumber, m.ctrl.Catalog().Size(), styles.subtle.Render(state.Path))

	for i, c := range selection.Categories {
		mark := "[ ]"
		style := styles.subtle
		if state.Draft.Has(c) {
			mark = "[x]"
			style = styles.badges[c.String()].Bold(true)
		}
		fmt.Fprintf(&b, "  %s %s %s\n", mark, m.keys.toggles[i].Help().Key, style.Render(c.Label()))
	}
	b.WriteString("\n")

	var nav []string
	if state.HasPrev {
		nav = append(nav, "← previous")
	}
	if state.HasNext {
		nav = append(nav, "next →")
	}
	if len(nav) > 0 {
		b.WriteString(styles.subtle.Render(strings.Join(nav, "   ")))
		b.WriteString("\n")
	}
	if state.Dirty {
		b.WriteString(styles.warn.Render("unsaved changes"))
		b.WriteString("\n")
	}
	return b.String()
}
