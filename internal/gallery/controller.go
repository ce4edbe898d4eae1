// Package gallery implements the controller that owns the selection map,
// the open-photo cursor and its editable draft.
package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/logging"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

var (
	// ErrNoPhotoOpen is returned by draft commands while the detail view is closed.
	ErrNoPhotoOpen = errors.New("no photo open")
	// ErrIndexOutOfRange is returned when an index is not in the catalog.
	ErrIndexOutOfRange = errors.New("photo index out of range")
)

// closed is the cursor value when no photo is open.
const closed = -1

// Controller is the single writer of the selection map. It is not safe for
// concurrent use; callers serving several clients must serialize commands.
type Controller struct {
	catalog *catalog.Catalog
	store   *selection.Store
	limits  selection.Limits
	logger  *log.Logger

	selections selection.Map
	filter     selection.Filter
	cursor     int
	draft      selection.Record
}

// New creates a controller with an empty map. Call Load to restore persisted state.
func New(cat *catalog.Catalog, store *selection.Store, limits selection.Limits, logger *log.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	if limits == nil {
		limits = selection.Limits{}
	}
	return &Controller{
		catalog:    cat,
		store:      store,
		limits:     limits,
		logger:     logger,
		selections: selection.Map{},
		filter:     selection.FilterAll,
		cursor:     closed,
	}
}

// Load replaces the in-memory map with the persisted one and closes any open photo.
func (c *Controller) Load(ctx context.Context) {
	c.selections = c.store.Load(ctx)
	c.cursor = closed
	c.draft = selection.Record{}
	c.logger.Info("selections loaded", "classified", len(c.selections), "photos", c.catalog.Size())
}

// Catalog returns the photo catalog.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Limits returns the category caps.
func (c *Controller) Limits() selection.Limits {
	return c.limits
}

// Selections returns a copy of the committed map.
func (c *Controller) Selections() selection.Map {
	return c.selections.Clone()
}

// Record returns the committed record for index.
func (c *Controller) Record(index int) selection.Record {
	return c.selections.Get(index)
}

// Stats computes the counts over the committed map.
func (c *Controller) Stats() selection.Stats {
	return selection.ComputeStats(c.selections, c.catalog.Size())
}

// Exceeded returns the categories currently over their cap.
func (c *Controller) Exceeded() []selection.LimitWarning {
	return c.limits.Exceeded(c.Stats())
}

// Filter returns the active filter.
func (c *Controller) Filter() selection.Filter {
	return c.filter
}

// SetFilter changes the active filter. It does not touch the cursor or draft.
func (c *Controller) SetFilter(f selection.Filter) {
	c.filter = f
}

// Visible returns the indices shown under the active filter.
func (c *Controller) Visible() []int {
	return selection.VisibleIndices(c.filter, c.selections, c.catalog.Size())
}

// Cursor returns the open index, if any.
func (c *Controller) Cursor() (int, bool) {
	return c.cursor, c.cursor != closed
}

// Draft returns the editable record of the open photo.
func (c *Controller) Draft() (selection.Record, bool) {
	if c.cursor == closed {
		return selection.Record{}, false
	}
	return c.draft, true
}

// Dirty reports whether the draft differs from the committed record.
func (c *Controller) Dirty() bool {
	return c.cursor != closed && c.draft != c.selections.Get(c.cursor)
}

// Adjacent returns the neighbour of the open photo under the active filter.
func (c *Controller) Adjacent(dir selection.Direction) (int, bool) {
	if c.cursor == closed {
		return 0, false
	}
	return selection.FindAdjacentVisible(c.cursor, dir, c.filter, c.selections, c.catalog.Size())
}

// Open shows photo index in the detail view. Switching away from another
// open photo goes through the unsaved-changes gate.
func (c *Controller) Open(ctx context.Context, index int, res Resolution) (Result, error) {
	if !c.catalog.Contains(index) {
		return c.result(OutcomeNoOp, nil), fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if c.cursor == index {
		return c.result(OutcomeNoOp, nil), nil
	}
	outcome, notices := c.gate(ctx, res)
	if outcome.Moved() {
		c.moveTo(index)
	}
	return c.result(outcome, notices), nil
}

// Navigate moves to the next or previous photo visible under the active
// filter. Without a visible neighbour it is a no-op and no prompt is raised.
func (c *Controller) Navigate(ctx context.Context, dir selection.Direction, res Resolution) (Result, error) {
	if c.cursor == closed {
		return c.result(OutcomeNoOp, nil), ErrNoPhotoOpen
	}
	target, ok := c.Adjacent(dir)
	if !ok {
		return c.result(OutcomeNoOp, nil), nil
	}
	outcome, notices := c.gate(ctx, res)
	if outcome.Moved() {
		c.moveTo(target)
	}
	return c.result(outcome, notices), nil
}

// Close leaves the detail view. Closing while already closed is a no-op.
func (c *Controller) Close(ctx context.Context, res Resolution) (Result, error) {
	if c.cursor == closed {
		return c.result(OutcomeNoOp, nil), nil
	}
	outcome, notices := c.gate(ctx, res)
	if outcome.Moved() {
		c.cursor = closed
		c.draft = selection.Record{}
	}
	return c.result(outcome, notices), nil
}

// ToggleCategory flips cat in the draft. Turning on a capped category that
// would go over its cap returns an advisory notice; the toggle still happens.
func (c *Controller) ToggleCategory(cat selection.Category) ([]Notice, error) {
	if c.cursor == closed {
		return nil, ErrNoPhotoOpen
	}
	turningOn := !c.draft.Has(cat)
	c.draft = c.draft.Toggle(cat)
	if !turningOn {
		return nil, nil
	}
	limit, ok := c.limits.Limit(cat)
	if !ok {
		return nil, nil
	}
	others := selection.ComputeStats(c.selections, c.catalog.Size()).Count(cat)
	if c.selections.Get(c.cursor).Has(cat) {
		others--
	}
	if projected := others + 1; projected > limit {
		return []Notice{limitNotice(NoticeLimitProjected, cat, projected, limit)}, nil
	}
	return nil, nil
}

// SaveDraft commits the draft at the cursor and persists the map. An empty
// draft removes the record. Limits and persistence failures only produce notices.
func (c *Controller) SaveDraft(ctx context.Context) ([]Notice, error) {
	if c.cursor == closed {
		return nil, ErrNoPhotoOpen
	}
	return c.commit(ctx), nil
}

// ClearAll empties the map and persists it. It is irreversible, so it only
// runs when confirmed; otherwise it reports that a decision is needed.
func (c *Controller) ClearAll(ctx context.Context, confirmed bool) Result {
	if !confirmed {
		return c.result(OutcomeNeedsDecision, nil)
	}
	c.selections = selection.Map{}
	if c.cursor != closed {
		c.draft = selection.Record{}
	}
	var notices []Notice
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error("clearing selections failed", "err", err)
		notices = append(notices, PersistNotice(err))
	} else {
		c.logger.Info("selections cleared")
	}
	return c.result(OutcomeProceeded, notices)
}

// Flush persists the committed map without touching the draft.
func (c *Controller) Flush(ctx context.Context) error {
	if err := c.store.Save(ctx, c.selections); err != nil {
		c.logger.Error("flushing selections failed", "err", err)
		return err
	}
	return nil
}

// gate applies the unsaved-changes decision point.
func (c *Controller) gate(ctx context.Context, res Resolution) (Outcome, []Notice) {
	if !c.Dirty() {
		return OutcomeProceeded, nil
	}
	switch res {
	case ResolveSave:
		return OutcomeSavedAndProceeded, c.commit(ctx)
	case ResolveDiscard:
		return OutcomeProceeded, nil
	case ResolveCancel:
		return OutcomeCancelled, nil
	default:
		return OutcomeNeedsDecision, nil
	}
}

func (c *Controller) commit(ctx context.Context) []Notice {
	c.selections.Set(c.cursor, c.draft)
	c.draft = c.selections.Get(c.cursor)

	var notices []Notice
	stats := c.Stats()
	for _, cat := range c.draft.Categories() {
		limit, ok := c.limits.Limit(cat)
		if !ok {
			continue
		}
		if n := stats.Count(cat); n > limit {
			notices = append(notices, limitNotice(NoticeLimitExceeded, cat, n, limit))
		}
	}

	if err := c.store.Save(ctx, c.selections); err != nil {
		c.logger.Error("saving selections failed", "index", c.cursor, "err", err)
		notices = append(notices, PersistNotice(err))
	}
	return notices
}

func (c *Controller) moveTo(index int) {
	c.cursor = index
	c.draft = c.selections.Get(index)
}

func (c *Controller) result(outcome Outcome, notices []Notice) Result {
	return Result{Outcome: outcome, Cursor: c.cursor, Notices: notices}
}
