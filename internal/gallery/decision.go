package gallery

import (
	"fmt"
	"strings"

	"github.com/kozaktomas/photo-selector/internal/selection"
)

// Resolution tells a gated command what to do with unsaved draft changes.
type Resolution string

const (
	// ResolveAsk stops at the decision point so the caller can prompt.
	ResolveAsk Resolution = "ask"
	// ResolveCancel abandons the command and keeps the draft.
	ResolveCancel Resolution = "cancel"
	// ResolveDiscard drops the draft and proceeds.
	ResolveDiscard Resolution = "discard"
	// ResolveSave commits the draft and proceeds.
	ResolveSave Resolution = "save"
)

// ParseResolution parses a resolution name. An empty string means ask.
func ParseResolution(s string) (Resolution, error) {
	switch r := Resolution(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return ResolveAsk, nil
	case ResolveAsk, ResolveCancel, ResolveDiscard, ResolveSave:
		return r, nil
	}
	return "", fmt.Errorf("unknown resolution %q", s)
}

// Outcome is the result of a gated command.
type Outcome string

const (
	OutcomeProceeded         Outcome = "proceeded"
	OutcomeSavedAndProceeded Outcome = "saved_and_proceeded"
	OutcomeCancelled         Outcome = "cancelled"
	OutcomeNeedsDecision     Outcome = "needs_decision"
	OutcomeNoOp              Outcome = "no_op"
)

// Moved reports whether the command changed the cursor or the map.
func (o Outcome) Moved() bool {
	return o == OutcomeProceeded || o == OutcomeSavedAndProceeded
}

// NoticeLevel grades a notice for presentation.
type NoticeLevel string

const (
	LevelInfo    NoticeLevel = "info"
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

// NoticeKind identifies what a notice is about.
type NoticeKind string

const (
	// NoticeLimitProjected warns that turning a category on will push it over its cap.
	NoticeLimitProjected NoticeKind = "limit_projected"
	// NoticeLimitExceeded warns that a saved category is over its cap.
	NoticeLimitExceeded NoticeKind = "limit_exceeded"
	// NoticePersistFailed reports that the map could not be written.
	NoticePersistFailed NoticeKind = "persist_failed"
)

// Notice is a non-fatal, user-visible message produced by a command.
type Notice struct {
	Kind     NoticeKind          `json:"kind"`
	Level    NoticeLevel         `json:"level"`
	Message  string              `json:"message"`
	Category *selection.Category `json:"category,omitempty"`
	Count    int                 `json:"count,omitempty"`
	Limit    int                 `json:"limit,omitempty"`
}

func limitNotice(kind NoticeKind, c selection.Category, count, limit int) Notice {
	var msg string
	if kind == NoticeLimitProjected {
		msg = fmt.Sprintf("%s would have %d photos, the recommended limit is %d", c.Label(), count, limit)
	} else {
		msg = fmt.Sprintf("%s has %d photos, the recommended limit is %d", c.Label(), count, limit)
	}
	return Notice{
		Kind:     kind,
		Level:    LevelWarning,
		Message:  msg,
		Category: &c,
		Count:    count,
		Limit:    limit,
	}
}

// PersistNotice reports a failed write; the in-memory map stays authoritative.
func PersistNotice(err error) Notice {
	return Notice{
		Kind:    NoticePersistFailed,
		Level:   LevelWarning,
		Message: fmt.Sprintf("selections could not be saved to storage, changes are kept for this session: %v", err),
	}
}

// Result describes what a gated command did.
type Result struct {
	Outcome Outcome  `json:"outcome"`
	Cursor  int      `json:"cursor"`
	Notices []Notice `json:"notices,omitempty"`
}
