package model

import "time"

// Level tags a node's depth in a card's outline. The outline never goes
// deeper than tertiary.
type Level string

const (
	LevelPrimary   Level = "primary"
	LevelSecondary Level = "secondary"
	LevelTertiary  Level = "tertiary"
)

// Depth returns the indent depth for a level: primary 0, secondary 1, tertiary 2.
// Unknown levels render as roots.
func (l Level) Depth() int {
	switch l {
	case LevelSecondary:
		return 1
	case LevelTertiary:
		return 2
	default:
		return 0
	}
}

// ChildLevel returns the level one step deeper, and false when l is
// tertiary (or unknown) and cannot have children.
func (l Level) ChildLevel() (Level, bool) {
	switch l {
	case LevelPrimary:
		return LevelSecondary, true
	case LevelSecondary:
		return LevelTertiary, true
	default:
		return "", false
	}
}

// ParentLevel returns the level one step shallower, and false for primary
// (or unknown) which has no parent level.
func (l Level) ParentLevel() (Level, bool) {
	switch l {
	case LevelSecondary:
		return LevelPrimary, true
	case LevelTertiary:
		return LevelSecondary, true
	default:
		return "", false
	}
}

type CardKind string

const (
	// CardKindBasic holds label-only entries.
	CardKindBasic CardKind = "basic"
	// CardKindPages attaches a page title and URL to each entry.
	CardKindPages CardKind = "pages"
)

type Card struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      CardKind  `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// Node is one entry of a card's outline. Label, PageTitle and URL are opaque
// payload; the engine never interprets them.
type Node struct {
	ID       string  `json:"id"`
	Level    Level   `json:"level"`
	ParentID *string `json:"parentId,omitempty"`

	// Collapsed is meaningful only while the node has children.
	Collapsed bool `json:"collapsed,omitempty"`

	Label     string `json:"label,omitempty"`
	PageTitle string `json:"pageTitle,omitempty"`
	URL       string `json:"url,omitempty"`
}

type Event struct {
	ID       string `json:"id"`
	CardID   string `json:"cardId"`
	Type     string `json:"type"`
	EntityID string `json:"entityId,omitempty"`
	Payload  any    `json:"payload,omitempty"`
	AtUnixMS int64  `json:"atUnixMs"`
}
