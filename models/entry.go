package models

import "time"

// Entry categories assigned by the classifier.
const (
	CategoryTask       = "task"
	CategoryIdea       = "idea"
	CategoryShopping   = "shopping"
	CategoryNote       = "note"
	CategoryMeeting    = "meeting"
	CategoryReflection = "reflection"
	CategoryContact    = "contact"
	CategoryEvent      = "event"
)

// Entry is a classified piece of shared team knowledge: a task, idea,
// note, or similar dumped by a member in free text. Category-specific
// fields (due dates, attendees, locations) live in Fields so the
// schema can vary per category without schema migrations.
type Entry struct {
	ID        string         `bson:"id" json:"id"`
	TeamID    string         `bson:"teamId" json:"teamId"`
	MemberID  string         `bson:"memberId" json:"memberId"`
	Category  string         `bson:"category" json:"category"`
	Summary   string         `bson:"summary" json:"summary"`
	RawInput  string         `bson:"rawInput" json:"rawInput"`
	Tags      []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	Fields    map[string]any `bson:"fields,omitempty" json:"fields,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// DumpResult reports where a captured entry ended up. Storage is
// "mongo" normally and "memory" when the primary store was down and
// the entry was parked in the in-process fallback.
type DumpResult struct {
	Success bool   `json:"success"`
	Entry   Entry  `json:"entry"`
	Storage string `json:"storage"`
}

// QueryRequest defines the payload for searching entries.
type QueryRequest struct {
	Query      string   `json:"query" binding:"required"`
	Categories []string `json:"categories,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// QueryResult carries entries matched by a search.
type QueryResult struct {
	Results []Entry `json:"results"`
	Count   int     `json:"count"`
}
