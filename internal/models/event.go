package models

import "time"

// Event is a single audit log entry for a mutation of an owned entity.
type Event struct {
	EventID     string    `json:"event_id"`
	UserID      int       `json:"-"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`   // CREATE | UPDATE | DELETE
	Entity      string    `json:"entity"` // CATEGORY | SUBCATEGORY | ENTRY | LABEL | ENTRY_LABEL | COLOUR | USER
	EntityID    int       `json:"entity_id"`
	Description string    `json:"description"`
}

const (
	EventCreate = "CREATE"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"

	EntityUser        = "USER"
	EntityColour      = "COLOUR"
	EntityCategory    = "CATEGORY"
	EntitySubcategory = "SUBCATEGORY"
	EntityLabel       = "LABEL"
	EntityEntry       = "ENTRY"
	EntityEntryLabel  = "ENTRY_LABEL"
)
