package models

type Label struct {
	ID          int    `json:"id"`
	UserID      int    `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColourID    *int   `json:"colour,omitempty"`
}

// EntryLabel is a join row between an entry and a label of the same user.
type EntryLabel struct {
	EntryID int `json:"entry_id"`
	LabelID int `json:"label_id"`
	UserID  int `json:"-"`
}
