package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single transaction filed under a subcategory.
type Entry struct {
	ID              int             `json:"id"`
	UserID          int             `json:"-"`
	SubcategoryID   int             `json:"subcategory_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
	TransactionTime time.Time       `json:"transaction_time"`
	Attachment      []byte          `json:"attachment,omitempty"` // base64 in JSON
}

type EntryPatch struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionTime *time.Time       `json:"transaction_time"`
	Attachment      []byte           `json:"attachment"`
}

func (p EntryPatch) Apply(e *Entry) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.TransactionTime != nil {
		e.TransactionTime = p.TransactionTime.UTC()
	}
	if p.Attachment != nil {
		e.Attachment = p.Attachment
	}
}
