package models

import "time"

// Transaction is a single income or expense row. CategoryID always points at
// a category of the same owner; that rule is enforced on create and update.
// Timestamps are naive UTC.
type Transaction struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	CategoryID  int64     `json:"category_id"`
	Amount      float64   `json:"amount"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
