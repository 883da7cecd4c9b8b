package models

// Kind tags categories and transactions as money in or money out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Category groups transactions for one owner. A category referenced by at
// least one transaction cannot be deleted.
type Category struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
}
