package models

import "time"

// RecordDateLayout is the layout of PurchaseRecord.Date.
const RecordDateLayout = "2006-01-02 15:04:05"

// PurchaseRecord is an archived, completed shopping list.
type PurchaseRecord struct {
	ID        string       `json:"id,omitempty" yaml:"id" db:"id"`
	Date      string       `json:"date" yaml:"date" db:"recorded_at"`
	TotalCost int64        `json:"total_cost" yaml:"total_cost" db:"total_cost"`
	Items     []RecordItem `json:"items" yaml:"items" db:"items"`
}

// RecordItem is one purchased product inside a PurchaseRecord.
type RecordItem struct {
	Product  string `json:"product" yaml:"product" csv:"product"`
	Quantity string `json:"quantity" yaml:"quantity" csv:"quantity"`
	Category string `json:"category" yaml:"category" csv:"category"`
	Price    int64  `json:"price" yaml:"price" csv:"price"`
}

// Time parses Date. Records written by other tools may carry an unparsable date.
func (r *PurchaseRecord) Time() (time.Time, error) {
	return time.ParseInLocation(RecordDateLayout, r.Date, time.Local)
}

// PurchaseMatch is a product the purchase oracle found in a user message.
type PurchaseMatch struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ChangeAction is the kind of list edit.
type ChangeAction string

const (
	ChangeAdd     ChangeAction = "add"
	ChangeRemove  ChangeAction = "remove"
	ChangeReplace ChangeAction = "replace"
)

// Change is a single edit operation extracted from a user message.
type Change struct {
	Action     ChangeAction `json:"action"`
	OldProduct string       `json:"old_product"`
	NewProduct string       `json:"new_product"`
	Quantity   string       `json:"quantity"`
}
