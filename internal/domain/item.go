package domain

import "time"

type ItemClass string

const (
	// ItemClassConsumable marks goods whose withdrawals are never
	// expected to come back (paint, screws, wire).
	ItemClassConsumable ItemClass = "CONSUMABLE"
	// ItemClassTrackable marks goods lent out against an outstanding
	// balance until returned (tools, scaffolding).
	ItemClassTrackable ItemClass = "TRACKABLE"
)

func (c ItemClass) Valid() bool {
	return c == ItemClassConsumable || c == ItemClassTrackable
}

type ItemStatus string

const (
	ItemStatusActive  ItemStatus = "ACTIVE"
	ItemStatusDeleted ItemStatus = "DELETED"
)

// Item is a named stock line assigned to one shed.
//
// TotalAmount is the nominal quantity assigned to the shed;
// ActualAmount is what is physically present. A trackable withdrawal
// lowers only ActualAmount — the debt lives on the stock record, not
// on the counters. A consumable withdrawal lowers both permanently.
type Item struct {
	ID           int32      `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Class        ItemClass  `json:"class"`
	ShedID       int32      `json:"shed_id"`
	TotalAmount  int32      `json:"total_amount"`
	ActualAmount int32      `json:"actual_amount"`
	IsAvailable  bool       `json:"is_available"`
	Status       ItemStatus `json:"status"`
	CreatedOn    time.Time  `json:"created_on"`
}

type Shed struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// DeletedItem is the immutable audit row written when an item is
// soft-deleted. The item row itself only flips status.
type DeletedItem struct {
	ID             int32     `json:"id"`
	ItemID         int32     `json:"item_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	DeletionReason string    `json:"deletion_reason"`
	DeletedBy      string    `json:"deleted_by"`
	DeletedAt      time.Time `json:"deleted_at"`
}
