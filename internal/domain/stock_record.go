package domain

import "time"

type StockAction string

const (
	StockActionWithdrawal StockAction = "WITHDRAWAL"
	StockActionReturn     StockAction = "RETURN"
)

// StockRecord is one line of the withdrawal/return ledger.
//
// For a trackable withdrawal, AmountOutstanding starts equal to Amount
// and only ever decreases as returns are reconciled against it;
// Settled flips to true exactly when it reaches zero. A consumable
// withdrawal is born settled with AmountOutstanding nil — its stock is
// gone for good and no return will ever match it. A return record
// documents an already-resolved event: born settled, nil outstanding.
type StockRecord struct {
	ID                int32       `json:"id"`
	ItemID            int32       `json:"item_id"`
	UserID            int32       `json:"user_id"`
	UserName          string      `json:"user_name"`
	TakenBy           string      `json:"taken_by"`
	Action            StockAction `json:"action"`
	Amount            int32       `json:"amount"`
	AmountOutstanding *int32      `json:"amount_outstanding"`
	Place             string      `json:"place"`
	Settled           bool        `json:"settled"`
	SettledAt         *time.Time  `json:"settled_at,omitempty"`
	LastNotified      *time.Time  `json:"last_notified,omitempty"`
	Date              time.Time   `json:"date"`
}

// Outstanding returns the unreturned quantity, treating the nil
// outstanding of consumable and return records as zero.
func (r *StockRecord) Outstanding() int32 {
	if r.AmountOutstanding == nil {
		return 0
	}
	return *r.AmountOutstanding
}

// StockRecordDetails decorates a record with the item and shed names
// the history views display.
type StockRecordDetails struct {
	StockRecord
	ItemName     string `json:"item_name"`
	ItemCategory string `json:"item_category"`
	ShedID       int32  `json:"shed_id"`
	ShedName     string `json:"shed_name"`
}

// HistoryFilter narrows history listings. Zero values mean "no filter".
type HistoryFilter struct {
	ItemName string
	UserName string
	TakenBy  string
	Place    string
	Action   StockAction
	Category string
	ShedID   int32
	Month    int
	Year     int
}

// DeliveryNote is the composed data of a remito covering a batch of
// withdrawal records. Rendering is up to the caller.
type DeliveryNote struct {
	Reference string             `json:"reference"`
	IssuedAt  time.Time          `json:"issued_at"`
	Lines     []DeliveryNoteLine `json:"lines"`
}

type DeliveryNoteLine struct {
	ItemName    string    `json:"item_name"`
	HandedBy    string    `json:"handed_by"`
	Amount      int32     `json:"amount"`
	Place       string    `json:"place"`
	ShedName    string    `json:"shed_name"`
	WithdrawnAt time.Time `json:"withdrawn_at"`
}
