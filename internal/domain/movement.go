package domain

import "time"

// Movement is the immutable audit entry for an inter-shed transfer.
type Movement struct {
	ID         int32     `json:"id"`
	ItemID     int32     `json:"item_id"`
	ToItemID   int32     `json:"to_item_id"`
	ItemName   string    `json:"item_name"`
	FromShedID int32     `json:"from_shed_id"`
	ToShedID   int32     `json:"to_shed_id"`
	Quantity   int32     `json:"quantity"`
	UserID     int32     `json:"user_id"`
	UserName   string    `json:"user_name"`
	Date       time.Time `json:"date"`
}

// MovementDetails carries the shed names alongside the raw entry for
// listing endpoints.
type MovementDetails struct {
	Movement
	FromShedName string `json:"from_shed_name"`
	ToShedName   string `json:"to_shed_name"`
}

type Observation struct {
	ID          int32     `json:"id"`
	ItemID      int32     `json:"item_id"`
	Description string    `json:"description"`
	UserID      int32     `json:"user_id"`
	UserName    string    `json:"user_name"`
	Date        time.Time `json:"date"`
}
