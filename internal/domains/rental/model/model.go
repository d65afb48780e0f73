package model

import (
	"lendr/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "rentals"
	EntityName = "rental"

	FieldID         = "id"
	FieldItemID     = "item_id"
	FieldRenterID   = "renter_id"
	FieldOwnerID    = "owner_id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldStatus     = "status"
	FieldTotalPrice = "total_price"
	FieldCreatedAt  = "created_at"

	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the statuses that hold a time window on an item. Only
// rentals in one of these states count toward overlap conflicts.
var ActiveStatuses = []string{StatusPending, StatusApproved}

type Rental struct {
	ID         string    `db:"id"`
	ItemID     string    `db:"item_id"`
	RenterID   string    `db:"renter_id"`
	OwnerID    string    `db:"owner_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Status     string    `db:"status"`
	TotalPrice float64   `db:"total_price"`
	ItemName   string    `db:"item_name"   table:"items" column:"name"`
	RenterName string    `db:"renter_name" table:"users" column:"full_name"`
	model.Metadata
}

func (r Rental) GetJoinQuery() string {
	return `JOIN items ON items.id = rentals.item_id
		JOIN users ON users.id = rentals.renter_id`
}

// IsTerminal reports whether the rental is in a state that can no longer
// transition.
func (r Rental) IsTerminal() bool {
	return r.Status == StatusRejected || r.Status == StatusCompleted || r.Status == StatusCancelled
}

// ConflictsWith reports whether this rental blocks the given window. Both
// boundaries count: a rental ending on the window's start date still
// conflicts. Rentals outside the active statuses hold no window. The overlap
// check in the rentals repository runs this same predicate in SQL.
func (r Rental) ConflictsWith(start, end time.Time) bool {
	if !slices.Contains(ActiveStatuses, r.Status) {
		return false
	}

	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}
