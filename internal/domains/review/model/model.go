package model

import "lendr/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldRentalID   = "rental_id"
	FieldItemID     = "item_id"
	FieldReviewerID = "reviewer_id"
	FieldRating     = "rating"
	FieldComment    = "comment"
)

type Review struct {
	ID           string `db:"id"`
	RentalID     string `db:"rental_id"`
	ItemID       string `db:"item_id"`
	ReviewerID   string `db:"reviewer_id"`
	Rating       int    `db:"rating"`
	Comment      string `db:"comment"`
	ReviewerName string `db:"reviewer_name" table:"users" column:"full_name"`
	model.Metadata
}

func (r Review) GetJoinQuery() string {
	return `JOIN users ON users.id = reviews.reviewer_id`
}
