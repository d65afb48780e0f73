package model

import "lendr/shared/model"

const (
	TableName  = "items"
	EntityName = "item"

	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldCategoryID  = "category_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPricePerDay = "price_per_day"
	FieldAvailable   = "available"
)

type Item struct {
	ID           string  `db:"id"`
	OwnerID      string  `db:"owner_id"`
	CategoryID   string  `db:"category_id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	PricePerDay  float64 `db:"price_per_day"`
	Available    bool    `db:"available"`
	OwnerName    string  `db:"owner_name"    table:"users"      column:"full_name"`
	CategoryName string  `db:"category_name" table:"categories" column:"name"`
	model.Metadata
}

func (i Item) GetJoinQuery() string {
	return `JOIN users ON users.id = items.owner_id
		JOIN categories ON categories.id = items.category_id`
}
