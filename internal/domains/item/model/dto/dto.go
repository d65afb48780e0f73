package dto

import (
	"lendr/internal/domains/item/model"
	"lendr/shared"
	gDto "lendr/shared/dto"
	gModel "lendr/shared/model"
	"lendr/shared/timezone"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	CategoryID  string  `json:"category_id"   validate:"required,uuid"`
	Name        string  `json:"name"          validate:"required,max=100"`
	Description string  `json:"description"   validate:"omitempty,max=1000"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
}

func (c *CreateItemRequest) ToModel(ownerID string) model.Item {
	return model.Item{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Description: c.Description,
		PricePerDay: c.PricePerDay,
		Available:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}
}

type UpdateItemRequest struct {
	CategoryID  string   `db:"category_id"   json:"category_id"   validate:"omitempty,uuid"`
	Name        string   `db:"name"          json:"name"          validate:"omitempty,max=100"`
	Description string   `db:"description"   json:"description"   validate:"omitempty,max=1000"`
	PricePerDay *float64 `db:"price_per_day" json:"price_per_day" validate:"omitempty,gt=0"`
	Available   *bool    `db:"available"     json:"available"     validate:"omitempty"`
}

type ItemResponse struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"owner_id"`
	OwnerName    string  `json:"owner_name"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PricePerDay  float64 `json:"price_per_day"`
	Available    bool    `json:"available"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.OwnerName = model.OwnerName
	r.CategoryID = model.CategoryID
	r.CategoryName = model.CategoryName
	r.Name = model.Name
	r.Description = model.Description
	r.PricePerDay = model.PricePerDay
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

// ItemSummary is the abbreviated shape embedded in rental responses.
type ItemSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"price_per_day"`
}

func (r *ItemSummary) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.PricePerDay = model.PricePerDay
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
