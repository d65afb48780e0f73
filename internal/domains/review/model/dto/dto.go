package dto

import (
	"lendr/internal/domains/review/model"
	"lendr/shared"
	gDto "lendr/shared/dto"
	gModel "lendr/shared/model"
	"lendr/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	RentalID string `json:"rental_id" validate:"required,uuid"`
	Rating   int    `json:"rating"    validate:"required,min=1,max=5"`
	Comment  string `json:"comment"   validate:"omitempty,max=1000"`
}

func (c *CreateReviewRequest) ToModel(reviewerID, itemID string) model.Review {
	return model.Review{
		ID:         uuid.NewString(),
		RentalID:   c.RentalID,
		ItemID:     itemID,
		ReviewerID: reviewerID,
		Rating:     c.Rating,
		Comment:    c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  reviewerID,
			ModifiedBy: reviewerID,
		},
	}
}

type ReviewResponse struct {
	ID           string `json:"id"`
	RentalID     string `json:"rental_id"`
	ItemID       string `json:"item_id"`
	ReviewerID   string `json:"reviewer_id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.RentalID = model.RentalID
	r.ItemID = model.ItemID
	r.ReviewerID = model.ReviewerID
	r.ReviewerName = model.ReviewerName
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
