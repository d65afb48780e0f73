package dto

import (
	"lendr/internal/domains/rental/model"
	"lendr/shared"
	"lendr/shared/constant"
	gDto "lendr/shared/dto"
	gModel "lendr/shared/model"
	"lendr/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateRentalRequest struct {
	ItemID    string `json:"item_id"    validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
}

// ParseDates returns the request window as dates in the application timezone.
func (c *CreateRentalRequest) ParseDates() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateOnlyFormat, c.EndDate)

	return start, end, err
}

func (c *CreateRentalRequest) ToModel(renterID, ownerID string, start, end time.Time, pricePerDay float64) model.Rental {
	// The end date is the return day and is not charged, so day 10 to day 12
	// is two rental days.
	days := int(end.Sub(start).Hours() / 24)

	return model.Rental{
		ID:         uuid.NewString(),
		ItemID:     c.ItemID,
		RenterID:   renterID,
		OwnerID:    ownerID,
		StartDate:  start,
		EndDate:    end,
		Status:     model.StatusPending,
		TotalPrice: float64(days) * pricePerDay,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  renterID,
			ModifiedBy: renterID,
		},
	}
}

type UpdateRentalStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending approved rejected completed cancelled"`
}

type RentalResponse struct {
	ID         string  `json:"id"`
	ItemID     string  `json:"item_id"`
	ItemName   string  `json:"item_name"`
	RenterID   string  `json:"renter_id"`
	RenterName string  `json:"renter_name"`
	OwnerID    string  `json:"owner_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	gDto.Metadata
}

func (r *RentalResponse) FromModel(model model.Rental) {
	r.ID = model.ID
	r.ItemID = model.ItemID
	r.ItemName = model.ItemName
	r.RenterID = model.RenterID
	r.RenterName = model.RenterName
	r.OwnerID = model.OwnerID
	r.StartDate = timezone.Format(model.StartDate, constant.DateOnlyFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DateOnlyFormat)
	r.Status = model.Status
	r.TotalPrice = model.TotalPrice
	r.Metadata.FromModel(model.Metadata)
}

type GetRentalsResponse struct {
	Rentals   []RentalResponse `json:"rentals"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRentalsResponse) FromModels(models []model.Rental, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rentals = make([]RentalResponse, len(models))
	for i, mod := range models {
		r.Rentals[i].FromModel(mod)
	}
}

// RentalEvent is the payload published to the rental events topic on every
// status transition.
type RentalEvent struct {
	RentalID   string `json:"rental_id"`
	ItemID     string `json:"item_id"`
	RenterID   string `json:"renter_id"`
	OwnerID    string `json:"owner_id"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

func NewRentalEvent(rental model.Rental, status string) RentalEvent {
	return RentalEvent{
		RentalID:   rental.ID,
		ItemID:     rental.ItemID,
		RenterID:   rental.RenterID,
		OwnerID:    rental.OwnerID,
		Status:     status,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
