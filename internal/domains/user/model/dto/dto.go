package dto

import (
	"lendr/internal/domains/user/model"
	"lendr/shared"
	gDto "lendr/shared/dto"
)

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Level    string `json:"level"`
	FullName string `json:"full_name"`
	Active   bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

// UserSummary is the abbreviated shape embedded in rental and item responses.
type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (r *UserSummary) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
}

type UpdateUserRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
	Level    string `db:"level"     json:"level"     validate:"omitempty,oneof=user admin"`
	Active   *bool  `db:"active"    json:"active"    validate:"omitempty"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
