package service

import (
	"context"
	"fmt"
	"lendr/config"
	"lendr/infras/otel"
	rentalModel "lendr/internal/domains/rental/model"
	rentalRepo "lendr/internal/domains/rental/repository"
	"lendr/internal/domains/review/model"
	"lendr/internal/domains/review/model/dto"
	"lendr/internal/domains/review/repository"
	"lendr/shared"
	"lendr/shared/constant"
	gDto "lendr/shared/dto"
	"lendr/shared/failure"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) error
	GetAllForItem(ctx context.Context, itemID string, req gDto.QueryParams) (dto.GetReviewsResponse, error)
	Get(ctx context.Context, id string) (dto.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Review
	rentalRepo rentalRepo.Rental
	cfg        *config.Config
	otel       otel.Otel
}

func New(repo repository.Review, rentalRepo rentalRepo.Rental, cfg *config.Config, otel otel.Otel) Review {
	return &serviceImpl{
		repo:       repo,
		rentalRepo: rentalRepo,
		cfg:        cfg,
		otel:       otel,
	}
}

// Create accepts a review only from the renter of a completed rental, and at
// most one review per rental.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	rental, err := s.rentalRepo.Get(ctx, shared.FilterByID(req.RentalID, rentalModel.FieldID, rentalModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == "" {
		return failure.Typed(http.StatusNotFound, failure.KindRentalNotFound, "rental not found")
	}

	if rental.RenterID != user {
		return failure.Typed(http.StatusForbidden, failure.KindForbidden, "only the renter can review this rental")
	}

	if rental.Status != rentalModel.StatusCompleted {
		return failure.Typed(http.StatusUnprocessableEntity, failure.KindInvalidState, "only completed rentals can be reviewed")
	}

	rentalFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRentalID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.RentalID,
				Table:    model.TableName,
			},
		},
	}

	reviewed, err := s.repo.Exist(ctx, rentalFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if review exists")

		return fmt.Errorf("failed to check if review exists: %w", err)
	}

	if reviewed {
		return failure.Conflict("rental has already been reviewed")
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, rental.ItemID)); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAllForItem(ctx context.Context, itemID string, req gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllForItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    itemID,
				Table:    model.TableName,
			},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return res, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == "" {
		return res, failure.NotFound("review not found")
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == "" {
		return failure.NotFound("review not found")
	}

	if review.ReviewerID != user && role != constant.RoleAdmin {
		return failure.Forbidden("only the reviewer can delete this review")
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}
