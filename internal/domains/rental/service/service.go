package service

import (
	"context"
	"fmt"
	"lendr/config"
	"lendr/infras/kafka"
	"lendr/infras/otel"
	itemModel "lendr/internal/domains/item/model"
	itemRepo "lendr/internal/domains/item/repository"
	"lendr/internal/domains/rental/model"
	"lendr/internal/domains/rental/model/dto"
	"lendr/internal/domains/rental/repository"
	userModel "lendr/internal/domains/user/model"
	userRepo "lendr/internal/domains/user/repository"
	"lendr/shared"
	"lendr/shared/cache"
	"lendr/shared/constant"
	gDto "lendr/shared/dto"
	"lendr/shared/failure"
	"lendr/shared/timezone"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRental    = "rental:get"
	cacheGetAllRental = "rental:gets"
	cacheCountRental  = "rental:count"
)

type Rental interface {
	Request(ctx context.Context, req dto.CreateRentalRequest) (dto.RentalResponse, error)
	Cancel(ctx context.Context, id string) (dto.RentalResponse, error)
	Approve(ctx context.Context, id string) (dto.RentalResponse, error)
	Reject(ctx context.Context, id string) (dto.RentalResponse, error)
	Get(ctx context.Context, id string) (dto.RentalResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRentalsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	ListForUser(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetRentalsResponse, error)
	CompleteExpired(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo     repository.Rental
	itemRepo itemRepo.Item
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	producer kafka.Client
	otel     otel.Otel
}

func New(repo repository.Rental, itemRepo itemRepo.Item, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, producer kafka.Client, otel otel.Otel) Rental {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		producer: producer,
		otel:     otel,
	}
}

// Request validates the rental preconditions in a fixed order, then inserts
// the rental only when the requested window is still free. The availability
// check and the insert run atomically, so two overlapping requests on the
// same item can never both succeed.
func (s *serviceImpl) Request(ctx context.Context, req dto.CreateRentalRequest) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request")
	defer scope.End()
	defer scope.TraceIfError(err)

	renter, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end, err := req.ParseDates()
	if err != nil {
		return res, failure.Typed(http.StatusBadRequest, failure.KindInvalidRange, fmt.Sprintf("invalid date format: %v", err))
	}

	if !start.Before(end) {
		return res, failure.Typed(http.StatusBadRequest, failure.KindInvalidRange, "start date must be before end date")
	}

	if start.Before(startOfToday()) {
		return res, failure.Typed(http.StatusBadRequest, failure.KindPastStartDate, "start date must not be in the past")
	}

	renterExists, err := s.userRepo.Exist(ctx, shared.FilterByID(renter, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if renter exists")

		return res, fmt.Errorf("failed to check if renter exists: %w", err)
	}

	if !renterExists {
		return res, failure.Typed(http.StatusNotFound, failure.KindUserNotFound, "user not found")
	}

	item, err := s.itemRepo.Get(ctx, shared.FilterByID(req.ItemID, itemModel.FieldID, itemModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == "" {
		return res, failure.Typed(http.StatusNotFound, failure.KindItemNotFound, "item not found")
	}

	if !item.Available {
		return res, failure.Typed(http.StatusUnprocessableEntity, failure.KindItemUnavailable, "item is not available for rental")
	}

	if item.OwnerID == renter {
		return res, failure.Typed(http.StatusUnprocessableEntity, failure.KindItemUnavailable, "cannot rent your own item")
	}

	rental := req.ToModel(renter, item.OwnerID, start, end, item.PricePerDay)

	inserted, err := s.repo.InsertIfAvailable(ctx, rental)
	if err != nil {
		log.Error().Err(err).Msg("failed to create rental")

		return res, fmt.Errorf("failed to create rental: %w", err)
	}

	if !inserted {
		return res, failure.Typed(http.StatusConflict, failure.KindBookingConflict, "item is already booked for the requested dates")
	}

	s.publishEvent(ctx, rental, model.StatusPending)
	s.invalidate(ctx, rental.ID)

	res.FromModel(rental)

	return res, nil
}

// Cancel moves a pending or approved rental to cancelled. Either side of the
// rental may cancel: the renter backing out, or the item owner withdrawing an
// already-approved booking.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	rental, err := s.getForUpdate(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if rental.RenterID != user && rental.OwnerID != user && role != constant.RoleAdmin {
		return res, failure.Typed(http.StatusForbidden, failure.KindForbidden, "only the renter or the item owner can cancel this rental")
	}

	if rental.Status != model.StatusPending && rental.Status != model.StatusApproved {
		return res, failure.Typed(http.StatusUnprocessableEntity, failure.KindInvalidState,
			fmt.Sprintf("cannot cancel a rental in status %q", rental.Status))
	}

	return s.transition(ctx, rental, model.StatusCancelled)
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	rental, err := s.getForUpdate(ctx, id)
	if err != nil {
		return res, err
	}

	if err := s.authorizeOwner(ctx, rental); err != nil {
		return res, err
	}

	if rental.Status != model.StatusPending {
		return res, failure.Typed(http.StatusUnprocessableEntity, failure.KindInvalidState,
			fmt.Sprintf("cannot approve a rental in status %q", rental.Status))
	}

	return s.transition(ctx, rental, model.StatusApproved)
}

func (s *serviceImpl) Reject(ctx context.Context, id string) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	rental, err := s.getForUpdate(ctx, id)
	if err != nil {
		return res, err
	}

	if err := s.authorizeOwner(ctx, rental); err != nil {
		return res, err
	}

	if rental.Status != model.StatusPending {
		return res, failure.Typed(http.StatusUnprocessableEntity, failure.KindInvalidState,
			fmt.Sprintf("cannot reject a rental in status %q", rental.Status))
	}

	return s.transition(ctx, rental, model.StatusRejected)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRental, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rental")

		return s.authorizeView(ctx, res)
	}

	rental, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return res, fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == "" {
		return res, failure.Typed(http.StatusNotFound, failure.KindRentalNotFound, "rental not found")
	}

	res.FromModel(rental)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental to cache")
		}
	}()

	return s.authorizeView(ctx, res)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRentalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRental, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rentals")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rentals")

		return res, fmt.Errorf("failed to count rentals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rentals")

		return res, fmt.Errorf("failed to get rentals: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rentals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRental, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rental count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rentals")

		return res, fmt.Errorf("failed to count rentals: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental count to cache")
		}
	}()

	return res, nil
}

// ListForUser returns the rentals where the user is the renter, newest first.
func (s *serviceImpl) ListForUser(ctx context.Context, userID string, req gDto.QueryParams) (res dto.GetRentalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exists {
		return res, failure.Typed(http.StatusNotFound, failure.KindUserNotFound, "user not found")
	}

	req.SortBy = model.FieldCreatedAt
	req.SortDir = gDto.SortDirDesc

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRenterID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

// CompleteExpired moves approved rentals whose end date has passed to
// completed. Returns the number of rentals transitioned.
func (s *serviceImpl) CompleteExpired(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := startOfToday()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusApproved,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    today.AddDate(0, 0, -1),
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{Page: 1, Limit: constant.CompleterBatchSize, SortBy: model.FieldEndDate, SortDir: gDto.SortDirAsc}

	expired, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expired rentals")

		return 0, fmt.Errorf("failed to get expired rentals: %w", err)
	}

	for _, rental := range expired {
		if _, err := s.transition(ctx, rental, model.StatusCompleted); err != nil {
			log.Error().Err(err).Str("rental_id", rental.ID).Msg("failed to complete rental")

			continue
		}

		count++
	}

	return count, nil
}

func startOfToday() time.Time {
	now := timezone.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *serviceImpl) getForUpdate(ctx context.Context, id string) (model.Rental, error) {
	rental, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return rental, fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == "" {
		return rental, failure.Typed(http.StatusNotFound, failure.KindRentalNotFound, "rental not found")
	}

	return rental, nil
}

func (s *serviceImpl) authorizeOwner(ctx context.Context, rental model.Rental) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if rental.OwnerID != user && role != constant.RoleAdmin {
		return failure.Typed(http.StatusForbidden, failure.KindForbidden, "only the item owner can decide on this rental")
	}

	return nil
}

func (s *serviceImpl) authorizeView(ctx context.Context, res dto.RentalResponse) (dto.RentalResponse, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if res.RenterID != user && res.OwnerID != user && role != constant.RoleAdmin {
		return dto.RentalResponse{}, failure.Typed(http.StatusForbidden, failure.KindForbidden, "not a party to this rental")
	}

	return res, nil
}

// transition persists a status change, publishes the matching event, and
// returns the rental as updated. The caller is responsible for the state
// machine guards.
func (s *serviceImpl) transition(ctx context.Context, rental model.Rental, status string) (res dto.RentalResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	update := dto.UpdateRentalStatusRequest{Status: status}
	updatedFields := shared.TransformFields(update, user)

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(rental.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update rental status")

		return res, fmt.Errorf("failed to update rental status: %w", err)
	}

	rental.Status = status
	rental.ModifiedAt = timezone.Now()
	rental.ModifiedBy = user

	s.publishEvent(ctx, rental, status)
	s.invalidate(ctx, rental.ID)

	res.FromModel(rental)

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, rental model.Rental, status string) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.NewRentalEvent(rental, status)
		message := kafka.Message{Key: rental.ID, Value: event}

		if err := s.producer.SendMessages(c, constant.KafkaTopicRentalEvents, message); err != nil {
			log.Error().Err(err).Str("rental_id", rental.ID).Msg("failed to publish rental event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRental, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete rental from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRental)
		shared.InvalidateCaches(c, s.cache, cacheCountRental)
	}()
}
