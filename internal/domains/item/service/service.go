package service

import (
	"context"
	"fmt"
	"lendr/config"
	"lendr/infras/otel"
	categoryModel "lendr/internal/domains/category/model"
	categoryRepo "lendr/internal/domains/category/repository"
	"lendr/internal/domains/item/model"
	"lendr/internal/domains/item/model/dto"
	"lendr/internal/domains/item/repository"
	rentalModel "lendr/internal/domains/rental/model"
	rentalRepo "lendr/internal/domains/rental/repository"
	"lendr/shared"
	"lendr/shared/cache"
	"lendr/shared/constant"
	gDto "lendr/shared/dto"
	"lendr/shared/failure"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetItem    = "item:get"
	cacheGetAllItem = "item:gets"
	cacheCountItem  = "item:count"
)

type Item interface {
	Create(ctx context.Context, req dto.CreateItemRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ItemResponse, error)
	Update(ctx context.Context, req dto.UpdateItemRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Item
	categoryRepo categoryRepo.Category
	rentalRepo   rentalRepo.Rental
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Item, categoryRepo categoryRepo.Category, rentalRepo rentalRepo.Rental, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Item {
	return &serviceImpl{
		repo:         repo,
		categoryRepo: categoryRepo,
		rentalRepo:   rentalRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	categoryExists, err := s.categoryRepo.Exist(ctx, shared.FilterByID(req.CategoryID, categoryModel.FieldID, categoryModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if category exists")

		return fmt.Errorf("failed to check if category exists: %w", err)
	}

	if !categoryExists {
		return failure.NotFound("category not found")
	}

	if err = s.repo.Insert(ctx, req.ToModel(owner)); err != nil {
		log.Error().Err(err).Msg("failed to create item")

		return fmt.Errorf("failed to create item: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllItem)
		shared.InvalidateCaches(c, s.cache, cacheCountItem)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllItem, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for items")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count items")

		return res, fmt.Errorf("failed to count items: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items")

		return res, fmt.Errorf("failed to get items: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save items to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountItem, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for item count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count items")

		return res, fmt.Errorf("failed to count items: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save item count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for item")

		return res, nil
	}

	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == "" {
		return res, failure.Typed(http.StatusNotFound, failure.KindItemNotFound, "item not found")
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateItemRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	item, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == "" {
		return failure.Typed(http.StatusNotFound, failure.KindItemNotFound, "item not found")
	}

	if err := s.authorizeOwner(ctx, item); err != nil {
		return err
	}

	if req.CategoryID != "" {
		categoryExists, err := s.categoryRepo.Exist(ctx, shared.FilterByID(req.CategoryID, categoryModel.FieldID, categoryModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if category exists")

			return fmt.Errorf("failed to check if category exists: %w", err)
		}

		if !categoryExists {
			return failure.NotFound("category not found")
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update item")

		return fmt.Errorf("failed to update item: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetItem, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete item from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllItem)
		shared.InvalidateCaches(c, s.cache, cacheCountItem)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == "" {
		return failure.Typed(http.StatusNotFound, failure.KindItemNotFound, "item not found")
	}

	if err := s.authorizeOwner(ctx, item); err != nil {
		return err
	}

	activeFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    rentalModel.FieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    rentalModel.TableName,
			},
			gDto.Filter{
				Field:    rentalModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    rentalModel.ActiveStatuses,
				Table:    rentalModel.TableName,
			},
		},
	}

	hasActiveRentals, err := s.rentalRepo.Exist(ctx, activeFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check active rentals")

		return fmt.Errorf("failed to check active rentals: %w", err)
	}

	if hasActiveRentals {
		return failure.Conflict("item has pending or approved rentals")
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete item")

		return fmt.Errorf("failed to delete item: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetItem, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete item from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllItem)
		shared.InvalidateCaches(c, s.cache, cacheCountItem)
	}()

	return nil
}

func (s *serviceImpl) authorizeOwner(ctx context.Context, item model.Item) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if item.OwnerID != user && role != constant.RoleAdmin {
		return failure.Forbidden("only the item owner can modify this item")
	}

	return nil
}
