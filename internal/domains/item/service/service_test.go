package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lendr/config"
	"lendr/infras/otel/mocks"
	categoryMocks "lendr/internal/domains/category/mocks"
	itemMocks "lendr/internal/domains/item/mocks"
	"lendr/internal/domains/item/model"
	"lendr/internal/domains/item/model/dto"
	"lendr/internal/domains/item/service"
	rentalMocks "lendr/internal/domains/rental/mocks"
	cacheMocks "lendr/shared/cache/mocks"
	"lendr/shared/constant"
	"lendr/shared/failure"
)

type fixture struct {
	svc          service.Item
	repo         *itemMocks.MockItem
	categoryRepo *categoryMocks.MockCategory
	rentalRepo   *rentalMocks.MockRental
	cache        *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:         itemMocks.NewMockItem(ctrl),
		categoryRepo: categoryMocks.NewMockCategory(ctrl),
		rentalRepo:   rentalMocks.NewMockRental(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.categoryRepo, f.rentalRepo, cfg, f.cache, mocks.NewOtel())

	// Cache invalidation runs on background goroutines.
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userCtx(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func storedItem() model.Item {
	return model.Item{
		ID:          "item-id-1",
		OwnerID:     "owner-id-1",
		CategoryID:  "category-id-1",
		Name:        "Cordless Drill",
		PricePerDay: 15,
		Available:   true,
	}
}

func TestItemService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		f := newFixture(t)

		f.categoryRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		req := dto.CreateItemRequest{
			CategoryID:  "category-id-1",
			Name:        "Cordless Drill",
			PricePerDay: 15,
		}

		err := f.svc.Create(userCtx("owner-id-1", constant.RoleUser), req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newFixture(t)

		f.categoryRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		req := dto.CreateItemRequest{
			CategoryID:  "missing-category",
			Name:        "Cordless Drill",
			PricePerDay: 15,
		}

		err := f.svc.Create(userCtx("owner-id-1", constant.RoleUser), req)

		assert.Error(t, err)
	})
}

func TestItemService_Update(t *testing.T) {
	name := "Impact Driver"

	tests := []struct {
		name      string
		actor     string
		role      string
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name:  "owner updates own item",
			actor: "owner-id-1",
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedItem(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "admin updates any item",
			actor: "admin-id-1",
			role:  constant.RoleAdmin,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedItem(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "non-owner cannot update",
			actor: "stranger-id-1",
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedItem(), nil)
			},
			wantErr: true,
		},
		{
			name:  "item not found",
			actor: "owner-id-1",
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Item{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(userCtx(tt.actor, tt.role), dto.UpdateItemRequest{Name: name}, "item-id-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestItemService_Delete(t *testing.T) {
	t.Run("owner deletes idle item", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedItem(), nil)

		f.rentalRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Delete(userCtx("owner-id-1", constant.RoleUser), "item-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("delete blocked while rentals are active", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedItem(), nil)

		f.rentalRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := f.svc.Delete(userCtx("owner-id-1", constant.RoleUser), "item-id-1")

		assert.Error(t, err)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedItem(), nil)

		err := f.svc.Delete(userCtx("stranger-id-1", constant.RoleUser), "item-id-1")

		assert.Error(t, err)
	})

	t.Run("rental check error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedItem(), nil)

		f.rentalRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("db error"))

		err := f.svc.Delete(userCtx("owner-id-1", constant.RoleUser), "item-id-1")

		assert.Error(t, err)
	})
}

func TestItemService_Get(t *testing.T) {
	t.Run("item not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Item{}, nil)

		_, err := f.svc.Get(context.Background(), "missing-item")

		assert.Error(t, err)
		assert.Equal(t, failure.KindItemNotFound, failure.GetKind(err))
	})

	t.Run("returns item on cache miss", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedItem(), nil)

		res, err := f.svc.Get(context.Background(), "item-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "item-id-1", res.ID)
		assert.Equal(t, "Cordless Drill", res.Name)
	})
}
