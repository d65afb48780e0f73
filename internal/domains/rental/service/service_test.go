package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lendr/config"
	kafkaMocks "lendr/infras/kafka/mocks"
	"lendr/infras/otel/mocks"
	itemMocks "lendr/internal/domains/item/mocks"
	itemModel "lendr/internal/domains/item/model"
	rentalMocks "lendr/internal/domains/rental/mocks"
	"lendr/internal/domains/rental/model"
	"lendr/internal/domains/rental/model/dto"
	"lendr/internal/domains/rental/service"
	userMocks "lendr/internal/domains/user/mocks"
	cacheMocks "lendr/shared/cache/mocks"
	"lendr/shared/constant"
	gDto "lendr/shared/dto"
	"lendr/shared/failure"
	gModel "lendr/shared/model"
	"lendr/shared/timezone"
)

const (
	renterID   = "renter-id-1"
	ownerID    = "owner-id-1"
	strangerID = "stranger-id-1"
	itemID     = "item-id-1"
	rentalID   = "rental-id-1"
)

type fixture struct {
	svc        service.Rental
	rentalRepo *rentalMocks.MockRental
	itemRepo   *itemMocks.MockItem
	userRepo   *userMocks.MockUser
	cache      *cacheMocks.MockRedisCache
	producer   *kafkaMocks.MockClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		rentalRepo: rentalMocks.NewMockRental(ctrl),
		itemRepo:   itemMocks.NewMockItem(ctrl),
		userRepo:   userMocks.NewMockUser(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		producer:   kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	mockOtel := mocks.NewOtel()

	f.svc = service.New(f.rentalRepo, f.itemRepo, f.userRepo, cfg, f.cache, f.producer, mockOtel)

	// Event publishing and cache invalidation run on background goroutines.
	f.producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userCtx(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func dateString(daysFromNow int) string {
	return timezone.Now().AddDate(0, 0, daysFromNow).Format(constant.DateOnlyFormat)
}

func availableItem() itemModel.Item {
	return itemModel.Item{
		ID:          itemID,
		OwnerID:     ownerID,
		Name:        "Cordless Drill",
		PricePerDay: 15,
		Available:   true,
	}
}

func storedRental(status string) model.Rental {
	return model.Rental{
		ID:        rentalID,
		ItemID:    itemID,
		RenterID:  renterID,
		OwnerID:   ownerID,
		StartDate: timezone.Now().AddDate(0, 0, 7),
		EndDate:   timezone.Now().AddDate(0, 0, 9),
		Status:    status,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}
}

func TestRentalService_Request(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRentalRequest
		setupMock func(f *fixture)
		wantKind  failure.Kind
	}{
		{
			name: "successful request",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(7),
				EndDate:   dateString(9),
			},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableItem(), nil)

				f.rentalRepo.EXPECT().
					InsertIfAvailable(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
		},
		{
			name: "start date equal to end date",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(7),
				EndDate:   dateString(7),
			},
			setupMock: func(f *fixture) {},
			wantKind:  failure.KindInvalidRange,
		},
		{
			name: "end date before start date",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(9),
				EndDate:   dateString(7),
			},
			setupMock: func(f *fixture) {},
			wantKind:  failure.KindInvalidRange,
		},
		{
			name: "malformed date",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: "not-a-date",
				EndDate:   dateString(7),
			},
			setupMock: func(f *fixture) {},
			wantKind:  failure.KindInvalidRange,
		},
		{
			name: "start date in the past",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(-1),
				EndDate:   dateString(7),
			},
			setupMock: func(f *fixture) {},
			wantKind:  failure.KindPastStartDate,
		},
		{
			name: "renter does not exist",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(7),
				EndDate:   dateString(9),
			},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantKind: failure.KindUserNotFound,
		},
		{
			name: "item does not exist",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(7),
				EndDate:   dateString(9),
			},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(itemModel.Item{}, nil)
			},
			wantKind: failure.KindItemNotFound,
		},
		{
			name: "item flagged unavailable",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(7),
				EndDate:   dateString(9),
			},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				unavailable := availableItem()
				unavailable.Available = false

				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unavailable, nil)
			},
			wantKind: failure.KindItemUnavailable,
		},
		{
			name: "renting own item",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(7),
				EndDate:   dateString(9),
			},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				ownItem := availableItem()
				ownItem.OwnerID = renterID

				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownItem, nil)
			},
			wantKind: failure.KindItemUnavailable,
		},
		{
			name: "window already booked",
			req: dto.CreateRentalRequest{
				ItemID:    itemID,
				StartDate: dateString(7),
				EndDate:   dateString(9),
			},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableItem(), nil)

				f.rentalRepo.EXPECT().
					InsertIfAvailable(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantKind: failure.KindBookingConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Request(userCtx(renterID, constant.RoleUser), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, renterID, res.RenterID)
			assert.Equal(t, ownerID, res.OwnerID)
		})
	}
}

func TestRentalService_Request_TotalPrice(t *testing.T) {
	f := newFixture(t)

	f.userRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	f.itemRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(availableItem(), nil)

	var captured model.Rental
	f.rentalRepo.EXPECT().
		InsertIfAvailable(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rental model.Rental) (bool, error) {
			captured = rental

			return true, nil
		})

	req := dto.CreateRentalRequest{
		ItemID:    itemID,
		StartDate: dateString(7),
		EndDate:   dateString(9),
	}

	_, err := f.svc.Request(userCtx(renterID, constant.RoleUser), req)

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	// Day 7 to day 9 at 15 per day: the return day is not charged.
	assert.Equal(t, float64(30), captured.TotalPrice)
}

func TestRentalService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		role      string
		setupMock func(f *fixture)
		wantKind  failure.Kind
	}{
		{
			name:  "renter cancels pending rental",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)

				f.rentalRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "renter cancels approved rental",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusApproved), nil)

				f.rentalRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "admin cancels on behalf of renter",
			actor: "admin-id-1",
			role:  constant.RoleAdmin,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)

				f.rentalRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "rental not found",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Rental{}, nil)
			},
			wantKind: failure.KindRentalNotFound,
		},
		{
			name:  "owner cancels pending rental",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)

				f.rentalRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "owner cancels approved rental",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusApproved), nil)

				f.rentalRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "stranger cannot cancel",
			actor: strangerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)
			},
			wantKind: failure.KindForbidden,
		},
		{
			name:  "cannot cancel completed rental",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusCompleted), nil)
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:  "cannot cancel rejected rental",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusRejected), nil)
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:  "cannot cancel twice",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusCancelled), nil)
			},
			wantKind: failure.KindInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Cancel(userCtx(tt.actor, tt.role), rentalID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusCancelled, res.Status)
		})
	}
}

func TestRentalService_Approve(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		role      string
		setupMock func(f *fixture)
		wantKind  failure.Kind
	}{
		{
			name:  "owner approves pending rental",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)

				f.rentalRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "renter cannot approve",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)
			},
			wantKind: failure.KindForbidden,
		},
		{
			name:  "cannot approve twice",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusApproved), nil)
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:  "cannot approve cancelled rental",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusCancelled), nil)
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:  "rental not found",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Rental{}, nil)
			},
			wantKind: failure.KindRentalNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Approve(userCtx(tt.actor, tt.role), rentalID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusApproved, res.Status)
		})
	}
}

func TestRentalService_Reject(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		role      string
		setupMock func(f *fixture)
		wantKind  failure.Kind
	}{
		{
			name:  "owner rejects pending rental",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)

				f.rentalRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:  "renter cannot reject",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)
			},
			wantKind: failure.KindForbidden,
		},
		{
			name:  "cannot reject approved rental",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusApproved), nil)
			},
			wantKind: failure.KindInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Reject(userCtx(tt.actor, tt.role), rentalID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusRejected, res.Status)
		})
	}
}

func TestRentalService_Get(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		role      string
		setupMock func(f *fixture)
		wantKind  failure.Kind
	}{
		{
			name:  "renter can view",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)
			},
		},
		{
			name:  "owner can view",
			actor: ownerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)
			},
		},
		{
			name:  "stranger cannot view",
			actor: strangerID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedRental(model.StatusPending), nil)
			},
			wantKind: failure.KindForbidden,
		},
		{
			name:  "rental not found",
			actor: renterID,
			role:  constant.RoleUser,
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.rentalRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Rental{}, nil)
			},
			wantKind: failure.KindRentalNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(userCtx(tt.actor, tt.role), rentalID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, rentalID, res.ID)
		})
	}
}

func TestRentalService_ListForUser(t *testing.T) {
	t.Run("returns rentals newest first", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		f.rentalRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		var captured gDto.QueryParams
		f.rentalRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Rental, error) {
				captured = params

				return []model.Rental{storedRental(model.StatusApproved), storedRental(model.StatusPending)}, nil
			})

		res, err := f.svc.ListForUser(userCtx(renterID, constant.RoleUser), renterID, gDto.QueryParams{Page: 1, Limit: 10})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.Rentals, 2)
		assert.Equal(t, model.FieldCreatedAt, captured.SortBy)
		assert.Equal(t, gDto.SortDirDesc, captured.SortDir)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.ListForUser(userCtx(renterID, constant.RoleUser), "missing-user", gDto.QueryParams{Page: 1, Limit: 10})

		assert.Error(t, err)
		assert.Equal(t, failure.KindUserNotFound, failure.GetKind(err))
	})
}

func TestRentalService_CompleteExpired(t *testing.T) {
	t.Run("completes expired approved rentals", func(t *testing.T) {
		f := newFixture(t)

		first := storedRental(model.StatusApproved)
		second := storedRental(model.StatusApproved)
		second.ID = "rental-id-2"

		f.rentalRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Rental{first, second}, nil)

		f.rentalRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		count, err := f.svc.CompleteExpired(context.Background())

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("continues past individual failures", func(t *testing.T) {
		f := newFixture(t)

		first := storedRental(model.StatusApproved)
		second := storedRental(model.StatusApproved)
		second.ID = "rental-id-2"

		f.rentalRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Rental{first, second}, nil)

		gomock.InOrder(
			f.rentalRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("update error")),
			f.rentalRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil),
		)

		count, err := f.svc.CompleteExpired(context.Background())

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("nothing to complete", func(t *testing.T) {
		f := newFixture(t)

		f.rentalRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Rental{}, nil)

		count, err := f.svc.CompleteExpired(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
