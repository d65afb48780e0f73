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
	userMocks "lendr/internal/domains/user/mocks"
	"lendr/internal/domains/user/model"
	"lendr/internal/domains/user/model/dto"
	"lendr/internal/domains/user/service"
	"lendr/shared/cache"
	cacheMocks "lendr/shared/cache/mocks"
	"lendr/shared/constant"
	"lendr/shared/failure"
)

type fixture struct {
	svc   service.User
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	// Cache invalidation runs on background goroutines.
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func actorCtx(email string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserEmail, email)
}

func storedUser() model.User {
	return model.User{
		ID:       "user-id-1",
		Email:    "renter@lendr.dev",
		Level:    constant.RoleUser,
		FullName: "Sample Renter",
		Active:   true,
	}
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedUser(), nil)

		res, err := f.svc.Get(context.Background(), "user-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "user-id-1", res.ID)
		assert.Equal(t, "renter@lendr.dev", res.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), "missing-user")

		assert.Error(t, err)
		assert.Equal(t, failure.KindUserNotFound, failure.GetKind(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, errors.New("connection refused"))

		_, err := f.svc.Get(context.Background(), "user-id-1")

		assert.Error(t, err)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Update(actorCtx("admin@lendr.dev"), dto.UpdateUserRequest{FullName: "Renamed Renter"}, "user-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("empty update request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(actorCtx("admin@lendr.dev"), dto.UpdateUserRequest{}, "user-id-1")

		assert.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Update(actorCtx("admin@lendr.dev"), dto.UpdateUserRequest{FullName: "Renamed Renter"}, "missing-user")

		assert.Error(t, err)
		assert.Equal(t, failure.KindUserNotFound, failure.GetKind(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Delete(context.Background(), "user-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing-user")

		assert.Error(t, err)
		assert.Equal(t, failure.KindUserNotFound, failure.GetKind(err))
	})
}
