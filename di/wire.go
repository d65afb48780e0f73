//go:build wireinject
// +build wireinject

package di

import (
	"lendr/config"
	"lendr/infras/jwt"
	"lendr/infras/kafka"
	"lendr/infras/otel"
	"lendr/infras/postgres"
	"lendr/infras/redis"
	"lendr/permissions"
	"lendr/shared/cache"
	"lendr/transport/http"
	"lendr/transport/http/middleware"
	"lendr/transport/http/router"

	authHandler "lendr/internal/handlers/auth"
	categoryHandler "lendr/internal/handlers/category"
	healthHandler "lendr/internal/handlers/health"
	itemHandler "lendr/internal/handlers/item"
	rentalHandler "lendr/internal/handlers/rental"
	reviewHandler "lendr/internal/handlers/review"
	userHandler "lendr/internal/handlers/user"

	authService "lendr/internal/domains/auth/service"
	categoryRepository "lendr/internal/domains/category/repository"
	categoryService "lendr/internal/domains/category/service"
	itemRepository "lendr/internal/domains/item/repository"
	itemService "lendr/internal/domains/item/service"
	rentalRepository "lendr/internal/domains/rental/repository"
	rentalService "lendr/internal/domains/rental/service"
	reviewRepository "lendr/internal/domains/review/repository"
	reviewService "lendr/internal/domains/review/service"
	userRepository "lendr/internal/domains/user/repository"
	userService "lendr/internal/domains/user/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var categoryDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
)

var itemDomain = wire.NewSet(
	itemRepository.New,
	itemService.New,
)

var rentalDomain = wire.NewSet(
	rentalRepository.New,
	rentalService.New,
	rentalService.NewCompleter,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	categoryDomain,
	itemDomain,
	rentalDomain,
	reviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	categoryHandler.New,
	itemHandler.New,
	rentalHandler.New,
	reviewHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
