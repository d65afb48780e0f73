package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lendr/infras/otel"
	"lendr/infras/postgres"
	"lendr/internal/domains/rental/model"
	"lendr/shared/constant"
	gDto "lendr/shared/dto"
	"lendr/shared/logger"
	gRepo "lendr/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Rental interface {
	Insert(ctx context.Context, model model.Rental) error
	InsertIfAvailable(ctx context.Context, model model.Rental) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Rental, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rental, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Rental]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Rental {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rental](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertIfAvailable atomically checks the requested window against rentals
// that still hold the item and inserts only when no overlap exists. The
// advisory lock serializes concurrent requests on the same item, so two
// overlapping requests can never both pass the check. Returns false when the
// window is already taken.
func (repo *repositoryImpl) InsertIfAvailable(ctx context.Context, mod model.Rental) (inserted bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".rental.InsertIfAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", mod.ItemID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to acquire item lock (%s): %w", model.EntityName, err)
		}

		// Mirrors model.Rental.ConflictsWith: boundaries are inclusive, a
		// rental ending on the requested start date still blocks the window.
		var overlaps int
		query := `SELECT COUNT(id) FROM rentals
			WHERE item_id = $1
			AND status IN ($2, $3)
			AND start_date <= $4
			AND end_date >= $5`
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		err := tx.GetContext(ctx, &overlaps, query,
			mod.ItemID, model.StatusPending, model.StatusApproved, mod.EndDate, mod.StartDate)
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to count overlapping rentals (%s): %w", model.EntityName, err)
		}

		if overlaps > 0 {
			return nil
		}

		if err := repo.InsertTx(ctx, tx, mod); err != nil {
			return err //nolint:wrapcheck
		}

		inserted = true

		return nil
	})
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return inserted, nil
}
