package studio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FitGrid-BookingService/pkg/psqlbuilder"
)

var studioColumns = []string{
	"id",
	"name",
	"capacity_per_slot",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со студиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория студий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую студию
func (r *Repository) Create(ctx context.Context, studio *domain.Studio) (*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("studios").
		Columns(
			"name",
			"capacity_per_slot",
			"open_time",
			"close_time",
		).
		Values(
			studio.Name,
			studio.CapacityPerSlot,
			studio.OpenTime,
			studio.CloseTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&studio.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	studio.CreatedAt = createdAt.Time
	studio.UpdatedAt = updatedAt.Time

	return studio, nil
}

// GetByID получает студию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(studioColumns...).
		From("studios").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var studio domain.Studio
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&studio.ID,
		&studio.Name,
		&studio.CapacityPerSlot,
		&studio.OpenTime,
		&studio.CloseTime,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStudioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan studio: %w", ErrScanRow, err)
	}

	studio.CreatedAt = createdAt.Time
	studio.UpdatedAt = updatedAt.Time

	return &studio, nil
}

// List получает все студии, отсортированные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(studioColumns...).
		From("studios").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	studios := make([]*domain.Studio, 0)

	for rows.Next() {
		var studio domain.Studio
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&studio.ID,
			&studio.Name,
			&studio.CapacityPerSlot,
			&studio.OpenTime,
			&studio.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		studio.CreatedAt = createdAt.Time
		studio.UpdatedAt = updatedAt.Time

		studios = append(studios, &studio)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return studios, nil
}
