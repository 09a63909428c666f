package blackout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	"github.com/m04kA/SSC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SSC-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий окон блокировки записи
// Дата блокировки хранится как календарная DATE в поясе сервиса,
// проекция часового пояса здесь не нужна
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var selectColumns = []string{
	"id",
	"creator_id",
	"unit_id",
	"date",
	"daypart",
	"active",
	"reason",
	"created_at",
	"updated_at",
}

// Create создает новое окно блокировки
func (r *Repository) Create(ctx context.Context, window *domain.BlackoutWindow) (*domain.BlackoutWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_windows").
		Columns(
			"creator_id",
			"unit_id",
			"date",
			"daypart",
			"active",
			"reason",
		).
		Values(
			window.CreatorID,
			window.UnitID,
			window.Date.Format(domain.DateFormat),
			window.Daypart,
			window.Active,
			window.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByID получает окно блокировки по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlackoutWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("blackout_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	window, err := scanWindow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlackoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// List получает все окна блокировки, отсортированные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.BlackoutWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("blackout_windows").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// GetByUnit получает окна блокировки центра
func (r *Repository) GetByUnit(ctx context.Context, unitID int64) ([]*domain.BlackoutWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("blackout_windows").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnit - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnit - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// GetActiveByUnitAndDate получает активные окна блокировки центра
// на указанную локальную календарную дату (YYYY-MM-DD)
func (r *Repository) GetActiveByUnitAndDate(ctx context.Context, unitID int64, localDate string) ([]*domain.BlackoutWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("blackout_windows").
		Where(squirrel.Eq{
			"unit_id": unitID,
			"date":    localDate,
			"active":  true,
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUnitAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUnitAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// Update обновляет окно блокировки
func (r *Repository) Update(ctx context.Context, window *domain.BlackoutWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("blackout_windows").
		Set("unit_id", window.UnitID).
		Set("date", window.Date.Format(domain.DateFormat)).
		Set("daypart", window.Daypart).
		Set("active", window.Active).
		Set("reason", window.Reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": window.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.BlackoutWindow, error) {
	var window domain.BlackoutWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&window.ID,
		&window.CreatorID,
		&window.UnitID,
		&window.Date,
		&window.Daypart,
		&window.Active,
		&window.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}

func scanWindows(rows *sql.Rows) ([]*domain.BlackoutWindow, error) {
	windows := make([]*domain.BlackoutWindow, 0)

	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan window: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
