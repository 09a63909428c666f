package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	"github.com/m04kA/SSC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SSC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий пользователей
// Пользователи читаются этим сервисом только на чтение: их созданием и изменением
// занимается внешний сервис аккаунтов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
// Если в контексте передана активная транзакция, использует её
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"role",
		"unit_id",
		"active",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Role,
		&user.UnitID,
		&user.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	return &user, nil
}

// GetStaffByUnit получает активных сотрудников центра
// Возвращает ErrNoStaffInUnit, если в центре нет ни одного сотрудника:
// такой центр не принимает записи, его вместимость не определена
func (r *Repository) GetStaffByUnit(ctx context.Context, unitID int64) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"role",
		"unit_id",
		"active",
	).
		From("users").
		Where(squirrel.Eq{
			"unit_id": unitID,
			"role":    domain.RoleStaff,
			"active":  true,
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByUnit - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByUnit - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Role, &user.UnitID, &user.Active); err != nil {
			return nil, fmt.Errorf("%w: GetStaffByUnit - scan user: %v", ErrScanRow, err)
		}
		staff = append(staff, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaffByUnit - rows error: %v", ErrScanRow, err)
	}

	if len(staff) == 0 {
		return nil, ErrNoStaffInUnit
	}

	return staff, nil
}
