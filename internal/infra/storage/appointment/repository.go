package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	"github.com/m04kA/SSC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SSC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями на прием
//
// ScheduledAt хранится в UTC; все предикаты по локальной дате и часу проецируют
// его в часовой пояс сервиса прямо в SQL через AT TIME ZONE, чтобы сравнение
// шло по гражданскому времени, а не по сырым моментам
type Repository struct {
	db       DBExecutor
	loc      *time.Location
	timezone string
}

// NewRepository создает новый экземпляр репозитория записей
// loc — фиксированный гражданский пояс сервиса, его IANA имя уходит в AT TIME ZONE
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc, timezone: loc.String()}
}

var selectColumns = []string{
	"id",
	"user_id",
	"creator_id",
	"unit_id",
	"scheduled_at",
	"duration_minutes",
	"status",
	"description",
	"phone",
	"tax_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новую запись на прием
// Если в контексте передана активная транзакция (DoSerializable), использует её —
// вставка обязана происходить в той же транзакции, что и проверки конфликтов
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"creator_id",
			"unit_id",
			"scheduled_at",
			"duration_minutes",
			"status",
			"description",
			"phone",
			"tax_id",
		).
		Values(
			appt.UserID,
			appt.CreatorID,
			appt.UnitID,
			appt.ScheduledAt,
			appt.DurationMinutes,
			appt.Status,
			appt.Description,
			appt.Phone,
			appt.TaxID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// List получает все записи, отсортированные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("appointments").
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

	return scanAppointments(rows)
}

// GetByUserID получает записи пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("scheduled_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByUnit получает записи центра
// Опционально фильтрует по статусу
func (r *Repository) GetByUnit(ctx context.Context, unitID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("appointments").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("scheduled_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnit - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnit - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update обновляет изменяемые поля записи
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("unit_id", appt.UnitID).
		Set("scheduled_at", appt.ScheduledAt).
		Set("duration_minutes", appt.DurationMinutes).
		Set("status", appt.Status).
		Set("description", appt.Description).
		Set("phone", appt.Phone).
		Set("tax_id", appt.TaxID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
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
		return ErrAppointmentNotFound
	}

	return nil
}

// HasPendingOnLocalDate проверяет, есть ли у пользователя pending запись
// на указанную ЛОКАЛЬНУЮ календарную дату
// excludeID исключает из проверки саму перемещаемую запись при обновлении
func (r *Repository) HasPendingOnLocalDate(ctx context.Context, userID uuid.UUID, localDate string, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{
			"user_id": userID,
			"status":  domain.StatusPending,
		}).
		Where(squirrel.Expr("DATE(scheduled_at AT TIME ZONE ?) = ?", r.timezone, localDate)).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasPendingOnLocalDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasPendingOnLocalDate - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// CountPendingBySlot считает pending записи центра, чей канонический слот
// (локальная дата + локальное время HH:MI) совпадает с переданным моментом
// Слоты уже прижаты к 08:00/13:00, поэтому достаточно точного равенства
func (r *Repository) CountPendingBySlot(ctx context.Context, unitID int64, slot time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	local := slot.In(r.loc)
	localDate := local.Format(domain.DateFormat)
	localTime := local.Format(domain.TimeFormat)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{
			"unit_id": unitID,
			"status":  domain.StatusPending,
		}).
		Where(squirrel.Expr("DATE(scheduled_at AT TIME ZONE ?) = ?", r.timezone, localDate)).
		Where(squirrel.Expr("to_char(scheduled_at AT TIME ZONE ?, 'HH24:MI') = ?", r.timezone, localTime)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountPendingBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPendingBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Cancel логически отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// CancelAllPendingForUser массово отменяет все pending записи пользователя
// Вызывается при деактивации пользователя. Возвращает число отмененных записей
func (r *Repository) CancelAllPendingForUser(ctx context.Context, userID uuid.UUID, reason string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"user_id": userID,
			"status":  domain.StatusPending,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelAllPendingForUser - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelAllPendingForUser - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelAllPendingForUser - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CancelPendingInWindow отменяет pending записи центра, чей локальный час
// попадает в [startHour, endHour] на указанную локальную дату (обе границы включительно)
// Используется согласованием блокировок. Возвращает число отмененных записей
func (r *Repository) CancelPendingInWindow(ctx context.Context, unitID int64, localDate string, startHour, endHour int, reason string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"unit_id": unitID,
			"status":  domain.StatusPending,
		}).
		Where(squirrel.Expr("DATE(scheduled_at AT TIME ZONE ?) = ?", r.timezone, localDate)).
		Where(squirrel.Expr("EXTRACT(HOUR FROM scheduled_at AT TIME ZONE ?) >= ?", r.timezone, startHour)).
		Where(squirrel.Expr("EXTRACT(HOUR FROM scheduled_at AT TIME ZONE ?) <= ?", r.timezone, endHour)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingInWindow - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingInWindow - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingInWindow - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete физически удаляет запись
// Доступно только super_admin, по умолчанию используется логическая отмена
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// DeleteAllForUser физически удаляет все записи пользователя
func (r *Repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAllForUser - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAllForUser - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAllForUser - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var creatorID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&creatorID,
		&appt.UnitID,
		&appt.ScheduledAt,
		&appt.DurationMinutes,
		&appt.Status,
		&appt.Description,
		&appt.Phone,
		&appt.TaxID,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if creatorID.Valid {
		appt.CreatorID = &creatorID.UUID
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
	appt.ScheduledAt = appt.ScheduledAt.UTC()

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
