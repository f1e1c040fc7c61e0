package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medportal/internal/domain"
	"medportal/internal/scheduling"
)

const pgUniqueViolation = "23505"

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// Create перепроверяет конфликт внутри транзакции и полагается на частичный
// уникальный индекс (staff_id, date, start_time) по неотмененным записям:
// две конкурирующие брони одного слота не могут зафиксироваться обе.
func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	checkQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE staff_id = $1
		AND date = $2
		AND status IN ('pending', 'confirmed', 'walkin')
		AND start_time < $4::time
		AND $3::time < end_time
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery,
		appt.StaffID,
		appt.Date.String(),
		appt.StartTime.String(),
		appt.EndTime.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки доступности слота: %w", err)
	}

	if count > 0 {
		return 0, scheduling.ErrSlotTaken
	}

	query := `
		INSERT INTO appointments (staff_id, patient_id, service_id, date, start_time, end_time, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		appt.StaffID,
		appt.PatientID,
		appt.ServiceID,
		appt.Date.String(),
		appt.StartTime.String(),
		appt.EndTime.String(),
		appt.Status,
		appt.Notes,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, scheduling.ErrSlotTaken
		}
		return 0, fmt.Errorf("ошибка создания записи на прием: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

const appointmentSelect = `
	SELECT a.id, a.staff_id, a.patient_id, a.service_id,
	       TO_CHAR(a.date, 'YYYY-MM-DD'),
	       TO_CHAR(a.start_time, 'HH24:MI:SS'),
	       TO_CHAR(a.end_time, 'HH24:MI:SS'),
	       a.status, a.notes, a.cancel_reason, a.created_at, a.updated_at,
	       p.first_name || ' ' || p.last_name AS patient_name,
	       su.first_name || ' ' || su.last_name AS staff_name,
	       cs.name AS service_name
	FROM appointments a
	JOIN users p ON a.patient_id = p.id
	JOIN staff s ON a.staff_id = s.id
	JOIN users su ON s.user_id = su.id
	JOIN clinic_services cs ON a.service_id = cs.id
`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var dateStr, startStr, endStr string

	err := row.Scan(
		&appt.ID,
		&appt.StaffID,
		&appt.PatientID,
		&appt.ServiceID,
		&dateStr,
		&startStr,
		&endStr,
		&appt.Status,
		&appt.Notes,
		&appt.CancelReason,
		&appt.CreatedAt,
		&appt.UpdatedAt,
		&appt.PatientName,
		&appt.StaffName,
		&appt.ServiceName,
	)
	if err != nil {
		return nil, err
	}

	if appt.Date, err = scheduling.ParseDateStamp(dateStr); err != nil {
		return nil, err
	}
	if appt.StartTime, err = scheduling.ParseTimeOfDay(startStr); err != nil {
		return nil, err
	}
	if appt.EndTime, err = scheduling.ParseTimeOfDay(endStr); err != nil {
		return nil, err
	}

	return &appt, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := scanAppointment(r.db.QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи на прием: %w", err)
	}
	return appt, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status scheduling.Status, reason string) error {
	query := `
		UPDATE appointments
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4
	`

	_, err := r.db.Exec(ctx, query, status, reason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса записи: %w", err)
	}

	return nil
}

func buildAppointmentConditions(filter domain.AppointmentFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}
	if filter.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("a.staff_id = $%d", argCount))
		args = append(args, *filter.StaffID)
		argCount++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argCount))
		args = append(args, filter.DateFrom.String())
		argCount++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argCount))
		args = append(args, filter.DateTo.String())
		argCount++
	}

	return conditions, args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	conditions, args := buildAppointmentConditions(filter)

	query := appointmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.date DESC, a.start_time DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки записи: %w", err)
		}
		appointments = append(appointments, *appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	conditions, args := buildAppointmentConditions(filter)

	query := `SELECT COUNT(*) FROM appointments a`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	return count, nil
}

// ListByStaffAndDate отдает записи дня для построения индекса конфликтов.
func (r *AppointmentRepo) ListByStaffAndDate(ctx context.Context, staffID int64, date scheduling.DateStamp) ([]domain.Appointment, error) {
	query := appointmentSelect + ` WHERE a.staff_id = $1 AND a.date = $2 ORDER BY a.start_time`

	rows, err := r.db.Query(ctx, query, staffID, date.String())
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки записи: %w", err)
		}
		appointments = append(appointments, *appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return appointments, nil
}
