package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"medportal/internal/domain"
	"medportal/internal/scheduling"
)

type ShiftRepo struct {
	db *pgxpool.Pool
}

func NewShiftRepository(db *pgxpool.Pool) *ShiftRepo {
	return &ShiftRepo{db: db}
}

func (r *ShiftRepo) GetByStaffID(ctx context.Context, staffID int64) ([]domain.ShiftEntry, error) {
	query := `
		SELECT staff_id, day_of_week,
		       TO_CHAR(start_time, 'HH24:MI:SS'),
		       TO_CHAR(end_time, 'HH24:MI:SS'),
		       is_active, updated_at
		FROM shift_schedules
		WHERE staff_id = $1
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ShiftEntry, 0, scheduling.DaysPerWeek)
	for rows.Next() {
		var entry domain.ShiftEntry
		var startStr, endStr string

		err := rows.Scan(&entry.StaffID, &entry.DayOfWeek, &startStr, &endStr, &entry.IsActive, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки смены: %w", err)
		}

		if entry.StartTime, err = scheduling.ParseTimeOfDay(startStr); err != nil {
			return nil, err
		}
		if entry.EndTime, err = scheduling.ParseTimeOfDay(endStr); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return entries, nil
}

// ReplaceWeek заменяет недельное расписание сотрудника целиком в одной
// транзакции: либо фиксируются все семь дней, либо остается старое.
func (r *ShiftRepo) ReplaceWeek(ctx context.Context, staffID int64, entries []domain.ShiftEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM shift_schedules WHERE staff_id = $1`, staffID); err != nil {
		return fmt.Errorf("ошибка удаления старого расписания: %w", err)
	}

	query := `
		INSERT INTO shift_schedules (staff_id, day_of_week, start_time, end_time, is_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	for _, entry := range entries {
		_, err := tx.Exec(ctx, query,
			staffID,
			entry.DayOfWeek,
			entry.StartTime.String(),
			entry.EndTime.String(),
			entry.IsActive,
			now,
		)
		if err != nil {
			return fmt.Errorf("ошибка вставки смены: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}
