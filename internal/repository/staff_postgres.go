package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medportal/internal/domain"
)

type StaffRepo struct {
	db *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) *StaffRepo {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) Create(ctx context.Context, dto domain.CreateStaffDTO) (int64, error) {
	query := `
		INSERT INTO staff (user_id, role, specialty, cabinet, about, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.UserID,
		dto.Role,
		dto.Specialty,
		dto.Cabinet,
		dto.About,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания карточки сотрудника: %w", err)
	}

	return id, nil
}

const staffSelect = `
	SELECT s.id, s.user_id, s.role, s.specialty, s.cabinet, s.about, s.is_active, s.created_at, s.updated_at,
	       u.first_name, u.last_name, u.phone
	FROM staff s
	JOIN users u ON s.user_id = u.id
`

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var staff domain.Staff
	err := row.Scan(
		&staff.ID,
		&staff.UserID,
		&staff.Role,
		&staff.Specialty,
		&staff.Cabinet,
		&staff.About,
		&staff.IsActive,
		&staff.CreatedAt,
		&staff.UpdatedAt,
		&staff.FirstName,
		&staff.LastName,
		&staff.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	staff, err := scanStaff(r.db.QueryRow(ctx, staffSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}
	return staff, nil
}

func (r *StaffRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error) {
	staff, err := scanStaff(r.db.QueryRow(ctx, staffSelect+` WHERE s.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}
	return staff, nil
}

func (r *StaffRepo) Update(ctx context.Context, id int64, dto domain.UpdateStaffDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Specialty != nil {
		updateFields = append(updateFields, fmt.Sprintf("specialty = $%d", argCount))
		args = append(args, *dto.Specialty)
		argCount++
	}
	if dto.Cabinet != nil {
		updateFields = append(updateFields, fmt.Sprintf("cabinet = $%d", argCount))
		args = append(args, *dto.Cabinet)
		argCount++
	}
	if dto.About != nil {
		updateFields = append(updateFields, fmt.Sprintf("about = $%d", argCount))
		args = append(args, *dto.About)
		argCount++
	}
	if dto.IsActive != nil {
		updateFields = append(updateFields, fmt.Sprintf("is_active = $%d", argCount))
		args = append(args, *dto.IsActive)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE staff SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления сотрудника: %w", err)
	}

	return nil
}

func (r *StaffRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE staff SET is_active = false, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления сотрудника: %w", err)
	}
	return nil
}

func (r *StaffRepo) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error) {
	conditions := []string{"s.is_active = true"}
	var args []interface{}
	argCount := 1

	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("s.role = $%d", argCount))
		args = append(args, *filter.Role)
		argCount++
	}
	if filter.Specialty != nil {
		conditions = append(conditions, fmt.Sprintf("s.specialty = $%d", argCount))
		args = append(args, *filter.Specialty)
		argCount++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM staff s` + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета сотрудников: %w", err)
	}

	query := staffSelect + whereClause + " ORDER BY s.id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	staffList := make([]domain.Staff, 0)
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки сотрудника: %w", err)
		}
		staffList = append(staffList, *staff)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return staffList, total, nil
}
