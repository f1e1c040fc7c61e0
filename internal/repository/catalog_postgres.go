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

type CatalogRepo struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (int64, error) {
	query := `
		INSERT INTO clinic_services (name, duration_minutes, price, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, $5, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.Name,
		dto.DurationMinutes,
		dto.Price,
		dto.Description,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}

	return id, nil
}

func (r *CatalogRepo) GetByID(ctx context.Context, id int64) (*domain.ClinicService, error) {
	query := `
		SELECT id, name, duration_minutes, price, description, is_active, created_at, updated_at
		FROM clinic_services
		WHERE id = $1
	`

	var service domain.ClinicService
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Description,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}

	return &service, nil
}

func (r *CatalogRepo) Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}
	if dto.DurationMinutes != nil {
		updateFields = append(updateFields, fmt.Sprintf("duration_minutes = $%d", argCount))
		args = append(args, *dto.DurationMinutes)
		argCount++
	}
	if dto.Price != nil {
		updateFields = append(updateFields, fmt.Sprintf("price = $%d", argCount))
		args = append(args, *dto.Price)
		argCount++
	}
	if dto.Description != nil {
		updateFields = append(updateFields, fmt.Sprintf("description = $%d", argCount))
		args = append(args, *dto.Description)
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
	query := fmt.Sprintf(`UPDATE clinic_services SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}

	return nil
}

func (r *CatalogRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE clinic_services SET is_active = false, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}
	return nil
}

func (r *CatalogRepo) List(ctx context.Context, filter domain.ClinicServiceFilter) ([]domain.ClinicService, int, error) {
	whereClause := ""
	if filter.OnlyActive {
		whereClause = " WHERE is_active = true"
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clinic_services`+whereClause).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета услуг: %w", err)
	}

	query := `
		SELECT id, name, duration_minutes, price, description, is_active, created_at, updated_at
		FROM clinic_services
	` + whereClause + " ORDER BY name"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	services := make([]domain.ClinicService, 0)
	for rows.Next() {
		var service domain.ClinicService
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
			&service.Description,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки услуги: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return services, total, nil
}
