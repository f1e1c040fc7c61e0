package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medportal/internal/domain"
)

type AttachmentRepo struct {
	db *pgxpool.Pool
}

func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepo {
	return &AttachmentRepo{db: db}
}

func (r *AttachmentRepo) Create(ctx context.Context, attachment domain.Attachment) (int64, error) {
	query := `
		INSERT INTO attachments (appointment_id, file_name, file_url, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		attachment.AppointmentID,
		attachment.FileName,
		attachment.FileURL,
		attachment.UploadedBy,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка сохранения вложения: %w", err)
	}

	return id, nil
}

func (r *AttachmentRepo) GetByAppointmentID(ctx context.Context, appointmentID int64) ([]domain.Attachment, error) {
	query := `
		SELECT id, appointment_id, file_name, file_url, uploaded_by, created_at
		FROM attachments
		WHERE appointment_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	attachments := make([]domain.Attachment, 0)
	for rows.Next() {
		var a domain.Attachment
		err := rows.Scan(&a.ID, &a.AppointmentID, &a.FileName, &a.FileURL, &a.UploadedBy, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки вложения: %w", err)
		}
		attachments = append(attachments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return attachments, nil
}

func (r *AttachmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка удаления вложения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
