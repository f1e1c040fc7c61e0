package domain

import (
	"time"
)

// Attachment - файл, прикрепленный сотрудником к записи на прием
// (заключение, направление, результаты анализов).
type Attachment struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointment_id"`
	FileName      string    `json:"file_name"`
	FileURL       string    `json:"file_url"`
	UploadedBy    int64     `json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
}
