package domain

import (
	"time"

	"medportal/internal/scheduling"
)

// Appointment - запись на прием. Время окончания всегда вычисляется из
// длительности услуги, а не принимается от клиента.
type Appointment struct {
	ID           int64                  `json:"id"`
	StaffID      int64                  `json:"staff_id"`
	PatientID    int64                  `json:"patient_id"`
	ServiceID    int64                  `json:"service_id"`
	Date         scheduling.DateStamp   `json:"date"`
	StartTime    scheduling.TimeOfDay   `json:"start_time"`
	EndTime      scheduling.TimeOfDay   `json:"end_time"`
	Status       scheduling.Status      `json:"status"`
	Notes        string                 `json:"notes,omitempty"`
	CancelReason string                 `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`

	PatientName string `json:"patient_name,omitempty"`
	StaffName   string `json:"staff_name,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
}

// Scheduling приводит запись к виду, который понимает планировщик.
func (a Appointment) Scheduling() scheduling.Appointment {
	return scheduling.Appointment{
		ID:        a.ID,
		StaffID:   a.StaffID,
		PatientID: a.PatientID,
		ServiceID: a.ServiceID,
		Date:      a.Date,
		Interval:  scheduling.TimeInterval{Start: a.StartTime, End: a.EndTime},
		Status:    a.Status,
	}
}

type CreateAppointmentDTO struct {
	StaffID   int64                `json:"staff_id" binding:"required"`
	ServiceID int64                `json:"service_id" binding:"required"`
	Date      scheduling.DateStamp `json:"date" binding:"required"`
	StartTime scheduling.TimeOfDay `json:"start_time" binding:"required"`
	Notes     string               `json:"notes"`
}

// CreateWalkInDTO - запись без предварительного бронирования, оформляется
// регистратурой на текущий день.
type CreateWalkInDTO struct {
	StaffID   int64                `json:"staff_id" binding:"required"`
	PatientID int64                `json:"patient_id" binding:"required"`
	ServiceID int64                `json:"service_id" binding:"required"`
	StartTime scheduling.TimeOfDay `json:"start_time" binding:"required"`
	Notes     string               `json:"notes"`
}

type ChangeStatusDTO struct {
	Status scheduling.Status `json:"status" binding:"required,oneof=pending confirmed cancelled completed walkin"`
	Reason string            `json:"reason"`
}

type AppointmentFilter struct {
	PatientID *int64                `json:"patient_id"`
	StaffID   *int64                `json:"staff_id"`
	Status    *scheduling.Status    `json:"status"`
	DateFrom  *scheduling.DateStamp `json:"date_from"`
	DateTo    *scheduling.DateStamp `json:"date_to"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}
