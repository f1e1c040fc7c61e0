package domain

import (
	"time"
)

// ClinicService - услуга из справочника клиники. Длительность услуги
// определяет время окончания каждой записи на прием.
type ClinicService struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Description     string    `json:"description,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateClinicServiceDTO struct {
	Name            string  `json:"name" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=5,max=480"`
	Price           float64 `json:"price" binding:"min=0"`
	Description     string  `json:"description"`
}

type UpdateClinicServiceDTO struct {
	Name            *string  `json:"name"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	Description     *string  `json:"description"`
	IsActive        *bool    `json:"is_active"`
}

type ClinicServiceFilter struct {
	OnlyActive bool `json:"only_active"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}
