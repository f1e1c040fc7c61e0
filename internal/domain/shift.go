package domain

import (
	"time"

	"medportal/internal/scheduling"
)

// ShiftEntry - одна строка недельного графика сотрудника в хранилище.
type ShiftEntry struct {
	StaffID   int64                `json:"staff_id"`
	DayOfWeek int                  `json:"day_of_week"`
	StartTime scheduling.TimeOfDay `json:"start_time"`
	EndTime   scheduling.TimeOfDay `json:"end_time"`
	IsActive  bool                 `json:"is_active"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ReplaceShiftWeekDTO - полная замена графика: ровно семь дней, частичное
// обновление не поддерживается.
type ReplaceShiftWeekDTO struct {
	Week []ShiftEntryDTO `json:"week" binding:"required,len=7,dive"`
}

type ShiftEntryDTO struct {
	DayOfWeek int                  `json:"day_of_week" binding:"min=0,max=6"`
	StartTime scheduling.TimeOfDay `json:"start_time" binding:"required"`
	EndTime   scheduling.TimeOfDay `json:"end_time" binding:"required"`
	IsActive  bool                 `json:"is_active"`
}

// WeeklyShifts переводит строки хранилища в недельный график планировщика.
func WeeklyShifts(entries []ShiftEntry) []scheduling.WeeklyShift {
	shifts := make([]scheduling.WeeklyShift, 0, len(entries))
	for _, entry := range entries {
		shifts = append(shifts, scheduling.WeeklyShift{
			DayOfWeek: entry.DayOfWeek,
			Window: scheduling.TimeInterval{
				Start: entry.StartTime,
				End:   entry.EndTime,
			},
			IsActive: entry.IsActive,
		})
	}
	return shifts
}
