package scheduling

import (
	"fmt"
)

// BookingHorizonDays - максимальный горизонт записи от текущего дня.
const BookingHorizonDays = 30

// BookingValidator проверяет запросы на бронирование и смену статуса.
// Компонент чистый: все входные данные передаются явно, включая текущую дату.
type BookingValidator struct {
	calendar  *ShiftCalendar
	conflicts *ConflictIndex
}

func NewBookingValidator(calendar *ShiftCalendar, conflicts *ConflictIndex) *BookingValidator {
	return &BookingValidator{
		calendar:  calendar,
		conflicts: conflicts,
	}
}

// ValidateAndBuild применяет правила в строгом порядке, останавливаясь на
// первом нарушении: диапазон даты, корректность интервала, рабочий график,
// отсутствие конфликтов. Время окончания всегда вычисляется из длительности
// услуги, переданное клиентом время окончания не используется.
func (v *BookingValidator) ValidateAndBuild(req BookingRequest, service Service, today DateStamp) (Appointment, error) {
	if req.Date.Before(today) || today.DaysUntil(req.Date) > BookingHorizonDays {
		return Appointment{}, fmt.Errorf("дата %s: %w", req.Date, ErrDateOutOfRange)
	}

	if service.DurationMinutes <= 0 {
		return Appointment{}, fmt.Errorf("длительность услуги %d мин: %w", service.DurationMinutes, ErrInvalidInterval)
	}

	end, err := req.Start.AddMinutes(service.DurationMinutes)
	if err != nil {
		return Appointment{}, fmt.Errorf("время %s плюс %d мин: %w", req.Start, service.DurationMinutes, ErrInvalidInterval)
	}

	interval := TimeInterval{Start: req.Start, End: end}
	if !interval.Valid() {
		return Appointment{}, fmt.Errorf("интервал %s-%s: %w", interval.Start, interval.End, ErrInvalidInterval)
	}

	if !v.calendar.IsAvailable(req.Date, interval) {
		return Appointment{}, fmt.Errorf("интервал %s-%s на %s: %w", interval.Start, interval.End, req.Date, ErrOutsideShift)
	}

	if v.conflicts.HasConflict(req.StaffID, req.Date, interval) {
		return Appointment{}, fmt.Errorf("интервал %s-%s на %s: %w", interval.Start, interval.End, req.Date, ErrSlotTaken)
	}

	return Appointment{
		StaffID:   req.StaffID,
		PatientID: req.PatientID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Interval:  interval,
		Status:    StatusPending,
	}, nil
}

// ValidateTransition проверяет право инициатора на изменение записи и
// допустимость перехода статуса. Врач меняет только собственные записи,
// пациент - только свои; администратору и медсестре доступны любые.
func ValidateTransition(appt Appointment, actor Actor, newStatus Status) error {
	if !isOwner(appt, actor) {
		return fmt.Errorf("запись %d: %w", appt.ID, ErrNotOwner)
	}

	if !CanTransition(appt.Status, newStatus) {
		return fmt.Errorf("переход %s -> %s: %w", appt.Status, newStatus, ErrIllegalTransition)
	}

	return nil
}

func isOwner(appt Appointment, actor Actor) bool {
	switch actor.Role {
	case RoleAdmin, RoleNurse:
		return true
	case RoleDoctor:
		return actor.StaffID == appt.StaffID
	case RolePatient:
		return actor.PatientID == appt.PatientID
	default:
		return false
	}
}
