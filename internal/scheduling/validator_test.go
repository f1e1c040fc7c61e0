package scheduling

import (
	"errors"
	"testing"
)

func testValidator(t *testing.T, appointments []Appointment) *BookingValidator {
	t.Helper()
	calendar, err := NewShiftCalendar(fullWeek(interval(9, 0, 17, 0), 1, 2, 3, 4, 5))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	return NewBookingValidator(calendar, NewConflictIndex(appointments))
}

func TestValidateAndBuild(t *testing.T) {
	today := mustDate(t, "2026-08-24")
	v := testValidator(t, nil)

	req := BookingRequest{
		StaffID:   7,
		PatientID: 42,
		ServiceID: 1,
		Date:      today.AddDays(1),
		Start:     tod(10, 0),
	}

	appt, err := v.ValidateAndBuild(req, Service{ID: 1, DurationMinutes: 30}, today)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if appt.Status != StatusPending {
		t.Fatalf("новая запись должна быть в статусе pending, получено %s", appt.Status)
	}
	if appt.Interval.End != tod(10, 30) {
		t.Fatalf("время окончания должно вычисляться из длительности услуги, получено %s", appt.Interval.End)
	}
	if appt.StaffID != 7 || appt.PatientID != 42 || appt.ServiceID != 1 {
		t.Fatalf("запись собрана с чужими идентификаторами: %+v", appt)
	}
}

// Сценарий D: запись на вчера отклоняется независимо от графика и слотов.
func TestValidateAndBuildDateInPast(t *testing.T) {
	today := mustDate(t, "2026-08-25")
	v := testValidator(t, nil)

	req := BookingRequest{StaffID: 7, PatientID: 42, ServiceID: 1, Date: today.AddDays(-1), Start: tod(10, 0)}
	_, err := v.ValidateAndBuild(req, Service{ID: 1, DurationMinutes: 30}, today)
	if !errors.Is(err, ErrDateOutOfRange) {
		t.Fatalf("ожидалась ErrDateOutOfRange, получено %v", err)
	}
}

// Границы диапазона: сегодня и сегодня+30 проходят, сегодня+31 отклоняется.
func TestValidateAndBuildDateBounds(t *testing.T) {
	// Понедельник, чтобы все три даты попали на будни.
	today := mustDate(t, "2026-08-03")
	service := Service{ID: 1, DurationMinutes: 30}

	cases := []struct {
		name    string
		date    DateStamp
		wantErr bool
	}{
		{"сегодня", today, false},
		{"сегодня плюс 30", today.AddDays(30), false},
		{"сегодня плюс 31", today.AddDays(31), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := testValidator(t, nil)
			req := BookingRequest{StaffID: 7, PatientID: 42, ServiceID: 1, Date: tc.date, Start: tod(10, 0)}
			_, err := v.ValidateAndBuild(req, service, today)

			if tc.wantErr && !errors.Is(err, ErrDateOutOfRange) {
				t.Fatalf("ожидалась ErrDateOutOfRange, получено %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
		})
	}
}

func TestValidateAndBuildOutsideShift(t *testing.T) {
	today := mustDate(t, "2026-08-24")
	v := testValidator(t, nil)

	// 16:45 плюс 30 минут выходит за конец смены 17:00.
	req := BookingRequest{StaffID: 7, PatientID: 42, ServiceID: 1, Date: today, Start: tod(16, 45)}
	_, err := v.ValidateAndBuild(req, Service{ID: 1, DurationMinutes: 30}, today)
	if !errors.Is(err, ErrOutsideShift) {
		t.Fatalf("ожидалась ErrOutsideShift, получено %v", err)
	}

	// Воскресенье неактивно.
	sunday := mustDate(t, "2026-08-30")
	req = BookingRequest{StaffID: 7, PatientID: 42, ServiceID: 1, Date: sunday, Start: tod(10, 0)}
	_, err = v.ValidateAndBuild(req, Service{ID: 1, DurationMinutes: 30}, today)
	if !errors.Is(err, ErrOutsideShift) {
		t.Fatalf("ожидалась ErrOutsideShift, получено %v", err)
	}
}

func TestValidateAndBuildSlotTaken(t *testing.T) {
	today := mustDate(t, "2026-08-24")
	v := testValidator(t, []Appointment{
		{ID: 1, StaffID: 7, Date: today, Interval: interval(10, 0, 10, 30), Status: StatusConfirmed},
	})

	req := BookingRequest{StaffID: 7, PatientID: 42, ServiceID: 1, Date: today, Start: tod(10, 15)}
	_, err := v.ValidateAndBuild(req, Service{ID: 1, DurationMinutes: 30}, today)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("ожидалась ErrSlotTaken, получено %v", err)
	}

	// Встык к занятой записи - можно.
	req.Start = tod(10, 30)
	if _, err := v.ValidateAndBuild(req, Service{ID: 1, DurationMinutes: 30}, today); err != nil {
		t.Fatalf("запись встык должна проходить, получено %v", err)
	}
}

func TestValidateAndBuildMidnightOverflow(t *testing.T) {
	today := mustDate(t, "2026-08-24")
	calendar, err := NewShiftCalendar(fullWeek(interval(20, 0, 23, 59), 1, 2, 3, 4, 5))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	v := NewBookingValidator(calendar, NewConflictIndex(nil))

	req := BookingRequest{StaffID: 7, PatientID: 42, ServiceID: 1, Date: today, Start: tod(23, 45)}
	_, err = v.ValidateAndBuild(req, Service{ID: 1, DurationMinutes: 30}, today)
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("ожидалась ErrInvalidInterval, получено %v", err)
	}
}

// Сценарий C: врач A не может изменить запись врача B.
func TestValidateTransitionForeignDoctor(t *testing.T) {
	appt := Appointment{ID: 5, StaffID: 2, PatientID: 42, Status: StatusPending}
	actor := Actor{Role: RoleDoctor, StaffID: 1}

	if err := ValidateTransition(appt, actor, StatusConfirmed); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("ожидалась ErrNotOwner, получено %v", err)
	}
}

func TestValidateTransitionOwnership(t *testing.T) {
	appt := Appointment{ID: 5, StaffID: 2, PatientID: 42, Status: StatusPending}

	cases := []struct {
		name  string
		actor Actor
		ok    bool
	}{
		{"назначенный врач", Actor{Role: RoleDoctor, StaffID: 2}, true},
		{"чужой врач", Actor{Role: RoleDoctor, StaffID: 3}, false},
		{"назначенный пациент", Actor{Role: RolePatient, PatientID: 42}, true},
		{"чужой пациент", Actor{Role: RolePatient, PatientID: 43}, false},
		{"администратор", Actor{Role: RoleAdmin}, true},
		{"медсестра", Actor{Role: RoleNurse}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(appt, tc.actor, StatusCancelled)
			if tc.ok && err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrNotOwner) {
				t.Fatalf("ожидалась ErrNotOwner, получено %v", err)
			}
		})
	}
}

func TestValidateTransitionStateMachine(t *testing.T) {
	actor := Actor{Role: RoleAdmin}

	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusWalkIn, StatusConfirmed, true},
		{StatusWalkIn, StatusCancelled, true},
		{StatusWalkIn, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tc := range cases {
		appt := Appointment{ID: 1, StaffID: 2, PatientID: 42, Status: tc.from}
		err := ValidateTransition(appt, actor, tc.to)

		if tc.ok && err != nil {
			t.Fatalf("переход %s -> %s должен быть разрешен: %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("переход %s -> %s должен быть запрещен, получено %v", tc.from, tc.to, err)
		}
	}
}
