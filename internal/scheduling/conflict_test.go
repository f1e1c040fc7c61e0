package scheduling

import (
	"testing"
)

func TestBookedIntervalsSorted(t *testing.T) {
	date := mustDate(t, "2026-08-24")
	appointments := []Appointment{
		{ID: 1, StaffID: 7, Date: date, Interval: interval(11, 0, 11, 30), Status: StatusConfirmed},
		{ID: 2, StaffID: 7, Date: date, Interval: interval(9, 0, 9, 30), Status: StatusPending},
		{ID: 3, StaffID: 7, Date: date, Interval: interval(10, 0, 10, 30), Status: StatusWalkIn},
	}

	idx := NewConflictIndex(appointments)

	booked := idx.BookedIntervals(7, date)
	if len(booked) != 3 {
		t.Fatalf("ожидалось 3 интервала, получено %d", len(booked))
	}
	for i := 1; i < len(booked); i++ {
		if !booked[i-1].Start.Before(booked[i].Start) {
			t.Fatalf("интервалы не отсортированы: %v", booked)
		}
	}
}

func TestCancelledAndCompletedDoNotBlock(t *testing.T) {
	date := mustDate(t, "2026-08-24")
	appointments := []Appointment{
		{ID: 1, StaffID: 7, Date: date, Interval: interval(9, 0, 9, 30), Status: StatusCancelled},
		{ID: 2, StaffID: 7, Date: date, Interval: interval(10, 0, 10, 30), Status: StatusCompleted},
	}

	idx := NewConflictIndex(appointments)

	if idx.HasConflict(7, date, interval(9, 0, 9, 30)) {
		t.Fatal("отмененная запись не должна блокировать слот")
	}
	if idx.HasConflict(7, date, interval(10, 0, 10, 30)) {
		t.Fatal("завершенная запись не должна блокировать слот")
	}
}

func TestHasConflictSeparatesStaffAndDates(t *testing.T) {
	date := mustDate(t, "2026-08-24")
	otherDate := mustDate(t, "2026-08-25")
	appointments := []Appointment{
		{ID: 1, StaffID: 7, Date: date, Interval: interval(9, 0, 9, 30), Status: StatusConfirmed},
	}

	idx := NewConflictIndex(appointments)

	if !idx.HasConflict(7, date, interval(9, 15, 9, 45)) {
		t.Fatal("пересечение с занятым интервалом должно быть конфликтом")
	}
	if idx.HasConflict(8, date, interval(9, 0, 9, 30)) {
		t.Fatal("записи другого сотрудника не должны конфликтовать")
	}
	if idx.HasConflict(7, otherDate, interval(9, 0, 9, 30)) {
		t.Fatal("записи другой даты не должны конфликтовать")
	}
}

// Проверка отсутствия двойного бронирования: результат HasConflict совпадает
// с прямым попарным сравнением интервалов.
func TestHasConflictConsistentWithDirectComparison(t *testing.T) {
	date := mustDate(t, "2026-08-24")
	appointments := []Appointment{
		{ID: 1, StaffID: 7, Date: date, Interval: interval(9, 0, 9, 30), Status: StatusConfirmed},
		{ID: 2, StaffID: 7, Date: date, Interval: interval(9, 30, 10, 0), Status: StatusPending},
		{ID: 3, StaffID: 7, Date: date, Interval: interval(12, 0, 13, 0), Status: StatusWalkIn},
		{ID: 4, StaffID: 7, Date: date, Interval: interval(15, 0, 15, 45), Status: StatusCancelled},
	}

	idx := NewConflictIndex(appointments)

	probes := []TimeInterval{
		interval(8, 0, 9, 0),
		interval(9, 0, 9, 15),
		interval(9, 15, 9, 45),
		interval(10, 0, 12, 0),
		interval(12, 30, 12, 45),
		interval(15, 0, 15, 30),
		interval(16, 0, 17, 0),
	}

	for _, probe := range probes {
		direct := false
		for _, appt := range appointments {
			if appt.Status.blocks() && probe.Overlaps(appt.Interval) {
				direct = true
				break
			}
		}

		if got := idx.HasConflict(7, date, probe); got != direct {
			t.Fatalf("интервал %v-%v: индекс дал %v, прямое сравнение %v", probe.Start, probe.End, got, direct)
		}
	}
}
