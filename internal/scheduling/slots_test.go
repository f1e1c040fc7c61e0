package scheduling

import (
	"testing"
)

// Сценарий A: понедельник 09:00-12:00, услуга 30 минут, занятых записей нет.
// Ожидается 11 слотов с шагом 15 минут, последний 11:30.
func TestGenerateSlotsEmptyDay(t *testing.T) {
	calendar, err := NewShiftCalendar(fullWeek(interval(9, 0, 12, 0), 1))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	monday := mustDate(t, "2026-08-24")
	service := Service{ID: 1, Name: "Первичный прием", DurationMinutes: 30}

	gen := NewSlotGenerator(15)
	slots := gen.Generate(calendar, NewConflictIndex(nil), 7, monday, service)

	if len(slots) != 11 {
		t.Fatalf("ожидалось 11 слотов, получено %d: %v", len(slots), slots)
	}
	if slots[0] != tod(9, 0) {
		t.Fatalf("первый слот должен быть 09:00, получено %s", slots[0])
	}
	if slots[len(slots)-1] != tod(11, 30) {
		t.Fatalf("последний слот должен быть 11:30, получено %s", slots[len(slots)-1])
	}
}

// Сценарий B: занята запись 10:00-10:30. Слоты 09:45, 10:00 и 10:15 исключаются,
// 09:30 (заканчивается ровно в 10:00) и 10:30 остаются.
func TestGenerateSlotsWithBookedInterval(t *testing.T) {
	calendar, err := NewShiftCalendar(fullWeek(interval(9, 0, 12, 0), 1))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	monday := mustDate(t, "2026-08-24")
	service := Service{ID: 1, DurationMinutes: 30}
	idx := NewConflictIndex([]Appointment{
		{ID: 1, StaffID: 7, Date: monday, Interval: interval(10, 0, 10, 30), Status: StatusConfirmed},
	})

	slots := NewSlotGenerator(15).Generate(calendar, idx, 7, monday, service)

	present := make(map[TimeOfDay]bool, len(slots))
	for _, slot := range slots {
		present[slot] = true
	}

	for _, excluded := range []TimeOfDay{tod(9, 45), tod(10, 0), tod(10, 15)} {
		if present[excluded] {
			t.Fatalf("слот %s должен быть исключен", excluded)
		}
	}
	for _, expected := range []TimeOfDay{tod(9, 30), tod(10, 30)} {
		if !present[expected] {
			t.Fatalf("слот %s должен остаться доступным", expected)
		}
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	calendar, err := NewShiftCalendar(fullWeek(interval(9, 0, 17, 0), 1, 2, 3, 4, 5))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	tuesday := mustDate(t, "2026-08-25")
	service := Service{ID: 2, DurationMinutes: 45}
	idx := NewConflictIndex([]Appointment{
		{ID: 1, StaffID: 3, Date: tuesday, Interval: interval(11, 0, 11, 45), Status: StatusPending},
	})

	gen := NewSlotGenerator(15)
	first := gen.Generate(calendar, idx, 3, tuesday, service)
	second := gen.Generate(calendar, idx, 3, tuesday, service)

	if len(first) != len(second) {
		t.Fatalf("повторный вызов вернул другое количество слотов: %d и %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("слот %d отличается: %s и %s", i, first[i], second[i])
		}
	}
}

// Каждый сгенерированный слот целиком помещается в смену.
func TestGenerateSlotsContainedInShift(t *testing.T) {
	calendar, err := NewShiftCalendar(fullWeek(interval(9, 0, 12, 0), 1))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	monday := mustDate(t, "2026-08-24")
	service := Service{ID: 1, DurationMinutes: 50}

	slots := NewSlotGenerator(15).Generate(calendar, NewConflictIndex(nil), 7, monday, service)
	if len(slots) == 0 {
		t.Fatal("ожидались доступные слоты")
	}

	for _, slot := range slots {
		end, err := slot.AddMinutes(service.DurationMinutes)
		if err != nil {
			t.Fatalf("слот %s: %v", slot, err)
		}
		if !calendar.IsAvailable(monday, TimeInterval{Start: slot, End: end}) {
			t.Fatalf("слот %s выходит за пределы смены", slot)
		}
	}
}

func TestGenerateSlotsWindowShorterThanService(t *testing.T) {
	calendar, err := NewShiftCalendar(fullWeek(interval(9, 0, 9, 30), 1))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	monday := mustDate(t, "2026-08-24")
	service := Service{ID: 1, DurationMinutes: 60}

	slots := NewSlotGenerator(15).Generate(calendar, NewConflictIndex(nil), 7, monday, service)
	if len(slots) != 0 {
		t.Fatalf("ожидался пустой список, получено %v", slots)
	}
}

func TestGenerateSlotsInactiveDay(t *testing.T) {
	calendar := DefaultShiftCalendar()
	sunday := mustDate(t, "2026-08-23")
	service := Service{ID: 1, DurationMinutes: 30}

	slots := NewSlotGenerator(0).Generate(calendar, NewConflictIndex(nil), 7, sunday, service)
	if len(slots) != 0 {
		t.Fatalf("в неактивный день слотов быть не должно, получено %v", slots)
	}
}

// Слоты генерируются строго под запрошенную дату: та же неделя, другой день -
// другой результат.
func TestGenerateSlotsPerExactDate(t *testing.T) {
	entries := fullWeek(interval(9, 0, 12, 0), 1)
	entries[2] = WeeklyShift{DayOfWeek: 2, Window: interval(14, 0, 16, 0), IsActive: true}

	calendar, err := NewShiftCalendar(entries)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	service := Service{ID: 1, DurationMinutes: 30}
	gen := NewSlotGenerator(15)

	monday := gen.Generate(calendar, NewConflictIndex(nil), 7, mustDate(t, "2026-08-24"), service)
	tuesday := gen.Generate(calendar, NewConflictIndex(nil), 7, mustDate(t, "2026-08-25"), service)

	if monday[0] != tod(9, 0) {
		t.Fatalf("понедельник должен начинаться с 09:00, получено %s", monday[0])
	}
	if tuesday[0] != tod(14, 0) {
		t.Fatalf("вторник должен начинаться с 14:00, получено %s", tuesday[0])
	}
}
