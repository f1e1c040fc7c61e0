package scheduling

import (
	"errors"
	"testing"
)

func fullWeek(window TimeInterval, activeDays ...int) []WeeklyShift {
	active := make(map[int]bool)
	for _, day := range activeDays {
		active[day] = true
	}

	entries := make([]WeeklyShift, 0, DaysPerWeek)
	for day := 0; day < DaysPerWeek; day++ {
		entries = append(entries, WeeklyShift{
			DayOfWeek: day,
			Window:    window,
			IsActive:  active[day],
		})
	}
	return entries
}

func TestIsAvailableContainment(t *testing.T) {
	calendar, err := NewShiftCalendar(fullWeek(interval(9, 0, 12, 0), 1))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	monday := mustDate(t, "2026-08-24")
	sunday := mustDate(t, "2026-08-23")

	if !calendar.IsAvailable(monday, interval(9, 0, 9, 30)) {
		t.Fatal("интервал в начале смены должен быть доступен")
	}
	if !calendar.IsAvailable(monday, interval(11, 30, 12, 0)) {
		t.Fatal("интервал, заканчивающийся ровно в конце смены, должен быть доступен")
	}
	if calendar.IsAvailable(monday, interval(11, 45, 12, 15)) {
		t.Fatal("интервал за пределами смены должен быть недоступен")
	}
	if calendar.IsAvailable(monday, interval(8, 45, 9, 15)) {
		t.Fatal("интервал, начинающийся до смены, должен быть недоступен")
	}
	if calendar.IsAvailable(sunday, interval(9, 0, 9, 30)) {
		t.Fatal("неактивный день должен быть недоступен")
	}
}

func TestReplaceIncompleteWeek(t *testing.T) {
	calendar := DefaultShiftCalendar()

	// Сценарий E: пять дней вместо семи отклоняются, прежний график сохраняется.
	short := fullWeek(interval(8, 0, 14, 0), 1, 2, 3, 4, 5)[:5]
	err := calendar.Replace(short)
	if !errors.Is(err, ErrIncompleteSchedule) {
		t.Fatalf("ожидалась ErrIncompleteSchedule, получено %v", err)
	}

	monday := mustDate(t, "2026-08-24")
	if !calendar.IsAvailable(monday, interval(9, 0, 17, 0)) {
		t.Fatal("после отклоненной замены должен действовать прежний график")
	}
}

func TestReplaceDuplicateDay(t *testing.T) {
	calendar := DefaultShiftCalendar()

	entries := fullWeek(interval(9, 0, 17, 0), 1, 2, 3, 4, 5)
	entries[6].DayOfWeek = 0

	if err := calendar.Replace(entries); !errors.Is(err, ErrIncompleteSchedule) {
		t.Fatalf("ожидалась ErrIncompleteSchedule, получено %v", err)
	}
}

func TestReplaceInvertedWindow(t *testing.T) {
	calendar := DefaultShiftCalendar()

	entries := fullWeek(interval(9, 0, 17, 0), 1, 2, 3, 4, 5)
	entries[2].Window = interval(17, 0, 9, 0)

	if err := calendar.Replace(entries); !errors.Is(err, ErrIncompleteSchedule) {
		t.Fatalf("ожидалась ErrIncompleteSchedule, получено %v", err)
	}
}

func TestReplaceValidWeek(t *testing.T) {
	calendar := DefaultShiftCalendar()

	if err := calendar.Replace(fullWeek(interval(10, 0, 14, 0), 6)); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	saturday := mustDate(t, "2026-08-29")
	monday := mustDate(t, "2026-08-24")

	if !calendar.IsAvailable(saturday, interval(10, 0, 11, 0)) {
		t.Fatal("новый график должен действовать после замены")
	}
	if calendar.IsAvailable(monday, interval(10, 0, 11, 0)) {
		t.Fatal("прежний график не должен действовать после замены")
	}
}

func TestDefaultShiftCalendar(t *testing.T) {
	calendar := DefaultShiftCalendar()

	week := calendar.Week()
	if len(week) != DaysPerWeek {
		t.Fatalf("ожидалось %d дней, получено %d", DaysPerWeek, len(week))
	}

	// Будни 09:00-17:00 активны, выходные нет.
	for day := 1; day <= 5; day++ {
		if !week[day].IsActive {
			t.Fatalf("день %d должен быть активен", day)
		}
		if week[day].Window != interval(9, 0, 17, 0) {
			t.Fatalf("день %d: ожидалось окно 09:00-17:00, получено %v", day, week[day].Window)
		}
	}
	if week[0].IsActive || week[6].IsActive {
		t.Fatal("суббота и воскресенье должны быть неактивны")
	}
}
