package scheduling

import (
	"fmt"
)

const DaysPerWeek = 7

// WeeklyShift - рабочее окно сотрудника для одного дня недели.
type WeeklyShift struct {
	DayOfWeek int          `json:"day_of_week"`
	Window    TimeInterval `json:"window"`
	IsActive  bool         `json:"is_active"`
}

// ShiftCalendar - недельный график сотрудника, не более одной смены на день.
// Заменяется только целиком, частичное обновление не поддерживается.
type ShiftCalendar struct {
	week map[int]WeeklyShift
}

func NewShiftCalendar(entries []WeeklyShift) (*ShiftCalendar, error) {
	week, err := validateWeek(entries)
	if err != nil {
		return nil, err
	}
	return &ShiftCalendar{week: week}, nil
}

// DefaultShiftCalendar - график по умолчанию для сотрудников без настроенного
// расписания: 09:00-17:00 по будням, суббота и воскресенье неактивны.
// Иначе новый сотрудник был бы молча недоступен для записи.
func DefaultShiftCalendar() *ShiftCalendar {
	window := TimeInterval{
		Start: TimeOfDay{Hour: 9},
		End:   TimeOfDay{Hour: 17},
	}

	week := make(map[int]WeeklyShift, DaysPerWeek)
	for day := 0; day < DaysPerWeek; day++ {
		active := day >= 1 && day <= 5
		week[day] = WeeklyShift{DayOfWeek: day, Window: window, IsActive: active}
	}

	return &ShiftCalendar{week: week}
}

func validateWeek(entries []WeeklyShift) (map[int]WeeklyShift, error) {
	week := make(map[int]WeeklyShift, DaysPerWeek)

	for _, entry := range entries {
		if entry.DayOfWeek < 0 || entry.DayOfWeek >= DaysPerWeek {
			return nil, fmt.Errorf("день недели %d вне диапазона 0-6: %w", entry.DayOfWeek, ErrIncompleteSchedule)
		}
		if _, ok := week[entry.DayOfWeek]; ok {
			return nil, fmt.Errorf("день недели %d указан дважды: %w", entry.DayOfWeek, ErrIncompleteSchedule)
		}
		if !entry.Window.Valid() {
			return nil, fmt.Errorf("перевернутое окно смены в дне %d: %w", entry.DayOfWeek, ErrIncompleteSchedule)
		}
		week[entry.DayOfWeek] = entry
	}

	if len(week) < DaysPerWeek {
		return nil, fmt.Errorf("указано дней: %d, требуется %d: %w", len(week), DaysPerWeek, ErrIncompleteSchedule)
	}

	return week, nil
}

// Replace атомарно заменяет все семь дней: при любой ошибке валидации
// прежний график остается без изменений.
func (c *ShiftCalendar) Replace(entries []WeeklyShift) error {
	week, err := validateWeek(entries)
	if err != nil {
		return err
	}

	c.week = week
	return nil
}

// ShiftFor возвращает смену для дня недели даты и признак ее активности.
func (c *ShiftCalendar) ShiftFor(date DateStamp) (WeeklyShift, bool) {
	shift, ok := c.week[date.DayOfWeek()]
	if !ok || !shift.IsActive {
		return WeeklyShift{}, false
	}
	return shift, true
}

// IsAvailable - true, если интервал целиком помещается в активную смену дня.
func (c *ShiftCalendar) IsAvailable(date DateStamp, interval TimeInterval) bool {
	shift, ok := c.ShiftFor(date)
	if !ok {
		return false
	}
	return shift.Window.Contains(interval)
}

// Week возвращает все семь дней в порядке с воскресенья по субботу.
func (c *ShiftCalendar) Week() []WeeklyShift {
	entries := make([]WeeklyShift, 0, DaysPerWeek)
	for day := 0; day < DaysPerWeek; day++ {
		entries = append(entries, c.week[day])
	}
	return entries
}
