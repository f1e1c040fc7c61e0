package scheduling

// DefaultSlotStepMinutes - шаг сетки слотов по умолчанию.
const DefaultSlotStepMinutes = 15

// SlotGenerator строит сетку доступных времен начала с фиксированным шагом.
type SlotGenerator struct {
	stepMinutes int
}

func NewSlotGenerator(stepMinutes int) *SlotGenerator {
	if stepMinutes <= 0 {
		stepMinutes = DefaultSlotStepMinutes
	}
	return &SlotGenerator{stepMinutes: stepMinutes}
}

// Generate возвращает упорядоченные времена начала для конкретной даты.
// Слоты всегда пересчитываются под запрошенную дату: кэшировать список,
// построенный для другого дня, нельзя. Результат детерминирован, при
// отсутствии подходящих времен возвращается пустой список, а не ошибка.
func (g *SlotGenerator) Generate(
	calendar *ShiftCalendar,
	conflicts *ConflictIndex,
	staffID int64,
	date DateStamp,
	service Service,
) []TimeOfDay {
	slots := make([]TimeOfDay, 0)

	shift, ok := calendar.ShiftFor(date)
	if !ok {
		return slots
	}

	for start := shift.Window.Start; start.Before(shift.Window.End); {
		end, err := start.AddMinutes(service.DurationMinutes)
		if err != nil {
			// Услуга не помещается до полуночи, дальше только позже.
			break
		}

		if end.After(shift.Window.End) {
			break
		}

		interval := TimeInterval{Start: start, End: end}
		if !conflicts.HasConflict(staffID, date, interval) {
			slots = append(slots, start)
		}

		next, err := start.AddMinutes(g.stepMinutes)
		if err != nil {
			break
		}
		start = next
	}

	return slots
}
