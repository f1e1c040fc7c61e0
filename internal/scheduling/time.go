package scheduling

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay - время дня без привязки к дате и часовому поясу.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("некорректное время %02d:%02d:%02d: %w", hour, minute, second, ErrInvalidInterval)
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := "15:04"
	if len(s) > 5 {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("неверный формат времени %q: %w", s, ErrInvalidInterval)
	}

	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Compare возвращает -1, 0 или 1.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t.seconds() < other.seconds():
		return -1
	case t.seconds() > other.seconds():
		return 1
	default:
		return 0
	}
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Compare(other) < 0
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Compare(other) > 0
}

// AddMinutes не переносит время через полночь: запись, заканчивающаяся
// после 23:59:59, считается ошибкой предметной области.
func (t TimeOfDay) AddMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 {
		return TimeOfDay{}, ErrInvalidDuration
	}

	total := t.seconds() + minutes*60
	if total > 23*3600+59*60+59 {
		return TimeOfDay{}, ErrInvalidDuration
	}

	return TimeOfDay{
		Hour:   total / 3600,
		Minute: total % 3600 / 60,
		Second: total % 60,
	}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("неверный формат времени: %w", err)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// DateStamp - календарная дата без времени и часового пояса.
type DateStamp struct {
	Year  int
	Month int
	Day   int
}

func NewDateStamp(year, month, day int) (DateStamp, error) {
	d := DateStamp{Year: year, Month: month, Day: day}
	t := d.Time()
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DateStamp{}, fmt.Errorf("некорректная дата %04d-%02d-%02d: %w", year, month, day, ErrInvalidInterval)
	}
	return d, nil
}

func ParseDateStamp(s string) (DateStamp, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateStamp{}, fmt.Errorf("неверный формат даты %q, ожидается YYYY-MM-DD: %w", s, ErrInvalidInterval)
	}
	return DateStamp{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// DateStampOf отбрасывает время и часовой пояс.
func DateStampOf(t time.Time) DateStamp {
	return DateStamp{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d DateStamp) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DayOfWeek: 0 - воскресенье .. 6 - суббота.
func (d DateStamp) DayOfWeek() int {
	return int(d.Time().Weekday())
}

func (d DateStamp) AddDays(days int) DateStamp {
	return DateStampOf(d.Time().AddDate(0, 0, days))
}

// DaysUntil считает количество календарных дней от d до other.
func (d DateStamp) DaysUntil(other DateStamp) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

func (d DateStamp) Before(other DateStamp) bool {
	return d.Time().Before(other.Time())
}

func (d DateStamp) Equal(other DateStamp) bool {
	return d == other
}

func (d DateStamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d DateStamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateStamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("неверный формат даты: %w", err)
	}

	parsed, err := ParseDateStamp(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// TimeInterval - полуоткрытый интервал [Start, End) в пределах одного дня.
type TimeInterval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func NewTimeInterval(start, end TimeOfDay) (TimeInterval, error) {
	if !start.Before(end) {
		return TimeInterval{}, fmt.Errorf("начало интервала должно быть раньше конца: %w", ErrInvalidInterval)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Overlaps использует полуоткрытую семантику: интервалы, соприкасающиеся
// только границей, не пересекаются, записи могут идти встык.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains - полное вхождение other в i.
func (i TimeInterval) Contains(other TimeInterval) bool {
	return i.Start.Compare(other.Start) <= 0 && other.End.Compare(i.End) <= 0
}

func (i TimeInterval) Valid() bool {
	return i.Start.Before(i.End)
}
