package scheduling

import (
	"errors"
)

// Каждая ошибка валидации — отдельное проверяемое условие,
// обработчики сопоставляют их с HTTP-кодами через errors.Is.
var (
	ErrDateOutOfRange     = errors.New("дата записи вне допустимого диапазона")
	ErrInvalidInterval    = errors.New("некорректный интервал времени")
	ErrOutsideShift       = errors.New("время вне рабочего графика сотрудника")
	ErrSlotTaken          = errors.New("выбранный слот времени уже занят")
	ErrNotOwner           = errors.New("нет прав на изменение этой записи")
	ErrIllegalTransition  = errors.New("недопустимая смена статуса записи")
	ErrIncompleteSchedule = errors.New("график должен содержать все семь дней недели")
	ErrInvalidDuration    = errors.New("время окончания выходит за пределы суток")
)
