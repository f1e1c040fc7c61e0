package scheduling

import (
	"sort"
)

type dayKey struct {
	StaffID int64
	Date    DateStamp
}

// ConflictIndex группирует занятые интервалы по сотруднику и дате.
// Отмененные и завершенные записи слоты не блокируют.
type ConflictIndex struct {
	days map[dayKey][]TimeInterval
}

func NewConflictIndex(appointments []Appointment) *ConflictIndex {
	idx := &ConflictIndex{
		days: make(map[dayKey][]TimeInterval),
	}

	for _, appt := range appointments {
		if !appt.Status.blocks() {
			continue
		}
		key := dayKey{StaffID: appt.StaffID, Date: appt.Date}
		idx.days[key] = append(idx.days[key], appt.Interval)
	}

	// Генератор слотов рассчитывает на один линейный проход,
	// поэтому интервалы держим отсортированными по началу.
	for key := range idx.days {
		intervals := idx.days[key]
		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].Start.Before(intervals[j].Start)
		})
	}

	return idx
}

// BookedIntervals возвращает занятые интервалы дня по возрастанию начала.
func (idx *ConflictIndex) BookedIntervals(staffID int64, date DateStamp) []TimeInterval {
	return idx.days[dayKey{StaffID: staffID, Date: date}]
}

// HasConflict - пересекается ли интервал хотя бы с одной занятой записью дня.
func (idx *ConflictIndex) HasConflict(staffID int64, date DateStamp, interval TimeInterval) bool {
	for _, booked := range idx.BookedIntervals(staffID, date) {
		if interval.Overlaps(booked) {
			return true
		}
		if !booked.Start.Before(interval.End) {
			break
		}
	}
	return false
}
