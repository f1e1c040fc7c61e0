package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"medportal/internal/domain"
	"medportal/internal/scheduling"
)

func newTestShiftService(shiftRepo *stubShiftRepo) *ShiftServiceImpl {
	return NewShiftService(
		shiftRepo,
		newStubStaffRepo(domain.Staff{ID: 1, UserID: 10, Role: domain.StaffRoleDoctor, IsActive: true}),
		zap.NewNop(),
	)
}

func weekDTO(t *testing.T, days int) domain.ReplaceShiftWeekDTO {
	t.Helper()
	dto := domain.ReplaceShiftWeekDTO{}
	for day := 0; day < days; day++ {
		dto.Week = append(dto.Week, domain.ShiftEntryDTO{
			DayOfWeek: day,
			StartTime: tod(t, "08:00:00"),
			EndTime:   tod(t, "14:00:00"),
			IsActive:  day >= 1 && day <= 5,
		})
	}
	return dto
}

func TestShiftService_ReplaceWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("полная неделя сохраняется", func(t *testing.T) {
		repo := newStubShiftRepo()
		svc := newTestShiftService(repo)

		if err := svc.ReplaceWeek(ctx, 1, weekDTO(t, 7)); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		entries := repo.entries[1]
		if len(entries) != 7 {
			t.Fatalf("сохранено %d дней, ожидалось 7", len(entries))
		}
		if entries[0].StartTime.String() != "08:00:00" {
			t.Errorf("время начала %s, ожидалось 08:00:00", entries[0].StartTime)
		}
	})

	t.Run("неполная неделя отклоняется целиком", func(t *testing.T) {
		repo := newStubShiftRepo()
		svc := newTestShiftService(repo)

		if err := svc.ReplaceWeek(ctx, 1, weekDTO(t, 7)); err != nil {
			t.Fatalf("исходный график должен сохраниться: %v", err)
		}

		err := svc.ReplaceWeek(ctx, 1, weekDTO(t, 5))
		if !errors.Is(err, scheduling.ErrIncompleteSchedule) {
			t.Fatalf("ожидалась ErrIncompleteSchedule, получено: %v", err)
		}

		// Прежний график не затронут.
		if len(repo.entries[1]) != 7 {
			t.Error("после отклоненной замены прежний график должен остаться")
		}
	})

	t.Run("перевернутое окно отклоняется", func(t *testing.T) {
		repo := newStubShiftRepo()
		svc := newTestShiftService(repo)

		dto := weekDTO(t, 7)
		dto.Week[2].StartTime = tod(t, "15:00:00")
		dto.Week[2].EndTime = tod(t, "09:00:00")

		err := svc.ReplaceWeek(ctx, 1, dto)
		if !errors.Is(err, scheduling.ErrIncompleteSchedule) {
			t.Fatalf("ожидалась ErrIncompleteSchedule, получено: %v", err)
		}
	})

	t.Run("неизвестный сотрудник", func(t *testing.T) {
		svc := newTestShiftService(newStubShiftRepo())

		if err := svc.ReplaceWeek(ctx, 999, weekDTO(t, 7)); err == nil {
			t.Fatal("ожидалась ошибка для несуществующего сотрудника")
		}
	})
}

func TestShiftService_GetWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("типовой график до первой настройки", func(t *testing.T) {
		svc := newTestShiftService(newStubShiftRepo())

		entries, err := svc.GetWeek(ctx, 1)
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if len(entries) != 7 {
			t.Fatalf("получено %d дней, ожидалось 7", len(entries))
		}

		// Понедельник рабочий с 09:00 до 17:00, воскресенье выходной.
		if !entries[1].IsActive || entries[1].StartTime.String() != "09:00:00" {
			t.Errorf("понедельник типового графика: %+v", entries[1])
		}
		if entries[0].IsActive {
			t.Error("воскресенье типового графика должно быть выходным")
		}
	})

	t.Run("индивидуальный график после замены", func(t *testing.T) {
		repo := newStubShiftRepo()
		svc := newTestShiftService(repo)

		if err := svc.ReplaceWeek(ctx, 1, weekDTO(t, 7)); err != nil {
			t.Fatalf("замена должна пройти: %v", err)
		}

		entries, err := svc.GetWeek(ctx, 1)
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if entries[1].StartTime.String() != "08:00:00" {
			t.Errorf("ожидался индивидуальный график, получено %s", entries[1].StartTime)
		}
	})
}
