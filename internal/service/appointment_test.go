package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"medportal/internal/domain"
	"medportal/internal/repository"
	"medportal/internal/scheduling"
)

func newTestAppointmentService(apptRepo repository.AppointmentRepository) *AppointmentServiceImpl {
	svc := &AppointmentServiceImpl{
		repo:      apptRepo,
		shiftRepo: newStubShiftRepo(),
		staffRepo: newStubStaffRepo(
			domain.Staff{ID: 1, UserID: 10, Role: domain.StaffRoleDoctor, IsActive: true},
			domain.Staff{ID: 2, UserID: 20, Role: domain.StaffRoleDoctor, IsActive: true},
			domain.Staff{ID: 3, UserID: 30, Role: domain.StaffRoleDoctor, IsActive: false},
		),
		catalogRepo: newStubCatalogRepo(
			domain.ClinicService{ID: 5, Name: "Первичный прием", DurationMinutes: 30, IsActive: true},
			domain.ClinicService{ID: 6, Name: "Снятая услуга", DurationMinutes: 30, IsActive: false},
		),
		locker: noopLocker{},
		slots:  scheduling.NewSlotGenerator(15),
		logger: zap.NewNop(),
		now:    fixedNow,
	}
	return svc
}

func tod(t *testing.T, s string) scheduling.TimeOfDay {
	t.Helper()
	v, err := scheduling.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("неожиданная ошибка разбора времени %q: %v", s, err)
	}
	return v
}

func date(t *testing.T, s string) scheduling.DateStamp {
	t.Helper()
	v, err := scheduling.ParseDateStamp(s)
	if err != nil {
		t.Fatalf("неожиданная ошибка разбора даты %q: %v", s, err)
	}
	return v
}

func TestAppointmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное бронирование", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newTestAppointmentService(repo)

		id, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID:   1,
			ServiceID: 5,
			Date:      date(t, "2026-08-25"),
			StartTime: tod(t, "10:00:00"),
		})
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if id == 0 {
			t.Fatal("ожидался ненулевой идентификатор записи")
		}

		appt, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("запись не сохранена: %v", err)
		}
		if appt.Status != scheduling.StatusPending {
			t.Errorf("статус новой записи %s, ожидался pending", appt.Status)
		}
		if got := appt.EndTime.String(); got != "10:30:00" {
			t.Errorf("время окончания %s, ожидалось 10:30:00 из длительности услуги", got)
		}
	})

	t.Run("занятый слот отклоняется", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newTestAppointmentService(repo)

		dto := domain.CreateAppointmentDTO{
			StaffID:   1,
			ServiceID: 5,
			Date:      date(t, "2026-08-25"),
			StartTime: tod(t, "10:00:00"),
		}
		if _, err := svc.Create(ctx, 100, dto); err != nil {
			t.Fatalf("первое бронирование должно пройти: %v", err)
		}

		_, err := svc.Create(ctx, 101, dto)
		if !errors.Is(err, scheduling.ErrSlotTaken) {
			t.Fatalf("ожидалась ErrSlotTaken, получено: %v", err)
		}
	})

	t.Run("пересечение с перекрывающим интервалом", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newTestAppointmentService(repo)

		if _, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:00:00"),
		}); err != nil {
			t.Fatalf("первое бронирование должно пройти: %v", err)
		}

		// 10:15 пересекается с 10:00-10:30.
		_, err := svc.Create(ctx, 101, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:15:00"),
		})
		if !errors.Is(err, scheduling.ErrSlotTaken) {
			t.Fatalf("ожидалась ErrSlotTaken, получено: %v", err)
		}

		// 10:30 встык - допустимо, интервалы полуоткрытые.
		if _, err := svc.Create(ctx, 102, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:30:00"),
		}); err != nil {
			t.Fatalf("бронирование встык должно пройти: %v", err)
		}
	})

	t.Run("вчерашняя дата отклоняется", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())

		_, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-23"), StartTime: tod(t, "10:00:00"),
		})
		if !errors.Is(err, scheduling.ErrDateOutOfRange) {
			t.Fatalf("ожидалась ErrDateOutOfRange, получено: %v", err)
		}
	})

	t.Run("дата за горизонтом отклоняется", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())

		// 24 сентября - 31-й день от текущей даты.
		_, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-09-24"), StartTime: tod(t, "10:00:00"),
		})
		if !errors.Is(err, scheduling.ErrDateOutOfRange) {
			t.Fatalf("ожидалась ErrDateOutOfRange, получено: %v", err)
		}
	})

	t.Run("воскресенье вне типового графика", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())

		_, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-30"), StartTime: tod(t, "10:00:00"),
		})
		if !errors.Is(err, scheduling.ErrOutsideShift) {
			t.Fatalf("ожидалась ErrOutsideShift, получено: %v", err)
		}
	})

	t.Run("услуга не помещается до конца смены", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())

		_, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "16:45:00"),
		})
		if !errors.Is(err, scheduling.ErrOutsideShift) {
			t.Fatalf("ожидалась ErrOutsideShift, получено: %v", err)
		}
	})

	t.Run("неактивная услуга", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())

		_, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 6, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:00:00"),
		})
		if err == nil {
			t.Fatal("ожидалась ошибка для неактивной услуги")
		}
	})

	t.Run("неактивный сотрудник", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())

		_, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 3, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:00:00"),
		})
		if err == nil {
			t.Fatal("ожидалась ошибка для неактивного сотрудника")
		}
	})
}

func TestAppointmentService_CreateWalkIn(t *testing.T) {
	ctx := context.Background()
	repo := newStubAppointmentRepo()
	svc := newTestAppointmentService(repo)

	id, err := svc.CreateWalkIn(ctx, domain.CreateWalkInDTO{
		StaffID:   1,
		PatientID: 100,
		ServiceID: 5,
		StartTime: tod(t, "11:00:00"),
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	appt, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("запись не сохранена: %v", err)
	}
	if appt.Status != scheduling.StatusWalkIn {
		t.Errorf("статус %s, ожидался walkin", appt.Status)
	}
	if !appt.Date.Equal(date(t, "2026-08-24")) {
		t.Errorf("дата %s, очный прием всегда на текущий день", appt.Date)
	}

	// Очная запись занимает слот наравне с предварительной.
	_, err = svc.Create(ctx, 101, domain.CreateAppointmentDTO{
		StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-24"), StartTime: tod(t, "11:15:00"),
	})
	if !errors.Is(err, scheduling.ErrSlotTaken) {
		t.Fatalf("ожидалась ErrSlotTaken, получено: %v", err)
	}
}

func TestAppointmentService_GetFreeSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("занятые интервалы исключаются", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newTestAppointmentService(repo)

		if _, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:00:00"),
		}); err != nil {
			t.Fatalf("бронирование должно пройти: %v", err)
		}

		slots, err := svc.GetFreeSlots(ctx, 1, 5, date(t, "2026-08-25"))
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		for _, slot := range slots {
			if slot.String() == "10:00:00" || slot.String() == "09:45:00" || slot.String() == "10:15:00" {
				t.Errorf("слот %s пересекается с занятым интервалом 10:00-10:30", slot)
			}
		}

		found := false
		for _, slot := range slots {
			if slot.String() == "10:30:00" {
				found = true
			}
		}
		if !found {
			t.Error("слот 10:30:00 встык с занятым интервалом должен предлагаться")
		}
	})

	t.Run("свободные слоты другого врача не затронуты", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newTestAppointmentService(repo)

		if _, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:00:00"),
		}); err != nil {
			t.Fatalf("бронирование должно пройти: %v", err)
		}

		slots, err := svc.GetFreeSlots(ctx, 2, 5, date(t, "2026-08-25"))
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		found := false
		for _, slot := range slots {
			if slot.String() == "10:00:00" {
				found = true
			}
		}
		if !found {
			t.Error("бронь у первого врача не должна занимать слоты второго")
		}
	})

	t.Run("отмененная запись освобождает слот", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newTestAppointmentService(repo)

		id, err := svc.Create(ctx, 100, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:00:00"),
		})
		if err != nil {
			t.Fatalf("бронирование должно пройти: %v", err)
		}

		if err := svc.ChangeStatus(ctx, 100, domain.UserRolePatient, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCancelled,
		}); err != nil {
			t.Fatalf("отмена должна пройти: %v", err)
		}

		slots, err := svc.GetFreeSlots(ctx, 1, 5, date(t, "2026-08-25"))
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}

		found := false
		for _, slot := range slots {
			if slot.String() == "10:00:00" {
				found = true
			}
		}
		if !found {
			t.Error("после отмены слот 10:00:00 должен снова предлагаться")
		}
	})

	t.Run("прошедшая дата отклоняется", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())

		_, err := svc.GetFreeSlots(ctx, 1, 5, date(t, "2026-08-23"))
		if !errors.Is(err, scheduling.ErrDateOutOfRange) {
			t.Fatalf("ожидалась ErrDateOutOfRange, получено: %v", err)
		}
	})
}

func TestAppointmentService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	book := func(t *testing.T, svc *AppointmentServiceImpl, patientID int64) int64 {
		t.Helper()
		id, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			StaffID: 1, ServiceID: 5, Date: date(t, "2026-08-25"), StartTime: tod(t, "10:00:00"),
		})
		if err != nil {
			t.Fatalf("бронирование должно пройти: %v", err)
		}
		return id
	}

	t.Run("врач подтверждает свою запись", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newTestAppointmentService(repo)
		id := book(t, svc, 100)

		// Пользователь 10 - врач с карточкой сотрудника 1.
		err := svc.ChangeStatus(ctx, 10, domain.UserRoleDoctor, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusConfirmed,
		})
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if repo.statusLog[id] != scheduling.StatusConfirmed {
			t.Error("статус не обновлен в хранилище")
		}
	})

	t.Run("чужой врач не меняет запись", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())
		id := book(t, svc, 100)

		// Пользователь 20 - врач с карточкой сотрудника 2, запись не его.
		err := svc.ChangeStatus(ctx, 20, domain.UserRoleDoctor, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusConfirmed,
		})
		if !errors.Is(err, scheduling.ErrNotOwner) {
			t.Fatalf("ожидалась ErrNotOwner, получено: %v", err)
		}
	})

	t.Run("пациент отменяет только свою запись", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())
		id := book(t, svc, 100)

		err := svc.ChangeStatus(ctx, 999, domain.UserRolePatient, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCancelled,
		})
		if !errors.Is(err, scheduling.ErrNotOwner) {
			t.Fatalf("ожидалась ErrNotOwner, получено: %v", err)
		}

		if err := svc.ChangeStatus(ctx, 100, domain.UserRolePatient, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCancelled,
		}); err != nil {
			t.Fatalf("отмена собственной записи должна пройти: %v", err)
		}
	})

	t.Run("медсестра и администратор меняют любую запись", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())
		id := book(t, svc, 100)

		if err := svc.ChangeStatus(ctx, 500, domain.UserRoleNurse, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusConfirmed,
		}); err != nil {
			t.Fatalf("медсестра должна подтверждать записи: %v", err)
		}

		if err := svc.ChangeStatus(ctx, 600, domain.UserRoleAdmin, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCompleted,
		}); err != nil {
			t.Fatalf("администратор должен завершать записи: %v", err)
		}
	})

	t.Run("отмена сотрудником требует причину", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())
		id := book(t, svc, 100)

		err := svc.ChangeStatus(ctx, 10, domain.UserRoleDoctor, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCancelled,
		})
		if err == nil {
			t.Fatal("ожидалась ошибка: причина отмены обязательна")
		}

		if err := svc.ChangeStatus(ctx, 10, domain.UserRoleDoctor, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCancelled,
			Reason: "болезнь врача",
		}); err != nil {
			t.Fatalf("отмена с причиной должна пройти: %v", err)
		}
	})

	t.Run("недопустимый переход статуса", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())
		id := book(t, svc, 100)

		// pending -> completed минуя confirmed запрещен.
		err := svc.ChangeStatus(ctx, 600, domain.UserRoleAdmin, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCompleted,
		})
		if !errors.Is(err, scheduling.ErrIllegalTransition) {
			t.Fatalf("ожидалась ErrIllegalTransition, получено: %v", err)
		}
	})

	t.Run("отмененная запись терминальна", func(t *testing.T) {
		svc := newTestAppointmentService(newStubAppointmentRepo())
		id := book(t, svc, 100)

		if err := svc.ChangeStatus(ctx, 100, domain.UserRolePatient, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusCancelled,
		}); err != nil {
			t.Fatalf("отмена должна пройти: %v", err)
		}

		err := svc.ChangeStatus(ctx, 600, domain.UserRoleAdmin, id, domain.ChangeStatusDTO{
			Status: scheduling.StatusConfirmed,
		})
		if !errors.Is(err, scheduling.ErrIllegalTransition) {
			t.Fatalf("ожидалась ErrIllegalTransition, получено: %v", err)
		}
	})
}
