package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medportal/config"
	"medportal/internal/domain"
	"medportal/internal/repository"
	"medportal/internal/scheduling"
	"medportal/pkg/lock"
)

type AppointmentServiceImpl struct {
	repo        repository.AppointmentRepository
	shiftRepo   repository.ShiftRepository
	staffRepo   repository.StaffRepository
	catalogRepo repository.CatalogRepository
	locker      lock.SlotLocker
	slots       *scheduling.SlotGenerator
	logger      *zap.Logger

	// Подменяется в тестах для детерминированной текущей даты.
	now func() time.Time
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	shiftRepo repository.ShiftRepository,
	staffRepo repository.StaffRepository,
	catalogRepo repository.CatalogRepository,
	locker lock.SlotLocker,
	cfg config.SchedulingConfig,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:        repo,
		shiftRepo:   shiftRepo,
		staffRepo:   staffRepo,
		catalogRepo: catalogRepo,
		locker:      locker,
		slots:       scheduling.NewSlotGenerator(cfg.SlotStepMinutes),
		logger:      logger,
		now:         time.Now,
	}
}

// calendarFor собирает недельный график сотрудника. Пока администратор не
// задал индивидуальный график, действует типовой график клиники.
func (s *AppointmentServiceImpl) calendarFor(ctx context.Context, staffID int64) (*scheduling.ShiftCalendar, error) {
	entries, err := s.shiftRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		s.logger.Error("ошибка получения графика сотрудника", zap.Int64("staffId", staffID), zap.Error(err))
		return nil, errors.New("ошибка при получении графика сотрудника")
	}

	if len(entries) == 0 {
		return scheduling.DefaultShiftCalendar(), nil
	}

	calendar, err := scheduling.NewShiftCalendar(domain.WeeklyShifts(entries))
	if err != nil {
		s.logger.Error("сохраненный график сотрудника некорректен", zap.Int64("staffId", staffID), zap.Error(err))
		return nil, errors.New("график сотрудника поврежден")
	}

	return calendar, nil
}

func (s *AppointmentServiceImpl) conflictsFor(ctx context.Context, staffID int64, date scheduling.DateStamp) (*scheduling.ConflictIndex, error) {
	appointments, err := s.repo.ListByStaffAndDate(ctx, staffID, date)
	if err != nil {
		s.logger.Error("ошибка получения записей дня", zap.Int64("staffId", staffID), zap.Error(err))
		return nil, errors.New("ошибка при получении записей на день")
	}

	booked := make([]scheduling.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		booked = append(booked, appt.Scheduling())
	}

	return scheduling.NewConflictIndex(booked), nil
}

func (s *AppointmentServiceImpl) activeService(ctx context.Context, serviceID int64) (scheduling.Service, error) {
	clinicService, err := s.catalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		return scheduling.Service{}, errors.New("услуга не найдена")
	}
	if !clinicService.IsActive {
		return scheduling.Service{}, errors.New("услуга недоступна для записи")
	}

	return scheduling.Service{
		ID:              clinicService.ID,
		Name:            clinicService.Name,
		DurationMinutes: clinicService.DurationMinutes,
	}, nil
}

func (s *AppointmentServiceImpl) activeStaff(ctx context.Context, staffID int64) error {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return errors.New("сотрудник не найден")
	}
	if !staff.IsActive {
		return errors.New("сотрудник не ведет прием")
	}

	return nil
}

func (s *AppointmentServiceImpl) GetFreeSlots(ctx context.Context, staffID, serviceID int64, date scheduling.DateStamp) ([]scheduling.TimeOfDay, error) {
	if err := s.activeStaff(ctx, staffID); err != nil {
		return nil, err
	}

	service, err := s.activeService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	today := scheduling.DateStampOf(s.now())
	if date.Before(today) || today.DaysUntil(date) > scheduling.BookingHorizonDays {
		return nil, fmt.Errorf("дата %s: %w", date, scheduling.ErrDateOutOfRange)
	}

	calendar, err := s.calendarFor(ctx, staffID)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.conflictsFor(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	return s.slots.Generate(calendar, conflicts, staffID, date, service), nil
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	return s.book(ctx, scheduling.BookingRequest{
		StaffID:   dto.StaffID,
		PatientID: patientID,
		ServiceID: dto.ServiceID,
		Date:      dto.Date,
		Start:     dto.StartTime,
		Notes:     dto.Notes,
	}, scheduling.StatusPending)
}

// CreateWalkIn оформляет пациента без предварительной записи. Такая запись
// всегда на текущий день и сразу получает статус walkin.
func (s *AppointmentServiceImpl) CreateWalkIn(ctx context.Context, dto domain.CreateWalkInDTO) (int64, error) {
	return s.book(ctx, scheduling.BookingRequest{
		StaffID:   dto.StaffID,
		PatientID: dto.PatientID,
		ServiceID: dto.ServiceID,
		Date:      scheduling.DateStampOf(s.now()),
		Start:     dto.StartTime,
		Notes:     dto.Notes,
	}, scheduling.StatusWalkIn)
}

func (s *AppointmentServiceImpl) book(ctx context.Context, req scheduling.BookingRequest, status scheduling.Status) (int64, error) {
	if err := s.activeStaff(ctx, req.StaffID); err != nil {
		return 0, err
	}

	service, err := s.activeService(ctx, req.ServiceID)
	if err != nil {
		return 0, err
	}

	calendar, err := s.calendarFor(ctx, req.StaffID)
	if err != nil {
		return 0, err
	}

	conflicts, err := s.conflictsFor(ctx, req.StaffID, req.Date)
	if err != nil {
		return 0, err
	}

	validator := scheduling.NewBookingValidator(calendar, conflicts)
	appt, err := validator.ValidateAndBuild(req, service, scheduling.DateStampOf(s.now()))
	if err != nil {
		return 0, err
	}
	appt.Status = status

	record := domain.Appointment{
		StaffID:   appt.StaffID,
		PatientID: appt.PatientID,
		ServiceID: appt.ServiceID,
		Date:      appt.Date,
		StartTime: appt.Interval.Start,
		EndTime:   appt.Interval.End,
		Status:    appt.Status,
		Notes:     req.Notes,
	}

	// Блокировка сериализует гонку за слот до транзакции; окончательную
	// гарантию дают перепроверка и уникальный индекс в хранилище.
	lockKey := fmt.Sprintf("%d/%s/%s", req.StaffID, req.Date, req.Start)

	var id int64
	err = s.locker.WithSlotLock(ctx, lockKey, func(ctx context.Context) error {
		var createErr error
		id, createErr = s.repo.Create(ctx, record)
		return createErr
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			return 0, fmt.Errorf("слот %s: %w", lockKey, scheduling.ErrSlotTaken)
		}
		if errors.Is(err, scheduling.ErrSlotTaken) {
			return 0, err
		}
		s.logger.Error("ошибка создания записи на прием", zap.String("slot", lockKey), zap.Error(err))
		return 0, errors.New("ошибка при создании записи на прием")
	}

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("запись не найдена")
	}

	return appt, nil
}

func (s *AppointmentServiceImpl) ChangeStatus(ctx context.Context, userID int64, role domain.UserRole, id int64, dto domain.ChangeStatusDTO) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("запись не найдена")
	}

	actor, err := s.resolveActor(ctx, userID, role)
	if err != nil {
		return err
	}

	if dto.Status == scheduling.StatusCancelled && role != domain.UserRolePatient && dto.Reason == "" {
		return errors.New("при отмене сотрудником причина обязательна")
	}

	if err := scheduling.ValidateTransition(appt.Scheduling(), actor, dto.Status); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, dto.Status, dto.Reason); err != nil {
		s.logger.Error("ошибка смены статуса записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при смене статуса записи")
	}

	return nil
}

func (s *AppointmentServiceImpl) resolveActor(ctx context.Context, userID int64, role domain.UserRole) (scheduling.Actor, error) {
	switch role {
	case domain.UserRolePatient:
		return scheduling.Actor{Role: scheduling.RolePatient, PatientID: userID}, nil
	case domain.UserRoleDoctor:
		staff, err := s.staffRepo.GetByUserID(ctx, userID)
		if err != nil {
			s.logger.Error("карточка врача не найдена", zap.Int64("userId", userID), zap.Error(err))
			return scheduling.Actor{}, errors.New("карточка сотрудника не найдена")
		}
		return scheduling.Actor{Role: scheduling.RoleDoctor, StaffID: staff.ID}, nil
	case domain.UserRoleNurse:
		return scheduling.Actor{Role: scheduling.RoleNurse}, nil
	case domain.UserRoleAdmin:
		return scheduling.Actor{Role: scheduling.RoleAdmin}, nil
	default:
		return scheduling.Actor{}, errors.New("неизвестная роль пользователя")
	}
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка записей")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка подсчета записей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка записей")
	}

	return appointments, total, nil
}
