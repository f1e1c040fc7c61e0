package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medportal/internal/domain"
	"medportal/internal/repository"
	"medportal/internal/scheduling"
)

type ShiftServiceImpl struct {
	repo      repository.ShiftRepository
	staffRepo repository.StaffRepository
	logger    *zap.Logger
}

func NewShiftService(repo repository.ShiftRepository, staffRepo repository.StaffRepository, logger *zap.Logger) *ShiftServiceImpl {
	return &ShiftServiceImpl{
		repo:      repo,
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// GetWeek отдает недельный график сотрудника. Если индивидуальный график
// еще не задан, возвращается типовой график клиники.
func (s *ShiftServiceImpl) GetWeek(ctx context.Context, staffID int64) ([]domain.ShiftEntry, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, errors.New("сотрудник не найден")
	}

	entries, err := s.repo.GetByStaffID(ctx, staffID)
	if err != nil {
		s.logger.Error("ошибка получения графика", zap.Int64("staffId", staffID), zap.Error(err))
		return nil, errors.New("ошибка при получении графика")
	}

	if len(entries) > 0 {
		return entries, nil
	}

	defaults := scheduling.DefaultShiftCalendar().Week()
	entries = make([]domain.ShiftEntry, 0, len(defaults))
	for _, shift := range defaults {
		entries = append(entries, domain.ShiftEntry{
			StaffID:   staffID,
			DayOfWeek: shift.DayOfWeek,
			StartTime: shift.Window.Start,
			EndTime:   shift.Window.End,
			IsActive:  shift.IsActive,
		})
	}

	return entries, nil
}

// ReplaceWeek заменяет график целиком. Неделя сначала проверяется
// планировщиком: при любом нарушении прежний график остается в силе.
func (s *ShiftServiceImpl) ReplaceWeek(ctx context.Context, staffID int64, dto domain.ReplaceShiftWeekDTO) error {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return errors.New("сотрудник не найден")
	}

	entries := make([]domain.ShiftEntry, 0, len(dto.Week))
	for _, item := range dto.Week {
		entries = append(entries, domain.ShiftEntry{
			StaffID:   staffID,
			DayOfWeek: item.DayOfWeek,
			StartTime: item.StartTime,
			EndTime:   item.EndTime,
			IsActive:  item.IsActive,
		})
	}

	if _, err := scheduling.NewShiftCalendar(domain.WeeklyShifts(entries)); err != nil {
		return err
	}

	if err := s.repo.ReplaceWeek(ctx, staffID, entries); err != nil {
		s.logger.Error("ошибка замены графика", zap.Int64("staffId", staffID), zap.Error(err))
		return errors.New("ошибка при сохранении графика")
	}

	return nil
}
