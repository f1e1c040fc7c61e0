package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medportal/internal/domain"
	"medportal/internal/repository"
)

type StaffServiceImpl struct {
	repo     repository.StaffRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewStaffService(repo repository.StaffRepository, userRepo repository.UserRepository, logger *zap.Logger) *StaffServiceImpl {
	return &StaffServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create привязывает карточку сотрудника к существующему пользователю.
// Роль пользователя должна совпадать с ролью карточки.
func (s *StaffServiceImpl) Create(ctx context.Context, dto domain.CreateStaffDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, dto.UserID)
	if err != nil {
		s.logger.Error("пользователь для карточки сотрудника не найден", zap.Int64("userId", dto.UserID), zap.Error(err))
		return 0, errors.New("пользователь не найден")
	}

	if string(user.Role) != string(dto.Role) {
		return 0, errors.New("роль пользователя не совпадает с ролью сотрудника")
	}

	existing, err := s.repo.GetByUserID(ctx, dto.UserID)
	if err == nil && existing != nil {
		return 0, errors.New("карточка сотрудника для этого пользователя уже существует")
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания карточки сотрудника", zap.Error(err))
		return 0, errors.New("ошибка при создании карточки сотрудника")
	}

	return id, nil
}

func (s *StaffServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	staff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения сотрудника", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("сотрудник не найден")
	}

	return staff, nil
}

func (s *StaffServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error) {
	staff, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("карточка сотрудника не найдена", zap.Int64("userId", userID), zap.Error(err))
		return nil, errors.New("сотрудник не найден")
	}

	return staff, nil
}

func (s *StaffServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateStaffDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("сотрудник не найден")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления сотрудника", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении сотрудника")
	}

	return nil
}

func (s *StaffServiceImpl) Delete(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("сотрудник не найден")
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления сотрудника", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении сотрудника")
	}

	return nil
}

func (s *StaffServiceImpl) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	staff, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка сотрудников", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка сотрудников")
	}

	return staff, total, nil
}
