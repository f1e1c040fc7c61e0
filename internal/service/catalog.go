package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medportal/internal/domain"
	"medportal/internal/repository"
)

type CatalogServiceImpl struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
}

func NewCatalogService(repo repository.CatalogRepository, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogServiceImpl) Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (int64, error) {
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания услуги", zap.Error(err))
		return 0, errors.New("ошибка при создании услуги")
	}

	return id, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id int64) (*domain.ClinicService, error) {
	clinicService, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения услуги", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("услуга не найдена")
	}

	return clinicService, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("услуга не найдена")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления услуги", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении услуги")
	}

	return nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("услуга не найдена")
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления услуги", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении услуги")
	}

	return nil
}

func (s *CatalogServiceImpl) List(ctx context.Context, filter domain.ClinicServiceFilter) ([]domain.ClinicService, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	services, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения справочника услуг", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении справочника услуг")
	}

	return services, total, nil
}
