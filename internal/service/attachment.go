package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medportal/internal/domain"
	"medportal/internal/repository"
	"medportal/internal/storage"
)

type AttachmentServiceImpl struct {
	repo        repository.AttachmentRepository
	apptRepo    repository.AppointmentRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewAttachmentService(repo repository.AttachmentRepository, apptRepo repository.AppointmentRepository, fileStorage storage.FileStorage, logger *zap.Logger) *AttachmentServiceImpl {
	return &AttachmentServiceImpl{
		repo:        repo,
		apptRepo:    apptRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *AttachmentServiceImpl) Upload(ctx context.Context, uploadedBy, appointmentID int64, data []byte, filename string) (int64, error) {
	if s.fileStorage == nil {
		return 0, errors.New("файловое хранилище не настроено")
	}

	if _, err := s.apptRepo.GetByID(ctx, appointmentID); err != nil {
		return 0, errors.New("запись на прием не найдена")
	}

	fileURL, err := s.fileStorage.UploadFile(ctx, data, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки файла", zap.Int64("appointmentId", appointmentID), zap.Error(err))
		return 0, err
	}

	id, err := s.repo.Create(ctx, domain.Attachment{
		AppointmentID: appointmentID,
		FileName:      filename,
		FileURL:       fileURL,
		UploadedBy:    uploadedBy,
	})
	if err != nil {
		s.logger.Error("ошибка сохранения вложения", zap.Int64("appointmentId", appointmentID), zap.Error(err))
		// Файл уже в хранилище, запись о нем не создана. Убираем файл.
		if delErr := s.fileStorage.DeleteFile(ctx, fileURL); delErr != nil {
			s.logger.Warn("не удалось удалить осиротевший файл", zap.String("url", fileURL), zap.Error(delErr))
		}
		return 0, errors.New("ошибка при сохранении вложения")
	}

	return id, nil
}

func (s *AttachmentServiceImpl) GetByAppointmentID(ctx context.Context, appointmentID int64) ([]domain.Attachment, error) {
	attachments, err := s.repo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("ошибка получения вложений", zap.Int64("appointmentId", appointmentID), zap.Error(err))
		return nil, errors.New("ошибка при получении вложений")
	}

	return attachments, nil
}

func (s *AttachmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления вложения", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении вложения")
	}

	return nil
}
