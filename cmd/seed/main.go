package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"medportal/config"
	"medportal/internal/domain"
	"medportal/internal/repository"
	"medportal/pkg/auth"
	"medportal/pkg/database"
)

const seedPassword = "password123"

var specialties = []string{
	"Терапевт",
	"Кардиолог",
	"Невролог",
	"Офтальмолог",
	"Отоларинголог",
}

var services = []domain.CreateClinicServiceDTO{
	{Name: "Первичный прием", DurationMinutes: 30, Price: 1500},
	{Name: "Повторный прием", DurationMinutes: 20, Price: 1000},
	{Name: "Расширенная консультация", DurationMinutes: 60, Price: 3000},
	{Name: "Профилактический осмотр", DurationMinutes: 15, Price: 800},
}

// Наполняет базу тестовыми данными для локальной разработки.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("не удалось загрузить конфигурацию", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	repos := repository.NewRepositories(db)

	passwordHash, err := auth.HashPassword(seedPassword)
	if err != nil {
		logger.Fatal("не удалось захешировать пароль", zap.Error(err))
	}

	adminID, err := repos.User.Create(ctx, domain.CreateUserDTO{
		FirstName: "Админ",
		LastName:  "Клиники",
		Email:     "admin@medportal.local",
		Phone:     "+79990000001",
		Password:  passwordHash,
		Role:      domain.UserRoleAdmin,
	})
	if err != nil {
		logger.Fatal("не удалось создать администратора", zap.Error(err))
	}
	logger.Info("администратор создан", zap.Int64("id", adminID))

	for i, specialty := range specialties {
		userID, err := repos.User.Create(ctx, domain.CreateUserDTO{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Phone:     fmt.Sprintf("+7999010%04d", i),
			Password:  passwordHash,
			Role:      domain.UserRoleDoctor,
		})
		if err != nil {
			logger.Fatal("не удалось создать пользователя-врача", zap.Error(err))
		}

		staffID, err := repos.Staff.Create(ctx, domain.CreateStaffDTO{
			UserID:    userID,
			Role:      domain.StaffRoleDoctor,
			Specialty: specialty,
			Cabinet:   fmt.Sprintf("%d0%d", i+1, gofakeit.Number(1, 9)),
			About:     gofakeit.Sentence(12),
		})
		if err != nil {
			logger.Fatal("не удалось создать карточку врача", zap.Error(err))
		}
		logger.Info("врач создан", zap.Int64("staffId", staffID), zap.String("specialty", specialty))
	}

	for _, dto := range services {
		id, err := repos.Catalog.Create(ctx, dto)
		if err != nil {
			logger.Fatal("не удалось создать услугу", zap.Error(err))
		}
		logger.Info("услуга создана", zap.Int64("id", id), zap.String("name", dto.Name))
	}

	for i := 0; i < 20; i++ {
		_, err := repos.User.Create(ctx, domain.CreateUserDTO{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Phone:     fmt.Sprintf("+7999020%04d", i),
			Password:  passwordHash,
			Role:      domain.UserRolePatient,
		})
		if err != nil {
			logger.Fatal("не удалось создать пациента", zap.Error(err))
		}
	}
	logger.Info("пациенты созданы", zap.Int("count", 20))
}
