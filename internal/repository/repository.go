package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"medportal/internal/domain"
	"medportal/internal/scheduling"
)

type Repositories struct {
	User        UserRepository
	Auth        AuthRepository
	Staff       StaffRepository
	Catalog     CatalogRepository
	Appointment AppointmentRepository
	Shift       ShiftRepository
	Attachment  AttachmentRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Auth:        NewAuthRepository(db),
		Staff:       NewStaffRepository(db),
		Catalog:     NewCatalogRepository(db),
		Appointment: NewAppointmentRepository(db),
		Shift:       NewShiftRepository(db),
		Attachment:  NewAttachmentRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type StaffRepository interface {
	Create(ctx context.Context, dto domain.CreateStaffDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error)
	Update(ctx context.Context, id int64, dto domain.UpdateStaffDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error)
}

type CatalogRepository interface {
	Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicService, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ClinicServiceFilter) ([]domain.ClinicService, int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt domain.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status scheduling.Status, reason string) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	ListByStaffAndDate(ctx context.Context, staffID int64, date scheduling.DateStamp) ([]domain.Appointment, error)
}

type ShiftRepository interface {
	GetByStaffID(ctx context.Context, staffID int64) ([]domain.ShiftEntry, error)
	ReplaceWeek(ctx context.Context, staffID int64, entries []domain.ShiftEntry) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment domain.Attachment) (int64, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) ([]domain.Attachment, error)
	Delete(ctx context.Context, id int64) error
}
