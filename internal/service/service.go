package service

import (
	"context"

	"go.uber.org/zap"

	"medportal/config"
	"medportal/internal/domain"
	"medportal/internal/repository"
	"medportal/internal/scheduling"
	"medportal/internal/storage"
	"medportal/pkg/lock"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	SlotLocker  lock.SlotLocker
}

type Services struct {
	User        UserService
	Auth        AuthService
	Staff       StaffService
	Catalog     CatalogService
	Appointment AppointmentService
	Shift       ShiftService
	Attachment  AttachmentService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:        NewUserService(deps.Repos.User, deps.Logger),
		Auth:        NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Staff:       NewStaffService(deps.Repos.Staff, deps.Repos.User, deps.Logger),
		Catalog:     NewCatalogService(deps.Repos.Catalog, deps.Logger),
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Repos.Shift, deps.Repos.Staff, deps.Repos.Catalog, deps.SlotLocker, deps.Config.Scheduling, deps.Logger),
		Shift:       NewShiftService(deps.Repos.Shift, deps.Repos.Staff, deps.Logger),
		Attachment:  NewAttachmentService(deps.Repos.Attachment, deps.Repos.Appointment, deps.FileStorage, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type StaffService interface {
	Create(ctx context.Context, dto domain.CreateStaffDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error)
	Update(ctx context.Context, id int64, dto domain.UpdateStaffDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error)
}

type CatalogService interface {
	Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicService, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ClinicServiceFilter) ([]domain.ClinicService, int, error)
}

type AppointmentService interface {
	GetFreeSlots(ctx context.Context, staffID, serviceID int64, date scheduling.DateStamp) ([]scheduling.TimeOfDay, error)
	Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error)
	CreateWalkIn(ctx context.Context, dto domain.CreateWalkInDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ChangeStatus(ctx context.Context, userID int64, role domain.UserRole, id int64, dto domain.ChangeStatusDTO) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
}

type ShiftService interface {
	GetWeek(ctx context.Context, staffID int64) ([]domain.ShiftEntry, error)
	ReplaceWeek(ctx context.Context, staffID int64, dto domain.ReplaceShiftWeekDTO) error
}

type AttachmentService interface {
	Upload(ctx context.Context, uploadedBy, appointmentID int64, data []byte, filename string) (int64, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) ([]domain.Attachment, error)
	Delete(ctx context.Context, id int64) error
}
