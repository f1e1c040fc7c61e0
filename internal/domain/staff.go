package domain

import (
	"time"
)

type StaffRole string

const (
	StaffRoleDoctor StaffRole = "doctor"
	StaffRoleNurse  StaffRole = "nurse"
)

// Staff - карточка сотрудника клиники. Сотрудник владеет своим недельным
// графиком и назначенными ему записями на прием.
type Staff struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Role      StaffRole `json:"role"`
	Specialty string    `json:"specialty"`
	Cabinet   string    `json:"cabinet,omitempty"`
	About     string    `json:"about,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type CreateStaffDTO struct {
	UserID    int64     `json:"user_id" binding:"required"`
	Role      StaffRole `json:"role" binding:"required,oneof=doctor nurse"`
	Specialty string    `json:"specialty" binding:"required"`
	Cabinet   string    `json:"cabinet"`
	About     string    `json:"about"`
}

type UpdateStaffDTO struct {
	Specialty *string `json:"specialty"`
	Cabinet   *string `json:"cabinet"`
	About     *string `json:"about"`
	IsActive  *bool   `json:"is_active"`
}

type StaffFilter struct {
	Role      *StaffRole `json:"role"`
	Specialty *string    `json:"specialty"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
