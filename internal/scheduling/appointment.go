package scheduling

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusWalkIn    Status = "walkin"
)

// Разрешенные переходы статусов. Состояния cancelled и completed терминальные,
// отмененная запись никогда не возвращается в работу.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusWalkIn:    {StatusConfirmed, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// blocks - занимает ли запись с данным статусом слот времени.
func (s Status) blocks() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusWalkIn
}

// Service - справочная услуга клиники; длительность услуги определяет
// время окончания каждой записи.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
}

// Appointment - запись на прием в том виде, в котором ее видит планировщик.
type Appointment struct {
	ID        int64
	StaffID   int64
	PatientID int64
	ServiceID int64
	Date      DateStamp
	Interval  TimeInterval
	Status    Status
}

// BookingRequest - транзитный запрос на бронирование, не сохраняется.
type BookingRequest struct {
	StaffID   int64
	PatientID int64
	ServiceID int64
	Date      DateStamp
	Start     TimeOfDay
	Notes     string
}

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleNurse   Role = "nurse"
	RoleAdmin   Role = "admin"
)

// Actor - инициатор изменения записи.
type Actor struct {
	Role      Role
	StaffID   int64
	PatientID int64
}
