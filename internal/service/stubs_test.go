package service

import (
	"context"
	"time"

	"medportal/internal/domain"
	"medportal/internal/repository"
	"medportal/internal/scheduling"
)

// Заглушки репозиториев держат данные в памяти, база для тестов не нужна.

type stubAppointmentRepo struct {
	appointments []domain.Appointment
	nextID       int64
	statusLog    map[int64]scheduling.Status
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{
		nextID:    1,
		statusLog: make(map[int64]scheduling.Status),
	}
}

func (r *stubAppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (int64, error) {
	appt.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, appt)
	return appt.ID, nil
}

func (r *stubAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == id {
			appt := r.appointments[i]
			return &appt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status scheduling.Status, reason string) error {
	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments[i].Status = status
			r.appointments[i].CancelReason = reason
			r.statusLog[id] = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	return r.appointments, nil
}

func (r *stubAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	return len(r.appointments), nil
}

func (r *stubAppointmentRepo) ListByStaffAndDate(ctx context.Context, staffID int64, date scheduling.DateStamp) ([]domain.Appointment, error) {
	var result []domain.Appointment
	for _, appt := range r.appointments {
		if appt.StaffID == staffID && appt.Date.Equal(date) {
			result = append(result, appt)
		}
	}
	return result, nil
}

type stubShiftRepo struct {
	entries map[int64][]domain.ShiftEntry
}

func newStubShiftRepo() *stubShiftRepo {
	return &stubShiftRepo{entries: make(map[int64][]domain.ShiftEntry)}
}

func (r *stubShiftRepo) GetByStaffID(ctx context.Context, staffID int64) ([]domain.ShiftEntry, error) {
	return r.entries[staffID], nil
}

func (r *stubShiftRepo) ReplaceWeek(ctx context.Context, staffID int64, entries []domain.ShiftEntry) error {
	r.entries[staffID] = entries
	return nil
}

type stubStaffRepo struct {
	staff map[int64]domain.Staff
}

func newStubStaffRepo(staff ...domain.Staff) *stubStaffRepo {
	repo := &stubStaffRepo{staff: make(map[int64]domain.Staff)}
	for _, s := range staff {
		repo.staff[s.ID] = s
	}
	return repo
}

func (r *stubStaffRepo) Create(ctx context.Context, dto domain.CreateStaffDTO) (int64, error) {
	return 0, nil
}

func (r *stubStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *stubStaffRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error) {
	for _, s := range r.staff {
		if s.UserID == userID {
			staff := s
			return &staff, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubStaffRepo) Update(ctx context.Context, id int64, dto domain.UpdateStaffDTO) error {
	return nil
}

func (r *stubStaffRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *stubStaffRepo) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error) {
	return nil, 0, nil
}

type stubCatalogRepo struct {
	services map[int64]domain.ClinicService
}

func newStubCatalogRepo(services ...domain.ClinicService) *stubCatalogRepo {
	repo := &stubCatalogRepo{services: make(map[int64]domain.ClinicService)}
	for _, cs := range services {
		repo.services[cs.ID] = cs
	}
	return repo
}

func (r *stubCatalogRepo) Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (int64, error) {
	return 0, nil
}

func (r *stubCatalogRepo) GetByID(ctx context.Context, id int64) (*domain.ClinicService, error) {
	cs, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cs, nil
}

func (r *stubCatalogRepo) Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) error {
	return nil
}

func (r *stubCatalogRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *stubCatalogRepo) List(ctx context.Context, filter domain.ClinicServiceFilter) ([]domain.ClinicService, int, error) {
	return nil, 0, nil
}

// noopLocker выполняет функцию без реальной блокировки.
type noopLocker struct{}

func (noopLocker) WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedNow - детерминированное "сейчас" для проверки горизонта записи:
// понедельник 24 августа 2026, 10:00.
func fixedNow() time.Time {
	return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
}
