package service

import (
	"context"
	"fmt"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// In-memory repository stubs shared by the service tests. All of them clone
// on the way in and out so tests cannot mutate stored state by accident.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.UnseenNotifications = append([]domain.Notification(nil), u.UnseenNotifications...)
	clone.SeenNotifications = append([]domain.Notification(nil), u.SeenNotifications...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (string, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return "", domain.ErrEmailTaken
		}
	}
	r.nextID++
	id := fmt.Sprintf("user_%d", r.nextID)
	clone := cloneUser(user)
	clone.ID = id
	r.users[id] = clone
	return id, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAdmins(_ context.Context) ([]*domain.User, error) {
	var admins []*domain.User
	for _, u := range r.users {
		if u.IsAdmin {
			admins = append(admins, cloneUser(u))
		}
	}
	return admins, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func (r *stubUserRepo) SetDoctorFlag(_ context.Context, id string, isDoctor bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsDoctor = isDoctor
	return nil
}

func (r *stubUserRepo) PushNotification(_ context.Context, id string, n domain.Notification) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.UnseenNotifications = append(u.UnseenNotifications, n)
	return nil
}

func (r *stubUserRepo) SetNotifications(_ context.Context, id string, seen, unseen []domain.Notification) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SeenNotifications = append([]domain.Notification(nil), seen...)
	u.UnseenNotifications = append([]domain.Notification(nil), unseen...)
	return nil
}

type stubDoctorRepo struct {
	doctors map[string]*domain.Doctor
	nextID  int
}

func newStubDoctorRepo() *stubDoctorRepo {
	return &stubDoctorRepo{doctors: make(map[string]*domain.Doctor)}
}

func cloneDoctor(d *domain.Doctor) *domain.Doctor {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

func (r *stubDoctorRepo) Create(_ context.Context, doctor *domain.Doctor) (string, error) {
	r.nextID++
	id := fmt.Sprintf("doctor_%d", r.nextID)
	clone := cloneDoctor(doctor)
	clone.ID = id
	r.doctors[id] = clone
	return id, nil
}

func (r *stubDoctorRepo) FindByID(_ context.Context, id string) (*domain.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	return cloneDoctor(d), nil
}

func (r *stubDoctorRepo) FindByUserID(_ context.Context, userID string) (*domain.Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID == userID {
			return cloneDoctor(d), nil
		}
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) List(_ context.Context, status domain.DoctorStatus) ([]*domain.Doctor, error) {
	var doctors []*domain.Doctor
	for _, d := range r.doctors {
		if status == "" || d.Status == status {
			doctors = append(doctors, cloneDoctor(d))
		}
	}
	return doctors, nil
}

func (r *stubDoctorRepo) UpdateStatus(_ context.Context, id string, status domain.DoctorStatus) error {
	d, ok := r.doctors[id]
	if !ok {
		return domain.ErrDoctorNotFound
	}
	d.Status = status
	return nil
}

func (r *stubDoctorRepo) UpdateProfile(_ context.Context, doctor *domain.Doctor) error {
	if _, ok := r.doctors[doctor.ID]; !ok {
		return domain.ErrDoctorNotFound
	}
	r.doctors[doctor.ID] = cloneDoctor(doctor)
	return nil
}

type stubAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	nextID       int
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[string]*domain.Appointment)}
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (string, error) {
	r.nextID++
	id := fmt.Sprintf("appointment_%d", r.nextID)
	clone := cloneAppointment(a)
	clone.ID = id
	r.appointments[id] = clone
	return id, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return cloneAppointment(a), nil
}

func (r *stubAppointmentRepo) FindByDoctorAndDate(_ context.Context, doctorID, date string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) ListByPatient(_ context.Context, patientID string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	a, ok := r.appointments[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

// stubIdem is an in-memory IdempotencyChecker.
type stubIdem struct {
	keys map[string]string
}

func newStubIdem() *stubIdem {
	return &stubIdem{keys: make(map[string]string)}
}

func (s *stubIdem) Lookup(_ context.Context, key string) (string, bool, error) {
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdem) Remember(_ context.Context, key, appointmentID string) error {
	s.keys[key] = appointmentID
	return nil
}
