package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// slotLayout is the combined parse layout for the stored date ("DD-MM-YY")
// and 24-hour time strings.
const slotLayout = "02-01-06 15:04"

// availabilityWindow is the exclusion zone around an existing appointment.
// A requested slot within one hour of a booked slot, inclusive on both ends,
// is reported unavailable.
const availabilityWindow = time.Hour

// IdempotencyChecker abstracts the replay store (Redis) for booking requests.
type IdempotencyChecker interface {
	// Lookup returns the appointment id previously recorded under key.
	Lookup(ctx context.Context, key string) (string, bool, error)
	// Remember records the appointment created under key.
	Remember(ctx context.Context, key, appointmentID string) error
}

// AppointmentService implements booking, availability, and status workflows.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	doctors      ports.DoctorRepository
	users        ports.UserRepository
	idem         IdempotencyChecker
	loc          *time.Location
	log          zerolog.Logger
}

// NewAppointmentService builds the service. loc is the timezone in which the
// stored date/time strings are interpreted; nil means UTC. idem may be nil to
// disable booking replay protection.
func NewAppointmentService(
	appointments ports.AppointmentRepository,
	doctors ports.DoctorRepository,
	users ports.UserRepository,
	idem IdempotencyChecker,
	loc *time.Location,
	log zerolog.Logger,
) *AppointmentService {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentService{
		appointments: appointments,
		doctors:      doctors,
		users:        users,
		idem:         idem,
		loc:          loc,
		log:          log,
	}
}

// Book creates a pending appointment with the caller-supplied snapshots and
// notifies the doctor's owning user. A repeated Idempotency-Key replays the
// first booking instead of creating a duplicate.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookAppointmentInput) (*ports.BookAppointmentResult, error) {
	if _, err := s.parseSlot(input.Date, input.Time); err != nil {
		return nil, err
	}

	if s.idem != nil && input.IdempotencyKey != "" {
		id, found, err := s.idem.Lookup(ctx, input.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("idempotency lookup failed, booking anyway")
		} else if found {
			s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("appointment_id", id).Msg("idempotent replay")
			return &ports.BookAppointmentResult{ID: id, Status: domain.AppointmentPending, AlreadyExisted: true}, nil
		}
	}

	doctor, err := s.doctors.FindByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, doctor.UserID)
	if err != nil {
		return nil, fmt.Errorf("book appointment: doctor owner: %w", err)
	}

	now := time.Now().UTC()
	appointment := &domain.Appointment{
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		Doctor:    input.Doctor,
		Patient:   input.Patient,
		Date:      input.Date,
		Time:      input.Time,
		Status:    domain.AppointmentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.appointments.Create(ctx, appointment)
	if err != nil {
		return nil, err
	}

	n := domain.NewNotification(
		domain.NotificationAppointmentNew,
		fmt.Sprintf("New appointment request from %s", input.Patient.Name),
		"/doctor/appointments",
	)
	if err := s.users.PushNotification(ctx, owner.ID, n); err != nil {
		return nil, fmt.Errorf("book appointment: notify doctor: %w", err)
	}

	if s.idem != nil && input.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, input.IdempotencyKey, id); err != nil {
			s.log.Warn().Err(err).Str("appointment_id", id).Msg("failed to record idempotency key")
		}
	}

	s.log.Info().
		Str("appointment_id", id).
		Str("doctor_id", input.DoctorID).
		Str("patient_id", input.PatientID).
		Msg("appointment booked")

	return &ports.BookAppointmentResult{ID: id, Status: domain.AppointmentPending}, nil
}

// CheckAvailability reports whether the requested slot is free. The slot is
// unavailable iff at least one existing appointment for the doctor on that
// date has a stored time within [requested-1h, requested+1h] inclusive.
func (s *AppointmentService) CheckAvailability(ctx context.Context, input ports.AvailabilityInput) (*ports.AvailabilityResult, error) {
	requested, err := s.parseSlot(input.Date, input.Time)
	if err != nil {
		return nil, err
	}

	existing, err := s.appointments.FindByDoctorAndDate(ctx, input.DoctorID, input.Date)
	if err != nil {
		return nil, err
	}

	start := requested.Add(-availabilityWindow)
	end := requested.Add(availabilityWindow)

	for _, a := range existing {
		booked, err := s.parseSlot(a.Date, a.Time)
		if err != nil {
			s.log.Warn().Str("appointment_id", a.ID).Str("time", a.Time).Msg("unparsable stored slot, skipped")
			continue
		}
		if !booked.Before(start) && !booked.After(end) {
			return &ports.AvailabilityResult{Available: false}, nil
		}
	}

	return &ports.AvailabilityResult{Available: true}, nil
}

func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorUserID string) ([]*domain.Appointment, error) {
	doctor, err := s.doctors.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListByDoctor(ctx, doctor.ID)
}

func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error) {
	return s.appointments.ListByPatient(ctx, patientID)
}

// UpdateStatus applies a doctor's decision on one of their own appointments
// and pushes a status notification to the patient.
func (s *AppointmentService) UpdateStatus(ctx context.Context, doctorUserID, appointmentID string, status domain.AppointmentStatus) error {
	doctor, err := s.doctors.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return err
	}

	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment.DoctorID != doctor.ID {
		return domain.ErrForbidden
	}

	if !appointment.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, appointment.Status, status)
	}

	patient, err := s.users.FindByID(ctx, appointment.PatientID)
	if err != nil {
		return fmt.Errorf("update appointment status: patient: %w", err)
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, status); err != nil {
		return err
	}

	n := domain.NewNotification(
		domain.NotificationAppointmentStatus,
		fmt.Sprintf("Your appointment has been %s", status),
		"/appointments",
	)
	if err := s.users.PushNotification(ctx, patient.ID, n); err != nil {
		return fmt.Errorf("update appointment status: notify patient: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appointmentID).
		Str("status", string(status)).
		Msg("appointment status updated")

	return nil
}

// parseSlot converts the stored date/time strings to an absolute instant in
// the configured timezone.
func (s *AppointmentService) parseSlot(date, timeOfDay string) (time.Time, error) {
	t, err := time.ParseInLocation(slotLayout, date+" "+timeOfDay, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", domain.ErrInvalidSlot, date, timeOfDay)
	}
	return t, nil
}
