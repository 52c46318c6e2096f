package ports

import (
	"context"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// BookAppointmentInput carries a booking request. The snapshots are stored
// exactly as supplied and kept as historical copies on the appointment.
type BookAppointmentInput struct {
	PatientID      string
	DoctorID       string
	Doctor         domain.DoctorSnapshot
	Patient        domain.PatientSnapshot
	Date           string // "DD-MM-YY"
	Time           string // 24-hour "HH:mm"
	IdempotencyKey string // optional; repeated keys replay the first booking
}

// BookAppointmentResult is returned after booking.
type BookAppointmentResult struct {
	ID     string
	Status domain.AppointmentStatus
	// AlreadyExisted is true when the Idempotency-Key matched a previous booking.
	AlreadyExisted bool
}

// AvailabilityInput identifies the slot to check.
type AvailabilityInput struct {
	DoctorID string
	Date     string
	Time     string
}

// AvailabilityResult reports the slot check as a single unambiguous boolean.
type AvailabilityResult struct {
	Available bool
}

// AppointmentService defines booking, availability, and status operations.
type AppointmentService interface {
	Book(ctx context.Context, input BookAppointmentInput) (*BookAppointmentResult, error)
	// CheckAvailability reports a slot unavailable when any existing
	// appointment for the doctor on that date falls within one hour of the
	// requested time, inclusive on both ends.
	CheckAvailability(ctx context.Context, input AvailabilityInput) (*AvailabilityResult, error)
	ListForDoctor(ctx context.Context, doctorUserID string) ([]*domain.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error)
	// UpdateStatus applies a doctor's decision on an appointment they own and
	// notifies the patient.
	UpdateStatus(ctx context.Context, doctorUserID, appointmentID string, status domain.AppointmentStatus) error
}
