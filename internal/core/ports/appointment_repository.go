package ports

import (
	"context"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	// FindByDoctorAndDate returns every appointment for a doctor on the exact
	// stored date string, regardless of status. The availability check
	// interprets the time strings transiently.
	FindByDoctorAndDate(ctx context.Context, doctorID, date string) ([]*domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}
