package ports

import (
	"context"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// ApplyDoctorInput carries the profile fields submitted with a doctor
// application. The application status is always forced to pending server-side.
type ApplyDoctorInput struct {
	FirstName          string
	LastName           string
	Phone              string
	Email              string
	Website            string
	Address            string
	Specialization     string
	Experience         string
	FeePerConsultation float64
	Timings            domain.Timings
}

// UpdateDoctorProfileInput carries the caller-editable profile fields.
type UpdateDoctorProfileInput struct {
	FirstName          string
	LastName           string
	Phone              string
	Email              string
	Website            string
	Address            string
	Specialization     string
	Experience         string
	FeePerConsultation float64
	Timings            domain.Timings
}

// DoctorService defines the doctor application, approval, and profile workflows.
type DoctorService interface {
	// Apply creates a pending doctor profile for the calling user and
	// notifies every administrator account.
	Apply(ctx context.Context, userID string, input ApplyDoctorInput) (string, error)
	ListApproved(ctx context.Context) ([]*domain.Doctor, error)
	List(ctx context.Context) ([]*domain.Doctor, error)
	// ChangeStatus applies an admin decision, notifies the owning user, and
	// flips the user's doctor flag to match the decision.
	ChangeStatus(ctx context.Context, doctorID string, status domain.DoctorStatus) (*domain.Doctor, error)
	ProfileByUser(ctx context.Context, userID string) (*domain.Doctor, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateDoctorProfileInput) (*domain.Doctor, error)
}
