package ports

import (
	"context"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// DoctorRepository defines persistence operations for doctor profiles.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
	// FindByUserID resolves the profile owned by a user account.
	FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	// List returns doctors filtered by status; an empty status returns all.
	List(ctx context.Context, status domain.DoctorStatus) ([]*domain.Doctor, error)
	UpdateStatus(ctx context.Context, id string, status domain.DoctorStatus) error
	// UpdateProfile persists the caller-editable profile fields. Status and
	// UserID are never touched by this write.
	UpdateProfile(ctx context.Context, doctor *domain.Doctor) error
}
