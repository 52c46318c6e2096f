package ports

import (
	"context"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts and their
// embedded notification inboxes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail looks up by the case-folded email address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindAdmins returns every account with the admin flag set. The admin is
	// a role-based set, not a singleton discovered ad hoc.
	FindAdmins(ctx context.Context) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetDoctorFlag(ctx context.Context, id string, isDoctor bool) error
	// PushNotification appends atomically to the user's unseen list.
	PushNotification(ctx context.Context, id string, n domain.Notification) error
	// SetNotifications replaces both inbox lists in a single write.
	SetNotifications(ctx context.Context, id string, seen, unseen []domain.Notification) error
}
