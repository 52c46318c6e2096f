package ports

import (
	"context"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// RegisterResult is returned after account creation. The source system never
// echoed the new id; it is returned here for usability.
type RegisterResult struct {
	ID    string
	Name  string
	Email string
}

// LoginResult carries the signed token and the authenticated account.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Inbox is the pair of notification lists returned by MarkNotificationsSeen.
type Inbox struct {
	Seen   []domain.Notification
	Unseen []domain.Notification
}

// AccountService defines registration, login, profile, and inbox operations.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// MarkNotificationsSeen moves every unseen entry onto the tail of the
	// seen list and returns both resulting lists. Idempotent when the unseen
	// list is already empty.
	MarkNotificationsSeen(ctx context.Context, userID string) (*Inbox, error)
	// ClearNotifications empties both lists and returns the updated account.
	ClearNotifications(ctx context.Context, userID string) (*domain.User, error)
}
