package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Role names carried in the JWT and checked by the RBAC middleware.
const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
	RoleUser   = "user"
)

// User models a patient, doctor, or administrator account. The doctor and
// admin capabilities are flags on the account rather than separate entities;
// a Doctor profile references its owning User by id.
type User struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	PasswordHash        string         `json:"-"`
	IsAdmin             bool           `json:"is_admin"`
	IsDoctor            bool           `json:"is_doctor"`
	UnseenNotifications []Notification `json:"unseen_notifications"`
	SeenNotifications   []Notification `json:"seen_notifications"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Role resolves the account flags to a single role name. Admin wins over
// doctor when both flags are set.
func (u *User) Role() string {
	switch {
	case u.IsAdmin:
		return RoleAdmin
	case u.IsDoctor:
		return RoleDoctor
	default:
		return RoleUser
	}
}

// Notification types pushed by the booking and account workflows.
const (
	NotificationDoctorApplication = "doctor-account-request"
	NotificationDoctorStatus      = "doctor-account-request-updated"
	NotificationAppointmentNew    = "new-appointment-request"
	NotificationAppointmentStatus = "appointment-status-updated"
)

// Notification is an inbox entry embedded on the owning User document.
// Entries move from the unseen list to the seen list when the user reads
// their inbox; they are never shared between users.
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	OnClickPath string    `json:"on_click_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotification builds an inbox entry with a fresh id and timestamp.
func NewNotification(ntype, message, onClickPath string) Notification {
	return Notification{
		ID:          newNotificationID(),
		Type:        ntype,
		Message:     message,
		OnClickPath: onClickPath,
		CreatedAt:   time.Now().UTC(),
	}
}

// newNotificationID returns a short random hex identifier in the format NTF-XXXXXXXXXXXX.
func newNotificationID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("NTF-%012X", time.Now().UnixNano())
	}
	return fmt.Sprintf("NTF-%012X", b)
}
