package handler

import (
	"time"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---
// Response-only types owned by the transport layer, so the JSON contract is
// not coupled to internal domain changes. The password hash is never
// serialized on any path.

type registerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IsDoctor  bool      `json:"is_doctor"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type notificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	OnClickPath string    `json:"on_click_path"`
	CreatedAt   time.Time `json:"created_at"`
}

type inboxResponse struct {
	Seen   []notificationResponse `json:"seen"`
	Unseen []notificationResponse `json:"unseen"`
}

type profileResponse struct {
	userResponse
	UnseenNotifications []notificationResponse `json:"unseen_notifications"`
	SeenNotifications   []notificationResponse `json:"seen_notifications"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsDoctor:  u.IsDoctor,
		CreatedAt: u.CreatedAt,
	}
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		userResponse:        toUserResponse(u),
		UnseenNotifications: toNotificationResponses(u.UnseenNotifications),
		SeenNotifications:   toNotificationResponses(u.SeenNotifications),
	}
}

func toNotificationResponses(ns []domain.Notification) []notificationResponse {
	out := make([]notificationResponse, len(ns))
	for i, n := range ns {
		out[i] = notificationResponse{
			ID:          n.ID,
			Type:        n.Type,
			Message:     n.Message,
			OnClickPath: n.OnClickPath,
			CreatedAt:   n.CreatedAt,
		}
	}
	return out
}
