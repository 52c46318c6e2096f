package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

const testSecret = "test-secret"

func newAccountService(users *stubUserRepo) *AccountService {
	return NewAccountService(users, testSecret, time.Hour, zerolog.Nop())
}

func TestRegister(t *testing.T) {
	users := newStubUserRepo()
	svc := newAccountService(users)

	result, err := svc.Register(context.Background(), "Ana Lopez", "Ana@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.ID == "" {
		t.Fatal("Register() returned empty id")
	}
	if result.Email != "ana@example.com" {
		t.Errorf("Register() email = %q, want normalized lowercase", result.Email)
	}

	stored, err := users.FindByID(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.PasswordHash == "secret123" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newAccountService(users)

	if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "Impostor", "ANA@example.com", "other")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newAccountService(newStubUserRepo())

	cases := []struct {
		name, userName, email, password string
	}{
		{"no name", "", "a@b.com", "pw"},
		{"no email", "Ana", "", "pw"},
		{"no password", "Ana", "a@b.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password)
			if !errors.Is(err, domain.ErrMissingCredentials) {
				t.Errorf("Register() error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	users := newStubUserRepo()
	svc := newAccountService(users)

	reg, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != reg.ID {
		t.Errorf("Login() user id = %q, want %q", result.User.ID, reg.ID)
	}

	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != reg.ID {
		t.Errorf("token sub = %v, want %q", claims["sub"], reg.ID)
	}
	if claims["role"] != domain.RoleUser {
		t.Errorf("token role = %v, want %q", claims["role"], domain.RoleUser)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAccountService(users)

	if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAccountService(newStubUserRepo())

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Login() error = %v, want ErrUserNotFound", err)
	}
}

func TestMarkNotificationsSeen(t *testing.T) {
	users := newStubUserRepo()
	svc := newAccountService(users)

	id, err := users.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	older := domain.NewNotification(domain.NotificationAppointmentStatus, "seen already", "/appointments")
	users.users[id].SeenNotifications = []domain.Notification{older}
	for _, msg := range []string{"first", "second"} {
		n := domain.NewNotification(domain.NotificationAppointmentNew, msg, "/doctor/appointments")
		if err := users.PushNotification(context.Background(), id, n); err != nil {
			t.Fatalf("PushNotification() error = %v", err)
		}
	}

	inbox, err := svc.MarkNotificationsSeen(context.Background(), id)
	if err != nil {
		t.Fatalf("MarkNotificationsSeen() error = %v", err)
	}
	if len(inbox.Unseen) != 0 {
		t.Errorf("unseen = %d entries, want 0", len(inbox.Unseen))
	}
	if len(inbox.Seen) != 3 {
		t.Fatalf("seen = %d entries, want 3", len(inbox.Seen))
	}
	if inbox.Seen[0].Message != "seen already" || inbox.Seen[1].Message != "first" || inbox.Seen[2].Message != "second" {
		t.Errorf("seen order wrong: %q %q %q", inbox.Seen[0].Message, inbox.Seen[1].Message, inbox.Seen[2].Message)
	}

	// Calling again with an empty unseen list must change nothing.
	again, err := svc.MarkNotificationsSeen(context.Background(), id)
	if err != nil {
		t.Fatalf("second MarkNotificationsSeen() error = %v", err)
	}
	if len(again.Seen) != 3 || len(again.Unseen) != 0 {
		t.Errorf("second call changed inbox: seen=%d unseen=%d", len(again.Seen), len(again.Unseen))
	}
}

func TestClearNotifications(t *testing.T) {
	users := newStubUserRepo()
	svc := newAccountService(users)

	id, err := users.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	n := domain.NewNotification(domain.NotificationDoctorStatus, "approved", "/notifications")
	if err := users.PushNotification(context.Background(), id, n); err != nil {
		t.Fatalf("PushNotification() error = %v", err)
	}

	user, err := svc.ClearNotifications(context.Background(), id)
	if err != nil {
		t.Fatalf("ClearNotifications() error = %v", err)
	}
	if len(user.SeenNotifications) != 0 || len(user.UnseenNotifications) != 0 {
		t.Errorf("inbox not empty after clear: seen=%d unseen=%d",
			len(user.SeenNotifications), len(user.UnseenNotifications))
	}
}
