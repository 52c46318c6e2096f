package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// AccountService implements registration, login, profile, and inbox operations.
type AccountService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AccountService) Register(ctx context.Context, name, email, password string) (*ports.RegisterResult, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index on email is the real duplicate guard; the lookup above
	// only shortcuts the common case.
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("user registered")

	return &ports.RegisterResult{ID: id, Name: name, Email: email}, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// MarkNotificationsSeen appends the full unseen list onto the tail of the
// seen list, preserving prior seen ordering, then clears unseen. Calling it
// again with no new notifications leaves the seen list unchanged.
func (s *AccountService) MarkNotificationsSeen(ctx context.Context, userID string) (*ports.Inbox, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := append(user.SeenNotifications, user.UnseenNotifications...)
	if err := s.users.SetNotifications(ctx, userID, seen, nil); err != nil {
		return nil, err
	}

	return &ports.Inbox{Seen: seen, Unseen: nil}, nil
}

func (s *AccountService) ClearNotifications(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetNotifications(ctx, userID, nil, nil); err != nil {
		return nil, err
	}

	user.SeenNotifications = nil
	user.UnseenNotifications = nil
	return user, nil
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
