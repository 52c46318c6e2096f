package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// DoctorService implements the application, approval, and profile workflows.
type DoctorService struct {
	doctors ports.DoctorRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewDoctorService(doctors ports.DoctorRepository, users ports.UserRepository, log zerolog.Logger) *DoctorService {
	return &DoctorService{doctors: doctors, users: users, log: log}
}

// Apply creates a pending doctor profile and notifies every administrator.
// The submitted status is ignored; applications always start pending.
func (s *DoctorService) Apply(ctx context.Context, userID string, input ports.ApplyDoctorInput) (string, error) {
	now := time.Now().UTC()
	doctor := &domain.Doctor{
		UserID:             userID,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Phone:              input.Phone,
		Email:              input.Email,
		Website:            input.Website,
		Address:            input.Address,
		Specialization:     input.Specialization,
		Experience:         input.Experience,
		FeePerConsultation: input.FeePerConsultation,
		Status:             domain.DoctorPending,
		Timings:            input.Timings,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	id, err := s.doctors.Create(ctx, doctor)
	if err != nil {
		return "", err
	}

	admins, err := s.users.FindAdmins(ctx)
	if err != nil {
		return "", fmt.Errorf("apply doctor: find admins: %w", err)
	}
	if len(admins) == 0 {
		// The profile was already created; surface a handled error instead of
		// dereferencing a missing admin account.
		s.log.Error().Str("doctor_id", id).Msg("no admin account to notify")
		return "", domain.ErrAdminNotFound
	}

	n := domain.NewNotification(
		domain.NotificationDoctorApplication,
		fmt.Sprintf("%s %s has applied for a doctor account", input.FirstName, input.LastName),
		"/admin/doctors",
	)
	for _, admin := range admins {
		if err := s.users.PushNotification(ctx, admin.ID, n); err != nil {
			return "", fmt.Errorf("apply doctor: notify admin: %w", err)
		}
	}

	s.log.Info().Str("doctor_id", id).Str("user_id", userID).Msg("doctor application submitted")
	return id, nil
}

func (s *DoctorService) ListApproved(ctx context.Context) ([]*domain.Doctor, error) {
	return s.doctors.List(ctx, domain.DoctorApproved)
}

func (s *DoctorService) List(ctx context.Context) ([]*domain.Doctor, error) {
	return s.doctors.List(ctx, "")
}

// ChangeStatus applies an admin decision. The owning user is notified and
// their doctor flag is set iff the decision is approval. The doctor update
// and the user update are two independent writes; a crash between them can
// leave the flag stale until the next decision.
func (s *DoctorService) ChangeStatus(ctx context.Context, doctorID string, status domain.DoctorStatus) (*domain.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if !doctor.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, doctor.Status, status)
	}

	if err := s.doctors.UpdateStatus(ctx, doctorID, status); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, doctor.UserID)
	if err != nil {
		return nil, err
	}

	n := domain.NewNotification(
		domain.NotificationDoctorStatus,
		fmt.Sprintf("Your doctor account has been %s", status),
		"/notifications",
	)
	if err := s.users.PushNotification(ctx, user.ID, n); err != nil {
		return nil, err
	}

	if err := s.users.SetDoctorFlag(ctx, user.ID, status == domain.DoctorApproved); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("doctor_id", doctorID).
		Str("user_id", user.ID).
		Str("status", string(status)).
		Msg("doctor status changed")

	doctor.Status = status
	return doctor, nil
}

func (s *DoctorService) ProfileByUser(ctx context.Context, userID string) (*domain.Doctor, error) {
	return s.doctors.FindByUserID(ctx, userID)
}

func (s *DoctorService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateDoctorProfileInput) (*domain.Doctor, error) {
	doctor, err := s.doctors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	doctor.FirstName = input.FirstName
	doctor.LastName = input.LastName
	doctor.Phone = input.Phone
	doctor.Email = input.Email
	doctor.Website = input.Website
	doctor.Address = input.Address
	doctor.Specialization = input.Specialization
	doctor.Experience = input.Experience
	doctor.FeePerConsultation = input.FeePerConsultation
	doctor.Timings = input.Timings
	doctor.UpdatedAt = time.Now().UTC()

	if err := s.doctors.UpdateProfile(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}
