package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

func seedUser(t *testing.T, users *stubUserRepo, u *domain.User) string {
	t.Helper()
	id, err := users.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func applyInput() ports.ApplyDoctorInput {
	return ports.ApplyDoctorInput{
		FirstName:          "Gregory",
		LastName:           "House",
		Phone:              "555-0100",
		Email:              "house@clinic.test",
		Specialization:     "diagnostics",
		Experience:         "20 years",
		FeePerConsultation: 150,
		Timings:            domain.Timings{Start: "09:00", End: "17:00"},
	}
}

func TestApplyNotifiesAdmins(t *testing.T) {
	users := newStubUserRepo()
	doctors := newStubDoctorRepo()
	svc := NewDoctorService(doctors, users, zerolog.Nop())

	applicantID := seedUser(t, users, &domain.User{Name: "Gregory", Email: "house@clinic.test"})
	adminA := seedUser(t, users, &domain.User{Name: "Admin A", Email: "a@clinic.test", IsAdmin: true})
	adminB := seedUser(t, users, &domain.User{Name: "Admin B", Email: "b@clinic.test", IsAdmin: true})

	doctorID, err := svc.Apply(context.Background(), applicantID, applyInput())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	doctor, err := doctors.FindByID(context.Background(), doctorID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if doctor.Status != domain.DoctorPending {
		t.Errorf("new application status = %q, want pending", doctor.Status)
	}

	for _, adminID := range []string{adminA, adminB} {
		admin, _ := users.FindByID(context.Background(), adminID)
		if len(admin.UnseenNotifications) != 1 {
			t.Fatalf("admin %s has %d notifications, want 1", adminID, len(admin.UnseenNotifications))
		}
		n := admin.UnseenNotifications[0]
		if n.Type != domain.NotificationDoctorApplication {
			t.Errorf("notification type = %q, want %q", n.Type, domain.NotificationDoctorApplication)
		}
		if n.OnClickPath != "/admin/doctors" {
			t.Errorf("notification path = %q, want /admin/doctors", n.OnClickPath)
		}
		if n.ID == "" || n.CreatedAt.IsZero() {
			t.Error("notification missing id or timestamp")
		}
	}

	// The applicant themselves must not be notified.
	applicant, _ := users.FindByID(context.Background(), applicantID)
	if len(applicant.UnseenNotifications) != 0 {
		t.Errorf("applicant has %d notifications, want 0", len(applicant.UnseenNotifications))
	}
}

func TestApplyWithoutAdmins(t *testing.T) {
	users := newStubUserRepo()
	doctors := newStubDoctorRepo()
	svc := NewDoctorService(doctors, users, zerolog.Nop())

	applicantID := seedUser(t, users, &domain.User{Name: "Gregory", Email: "house@clinic.test"})

	_, err := svc.Apply(context.Background(), applicantID, applyInput())
	if !errors.Is(err, domain.ErrAdminNotFound) {
		t.Errorf("Apply() error = %v, want ErrAdminNotFound", err)
	}
}

func TestChangeStatusApprove(t *testing.T) {
	users := newStubUserRepo()
	doctors := newStubDoctorRepo()
	svc := NewDoctorService(doctors, users, zerolog.Nop())

	applicantID := seedUser(t, users, &domain.User{Name: "Gregory", Email: "house@clinic.test"})
	seedUser(t, users, &domain.User{Name: "Admin", Email: "admin@clinic.test", IsAdmin: true})

	doctorID, err := svc.Apply(context.Background(), applicantID, applyInput())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	doctor, err := svc.ChangeStatus(context.Background(), doctorID, domain.DoctorApproved)
	if err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if doctor.Status != domain.DoctorApproved {
		t.Errorf("status = %q, want approved", doctor.Status)
	}

	owner, _ := users.FindByID(context.Background(), applicantID)
	if !owner.IsDoctor {
		t.Error("owner doctor flag not set after approval")
	}
	if len(owner.UnseenNotifications) != 1 {
		t.Fatalf("owner has %d notifications, want 1", len(owner.UnseenNotifications))
	}
	if got := owner.UnseenNotifications[0].Type; got != domain.NotificationDoctorStatus {
		t.Errorf("notification type = %q, want %q", got, domain.NotificationDoctorStatus)
	}
}

func TestChangeStatusReject(t *testing.T) {
	users := newStubUserRepo()
	doctors := newStubDoctorRepo()
	svc := NewDoctorService(doctors, users, zerolog.Nop())

	applicantID := seedUser(t, users, &domain.User{Name: "Gregory", Email: "house@clinic.test"})
	seedUser(t, users, &domain.User{Name: "Admin", Email: "admin@clinic.test", IsAdmin: true})

	doctorID, err := svc.Apply(context.Background(), applicantID, applyInput())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if _, err := svc.ChangeStatus(context.Background(), doctorID, domain.DoctorRejected); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}

	owner, _ := users.FindByID(context.Background(), applicantID)
	if owner.IsDoctor {
		t.Error("owner doctor flag set after rejection")
	}
}

func TestChangeStatusInvalidTransition(t *testing.T) {
	users := newStubUserRepo()
	doctors := newStubDoctorRepo()
	svc := NewDoctorService(doctors, users, zerolog.Nop())

	applicantID := seedUser(t, users, &domain.User{Name: "Gregory", Email: "house@clinic.test"})
	seedUser(t, users, &domain.User{Name: "Admin", Email: "admin@clinic.test", IsAdmin: true})

	doctorID, err := svc.Apply(context.Background(), applicantID, applyInput())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), doctorID, domain.DoctorApproved); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}

	// A decided application cannot be re-decided.
	_, err = svc.ChangeStatus(context.Background(), doctorID, domain.DoctorRejected)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("ChangeStatus() error = %v, want ErrInvalidTransition", err)
	}
}

func TestChangeStatusUnknownDoctor(t *testing.T) {
	svc := NewDoctorService(newStubDoctorRepo(), newStubUserRepo(), zerolog.Nop())

	_, err := svc.ChangeStatus(context.Background(), "missing", domain.DoctorApproved)
	if !errors.Is(err, domain.ErrDoctorNotFound) {
		t.Errorf("ChangeStatus() error = %v, want ErrDoctorNotFound", err)
	}
}

func TestListApproved(t *testing.T) {
	users := newStubUserRepo()
	doctors := newStubDoctorRepo()
	svc := NewDoctorService(doctors, users, zerolog.Nop())

	seedUser(t, users, &domain.User{Name: "Admin", Email: "admin@clinic.test", IsAdmin: true})
	u1 := seedUser(t, users, &domain.User{Name: "One", Email: "one@clinic.test"})
	u2 := seedUser(t, users, &domain.User{Name: "Two", Email: "two@clinic.test"})

	d1, err := svc.Apply(context.Background(), u1, applyInput())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := svc.Apply(context.Background(), u2, applyInput()); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), d1, domain.DoctorApproved); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}

	approved, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("ListApproved() error = %v", err)
	}
	if len(approved) != 1 || approved[0].ID != d1 {
		t.Errorf("ListApproved() = %d doctors, want exactly the approved one", len(approved))
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List() = %d doctors, want 2", len(all))
	}
}

func TestUpdateProfile(t *testing.T) {
	users := newStubUserRepo()
	doctors := newStubDoctorRepo()
	svc := NewDoctorService(doctors, users, zerolog.Nop())

	applicantID := seedUser(t, users, &domain.User{Name: "Gregory", Email: "house@clinic.test"})
	seedUser(t, users, &domain.User{Name: "Admin", Email: "admin@clinic.test", IsAdmin: true})
	if _, err := svc.Apply(context.Background(), applicantID, applyInput()); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), applicantID, ports.UpdateDoctorProfileInput{
		FirstName:          "Greg",
		LastName:           "House",
		Phone:              "555-0199",
		Email:              "house@clinic.test",
		Specialization:     "nephrology",
		Experience:         "21 years",
		FeePerConsultation: 200,
		Timings:            domain.Timings{Start: "10:00", End: "16:00"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.FirstName != "Greg" || updated.FeePerConsultation != 200 {
		t.Errorf("profile not updated: %+v", updated)
	}

	stored, err := svc.ProfileByUser(context.Background(), applicantID)
	if err != nil {
		t.Fatalf("ProfileByUser() error = %v", err)
	}
	if stored.Specialization != "nephrology" {
		t.Errorf("stored specialization = %q, want nephrology", stored.Specialization)
	}
}
