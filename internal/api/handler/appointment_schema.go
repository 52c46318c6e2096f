package handler

import (
	"time"

	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// --- Request types ---

type doctorSnapshotRequest struct {
	FirstName          string  `json:"first_name"           validate:"required"`
	LastName           string  `json:"last_name"            validate:"required"`
	Specialization     string  `json:"specialization"       validate:"required"`
	FeePerConsultation float64 `json:"fee_per_consultation" validate:"required,gt=0"`
	Phone              string  `json:"phone"`
}

type patientSnapshotRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type bookAppointmentRequest struct {
	DoctorID string                 `json:"doctor_id"    validate:"required"`
	Doctor   doctorSnapshotRequest  `json:"doctor_info"  validate:"required"`
	Patient  patientSnapshotRequest `json:"patient_info" validate:"required"`
	Date     string                 `json:"date"         validate:"required"`
	Time     string                 `json:"time"         validate:"required"`
}

type availabilityRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date"      validate:"required"`
	Time     string `json:"time"      validate:"required"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected completed cancelled"`
}

// --- Response types ---

type bookAppointmentResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	AlreadyExisted bool   `json:"already_existed,omitempty"`
}

// availabilityResponse is a single unambiguous boolean; the legacy wording
// ("not Available" under success:true) is a defect that is not preserved.
type availabilityResponse struct {
	Available bool `json:"available"`
}

type appointmentResponse struct {
	ID        string                 `json:"id"`
	PatientID string                 `json:"patient_id"`
	DoctorID  string                 `json:"doctor_id"`
	Doctor    doctorSnapshotRequest  `json:"doctor_info"`
	Patient   patientSnapshotRequest `json:"patient_info"`
	Date      string                 `json:"date"`
	Time      string                 `json:"time"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

// --- Mappers ---

func toBookInput(req bookAppointmentRequest, patientID, idempotencyKey string) ports.BookAppointmentInput {
	return ports.BookAppointmentInput{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Doctor: domain.DoctorSnapshot{
			FirstName:          req.Doctor.FirstName,
			LastName:           req.Doctor.LastName,
			Specialization:     req.Doctor.Specialization,
			FeePerConsultation: req.Doctor.FeePerConsultation,
			Phone:              req.Doctor.Phone,
		},
		Patient: domain.PatientSnapshot{
			Name:  req.Patient.Name,
			Email: req.Patient.Email,
			Phone: req.Patient.Phone,
		},
		Date:           req.Date,
		Time:           req.Time,
		IdempotencyKey: idempotencyKey,
	}
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Doctor: doctorSnapshotRequest{
			FirstName:          a.Doctor.FirstName,
			LastName:           a.Doctor.LastName,
			Specialization:     a.Doctor.Specialization,
			FeePerConsultation: a.Doctor.FeePerConsultation,
			Phone:              a.Doctor.Phone,
		},
		Patient: patientSnapshotRequest{
			Name:  a.Patient.Name,
			Email: a.Patient.Email,
			Phone: a.Patient.Phone,
		},
		Date:      a.Date,
		Time:      a.Time,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	}
}

func toAppointmentResponses(as []*domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, len(as))
	for i, a := range as {
		out[i] = toAppointmentResponse(a)
	}
	return out
}
