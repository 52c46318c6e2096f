package handler

import (
	"time"

	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// --- Request types ---

type timingsRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end"   validate:"required"`
}

type applyDoctorRequest struct {
	FirstName          string         `json:"first_name"           validate:"required"`
	LastName           string         `json:"last_name"            validate:"required"`
	Phone              string         `json:"phone"                validate:"required"`
	Email              string         `json:"email"                validate:"required,email"`
	Website            string         `json:"website"`
	Address            string         `json:"address"              validate:"required"`
	Specialization     string         `json:"specialization"       validate:"required"`
	Experience         string         `json:"experience"           validate:"required"`
	FeePerConsultation float64        `json:"fee_per_consultation" validate:"required,gt=0"`
	Timings            timingsRequest `json:"timings"              validate:"required"`
}

type updateDoctorProfileRequest struct {
	FirstName          string         `json:"first_name"           validate:"required"`
	LastName           string         `json:"last_name"            validate:"required"`
	Phone              string         `json:"phone"                validate:"required"`
	Email              string         `json:"email"                validate:"required,email"`
	Website            string         `json:"website"`
	Address            string         `json:"address"              validate:"required"`
	Specialization     string         `json:"specialization"       validate:"required"`
	Experience         string         `json:"experience"           validate:"required"`
	FeePerConsultation float64        `json:"fee_per_consultation" validate:"required,gt=0"`
	Timings            timingsRequest `json:"timings"              validate:"required"`
}

type changeDoctorStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// --- Response types ---

type timingsResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type doctorResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	Website            string          `json:"website,omitempty"`
	Address            string          `json:"address"`
	Specialization     string          `json:"specialization"`
	Experience         string          `json:"experience"`
	FeePerConsultation float64         `json:"fee_per_consultation"`
	Status             string          `json:"status"`
	Timings            timingsResponse `json:"timings"`
	CreatedAt          time.Time       `json:"created_at"`
}

type applyDoctorResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// --- Mappers ---

func toApplyInput(req applyDoctorRequest) ports.ApplyDoctorInput {
	return ports.ApplyDoctorInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		Email:              req.Email,
		Website:            req.Website,
		Address:            req.Address,
		Specialization:     req.Specialization,
		Experience:         req.Experience,
		FeePerConsultation: req.FeePerConsultation,
		Timings:            domain.Timings{Start: req.Timings.Start, End: req.Timings.End},
	}
}

func toUpdateProfileInput(req updateDoctorProfileRequest) ports.UpdateDoctorProfileInput {
	return ports.UpdateDoctorProfileInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		Email:              req.Email,
		Website:            req.Website,
		Address:            req.Address,
		Specialization:     req.Specialization,
		Experience:         req.Experience,
		FeePerConsultation: req.FeePerConsultation,
		Timings:            domain.Timings{Start: req.Timings.Start, End: req.Timings.End},
	}
}

func toDoctorResponse(d *domain.Doctor) doctorResponse {
	return doctorResponse{
		ID:                 d.ID,
		UserID:             d.UserID,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Phone:              d.Phone,
		Email:              d.Email,
		Website:            d.Website,
		Address:            d.Address,
		Specialization:     d.Specialization,
		Experience:         d.Experience,
		FeePerConsultation: d.FeePerConsultation,
		Status:             string(d.Status),
		Timings:            timingsResponse{Start: d.Timings.Start, End: d.Timings.End},
		CreatedAt:          d.CreatedAt,
	}
}

func toDoctorResponses(ds []*domain.Doctor) []doctorResponse {
	out := make([]doctorResponse, len(ds))
	for i, d := range ds {
		out[i] = toDoctorResponse(d)
	}
	return out
}
