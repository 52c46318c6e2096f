package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicbook/booking-system/internal/api/metrics"
	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// DoctorHandler handles doctor application, listing, profile, and the admin
// approval surface.
type DoctorHandler struct {
	doctors ports.DoctorService
}

func NewDoctorHandler(doctors ports.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

// Apply submits a doctor application for the calling user.
//
// @Summary      Apply for a doctor account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyDoctorRequest  true  "Doctor profile"
// @Success      201   {object}  envelope
// @Failure      400   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/users/apply-doctor [patch]
func (h *DoctorHandler) Apply(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req applyDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id, err := h.doctors.Apply(c.Request().Context(), userID, toApplyInput(req))
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "doctor application submitted", applyDoctorResponse{
		ID:     id,
		Status: string(domain.DoctorPending),
	})
}

// ListApproved returns approved doctors for patient-facing listings.
//
// @Summary      List approved doctors
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/v1/doctors [get]
func (h *DoctorHandler) ListApproved(c echo.Context) error {
	doctors, err := h.doctors.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "doctors fetched", toDoctorResponses(doctors))
}

// List returns all doctors regardless of status. Admin only.
//
// @Summary      List all doctors
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorEnvelope
// @Router       /api/v1/admin/doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.doctors.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "doctors fetched", toDoctorResponses(doctors))
}

// ChangeStatus applies an admin decision on a doctor application.
//
// @Summary      Approve or reject a doctor application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Doctor id"
// @Param        body  body      changeDoctorStatusRequest  true  "Decision"
// @Success      200   {object}  envelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/admin/doctors/{id}/status [patch]
func (h *DoctorHandler) ChangeStatus(c echo.Context) error {
	var req changeDoctorStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	doctor, err := h.doctors.ChangeStatus(c.Request().Context(), c.Param("id"), domain.DoctorStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.DoctorDecisionsTotal.WithLabelValues(req.Status).Inc()
	return respond(c, http.StatusOK, "doctor status updated", toDoctorResponse(doctor))
}

// Profile returns the doctor profile owned by the calling user.
//
// @Summary      Get own doctor profile
// @Tags         doctor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/doctor/profile [get]
func (h *DoctorHandler) Profile(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	doctor, err := h.doctors.ProfileByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "doctor profile fetched", toDoctorResponse(doctor))
}

// UpdateProfile updates the calling doctor's own profile fields.
//
// @Summary      Update own doctor profile
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateDoctorProfileRequest  true  "Profile fields"
// @Success      200   {object}  envelope
// @Failure      404   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/doctor/profile [patch]
func (h *DoctorHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req updateDoctorProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	doctor, err := h.doctors.UpdateProfile(c.Request().Context(), userID, toUpdateProfileInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "doctor profile updated", toDoctorResponse(doctor))
}
