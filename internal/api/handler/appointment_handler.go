package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicbook/booking-system/internal/api/metrics"
	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// AppointmentHandler handles booking, availability, and status requests.
type AppointmentHandler struct {
	appointments ports.AppointmentService
}

func NewAppointmentHandler(appointments ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// Book creates an appointment for the authenticated patient.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                  false  "Key to prevent duplicate submissions"
// @Param        body             body      bookAppointmentRequest  true   "Booking details"
// @Success      201              {object}  envelope
// @Failure      400              {object}  errorEnvelope
// @Failure      404              {object}  errorEnvelope
// @Failure      422              {object}  errorEnvelope
// @Router       /api/v1/appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	patientID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.appointments.Book(c.Request().Context(), toBookInput(req, patientID, idempotencyKey))
	if err != nil {
		return err
	}

	metrics.AppointmentsBookedTotal.WithLabelValues(strconv.FormatBool(result.AlreadyExisted)).Inc()

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return respond(c, status, "appointment requested", bookAppointmentResponse{
		ID:             result.ID,
		Status:         string(result.Status),
		AlreadyExisted: result.AlreadyExisted,
	})
}

// CheckAvailability reports whether a slot is free for booking.
//
// @Summary      Check slot availability
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      availabilityRequest  true  "Slot to check"
// @Success      200   {object}  envelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/appointments/availability [post]
func (h *AppointmentHandler) CheckAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.appointments.CheckAvailability(c.Request().Context(), ports.AvailabilityInput{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		return err
	}

	label := "unavailable"
	if result.Available {
		label = "available"
	}
	metrics.AvailabilityChecksTotal.WithLabelValues(label).Inc()

	return respond(c, http.StatusOK, "availability checked", availabilityResponse{
		Available: result.Available,
	})
}

// ListMine returns the authenticated patient's appointments. The patient id
// always comes from the token, never from the request body.
//
// @Summary      List own appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /api/v1/appointments [get]
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	patientID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	appointments, err := h.appointments.ListForPatient(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "appointments fetched", toAppointmentResponses(appointments))
}

// ListForDoctor returns the appointments of the doctor owned by the caller.
//
// @Summary      List own doctor appointments
// @Tags         doctor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/doctor/appointments [get]
func (h *AppointmentHandler) ListForDoctor(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	appointments, err := h.appointments.ListForDoctor(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "appointments fetched", toAppointmentResponses(appointments))
}

// UpdateStatus applies the calling doctor's decision on an appointment.
//
// @Summary      Update appointment status
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Appointment id"
// @Param        body  body      updateAppointmentStatusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/doctor/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req updateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.appointments.UpdateStatus(c.Request().Context(), userID, c.Param("id"), domain.AppointmentStatus(req.Status)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "appointment status updated", nil)
}
