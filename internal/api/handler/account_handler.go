package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicbook/booking-system/internal/api/metrics"
	"github.com/clinicbook/booking-system/internal/core/ports"
)

// AccountHandler handles registration, login, profile, and inbox requests.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register creates a new user account.
//
// @Summary      Register a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Router       /api/v1/users/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.accounts.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return respond(c, http.StatusCreated, "account created", registerResponse{
		ID:    result.ID,
		Name:  result.Name,
		Email: result.Email,
	})
}

// Login authenticates an account and returns a bearer token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/v1/users/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "login successful", loginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

// Me returns the caller's own profile, password hash omitted.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/users/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "profile fetched", toProfileResponse(user))
}

// ListUsers returns every account. Admin only; the legacy unauthenticated
// variant of this route is a documented defect and is not preserved.
//
// @Summary      List all accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorEnvelope
// @Router       /api/v1/admin/users [get]
func (h *AccountHandler) ListUsers(c echo.Context) error {
	users, err := h.accounts.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return respond(c, http.StatusOK, "users fetched", out)
}

// MarkNotificationsSeen moves all unseen notifications to the seen list and
// returns both lists.
//
// @Summary      Mark all notifications seen
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/users/notifications [get]
func (h *AccountHandler) MarkNotificationsSeen(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	inbox, err := h.accounts.MarkNotificationsSeen(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "notifications marked seen", inboxResponse{
		Seen:   toNotificationResponses(inbox.Seen),
		Unseen: toNotificationResponses(inbox.Unseen),
	})
}

// ClearNotifications empties both notification lists.
//
// @Summary      Delete all notifications
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/users/notifications [delete]
func (h *AccountHandler) ClearNotifications(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.ClearNotifications(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "notifications cleared", toProfileResponse(user))
}
