package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/ports"
)

// SessionHandler exposes the session lifecycle.
type SessionHandler struct {
	session ports.SessionService
}

func NewSessionHandler(session ports.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// Login handles POST /v1/session.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.session.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Snapshot()))
}

// Register handles POST /v1/session/register.
//
// @Summary      Create an account and log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.session.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSessionResponse(h.session.Snapshot()))
}

// Get handles GET /v1/session. It never fails; an anonymous caller gets
// authenticated=false.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Snapshot()))
}

// Refresh handles POST /v1/session/refresh.
//
// @Summary      Revalidate the session against the backend
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	if err := h.session.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Snapshot()))
}

// Logout handles DELETE /v1/session.
//
// @Summary      Log out
// @Tags         session
// @Success      204
// @Router       /v1/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
