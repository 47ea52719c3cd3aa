package account

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rastreo/rastreo/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	tokens *auth.TokenIssuer
	logger zerolog.Logger
}

func NewHandler(svc *Service, tokens *auth.TokenIssuer, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/crear-cuenta", h.Create)
	e.POST("/login", h.Login)
	e.GET("/usuario/:usuario", h.Profile)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo JSON inválido")
	}
	age, err := in.Validate()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.Create(c.Request().Context(), in, age)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "el usuario ya está registrado")
		case errors.Is(err, ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "el correo ya está registrado")
		}
		h.logger.Error().Err(err).Str("usuario", in.Username).Msg("create account")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al crear la cuenta")
	}

	token, err := h.tokens.Issue(a.ID.String(), a.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue token")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al crear la cuenta")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      a.ID,
		"usuario": a.Username,
		"correo":  a.Email,
		"token":   token,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var in LoginInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo JSON inválido")
	}
	if err := in.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.Login(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Same status and body for unknown user and wrong password.
			return echo.NewHTTPError(http.StatusUnauthorized, "credenciales inválidas")
		}
		h.logger.Error().Err(err).Msg("login")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al iniciar sesión")
	}

	token, err := h.tokens.Issue(a.ID.String(), a.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue token")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al iniciar sesión")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":             a.ID,
		"nombreCuidador": a.CaregiverName,
		"usuario":        a.Username,
		"correo":         a.Email,
		"token":          token,
	})
}

func (h *Handler) Profile(c echo.Context) error {
	username := c.Param("usuario")
	a, err := h.svc.GetByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "usuario no encontrado")
		}
		h.logger.Error().Err(err).Str("usuario", username).Msg("get profile")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al obtener el perfil")
	}
	// The password hash is excluded by the model's json tags.
	return c.JSON(http.StatusOK, a)
}
