package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/nuevo-paciente", h.Register)
	e.GET("/pacientes", h.List)
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo JSON inválido")
	}
	age, err := in.Validate()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Register(c.Request().Context(), in, age)
	if err != nil {
		h.logger.Error().Err(err).Msg("store patient")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al registrar paciente")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list patients")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al obtener los pacientes")
	}
	if items == nil {
		items = []*Patient{}
	}
	return c.JSON(http.StatusOK, items)
}
