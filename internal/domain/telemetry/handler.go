package telemetry

import (
	"errors"
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
	e.POST("/enviar", h.Ingest)
	e.GET("/recibir", h.Latest)
	e.GET("/ultima-ubicacion/:usuario", h.LatestFor)
	e.GET("/datos-ubicacion", h.List)
}

func (h *Handler) Ingest(c echo.Context) error {
	var in IngestInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo JSON inválido")
	}
	if err := in.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rd, err := h.svc.Ingest(c.Request().Context(), in)
	if err != nil {
		h.logger.Error().Err(err).Str("dispositivo", in.Device).Msg("store reading")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al guardar el dato del equipo")
	}
	return c.JSON(http.StatusCreated, rd)
}

func (h *Handler) Latest(c echo.Context) error {
	rd, err := h.svc.Latest(c.Request().Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no hay datos de equipos aún")
		}
		h.logger.Error().Err(err).Msg("query latest reading")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al obtener el dato")
	}
	return c.JSON(http.StatusOK, rd)
}

func (h *Handler) LatestFor(c echo.Context) error {
	value := c.Param("usuario")
	rd, err := h.svc.LatestFor(c.Request().Context(), value)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no hay datos para "+value)
		}
		h.logger.Error().Err(err).Str("valor", value).Msg("query latest reading by key")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al obtener el dato")
	}
	return c.JSON(http.StatusOK, rd)
}

// List returns readings newest-first. The result is always 200, with an empty
// array when nothing matches, and list items omit the internal id.
func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		UserRef:  c.QueryParam("usuario"),
		DeviceID: c.QueryParam("dispositivo"),
	}
	items, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("list readings")
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno al obtener los datos")
	}
	result := make([]map[string]interface{}, 0, len(items))
	for _, rd := range items {
		result = append(result, rd.Summary())
	}
	return c.JSON(http.StatusOK, result)
}
