package appointment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/httperr"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts appointment CRUD for any authenticated role.
func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/appointments", h.List)
	authed.GET("/appointments/:id", h.Get)
	authed.POST("/appointments", h.Create)
	authed.PUT("/appointments/:id", h.Update)
	authed.DELETE("/appointments/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	a, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("invalid id"))
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("invalid id"))
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.ToHTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
