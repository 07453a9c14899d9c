package doctor

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/httperr"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/doctors", h.List)
	authed.GET("/doctors/:id", h.Get)

	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.POST("/doctors", h.Create)
	admin.PUT("/doctors/:id", h.Update)
	admin.DELETE("/doctors/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	created, err := h.svc.Create(c.Request().Context(), &d)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("invalid id"))
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, d)
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
	var p Patch
	if err := c.Bind(&p); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	updated, err := h.svc.Update(c.Request().Context(), id, &p)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, updated)
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
