package room

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/httperr"
	"github.com/hms/hms/pkg/pagination"
)

const assignmentListLimit = 200

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/rooms", h.List)
	authed.GET("/rooms/:id", h.Get)
	authed.GET("/room_assignments", h.ListAssignments)

	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.POST("/rooms", h.Create)
	admin.PUT("/rooms/:id", h.Update)
	admin.DELETE("/rooms/:id", h.Delete)
	admin.POST("/rooms/:id/vacate", h.Vacate)
	admin.POST("/room_assignments", h.Assign)
}

func (h *Handler) Create(c echo.Context) error {
	var r Room
	if err := c.Bind(&r); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	created, err := h.svc.Create(c.Request().Context(), &r)
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
	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, r)
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

func (h *Handler) Assign(c echo.Context) error {
	claims := auth.ClaimsFromContext(c.Request().Context())
	if claims == nil {
		return httperr.ToHTTP(httperr.Unauthenticated("authentication required"))
	}
	var in AssignInput
	if err := c.Bind(&in); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	a, err := h.svc.Assign(c.Request().Context(), in, claims.UserID)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":       "Assigned",
		"assignment_id": a.ID,
	})
}

func (h *Handler) Vacate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("invalid id"))
	}
	if err := h.svc.Vacate(c.Request().Context(), id); err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Room vacated"})
}

func (h *Handler) ListAssignments(c echo.Context) error {
	items, err := h.svc.ListAssignments(c.Request().Context(), assignmentListLimit)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	if items == nil {
		items = []*AssignmentDetail{}
	}
	return c.JSON(http.StatusOK, items)
}
