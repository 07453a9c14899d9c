package medicine

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/httperr"
	"github.com/hms/hms/pkg/pagination"
)

const issueListLimit = 200

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/medicines", h.List)
	authed.GET("/medicines/low_stock", h.ListLowStock)
	authed.GET("/medicines/:id", h.Get)
	authed.GET("/medicine_issues", h.ListIssues)

	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.POST("/medicines", h.Create)
	admin.PUT("/medicines/:id", h.Update)
	admin.DELETE("/medicines/:id", h.Delete)
	admin.POST("/medicine_issues", h.Issue)
}

func (h *Handler) Create(c echo.Context) error {
	var m Medicine
	if err := c.Bind(&m); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	created, err := h.svc.Create(c.Request().Context(), &m)
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
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListLowStock(c echo.Context) error {
	items, err := h.svc.ListLowStock(c.Request().Context())
	if err != nil {
		return httperr.ToHTTP(err)
	}
	if items == nil {
		items = []*Medicine{}
	}
	return c.JSON(http.StatusOK, items)
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

func (h *Handler) Issue(c echo.Context) error {
	claims := auth.ClaimsFromContext(c.Request().Context())
	if claims == nil {
		return httperr.ToHTTP(httperr.Unauthenticated("authentication required"))
	}
	var in IssueInput
	if err := c.Bind(&in); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	issue, err := h.svc.Issue(c.Request().Context(), in, claims.UserID)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, issue)
}

func (h *Handler) ListIssues(c echo.Context) error {
	items, err := h.svc.ListIssues(c.Request().Context(), issueListLimit)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	if items == nil {
		items = []*IssueDetail{}
	}
	return c.JSON(http.StatusOK, items)
}
