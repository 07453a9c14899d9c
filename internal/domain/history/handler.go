package history

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/httperr"
)

const listLimit = 200

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/patient_history", h.List)
	authed.POST("/patient_history", h.Create)
}

func (h *Handler) Create(c echo.Context) error {
	claims := auth.ClaimsFromContext(c.Request().Context())
	if claims == nil {
		return httperr.ToHTTP(httperr.Unauthenticated("authentication required"))
	}
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return httperr.ToHTTP(httperr.InvalidInput("malformed request body"))
	}
	e, err := h.svc.Create(c.Request().Context(), in, claims.UserID)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) List(c echo.Context) error {
	var patientID *uuid.UUID
	if raw := c.QueryParam("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return httperr.ToHTTP(httperr.InvalidInput("invalid patient_id"))
		}
		patientID = &id
	}
	items, err := h.svc.List(c.Request().Context(), patientID, listLimit)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	if items == nil {
		items = []*Entry{}
	}
	return c.JSON(http.StatusOK, items)
}
