package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetdesk/logistics-api/internal/api/metrics"
	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// FacilityHandler handles HTTP requests for facility operations.
type FacilityHandler struct {
	service ports.FacilityService
}

func NewFacilityHandler(service ports.FacilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

type createFacilityRequest struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city"    validate:"required"`
	Country string `json:"country" validate:"required"`
}

type updateFacilityRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1"`
	Address *string `json:"address" validate:"omitempty,min=1"`
	City    *string `json:"city"    validate:"omitempty,min=1"`
	Country *string `json:"country" validate:"omitempty,min=1"`
}

// Create handles POST /facilities.
//
// @Summary      Register a new facility
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFacilityRequest  true  "Facility details"
// @Success      201   {object}  domain.Facility
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /facilities [post]
func (h *FacilityHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createFacilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	facility, err := h.service.Create(c.Request().Context(), identity.UserID, ports.CreateFacilityInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("facility").Inc()
	return c.JSON(http.StatusCreated, facility)
}

// List handles GET /facilities.
//
// @Summary      List own facilities
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Facility
// @Router       /facilities [get]
func (h *FacilityHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	facilities, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, facilities)
}

// Get handles GET /facilities/:id.
//
// @Summary      Get a facility by id
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Facility id"
// @Success      200  {object}  domain.Facility
// @Failure      403  {object}  errorResponse
// @Router       /facilities/{id} [get]
func (h *FacilityHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	facility, err := h.service.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("facility").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, facility)
}

// Update handles PATCH /facilities/:id.
//
// @Summary      Update a facility by id
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Facility id"
// @Param        body  body      updateFacilityRequest  true  "Fields to update"
// @Success      200   {object}  domain.Facility
// @Failure      403   {object}  errorResponse
// @Router       /facilities/{id} [patch]
func (h *FacilityHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateFacilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	facility, err := h.service.Update(c.Request().Context(), identity.UserID, c.Param("id"), ports.UpdateFacilityInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("facility").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, facility)
}

// Delete handles DELETE /facilities/:id.
//
// @Summary      Delete a facility by id
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Facility id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /facilities/{id} [delete]
func (h *FacilityHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("facility").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "facility deleted"})
}
