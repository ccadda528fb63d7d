package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetdesk/logistics-api/internal/api/metrics"
	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// TruckHandler handles HTTP requests for truck operations.
type TruckHandler struct {
	service ports.TruckService
}

func NewTruckHandler(service ports.TruckService) *TruckHandler {
	return &TruckHandler{service: service}
}

// Create handles POST /trucks.
//
// @Summary      Register a new truck
// @Tags         trucks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTruckRequest  true  "Truck details"
// @Success      201   {object}  domain.Truck
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /trucks [post]
func (h *TruckHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTruckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	truck, err := h.service.Create(c.Request().Context(), identity.UserID, ports.CreateTruckInput{
		PlateNumber: req.PlateNumber,
		DriverName:  req.DriverName,
		DriverPhone: req.DriverPhone,
		Capacity:    req.Capacity,
		Status:      domain.TruckStatus(req.Status),
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("truck").Inc()
	return c.JSON(http.StatusCreated, truck)
}

// List handles GET /trucks. Lists all trucks created by the caller, newest first.
//
// @Summary      List own trucks
// @Tags         trucks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Truck
// @Failure      401  {object}  errorResponse
// @Router       /trucks [get]
func (h *TruckHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trucks, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trucks)
}

// Get handles GET /trucks/:id.
//
// @Summary      Get a truck by id
// @Tags         trucks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Truck id"
// @Success      200  {object}  domain.Truck
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /trucks/{id} [get]
func (h *TruckHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	truck, err := h.service.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("truck").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, truck)
}

// Update handles PATCH /trucks/:id, a partial update of an owned truck.
//
// @Summary      Update a truck by id
// @Tags         trucks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Truck id"
// @Param        body  body      updateTruckRequest  true  "Fields to update"
// @Success      200   {object}  domain.Truck
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /trucks/{id} [patch]
func (h *TruckHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTruckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	truck, err := h.service.Update(c.Request().Context(), identity.UserID, c.Param("id"), req.toInput())
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("truck").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, truck)
}

// Delete handles DELETE /trucks/:id.
//
// @Summary      Delete a truck by id
// @Tags         trucks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Truck id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /trucks/{id} [delete]
func (h *TruckHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("truck").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "truck deleted"})
}
