package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetdesk/logistics-api/internal/api/metrics"
	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// TicketHandler handles HTTP requests for ticket operations.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// Create handles POST /tickets.
//
// @Summary      Record a container movement
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket details"
// @Success      201   {object}  domain.Ticket
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), identity.UserID, ports.CreateTicketInput{
		ContainerNumber:  req.ContainerNumber,
		EntryTime:        req.EntryTime,
		ExitTime:         req.ExitTime,
		TruckID:          req.TruckID,
		OrganizationID:   req.OrganizationID,
		FacilityID:       req.FacilityID,
		IsInvoiceCreated: *req.IsInvoiceCreated,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("ticket").Inc()
	return c.JSON(http.StatusCreated, ticket)
}

// List handles GET /tickets. Lists raw tickets with reference ids only.
//
// @Summary      List own tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Ticket
// @Router       /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Get handles GET /tickets/:id. Returns a single ticket with hydrated references.
//
// @Summary      Get a ticket by id
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  ticketDetailResponse
// @Failure      403  {object}  errorResponse
// @Router       /tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("ticket").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, toTicketDetailResponse(detail))
}

// Update handles PATCH /tickets/:id.
//
// @Summary      Update a ticket by id
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Ticket id"
// @Param        body  body      updateTicketRequest  true  "Fields to update"
// @Success      200   {object}  domain.Ticket
// @Failure      403   {object}  errorResponse
// @Router       /tickets/{id} [patch]
func (h *TicketHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Update(c.Request().Context(), identity.UserID, c.Param("id"), ports.UpdateTicketInput{
		ContainerNumber:  req.ContainerNumber,
		EntryTime:        req.EntryTime,
		ExitTime:         req.ExitTime,
		TruckID:          req.TruckID,
		OrganizationID:   req.OrganizationID,
		FacilityID:       req.FacilityID,
		IsInvoiceCreated: req.IsInvoiceCreated,
	})
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("ticket").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Delete handles DELETE /tickets/:id.
//
// @Summary      Delete a ticket by id
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /tickets/{id} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("ticket").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "ticket deleted"})
}
