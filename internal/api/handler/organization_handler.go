package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetdesk/logistics-api/internal/api/metrics"
	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// OrganizationHandler handles HTTP requests for organization operations.
type OrganizationHandler struct {
	service ports.OrganizationService
}

func NewOrganizationHandler(service ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

type createOrganizationRequest struct {
	Name           string `json:"name"            validate:"required"`
	Address        string `json:"address"         validate:"required"`
	TaxNumber      string `json:"tax_number"      validate:"required"`
	TaxOffice      string `json:"tax_office"      validate:"required"`
	InvoiceAddress string `json:"invoice_address" validate:"required"`
}

type updateOrganizationRequest struct {
	Name           *string `json:"name"            validate:"omitempty,min=1"`
	Address        *string `json:"address"         validate:"omitempty,min=1"`
	TaxNumber      *string `json:"tax_number"      validate:"omitempty,min=1"`
	TaxOffice      *string `json:"tax_office"      validate:"omitempty,min=1"`
	InvoiceAddress *string `json:"invoice_address" validate:"omitempty,min=1"`
}

// Create handles POST /organizations.
//
// @Summary      Register a new organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrganizationRequest  true  "Organization details"
// @Success      201   {object}  domain.Organization
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	org, err := h.service.Create(c.Request().Context(), identity.UserID, ports.CreateOrganizationInput{
		Name:           req.Name,
		Address:        req.Address,
		TaxNumber:      req.TaxNumber,
		TaxOffice:      req.TaxOffice,
		InvoiceAddress: req.InvoiceAddress,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("organization").Inc()
	return c.JSON(http.StatusCreated, org)
}

// List handles GET /organizations.
//
// @Summary      List own organizations
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Organization
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orgs, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orgs)
}

// Get handles GET /organizations/:id.
//
// @Summary      Get an organization by id
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Organization id"
// @Success      200  {object}  domain.Organization
// @Failure      403  {object}  errorResponse
// @Router       /organizations/{id} [get]
func (h *OrganizationHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	org, err := h.service.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("organization").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, org)
}

// Update handles PATCH /organizations/:id.
//
// @Summary      Update an organization by id
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Organization id"
// @Param        body  body      updateOrganizationRequest  true  "Fields to update"
// @Success      200   {object}  domain.Organization
// @Failure      403   {object}  errorResponse
// @Router       /organizations/{id} [patch]
func (h *OrganizationHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	org, err := h.service.Update(c.Request().Context(), identity.UserID, c.Param("id"), ports.UpdateOrganizationInput{
		Name:           req.Name,
		Address:        req.Address,
		TaxNumber:      req.TaxNumber,
		TaxOffice:      req.TaxOffice,
		InvoiceAddress: req.InvoiceAddress,
	})
	if err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("organization").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, org)
}

// Delete handles DELETE /organizations/:id.
//
// @Summary      Delete an organization by id
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Organization id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		if err == domain.ErrAccessDenied {
			metrics.AuthzDenialsTotal.WithLabelValues("organization").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "organization deleted"})
}
