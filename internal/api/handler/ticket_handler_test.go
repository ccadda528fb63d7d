package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

type stubTicketService struct {
	created   *domain.Ticket
	createErr error
	createIn  ports.CreateTicketInput

	detail *ports.TicketDetail
	getErr error
}

func (s *stubTicketService) Create(_ context.Context, ownerID string, in ports.CreateTicketInput) (*domain.Ticket, error) {
	s.createIn = in
	return s.created, s.createErr
}

func (s *stubTicketService) List(_ context.Context, ownerID string) ([]*domain.Ticket, error) {
	return nil, nil
}

func (s *stubTicketService) Get(_ context.Context, ownerID, ticketID string) (*ports.TicketDetail, error) {
	return s.detail, s.getErr
}

func (s *stubTicketService) Update(_ context.Context, ownerID, ticketID string, in ports.UpdateTicketInput) (*domain.Ticket, error) {
	return nil, nil
}

func (s *stubTicketService) Delete(_ context.Context, ownerID, ticketID string) error {
	return nil
}

func TestTicketHandler_Create(t *testing.T) {
	svc := &stubTicketService{created: &domain.Ticket{
		ID: "ticket_1", OrganizationID: "org_1", FacilityID: "facility_1", CreatedByID: "user_1",
	}}
	h := NewTicketHandler(svc)

	c, rec := authedContext(t, http.MethodPost, "/tickets",
		`{"container_number":"MSCU1234567","organization_id":"org_1","facility_id":"facility_1","is_invoice_created":false}`,
		"user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.createIn.OrganizationID != "org_1" || svc.createIn.IsInvoiceCreated {
		t.Fatalf("service received %+v", svc.createIn)
	}
}

func TestTicketHandler_Create_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "no organization", body: `{"facility_id":"facility_1","is_invoice_created":false}`},
		{name: "no facility", body: `{"organization_id":"org_1","is_invoice_created":false}`},
		{name: "no invoice flag", body: `{"organization_id":"org_1","facility_id":"facility_1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewTicketHandler(&stubTicketService{})
			c, _ := authedContext(t, http.MethodPost, "/tickets", tc.body, "user_1")

			err := h.Create(c)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestTicketHandler_Get_HydratedDetail(t *testing.T) {
	svc := &stubTicketService{detail: &ports.TicketDetail{
		Ticket: &domain.Ticket{
			ID: "ticket_1", TruckID: "truck_1",
			OrganizationID: "org_1", FacilityID: "facility_1", CreatedByID: "user_1",
		},
		Truck:        &domain.Truck{ID: "truck_1", PlateNumber: "34ABC123"},
		Organization: &domain.Organization{ID: "org_1", Name: "Acme"},
		Facility:     &domain.Facility{ID: "facility_1", Name: "North Terminal"},
	}}
	h := NewTicketHandler(svc)

	c, rec := authedContext(t, http.MethodGet, "/tickets/ticket_1", "", "user_1")
	c.SetParamNames("id")
	c.SetParamValues("ticket_1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"id", "truck", "organization", "facility"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("response missing %q: %s", key, rec.Body.String())
		}
	}

	var truck domain.Truck
	if err := json.Unmarshal(body["truck"], &truck); err != nil {
		t.Fatalf("decode truck: %v", err)
	}
	if truck.PlateNumber != "34ABC123" {
		t.Fatalf("unexpected truck: %+v", truck)
	}
}

func TestTicketHandler_Get_OmitsAbsentReferences(t *testing.T) {
	svc := &stubTicketService{detail: &ports.TicketDetail{
		Ticket: &domain.Ticket{ID: "ticket_1", OrganizationID: "org_1", FacilityID: "facility_1"},
	}}
	h := NewTicketHandler(svc)

	c, rec := authedContext(t, http.MethodGet, "/tickets/ticket_1", "", "user_1")
	c.SetParamNames("id")
	c.SetParamValues("ticket_1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"truck", "organization", "facility"} {
		if _, ok := body[key]; ok {
			t.Fatalf("absent reference %q must be omitted: %s", key, rec.Body.String())
		}
	}
}

func TestTicketHandler_Get_AccessDeniedPassesThrough(t *testing.T) {
	h := NewTicketHandler(&stubTicketService{getErr: domain.ErrAccessDenied})

	c, _ := authedContext(t, http.MethodGet, "/tickets/ticket_1", "", "user_2")
	c.SetParamNames("id")
	c.SetParamValues("ticket_1")

	if err := h.Get(c); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied passthrough, got %v", err)
	}
}
