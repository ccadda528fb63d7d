package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
	"github.com/fleetdesk/logistics-api/internal/core/service"
)

const testJWTSecret = "router-test-secret"

// --- In-memory repositories backing the full HTTP surface ---

type memAuthRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	nextID  int
}

func (r *memAuthRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	created := *u
	r.nextID++
	created.ID = "user_" + strconv.Itoa(r.nextID)
	r.byEmail[created.Email] = &created
	out := created
	return &out, nil
}

func (r *memAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *memAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memTruckRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Truck
	nextID int
}

func (r *memTruckRepo) Insert(_ context.Context, t *domain.Truck) (*domain.Truck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.PlateNumber == t.PlateNumber {
			return nil, domain.ErrDuplicateTruck
		}
	}
	created := *t
	r.nextID++
	created.ID = "truck_" + strconv.Itoa(r.nextID)
	r.byID[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memTruckRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Truck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Truck
	for _, t := range r.byID {
		if t.CreatedByID == ownerID {
			out := *t
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *memTruckRepo) FindOwned(_ context.Context, ownerID, id string) (*domain.Truck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.CreatedByID != ownerID {
		return nil, domain.ErrTruckNotFound
	}
	out := *t
	return &out, nil
}

func (r *memTruckRepo) FindByID(_ context.Context, id string) (*domain.Truck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTruckNotFound
	}
	out := *t
	return &out, nil
}

func (r *memTruckRepo) Update(_ context.Context, id string, in ports.UpdateTruckInput) (*domain.Truck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTruckNotFound
	}
	if in.PlateNumber != nil {
		t.PlateNumber = *in.PlateNumber
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Capacity != nil {
		t.Capacity = *in.Capacity
	}
	out := *t
	return &out, nil
}

func (r *memTruckRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTruckNotFound
	}
	delete(r.byID, id)
	return nil
}

type memFacilityRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Facility
	nextID int
}

func (r *memFacilityRepo) Insert(_ context.Context, f *domain.Facility) (*domain.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Name == f.Name {
			return nil, domain.ErrDuplicateFacility
		}
	}
	created := *f
	r.nextID++
	created.ID = "facility_" + strconv.Itoa(r.nextID)
	r.byID[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memFacilityRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Facility
	for _, f := range r.byID {
		if f.CreatedByID == ownerID {
			out := *f
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *memFacilityRepo) FindOwned(_ context.Context, ownerID, id string) (*domain.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok || f.CreatedByID != ownerID {
		return nil, domain.ErrFacilityNotFound
	}
	out := *f
	return &out, nil
}

func (r *memFacilityRepo) FindByID(_ context.Context, id string) (*domain.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFacilityNotFound
	}
	out := *f
	return &out, nil
}

func (r *memFacilityRepo) Update(_ context.Context, id string, in ports.UpdateFacilityInput) (*domain.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFacilityNotFound
	}
	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.City != nil {
		f.City = *in.City
	}
	out := *f
	return &out, nil
}

func (r *memFacilityRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrFacilityNotFound
	}
	delete(r.byID, id)
	return nil
}

type memOrgRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Organization
	nextID int
}

func (r *memOrgRepo) Insert(_ context.Context, o *domain.Organization) (*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.TaxNumber == o.TaxNumber {
			return nil, domain.ErrDuplicateOrganization
		}
	}
	created := *o
	r.nextID++
	created.ID = "org_" + strconv.Itoa(r.nextID)
	r.byID[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memOrgRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Organization
	for _, o := range r.byID {
		if o.CreatedByID == ownerID {
			out := *o
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *memOrgRepo) FindOwned(_ context.Context, ownerID, id string) (*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok || o.CreatedByID != ownerID {
		return nil, domain.ErrOrganizationNotFound
	}
	out := *o
	return &out, nil
}

func (r *memOrgRepo) FindByID(_ context.Context, id string) (*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	out := *o
	return &out, nil
}

func (r *memOrgRepo) Update(_ context.Context, id string, in ports.UpdateOrganizationInput) (*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	if in.Name != nil {
		o.Name = *in.Name
	}
	out := *o
	return &out, nil
}

func (r *memOrgRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOrganizationNotFound
	}
	delete(r.byID, id)
	return nil
}

type memTicketRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Ticket
	nextID int
}

func (r *memTicketRepo) Insert(_ context.Context, tk *domain.Ticket) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tk.ContainerNumber != "" {
		for _, existing := range r.byID {
			if existing.ContainerNumber == tk.ContainerNumber {
				return nil, domain.ErrDuplicateTicket
			}
		}
	}
	created := *tk
	r.nextID++
	created.ID = "ticket_" + strconv.Itoa(r.nextID)
	r.byID[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memTicketRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Ticket
	for _, tk := range r.byID {
		if tk.CreatedByID == ownerID {
			out := *tk
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *memTicketRepo) FindOwned(_ context.Context, ownerID, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tk, ok := r.byID[id]
	if !ok || tk.CreatedByID != ownerID {
		return nil, domain.ErrTicketNotFound
	}
	out := *tk
	return &out, nil
}

func (r *memTicketRepo) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tk, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	out := *tk
	return &out, nil
}

func (r *memTicketRepo) Update(_ context.Context, id string, in ports.UpdateTicketInput) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tk, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	if in.IsInvoiceCreated != nil {
		tk.IsInvoiceCreated = *in.IsInvoiceCreated
	}
	if in.ExitTime != nil {
		tk.ExitTime = in.ExitTime
	}
	out := *tk
	return &out, nil
}

func (r *memTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTicketNotFound
	}
	delete(r.byID, id)
	return nil
}

// The prometheus middleware registers its collectors in the default registry,
// so the router must be constructed exactly once per test binary.
var (
	routerOnce sync.Once
	testRouter http.Handler
)

func newTestRouter() http.Handler {
	routerOnce.Do(func() {
		log := zerolog.Nop()
		trucks := &memTruckRepo{byID: make(map[string]*domain.Truck)}
		orgs := &memOrgRepo{byID: make(map[string]*domain.Organization)}
		facilities := &memFacilityRepo{byID: make(map[string]*domain.Facility)}
		tickets := &memTicketRepo{byID: make(map[string]*domain.Ticket)}

		testRouter = NewRouter(Deps{
			Services: Services{
				Auth:          service.NewAuthService(&memAuthRepo{byEmail: make(map[string]*domain.User)}, testJWTSecret, time.Hour, log),
				Trucks:        service.NewTruckService(trucks, log),
				Facilities:    service.NewFacilityService(facilities, log),
				Organizations: service.NewOrganizationService(orgs, log),
				Tickets:       service.NewTicketService(tickets, trucks, orgs, facilities, log),
			},
			Logger: log,
		})
	})
	return testRouter
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	fields := map[string]json.RawMessage{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &fields)
	}
	return rec, fields
}

func strField(fields map[string]json.RawMessage, key string) string {
	var s string
	_ = json.Unmarshal(fields[key], &s)
	return s
}

func signupUser(t *testing.T, router http.Handler, email, password, role string) string {
	t.Helper()
	rec, fields := doJSON(t, router, http.MethodPost, "/auth/signup", "",
		`{"email":"`+email+`","password":"`+password+`","name":"Test User","role":"`+role+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: status = %d, body = %s", email, rec.Code, rec.Body.String())
	}
	token := strField(fields, "access_token")
	if token == "" {
		t.Fatalf("signup %s: empty access_token", email)
	}
	return token
}

func TestRouter_EndToEnd(t *testing.T) {
	router := newTestRouter()

	alice := signupUser(t, router, "alice@example.com", "secret1", "ADMIN")
	bob := signupUser(t, router, "bob@example.com", "secret2", "DRIVER")

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodPost, "/auth/signup", "",
			`{"email":"alice@example.com","password":"other66","name":"Imposter","role":"ADMIN"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409; body = %s", rec.Code, rec.Body.String())
		}
		if strField(fields, "error") == "" {
			t.Fatalf("missing error envelope: %s", rec.Body.String())
		}
	})

	t.Run("signin", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodPost, "/auth/signin", "",
			`{"email":"alice@example.com","password":"secret1"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if strField(fields, "access_token") == "" {
			t.Fatalf("empty token: %s", rec.Body.String())
		}

		rec, _ = doJSON(t, router, http.MethodPost, "/auth/signin", "",
			`{"email":"alice@example.com","password":"wrongpass"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("wrong password: status = %d, want 401", rec.Code)
		}

		rec, _ = doJSON(t, router, http.MethodPost, "/auth/signin", "",
			`{"email":"nobody@example.com","password":"whatever"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("unknown email: status = %d, want 401", rec.Code)
		}
	})

	t.Run("profile", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodGet, "/users/profile", alice, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if strField(fields, "email") != "alice@example.com" {
			t.Fatalf("unexpected profile: %s", rec.Body.String())
		}
	})

	t.Run("guard rejects missing and bad tokens", func(t *testing.T) {
		for name, token := range map[string]string{
			"none":      "",
			"malformed": "not.a.jwt",
		} {
			rec, _ := doJSON(t, router, http.MethodGet, "/trucks", token, "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("%s token: status = %d, want 401", name, rec.Code)
			}
		}
	})

	t.Run("guard rejects unknown role", func(t *testing.T) {
		// A syntactically valid token signed with the right secret but an
		// out-of-catalog role must be stopped at the role gate.
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "user_999",
			"email": "m@example.com",
			"role":  "MANAGER",
			"iat":   time.Now().Unix(),
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		signed, err := tok.SignedString([]byte(testJWTSecret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		rec, _ := doJSON(t, router, http.MethodGet, "/trucks", signed, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	var truckID string
	t.Run("create truck", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodPost, "/trucks", alice,
			`{"plate_number":"34ABC123","driver_name":"Jan","driver_phone":"+31600000000","capacity":20,"status":"UNLOADED"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		truckID = strField(fields, "id")
		if truckID == "" {
			t.Fatalf("missing id: %s", rec.Body.String())
		}
		if strField(fields, "created_by_id") == "" {
			t.Fatalf("missing created_by_id: %s", rec.Body.String())
		}

		rec, _ = doJSON(t, router, http.MethodPost, "/trucks", bob,
			`{"plate_number":"34ABC123","driver_name":"Piet","driver_phone":"+31611111111","capacity":10,"status":"LOADED"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("duplicate plate: status = %d, want 409", rec.Code)
		}
	})

	t.Run("cross user truck access is denied", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodGet, "/trucks/"+truckID, bob, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("foreign get: status = %d, want 403; body = %s", rec.Code, rec.Body.String())
		}
		if strField(fields, "error") != "access to resource denied" {
			t.Fatalf("unexpected error message: %s", rec.Body.String())
		}

		rec, _ = doJSON(t, router, http.MethodPatch, "/trucks/"+truckID, bob, `{"status":"LOADED"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("foreign patch: status = %d, want 403", rec.Code)
		}
		rec, _ = doJSON(t, router, http.MethodDelete, "/trucks/"+truckID, bob, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("foreign delete: status = %d, want 403", rec.Code)
		}

		// Missing id must be indistinguishable from a foreign one.
		rec, _ = doJSON(t, router, http.MethodGet, "/trucks/no_such_id", alice, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("missing get: status = %d, want 403", rec.Code)
		}
	})

	t.Run("truck list is tenant scoped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trucks", nil)
		req.Header.Set("Authorization", "Bearer "+bob)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var trucks []domain.Truck
		if err := json.Unmarshal(rec.Body.Bytes(), &trucks); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		if len(trucks) != 0 {
			t.Fatalf("bob sees %d foreign trucks", len(trucks))
		}
	})

	t.Run("owner updates truck", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodPatch, "/trucks/"+truckID, alice, `{"status":"LOADED"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if strField(fields, "status") != "LOADED" {
			t.Fatalf("status not updated: %s", rec.Body.String())
		}
	})

	var orgID, facilityID string
	t.Run("create supporting resources", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodPost, "/organizations", alice,
			`{"name":"Acme","address":"Pier 4","tax_number":"1234567890","tax_office":"Central","invoice_address":"Pier 4"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("organization: status = %d, body = %s", rec.Code, rec.Body.String())
		}
		orgID = strField(fields, "id")

		rec, _ = doJSON(t, router, http.MethodPost, "/organizations", bob,
			`{"name":"Shadow Co","address":"x","tax_number":"1234567890","tax_office":"y","invoice_address":"z"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("duplicate tax number: status = %d, want 409", rec.Code)
		}

		rec, fields = doJSON(t, router, http.MethodPost, "/facilities", alice,
			`{"name":"North Terminal","address":"Dock Road 1","city":"Rotterdam","country":"NL"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("facility: status = %d, body = %s", rec.Code, rec.Body.String())
		}
		facilityID = strField(fields, "id")
	})

	t.Run("ticket lifecycle with hydration", func(t *testing.T) {
		rec, fields := doJSON(t, router, http.MethodPost, "/tickets", alice,
			`{"container_number":"MSCU1234567","truck_id":"`+truckID+`","organization_id":"`+orgID+`","facility_id":"`+facilityID+`","is_invoice_created":false}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
		}
		ticketID := strField(fields, "id")

		rec, fields = doJSON(t, router, http.MethodGet, "/tickets/"+ticketID, alice, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get: status = %d, body = %s", rec.Code, rec.Body.String())
		}
		for _, key := range []string{"truck", "organization", "facility"} {
			if _, ok := fields[key]; !ok {
				t.Fatalf("detail missing %q: %s", key, rec.Body.String())
			}
		}

		rec, _ = doJSON(t, router, http.MethodGet, "/tickets/"+ticketID, bob, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("foreign get: status = %d, want 403", rec.Code)
		}

		rec, fields = doJSON(t, router, http.MethodPatch, "/tickets/"+ticketID, alice, `{"is_invoice_created":true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("patch: status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var invoiced bool
		_ = json.Unmarshal(fields["is_invoice_created"], &invoiced)
		if !invoiced {
			t.Fatalf("invoice flag not set: %s", rec.Body.String())
		}
	})

	t.Run("owner deletes truck", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodDelete, "/trucks/"+truckID, alice, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("delete: status = %d, body = %s", rec.Code, rec.Body.String())
		}
		rec, _ = doJSON(t, router, http.MethodGet, "/trucks/"+truckID, alice, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("get after delete: status = %d, want 403", rec.Code)
		}
	})

	t.Run("operational endpoints", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodGet, "/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("health: status = %d", rec.Code)
		}
		rec, _ = doJSON(t, router, http.MethodGet, "/metrics", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("metrics: status = %d", rec.Code)
		}
	})
}
