package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

const testAPIKey = "top-secret"

type fakeService struct {
	views   map[uuid.UUID]domain.EmployeeView
	calls   []string
	lastIn  domain.EmployeeInput
	failAll error
	failOp  error
}

func newFakeService() *fakeService {
	return &fakeService{views: make(map[uuid.UUID]domain.EmployeeView)}
}

func (s *fakeService) List(_ context.Context) ([]domain.EmployeeView, error) {
	s.calls = append(s.calls, "list")
	if s.failAll != nil {
		return nil, s.failAll
	}
	views := make([]domain.EmployeeView, 0, len(s.views))
	for _, view := range s.views {
		views = append(views, view)
	}
	return views, nil
}

func (s *fakeService) Get(_ context.Context, publicID uuid.UUID) (domain.EmployeeView, error) {
	s.calls = append(s.calls, "get")
	view, ok := s.views[publicID]
	if !ok {
		return domain.EmployeeView{}, domain.ErrEmployeeNotFound
	}
	return view, nil
}

func (s *fakeService) Create(_ context.Context, in domain.EmployeeInput) (domain.EmployeeView, error) {
	s.calls = append(s.calls, "create")
	s.lastIn = in
	if s.failOp != nil {
		return domain.EmployeeView{}, s.failOp
	}
	employee := domain.ToEntity(in)
	employee.PublicID = uuid.New()
	view := domain.ToView(employee)
	s.views[view.EmployeeID] = view
	return view, nil
}

func (s *fakeService) Update(_ context.Context, publicID uuid.UUID, in domain.EmployeeInput) (domain.EmployeeView, error) {
	s.calls = append(s.calls, "update")
	s.lastIn = in
	if _, ok := s.views[publicID]; !ok {
		return domain.EmployeeView{}, domain.ErrEmployeeNotFound
	}
	employee := domain.ToEntity(in)
	employee.PublicID = publicID
	view := domain.ToView(employee)
	s.views[publicID] = view
	return view, nil
}

func (s *fakeService) Delete(_ context.Context, publicID uuid.UUID) (domain.EmployeeView, error) {
	s.calls = append(s.calls, "delete")
	view, ok := s.views[publicID]
	if !ok {
		return domain.EmployeeView{}, domain.ErrEmployeeNotFound
	}
	delete(s.views, publicID)
	return view, nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeService) {
	t.Helper()

	cfg := &config.Config{}
	cfg.APIKey.Header = "X-API-KEY"
	cfg.APIKey.Value = testAPIKey

	svc := newFakeService()
	h, err := NewHandler(cfg, svc)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, svc
}

func doRequest(h *Handler, method, path, body string, apiKey string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-KEY", apiKey)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

const johnDoeJSON = `{
	"firstName": "John",
	"lastName": "Doe",
	"email": "j@x.com",
	"birthday": "1970-02-15",
	"hobbies": ["chess", "basketball"]
}`

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) domain.EmployeeView {
	t.Helper()
	var view domain.EmployeeView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp
}

func TestCreateEmployee(t *testing.T) {
	h, svc := newTestHandler(t)

	rec := doRequest(h, http.MethodPost, "/employees", johnDoeJSON, testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	view := decodeView(t, rec)
	assert.NotEqual(t, uuid.Nil, view.EmployeeID)
	assert.Equal(t, "John", view.FirstName)
	assert.Equal(t, "1970-02-15", view.Birthday.String())
	assert.ElementsMatch(t, []string{"chess", "basketball"}, view.Hobbies)

	assert.Equal(t, "j@x.com", svc.lastIn.Email)
	assert.True(t, domain.NewDate(1970, time.February, 15).Equal(svc.lastIn.Birthday))
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	h, svc := newTestHandler(t)
	svc.failOp = domain.ErrDuplicateEmail

	rec := doRequest(h, http.MethodPost, "/employees", johnDoeJSON, testAPIKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.ErrDuplicateEmail.Error(), decodeError(t, rec).Message)
}

func TestCreateEmployee_InternalError(t *testing.T) {
	h, svc := newTestHandler(t)
	svc.failOp = errors.New("database is down")

	rec := doRequest(h, http.MethodPost, "/employees", johnDoeJSON, testAPIKey)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database is down")
}

func TestWriteEndpoints_RequireAPIKey(t *testing.T) {
	h, svc := newTestHandler(t)
	id := uuid.New().String()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		apiKey     string
		wantStatus int
	}{
		{name: "create without key", method: http.MethodPost, path: "/employees", body: johnDoeJSON, wantStatus: http.StatusUnauthorized},
		{name: "create with wrong key", method: http.MethodPost, path: "/employees", body: johnDoeJSON, apiKey: "nope", wantStatus: http.StatusForbidden},
		{name: "update without key", method: http.MethodPut, path: "/employees/" + id, body: johnDoeJSON, wantStatus: http.StatusUnauthorized},
		{name: "update with wrong key", method: http.MethodPut, path: "/employees/" + id, body: johnDoeJSON, apiKey: "nope", wantStatus: http.StatusForbidden},
		{name: "delete without key", method: http.MethodDelete, path: "/employees/" + id, wantStatus: http.StatusUnauthorized},
		{name: "delete with wrong key", method: http.MethodDelete, path: "/employees/" + id, apiKey: "nope", wantStatus: http.StatusForbidden},
		{name: "delete malformed id without key", method: http.MethodDelete, path: "/employees/not-a-uuid", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, tt.method, tt.path, tt.body, tt.apiKey)
			assert.Equal(t, tt.wantStatus, rec.Code)
			decodeError(t, rec)
		})
	}

	assert.Empty(t, svc.calls)
}

func TestReadEndpoints_ArePublic(t *testing.T) {
	h, svc := newTestHandler(t)

	created := doRequest(h, http.MethodPost, "/employees", johnDoeJSON, testAPIKey)
	require.Equal(t, http.StatusOK, created.Code)
	view := decodeView(t, created)

	rec := doRequest(h, http.MethodGet, "/employees", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var views []domain.EmployeeView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, view.EmployeeID, views[0].EmployeeID)

	rec = doRequest(h, http.MethodGet, "/employees/"+view.EmployeeID.String(), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, view.EmployeeID, decodeView(t, rec).EmployeeID)

	assert.Equal(t, []string{"create", "list", "get"}, svc.calls)
}

func TestGetAllEmployees_Empty(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/employees", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetAllEmployees_Error(t *testing.T) {
	h, svc := newTestHandler(t)
	svc.failAll = errors.New("timeout")

	rec := doRequest(h, http.MethodGet, "/employees", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetEmployee_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/employees/"+uuid.New().String(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.ErrEmployeeNotFound.Error(), decodeError(t, rec).Message)
}

func TestGetEmployee_MalformedID(t *testing.T) {
	h, svc := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/employees/42", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestUpdateEmployee(t *testing.T) {
	h, _ := newTestHandler(t)

	created := decodeView(t, doRequest(h, http.MethodPost, "/employees", johnDoeJSON, testAPIKey))

	body := `{"firstName":"Jonathan","lastName":"Doe","email":"j@x.com","birthday":"1970-02-15","hobbies":[]}`
	rec := doRequest(h, http.MethodPut, "/employees/"+created.EmployeeID.String(), body, testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeView(t, rec)
	assert.Equal(t, created.EmployeeID, updated.EmployeeID)
	assert.Equal(t, "Jonathan", updated.FirstName)
	assert.Empty(t, updated.Hobbies)
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodPut, "/employees/"+uuid.New().String(), johnDoeJSON, testAPIKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEmployee(t *testing.T) {
	h, _ := newTestHandler(t)

	created := decodeView(t, doRequest(h, http.MethodPost, "/employees", johnDoeJSON, testAPIKey))

	rec := doRequest(h, http.MethodDelete, "/employees/"+created.EmployeeID.String(), "", testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.EmployeeID, decodeView(t, rec).EmployeeID)

	rec = doRequest(h, http.MethodGet, "/employees/"+created.EmployeeID.String(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(h, http.MethodDelete, "/employees/"+created.EmployeeID.String(), "", testAPIKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEmployee_Validation(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format(domain.DateLayout)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"firstName":`},
		{name: "missing first name", body: `{"lastName":"Doe","email":"j@x.com","birthday":"1970-02-15","hobbies":[]}`},
		{name: "blank last name", body: `{"firstName":"John","lastName":"   ","email":"j@x.com","birthday":"1970-02-15","hobbies":[]}`},
		{name: "bad email", body: `{"firstName":"John","lastName":"Doe","email":"not-an-email","birthday":"1970-02-15","hobbies":[]}`},
		{name: "bad birthday format", body: `{"firstName":"John","lastName":"Doe","email":"j@x.com","birthday":"15.02.1970","hobbies":[]}`},
		{name: "future birthday", body: `{"firstName":"John","lastName":"Doe","email":"j@x.com","birthday":"` + future + `","hobbies":[]}`},
		{name: "missing hobbies", body: `{"firstName":"John","lastName":"Doe","email":"j@x.com","birthday":"1970-02-15"}`},
		{name: "blank hobby", body: `{"firstName":"John","lastName":"Doe","email":"j@x.com","birthday":"1970-02-15","hobbies":[" "]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestHandler(t)

			rec := doRequest(h, http.MethodPost, "/employees", tt.body, testAPIKey)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec).Message)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestCheckAPIKey(t *testing.T) {
	header := http.Header{}
	assert.Equal(t, apiKeyMissing, checkAPIKey(header, "X-API-KEY", "secret"))

	header.Set("X-API-KEY", "secret2")
	assert.Equal(t, apiKeyInvalid, checkAPIKey(header, "X-API-KEY", "secret"))

	header.Set("X-API-KEY", "secret")
	assert.Equal(t, apiKeyValid, checkAPIKey(header, "X-API-KEY", "secret"))
	assert.Equal(t, apiKeyMissing, checkAPIKey(header, "X-Other", "secret"))
}

func TestRecoverer(t *testing.T) {
	h, _ := newTestHandler(t)

	panicking := h.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	panicking.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
