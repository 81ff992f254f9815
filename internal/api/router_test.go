package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"creditline/internal/decision"
	"creditline/internal/domain"
	"creditline/internal/service"
	"creditline/internal/store"
	"creditline/internal/utils"
)

const testSecret = "test-secret"

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.5 }
func (fixedRand) IntN(n int) int   { return n / 2 }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	repo := store.NewMemoryStore()
	engine := decision.NewEngine(decision.FixedProfile{Check: domain.CreditCheck{CreditScore: 720, Inquiries: 2, Utilization: 25}}, fixedRand{})
	r, err := SetupRouter(Services{
		Applications: service.NewApplicationService(repo, engine, nil),
		Auth:         service.NewAuthService(repo, testSecret, service.WithBcryptCost(bcrypt.MinCost)),
		JWTSecret:    testSecret,
	})
	require.NoError(t, err)
	return r, repo
}

func bearer(t *testing.T, role domain.Role) string {
	t.Helper()
	tok, err := utils.GenerateJWT(domain.User{ID: "usr_test", Email: "reviewer@example.com", Role: role}, testSecret, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func request(r http.Handler, method, path string, body any, auth string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validSubmission() gin.H {
	return gin.H{
		"firstName":        "John",
		"lastName":         "Doe",
		"email":            "john.doe@example.com",
		"phone":            "(555) 123-4567",
		"address":          "123 Main Street",
		"city":             "Austin",
		"state":            "TX",
		"zipCode":          "78701",
		"employmentStatus": "Full-Time",
		"annualIncome":     85000,
		"loanPurpose":      "Home Improvement",
		"loanAmount":       25000,
		"verification":     gin.H{"consentToCheck": true, "termsAgreed": true},
	}
}

func submit(t *testing.T, r http.Handler) domain.Application {
	t.Helper()
	w := request(r, http.MethodPost, "/api/applications", validSubmission(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var app domain.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &app))
	return app
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestRegisterValidatorsInstallsStatusRule(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators())

	assert.NoError(t, binding.Validator.ValidateStruct(StatusUpdateRequest{Status: domain.StatusApproved}))
	err := binding.Validator.ValidateStruct(StatusUpdateRequest{Status: "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appstatus")
}

func TestRootHealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t)

	w := request(r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Credit Application API is running", w.Body.String())

	w = request(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "creditline_http_requests_total")
}

func TestSubmitApplication(t *testing.T) {
	r, _ := newTestRouter(t)
	app := submit(t, r)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, domain.StatusPending, app.Status)
	require.NotNil(t, app.MLDecision)
	assert.Equal(t, domain.StatusApproved, app.MLDecision.Status)
	assert.Equal(t, 17000.0, app.MLDecision.CreditLimit)
	require.NotNil(t, app.CreditCheck)
	assert.Equal(t, 720, app.CreditCheck.CreditScore)
	require.NotNil(t, app.Verification)
	assert.True(t, app.Verification.TermsAgreed)

	w := request(r, http.MethodGet, "/api/applications/"+app.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched domain.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, app.ID, fetched.ID)
	assert.Equal(t, app.Email, fetched.Email)
}

func TestSubmitApplicationValidation(t *testing.T) {
	r, repo := newTestRouter(t)

	body := validSubmission()
	delete(body, "firstName")
	delete(body, "email")
	w := request(r, http.MethodPost, "/api/applications", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: firstName, email", errorMessage(t, w))

	body = validSubmission()
	body["annualIncome"] = -10
	w = request(r, http.MethodPost, "/api/applications", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "annualIncome is invalid", errorMessage(t, w))

	req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	apps, err := repo.ListApplications(req.Context())
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestGetUnknownApplication(t *testing.T) {
	r, _ := newTestRouter(t)
	w := request(r, http.MethodGet, "/api/applications/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, errorMessage(t, w))
}

func TestListApplications(t *testing.T) {
	r, _ := newTestRouter(t)
	first := submit(t, r)
	submit(t, r)

	w := request(r, http.MethodGet, "/api/applications", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var apps []domain.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apps))
	require.Len(t, apps, 2)
	assert.Equal(t, first.ID, apps[0].ID)

	w = request(r, http.MethodGet, "/api/applications?status=approved", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apps))
	assert.Empty(t, apps)

	w = request(r, http.MethodGet, "/api/applications?status=archived", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodGet, "/api/applications/user/John.Doe@example.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apps))
	assert.Len(t, apps, 2)

	w = request(r, http.MethodGet, "/api/applications/user/nobody@example.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUpdateStatusRequiresEmployee(t *testing.T) {
	r, _ := newTestRouter(t)
	app := submit(t, r)
	path := "/api/applications/" + app.ID + "/status"
	body := gin.H{"status": "processing"}

	w := request(r, http.MethodPut, path, body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPut, path, body, bearer(t, domain.RoleApplicant))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodPut, path, body, bearer(t, domain.RoleEmployee))
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, domain.StatusProcessing, updated.Status)
}

func TestUpdateStatusErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	app := submit(t, r)
	path := "/api/applications/" + app.ID + "/status"
	employee := bearer(t, domain.RoleEmployee)

	w := request(r, http.MethodPut, path, gin.H{"status": "archived"}, employee)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status must be one of pending, processing, approved, rejected", errorMessage(t, w))

	w = request(r, http.MethodPut, path, gin.H{}, employee)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodPut, "/api/applications/nope/status", gin.H{"status": "approved"}, employee)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(r, http.MethodPut, path, gin.H{"status": "approved"}, employee)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodPut, path, gin.H{"status": "rejected"}, employee)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cannot move application from approved to rejected", errorMessage(t, w))

	w = request(r, http.MethodGet, "/api/applications/"+app.ID, nil, "")
	var current domain.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
	assert.Equal(t, domain.StatusApproved, current.Status)
}

func TestEvaluateAndCheckStatus(t *testing.T) {
	r, _ := newTestRouter(t)
	app := submit(t, r)

	w := request(r, http.MethodGet, "/api/credit/check-status/"+app.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var report domain.StatusReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, domain.StatusPending, report.Status)
	assert.Equal(t, domain.StatusMessage(domain.StatusPending), report.Message)
	assert.Nil(t, report.Result)

	w = request(r, http.MethodPost, "/api/credit/evaluate/"+app.ID, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	employee := bearer(t, domain.RoleEmployee)
	w = request(r, http.MethodPost, "/api/credit/evaluate/"+app.ID, nil, employee)
	require.Equal(t, http.StatusOK, w.Code)
	var result domain.CreditResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Approved)
	assert.Equal(t, 17000.0, result.CreditLimit)
	assert.Equal(t, 10.99, result.InterestRate)
	assert.Equal(t, "****-****-****-5500", result.AccountNumber)

	w = request(r, http.MethodPost, "/api/credit/evaluate/"+app.ID, nil, employee)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = request(r, http.MethodGet, "/api/credit/check-status/"+app.ID, nil, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, domain.StatusApproved, report.Status)
	require.NotNil(t, report.Result)
	assert.Equal(t, result.AccountNumber, report.Result.AccountNumber)

	w = request(r, http.MethodPost, "/api/credit/evaluate/nope", nil, employee)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = request(r, http.MethodGet, "/api/credit/check-status/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	r, repo := newTestRouter(t)
	creds := gin.H{"email": "a@b.com", "password": "password123", "firstName": "Ann"}

	w := request(r, http.MethodPost, "/api/users/register", creds, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "passwordHash")
	var registered map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "a@b.com", registered["email"])
	assert.Equal(t, "applicant", registered["role"])
	assert.NotEmpty(t, registered["token"])

	w = request(r, http.MethodPost, "/api/users/register", creds, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	stored, err := repo.GetUserByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, registered["userId"], stored.ID)

	w = request(r, http.MethodPost, "/api/users/login", gin.H{"email": "a@b.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var session map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, registered["userId"], session["userId"])
	assert.NotEmpty(t, session["token"])

	w = request(r, http.MethodPost, "/api/users/login", gin.H{"email": "a@b.com", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, w))
	assert.NotContains(t, w.Body.String(), "token")

	w = request(r, http.MethodPost, "/api/users/login", gin.H{"email": "a@b.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEmployeeIsForbidden(t *testing.T) {
	r, _ := newTestRouter(t)
	w := request(r, http.MethodPost, "/api/users/register", gin.H{"email": "boss@b.com", "password": "password123", "role": "employee"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
