package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authsvc "github.com/northhaul/fleetops-backend/internal/auth"
	"github.com/northhaul/fleetops-backend/internal/fleet"
	pkgAuth "github.com/northhaul/fleetops-backend/pkg/auth"
	"github.com/northhaul/fleetops-backend/pkg/config"
	"github.com/northhaul/fleetops-backend/pkg/db/models"
	"github.com/northhaul/fleetops-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error) {
	return &authsvc.LoginResult{AccessToken: "stub", TokenType: "Bearer"}, nil
}

type stubFleetService struct{}

func (stubFleetService) ListVehicles(ctx context.Context, params fleet.ListVehiclesParams) ([]models.Vehicle, error) {
	return []models.Vehicle{}, nil
}

func (stubFleetService) CreateVehicle(ctx context.Context, input fleet.CreateVehicleInput) (*models.Vehicle, error) {
	return &models.Vehicle{ID: 1, Make: input.Make, Model: input.Model, Year: input.Year, IsActive: true}, nil
}

func (stubFleetService) ListJobs(ctx context.Context, params fleet.ListJobsParams) ([]models.DeliveryJob, error) {
	return []models.DeliveryJob{}, nil
}

func (stubFleetService) CountJobs(ctx context.Context, filters fleet.JobFilters) (int64, error) {
	return 0, nil
}

func (stubFleetService) CreateJob(ctx context.Context, input fleet.CreateJobInput) (*models.DeliveryJob, error) {
	return &models.DeliveryJob{ID: 1, DestinationLocation: input.DestinationLocation}, nil
}

func (stubFleetService) AssignVehicle(ctx context.Context, jobID, vehicleID uint) (*models.DeliveryJob, error) {
	return &models.DeliveryJob{ID: jobID, VehicleID: &vehicleID}, nil
}

func (stubFleetService) MarkCompleted(ctx context.Context, jobIDs []uint) (fleet.CompletionResult, error) {
	return fleet.CompletionResult{Success: true}, nil
}

func (stubFleetService) MonthlyTotals(ctx context.Context, month *int) (fleet.MonthlyTotals, error) {
	return fleet.MonthlyTotals{}, nil
}

func testConfig(authMode string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		Auth: config.AuthConfig{
			Username: "dispatcher",
			Password: "s3cret",
			Mode:     authMode,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, stubAuthService{}, stubFleetService{})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), "dispatcher")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthEndpointsArePublic(t *testing.T) {
	router := newTestRouter(testConfig(config.AuthModeAll))

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestLoginIsAlwaysPublic(t *testing.T) {
	router := newTestRouter(testConfig(config.AuthModeAll))

	body := `{"username":"dispatcher","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d", resp.Code)
	}
}

func TestWritesModeGuardsOnlyMutations(t *testing.T) {
	cfg := testConfig(config.AuthModeWrites)
	router := newTestRouter(cfg)

	read := httptest.NewRequest(http.MethodGet, "/api/v1/delivery-jobs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, read)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for unauthenticated read got %d", resp.Code)
	}

	write := httptest.NewRequest(http.MethodPost, "/api/v1/delivery-jobs/complete", strings.NewReader(`{"job_ids":[1]}`))
	write.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, write)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated write got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/api/v1/delivery-jobs/complete", strings.NewReader(`{"job_ids":[1]}`))
	authed.Header.Set("Content-Type", "application/json")
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated write got %d", resp.Code)
	}
}

func TestAllModeGuardsReads(t *testing.T) {
	cfg := testConfig(config.AuthModeAll)
	router := newTestRouter(cfg)

	read := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, read)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated read got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated read got %d", resp.Code)
	}
}

func TestOffModeGuardsNothing(t *testing.T) {
	router := newTestRouter(testConfig(config.AuthModeOff))

	write := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", strings.NewReader(`{"make":"Nissan","model":"GT-R","year":2020}`))
	write.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, write)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for unauthenticated write got %d", resp.Code)
	}
}

func TestAssignRejectsNonNumericJobID(t *testing.T) {
	router := newTestRouter(testConfig(config.AuthModeOff))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery-jobs/abc/assign", strings.NewReader(`{"vehicle_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id got %d", resp.Code)
	}
}

func TestCompleteRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig(config.AuthModeOff))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery-jobs/complete", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}
