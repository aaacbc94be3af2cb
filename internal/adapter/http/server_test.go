package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/catalog"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockReady struct {
	err error
}

func (m *mockReady) CheckReadiness(_ context.Context) error { return m.err }

type mockCatalog struct {
	asteroids []catalog.Asteroid
	asteroid  catalog.Asteroid
	err       error
}

func (m *mockCatalog) Feed(_ context.Context, _, _ time.Time) ([]catalog.Asteroid, error) {
	return m.asteroids, m.err
}

func (m *mockCatalog) Lookup(_ context.Context, _ string) (catalog.Asteroid, error) {
	return m.asteroid, m.err
}

type mockProvider struct {
	density float64
	err     error
}

func (m *mockProvider) PopulationDensity(_ context.Context, _, _ float64) (float64, error) {
	return m.density, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(ready ReadinessChecker, source catalog.Source, provider physics.DensityProvider) *Server {
	return NewServer(":0", ready, source, provider, observability.NewMetricsForTesting(), testLogger())
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// --- operational endpoints ---

func TestServer_Healthz(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_Readyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		s := newTestServer(&mockReady{}, nil, nil)
		rec := doRequest(s, http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		s := newTestServer(&mockReady{err: errors.New("still warming up")}, nil, nil)
		rec := doRequest(s, http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "still warming up")
	})
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodOptions, "/api/impact", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// --- impact endpoint ---

func TestServer_Impact_Success(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodPost, "/api/impact",
		`{"diameter_m":100,"speed_km_s":20,"angle_deg":45,"lat":40.7,"lon":-74.0}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result physics.ImpactResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Greater(t, result.Energy.EnergyMegatons, 0.0)
	assert.Greater(t, result.Crater.DiameterKm, 0.0)
	assert.NotEmpty(t, result.DamageZones)
	assert.NotEmpty(t, result.Comparison)
	assert.Equal(t, "S-type (assumed)", result.Metadata.TaxonomicClass)
}

func TestServer_Impact_LongitudeWraps(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodPost, "/api/impact",
		`{"diameter_m":100,"speed_km_s":20,"angle_deg":45,"lat":35.7,"lon":220.7}`)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Impact_EnrichesWithProvider(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, &mockProvider{density: 1234.5})
	rec := doRequest(s, http.MethodPost, "/api/impact",
		`{"diameter_m":100,"speed_km_s":20,"angle_deg":45,"lat":40.7,"lon":-74.0}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result physics.ImpactResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1234.5, result.Metadata.ObservedDensityKm2)
	assert.Equal(t, "remote", result.Metadata.ObservedDensitySource)
}

func TestServer_Impact_ProviderFailureIsAdvisory(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, &mockProvider{err: errors.New("timeout")})
	rec := doRequest(s, http.MethodPost, "/api/impact",
		`{"diameter_m":100,"speed_km_s":20,"angle_deg":45,"lat":40.7,"lon":-74.0}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result physics.ImpactResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "failed", result.Metadata.ObservedDensitySource)
	assert.Greater(t, result.Casualties.Fatalities+result.Casualties.Injuries, 0)
}

func TestServer_Impact_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"diameter too small", `{"diameter_m":5,"speed_km_s":20,"angle_deg":45,"lat":0,"lon":0}`, "diameter_m"},
		{"diameter too large", `{"diameter_m":20000,"speed_km_s":20,"angle_deg":45,"lat":0,"lon":0}`, "diameter_m"},
		{"speed too slow", `{"diameter_m":100,"speed_km_s":5,"angle_deg":45,"lat":0,"lon":0}`, "speed_km_s"},
		{"speed too fast", `{"diameter_m":100,"speed_km_s":90,"angle_deg":45,"lat":0,"lon":0}`, "speed_km_s"},
		{"angle too shallow", `{"diameter_m":100,"speed_km_s":20,"angle_deg":10,"lat":0,"lon":0}`, "angle_deg"},
		{"angle too steep", `{"diameter_m":100,"speed_km_s":20,"angle_deg":95,"lat":0,"lon":0}`, "angle_deg"},
		{"latitude out of range", `{"diameter_m":100,"speed_km_s":20,"angle_deg":45,"lat":95,"lon":0}`, "lat"},
		{"longitude out of range", `{"diameter_m":100,"speed_km_s":20,"angle_deg":45,"lat":0,"lon":400}`, "lon"},
		{"non-positive density override", `{"diameter_m":100,"speed_km_s":20,"angle_deg":45,"lat":0,"lon":0,"density_kg_m3":-1}`, "density_kg_m3"},
	}

	s := newTestServer(&mockReady{}, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/impact", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestServer_Impact_InvalidBody(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodPost, "/api/impact", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- deflection endpoint ---

func TestServer_Deflection_Success(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodPost, "/api/deflection",
		`{"method":"kinetic_impactor","asteroid_diameter_m":100,"asteroid_mass_kg":1.4e9,"asteroid_velocity_km_s":20,"time_to_impact_days":365}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result physics.DeflectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, physics.MethodKineticImpactor, result.Method)
	assert.Greater(t, result.VelocityChangeKmS, 0.0)
	assert.NotEmpty(t, result.Status)
}

func TestServer_Deflection_UnknownMethod(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodPost, "/api/deflection",
		`{"method":"tugboat","asteroid_diameter_m":100,"asteroid_mass_kg":1.4e9,"asteroid_velocity_km_s":20,"time_to_impact_days":365}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tugboat")
}

func TestServer_Deflection_MissingFields(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodPost, "/api/deflection", `{"method":"kinetic_impactor"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- validation endpoint ---

func TestServer_Validation(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodGet, "/api/validation", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []physics.ValidationRecord `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Chelyabinsk", resp.Results[0].Event)
	assert.Equal(t, "Tunguska", resp.Results[1].Event)
}

// --- catalog endpoints ---

func TestServer_Threats_Success(t *testing.T) {
	src := &mockCatalog{asteroids: []catalog.Asteroid{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}}
	s := newTestServer(&mockReady{}, src, nil)

	rec := doRequest(s, http.MethodGet, "/api/threats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
}

func TestServer_Threats_UpstreamError(t *testing.T) {
	src := &mockCatalog{err: errors.New("neows down")}
	s := newTestServer(&mockReady{}, src, nil)

	rec := doRequest(s, http.MethodGet, "/api/threats", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_Threats_NoCatalog(t *testing.T) {
	s := newTestServer(&mockReady{}, nil, nil)
	rec := doRequest(s, http.MethodGet, "/api/threats", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Asteroid_Success(t *testing.T) {
	src := &mockCatalog{asteroid: catalog.Asteroid{ID: "3542519", Name: "(2010 PK9)"}}
	s := newTestServer(&mockReady{}, src, nil)

	rec := doRequest(s, http.MethodGet, "/api/asteroid/3542519", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "(2010 PK9)")
}

func TestServer_Asteroid_UpstreamError(t *testing.T) {
	src := &mockCatalog{err: errors.New("neows down")}
	s := newTestServer(&mockReady{}, src, nil)

	rec := doRequest(s, http.MethodGet, "/api/asteroid/3542519", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
