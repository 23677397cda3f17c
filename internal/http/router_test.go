package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/credence/credence-backend/internal/config"
	"github.com/credence/credence-backend/internal/services"
)

func testDeps() Deps {
	trust := services.NewTrustService()
	return Deps{
		Trust:  trust,
		Bond:   services.NewBondService(),
		Bulk:   services.NewBulkService(trust, 2),
		Health: services.NewHealthService("credence-backend"),
	}
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:  "/api",
		MaxBodyBytes: 1 << 20,
		RateRPS:      100,
		RateBurst:    10,
		CORS:         config.CORSConfig{AllowedOrigins: nil}, // allow-all branch
		Security:     config.SecurityConfig{EnableHSTS: false},
		OTEL:         config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestRouter(t *testing.T, deps Deps, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(io.Discard)

	r := gin.New()
	RegisterRoutes(r, deps, cfg)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_Health_Metrics_CORSAllowAll(t *testing.T) {
	r := newTestRouter(t, testDeps(), testConfig())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/health = %d", w.Code)
	}
	if w.Body.String() != `{"status":"ok","service":"credence-backend"}` {
		t.Fatalf("health body = %s", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected request id and security headers, got %#v", w.Header())
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "credence_http_requests_total") {
		t.Fatalf("GET /metrics bad: code=%d", w.Code)
	}
}

func TestRegisterRoutes_CatchAll(t *testing.T) {
	r := newTestRouter(t, testDeps(), testConfig())

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodGet, "/nope"},
		{http.MethodPost, "/api/health"}, // wrong method falls through to the catch-all
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("X-Request-Id", "test-req-id")
		w := serve(r, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s -> %d; want 404", tc.method, tc.path, w.Code)
		}
		want := `{"code":"NOT_FOUND","message":"Not found","requestId":"test-req-id"}`
		if w.Body.String() != want {
			t.Fatalf("%s %s body = %s; want %s", tc.method, tc.path, w.Body.String(), want)
		}
	}
}

func TestRegisterRoutes_TrustBondBulk(t *testing.T) {
	r := newTestRouter(t, testDeps(), testConfig())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/trust/GABC", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"address":"GABC"`) {
		t.Fatalf("trust: %d %s", w.Code, w.Body.String())
	}
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/bond/GABC", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"active":false`) {
		t.Fatalf("bond: %d %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/api/bulk/verify", strings.NewReader(`{"addresses":["a","b","c"]}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bulk over limit: %d %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["code"] != "UNPROCESSABLE" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRegisterRoutes_BodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	r := newTestRouter(t, testDeps(), cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/bulk/verify",
		strings.NewReader(`{"addresses":["0123456789","abcdefghij"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"code":"PAYLOAD_TOO_LARGE"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRegisterRoutes_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 1
	cfg.RateBurst = 1
	r := newTestRouter(t, testDeps(), cfg)

	if w := serve(r, httptest.NewRequest(http.MethodGet, "/api/trust/A", nil)); w.Code != http.StatusOK {
		t.Fatalf("first request: %d", w.Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/trust/A", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" || !strings.Contains(w.Body.String(), `"code":"RATE_LIMITED"`) {
		t.Fatalf("unexpected 429: %#v %s", w.Header(), w.Body.String())
	}
	// CORS still applies to rejected requests.
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header on 429")
	}

	// Health is exempt.
	for i := 0; i < 3; i++ {
		if w := serve(r, httptest.NewRequest(http.MethodGet, "/api/health", nil)); w.Code != http.StatusOK {
			t.Fatalf("health %d: %d", i, w.Code)
		}
	}
}

func TestRegisterRoutes_RateLimitDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 0
	r := newTestRouter(t, testDeps(), cfg)

	for i := 0; i < 50; i++ {
		if w := serve(r, httptest.NewRequest(http.MethodGet, "/api/trust/A", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
}

func TestRegisterRoutes_CORSWithOrigins(t *testing.T) {
	cfg := testConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	r := newTestRouter(t, testDeps(), cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	if w := serve(r, req); w.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin: %d", w.Code)
	}
}

func TestRegisterRoutes_GzipAppliesToErrors(t *testing.T) {
	r := newTestRouter(t, testDeps(), testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Request-Id", "gz")
	w := serve(r, req)
	if w.Code != http.StatusNotFound || w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip 404, got %d %#v", w.Code, w.Header())
	}
	zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	plain, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("gunzip: %v", err)
	}
	if string(plain) != `{"code":"NOT_FOUND","message":"Not found","requestId":"gz"}` {
		t.Fatalf("body = %s", plain)
	}
}

func TestRegisterRoutes_HealthProbeDown(t *testing.T) {
	deps := testDeps()
	deps.Health = services.NewHealthService("credence-backend", services.ProbeFunc{
		ProbeName: "ledger",
		Fn:        func(context.Context) error { return errors.New("unreachable") },
	})
	r := newTestRouter(t, deps, testConfig())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"details":{"ledger":"down"}`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRegisterRoutes_Swagger(t *testing.T) {
	cfg := testConfig()
	r := newTestRouter(t, testDeps(), cfg)
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be off by default, got %d", w.Code)
	}

	cfg.SwaggerEnabled = true
	r = newTestRouter(t, testDeps(), cfg)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"/bulk/verify"`) {
		t.Fatalf("swagger doc: %d", w.Code)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}

	// Disabled cap lets anything through.
	r2 := gin.New()
	r2.Use(limitBody(0))
	r2.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})
	w = serve(r2, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")))
	if w.Body.String() != "0123456789AB" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func Test_groupWithPrefix_and_joinPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}

	if joinPath("/", "/health") != "/health" || joinPath("/api", "/health") != "/api/health" {
		t.Fatalf("joinPath mismatch")
	}
}
