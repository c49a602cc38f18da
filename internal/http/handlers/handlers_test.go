package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"dulpton/internal/config"
	"dulpton/internal/domain"
	httpServer "dulpton/internal/http"
	"dulpton/internal/service"
	"dulpton/internal/storage"
	"dulpton/internal/storage/memory"
	"dulpton/internal/ws"

	"github.com/gin-gonic/gin"
)

type testServer struct {
	srv   *httptest.Server
	clock *fixedClock
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "handlers-test-secret")
	service.InitJWT()

	store := memory.New()
	if err := storage.EnsureDefaults(context.Background(), store); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}

	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := service.New(store, service.WithClock(clock.Now))

	cfg := &config.Config{
		APIRateLimit:   1000,
		APIRateWindow:  60,
		AuthRateLimit:  1000,
		AuthRateWindow: 60,
	}

	r := gin.New()
	httpServer.RegisterRoutes(r, svc, nil, cfg, "test", ws.NewHub())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, clock: clock}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	fields := make(map[string]json.RawMessage)
	json.NewDecoder(res.Body).Decode(&fields)
	return res, fields
}

func (ts *testServer) register(t *testing.T, username string) string {
	t.Helper()
	res, fields := ts.do(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", res.StatusCode)
	}
	var token string
	if err := json.Unmarshal(fields["token"], &token); err != nil {
		t.Fatalf("register: token missing: %v", err)
	}
	return token
}

func TestRegisterAndMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	res, fields := ts.do(t, "GET", "/api/v1/me", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("me: status %d", res.StatusCode)
	}
	var user domain.User
	if err := json.Unmarshal(mustMarshalFields(t, fields), &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q", user.Username)
	}
	if user.Points != domain.InitialPoints {
		t.Errorf("points = %d, want %d", user.Points, domain.InitialPoints)
	}
	if _, ok := fields["password"]; ok {
		t.Errorf("password leaked in response")
	}
}

func TestMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	res, _ := ts.do(t, "GET", "/api/v1/me", "", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", res.StatusCode)
	}
	res, _ = ts.do(t, "GET", "/api/v1/me", "not-a-jwt", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", res.StatusCode)
	}
}

func TestDuplicateUsernameConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	res, _ := ts.do(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	if res.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", res.StatusCode)
	}
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	res, _ := ts.do(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	if res.StatusCode != http.StatusOK {
		t.Errorf("login: status %d, want 200", res.StatusCode)
	}

	res, _ = ts.do(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login: status %d, want 401", res.StatusCode)
	}
}

func TestMiningCollectOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "miner")

	res, _ := ts.do(t, "POST", "/api/v1/mining/start", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("start: status %d", res.StatusCode)
	}

	// Immediate collection has nothing to pay out.
	res, _ = ts.do(t, "POST", "/api/v1/mining/collect", token, nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("early collect: status %d, want 400", res.StatusCode)
	}

	ts.clock.Advance(2 * time.Hour)
	res, fields := ts.do(t, "POST", "/api/v1/mining/collect", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("collect: status %d", res.StatusCode)
	}
	var reward int64
	if err := json.Unmarshal(fields["reward"], &reward); err != nil {
		t.Fatalf("decode reward: %v", err)
	}
	if reward != 4 {
		t.Errorf("reward = %d, want 4", reward)
	}
}

func TestStakingPoolsArePublic(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.srv.URL + "/api/v1/staking/pools")
	if err != nil {
		t.Fatalf("get pools: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var pools []domain.StakingPool
	if err := json.NewDecoder(res.Body).Decode(&pools); err != nil {
		t.Fatalf("decode pools: %v", err)
	}
	if len(pools) != 3 {
		t.Errorf("pools = %d, want 3", len(pools))
	}
}

func TestDailyClaimOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "claimer")

	res, fields := ts.do(t, "POST", "/api/v1/daily-rewards/claim", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("claim: status %d", res.StatusCode)
	}
	var streak int
	if err := json.Unmarshal(fields["streak"], &streak); err != nil {
		t.Fatalf("decode streak: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}

	res, _ = ts.do(t, "POST", "/api/v1/daily-rewards/claim", token, nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("second claim: status %d, want 400", res.StatusCode)
	}
}

func TestPurchaseOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "shopper")

	// Fresh accounts hold 100 points; the cheapest catalog item costs 150.
	res, _ := ts.do(t, "POST", "/api/v1/store/items/5/purchase", token, nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}

func mustMarshalFields(t *testing.T, fields map[string]json.RawMessage) []byte {
	t.Helper()
	b, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("re-marshal fields: %v", err)
	}
	return b
}
