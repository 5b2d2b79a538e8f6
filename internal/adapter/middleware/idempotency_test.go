package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketflow-backend/internal/domain/user"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// setupEcho wires RequireAuth (stub verifier) before the idempotency layer,
// the same order RegisterRoutes uses.
func setupEcho(rdb *redis.Client, ttl time.Duration, actor *user.User, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	g := e.Group("", RequireAuth(stubVerifier{user: actor}), IdempotencyMiddleware(rdb, ttl))
	g.POST("/tickets", handler)
	g.GET("/tickets", handler)
	return e
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer test-token")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

var testActor = &user.User{ID: 7, Username: "alice", Role: user.RoleOperator}

const (
	reqIDA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func Test_BypassOnGET(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, testActor, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/tickets", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_OptIn_MissingRequestIDPassesThrough(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 30*time.Second, testActor, func(c echo.Context) error {
		calls++
		return okCreatedHandler(c)
	})

	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/tickets", bytes.NewReader([]byte(`{"x":1}`)), nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("no Ax-Request-Id must pass through, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler should run every time without Ax-Request-Id, got %d calls", calls)
	}
	if got := len(mr.Keys()); got != 0 {
		t.Fatalf("no keys should be written without Ax-Request-Id, got %d", got)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, testActor, okCreatedHandler)

	now := time.Now().UTC().Format(time.RFC3339)

	cases := []struct {
		name string
		hdr  map[string]string
	}{
		{"invalid Ax-Request-Id", map[string]string{"Ax-Request-Id": "NOT-VALID", "Ax-Request-At": now}},
		{"invalid Ax-Request-At", map[string]string{"Ax-Request-Id": reqIDA, "Ax-Request-At": "not-a-time"}},
		{"missing Ax-Request-At", map[string]string{"Ax-Request-Id": reqIDA}},
		{"skewed Ax-Request-At", map[string]string{
			"Ax-Request-Id": reqIDA,
			"Ax-Request-At": time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doReq(t, e, http.MethodPost, "/tickets", bytes.NewReader([]byte(`{"x":1}`)), tc.hdr)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 2*time.Minute, testActor, func(c echo.Context) error {
		calls++
		return okCreatedHandler(c)
	})

	h := map[string]string{
		"Ax-Request-Id": reqIDA,
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
	}
	body := []byte(`{"title":"Broken printer"}`)

	rec1 := doReq(t, e, http.MethodPost, "/tickets", bytes.NewReader(body), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	rec2 := doReq(t, e, http.MethodPost, "/tickets", bytes.NewReader(body), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler must run once, got %d", calls)
	}
}

func Test_KeyIsScopedToActor(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	h := map[string]string{
		"Ax-Request-Id": reqIDA,
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
	}
	body := []byte(`{"title":"Broken printer"}`)

	calls := 0
	count := func(c echo.Context) error {
		calls++
		return okCreatedHandler(c)
	}

	eAlice := setupEcho(rdb, 2*time.Minute, testActor, count)
	eBob := setupEcho(rdb, 2*time.Minute, &user.User{ID: 8, Username: "bob", Role: user.RoleOperator}, count)

	if rec := doReq(t, eAlice, http.MethodPost, "/tickets", bytes.NewReader(body), h); rec.Code != http.StatusCreated {
		t.Fatalf("alice => want 201, got %d", rec.Code)
	}
	// same request id from a different user is a fresh operation
	if rec := doReq(t, eBob, http.MethodPost, "/tickets", bytes.NewReader(body), h); rec.Code != http.StatusCreated {
		t.Fatalf("bob => want 201, got %d", rec.Code)
	}
	if calls != 2 {
		t.Fatalf("each actor gets its own key; want 2 handler runs, got %d", calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, testActor, okCreatedHandler)

	body := []byte(`{"x":1}`)
	key := buildKey(http.MethodPost, "/tickets", "7", reqIDA)
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		RequestID:   reqIDA,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	h := map[string]string{
		"Ax-Request-Id": reqIDA,
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
	}
	rec := doReq(t, e, http.MethodPost, "/tickets", bytes.NewReader(body), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, testActor, okCreatedHandler)

	key := buildKey(http.MethodPost, "/tickets", "7", reqIDA)
	final := idempEntry{
		InProgress:  false,
		Code:        http.StatusCreated,
		Body:        []byte(`{"ok":true}`),
		BodySHA256:  bodyHash([]byte(`{"x":1}`)),
		RequestID:   reqIDA,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	h := map[string]string{
		"Ax-Request-Id": reqIDA,
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
	}
	rec := doReq(t, e, http.MethodPost, "/tickets", bytes.NewReader([]byte(`{"x":2}`)), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same reqID => want 409, got %d", rec.Code)
	}
}

func Test_NoActor_Returns401(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	// idempotency without RequireAuth in front: actor is unknown
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, time.Minute))
	e.POST("/tickets", okCreatedHandler)

	req := httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-Request-Id", reqIDA)
	req.Header.Set("Ax-Request-At", time.Now().UTC().Format(time.RFC3339))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no actor => want 401, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, time.Minute, testActor, okCreatedHandler)

	h := map[string]string{
		"Ax-Request-Id": reqIDA,
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
	}
	rec := doReq(t, e, http.MethodPost, "/tickets", bytes.NewReader([]byte(`{}`)), h)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}
