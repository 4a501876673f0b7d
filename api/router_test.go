package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KOMKZ/go-dealdesk/auth"
	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
	"github.com/KOMKZ/go-dealdesk/testutil"
)

type testEnv struct {
	router *gin.Engine
	tokens auth.TokenManager
	mr     *miniredis.Miniredis
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	client, mr := testutil.NewTestCache(t)

	policy := &cache.Policy{Enabled: true}
	policy.ApplyDefaults()

	tokens := auth.NewTokenManager(auth.Config{Secret: "test-secret"})

	router := NewRouter(RouterConfig{
		DB:           db,
		Cache:        client,
		Policy:       policy,
		TokenManager: tokens,
	})
	return &testEnv{router: router, tokens: tokens, mr: mr, db: db}
}

func (e *testEnv) token(t *testing.T, userID, orgID string, roles ...string) string {
	return testutil.IssueToken(t, e.tokens, userID, orgID, roles...)
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// typed list payloads for decoding
type dealList struct {
	Items []store.Deal `json:"items"`
}

type taskList struct {
	Items []store.Task `json:"items"`
}

// envelope mirrors httpx.Response with raw data
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestHealthz_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/v1/deals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeals_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "org-a", "member")

	w := env.do(t, http.MethodPost, "/api/v1/deals", tok, CreateDealReq{
		Title: "", Stage: "nonsense",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeals_WriteInvalidatesList(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "org-a", "member")

	// seed one deal
	w := env.do(t, http.MethodPost, "/api/v1/deals", tok, CreateDealReq{
		Title: "First deal", Stage: store.DealStageLead, Amount: 100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// first read misses and stores
	w = env.do(t, http.MethodGet, "/api/v1/deals", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))

	// second read is served from cache
	w = env.do(t, http.MethodGet, "/api/v1/deals", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.CacheStatusHit, w.Header().Get(middleware.CacheStatusHeader))

	// a write evicts the listing; the next read misses and sees the new row
	w = env.do(t, http.MethodPost, "/api/v1/deals", tok, CreateDealReq{
		Title: "Second deal", Stage: store.DealStageQualified, Amount: 200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/deals", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))

	var list dealList
	decodeData(t, w, &list)
	assert.Len(t, list.Items, 2)
}

func TestDeals_GetUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "org-a", "member", "admin")

	w := env.do(t, http.MethodPost, "/api/v1/deals", tok, CreateDealReq{
		Title: "Negotiation", Stage: store.DealStageNegotiation, Amount: 9000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created store.Deal
	decodeData(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = env.do(t, http.MethodGet, "/api/v1/deals/"+created.ID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/deals/"+created.ID, tok, UpdateDealReq{
		Title: "Negotiation", Stage: store.DealStageWon, Amount: 9500,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated store.Deal
	decodeData(t, w, &updated)
	assert.Equal(t, store.DealStageWon, updated.Stage)

	w = env.do(t, http.MethodDelete, "/api/v1/deals/"+created.ID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/deals/"+created.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeals_TenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	tokA := env.token(t, "user-1", "org-a", "member")
	tokB := env.token(t, "user-2", "org-b")

	w := env.do(t, http.MethodPost, "/api/v1/deals", tokA, CreateDealReq{
		Title: "org-a only", Stage: store.DealStageLead,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created store.Deal
	decodeData(t, w, &created)

	// warm org-a's list cache, then confirm org-b neither reuses the entry
	// nor sees the row
	w = env.do(t, http.MethodGet, "/api/v1/deals", tokA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/v1/deals", tokB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))

	var list dealList
	decodeData(t, w, &list)
	assert.Empty(t, list.Items)

	w = env.do(t, http.MethodGet, "/api/v1/deals/"+created.ID, tokB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTasks_ListIsCallerScoped(t *testing.T) {
	env := newTestEnv(t)
	tok1 := env.token(t, "user-1", "org-a", "member")
	tok2 := env.token(t, "user-2", "org-a")

	w := env.do(t, http.MethodPost, "/api/v1/tasks", tok1, CreateTaskReq{
		Title: "mine", Status: store.TaskStatusOpen, AssigneeID: "user-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/api/v1/tasks", tok1, CreateTaskReq{
		Title: "theirs", Status: store.TaskStatusOpen, AssigneeID: "user-2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// caches are per user: both first reads miss, each sees only their slice
	w = env.do(t, http.MethodGet, "/api/v1/tasks", tok1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))

	var list taskList
	decodeData(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "mine", list.Items[0].Title)

	w = env.do(t, http.MethodGet, "/api/v1/tasks", tok2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))

	list = taskList{}
	decodeData(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "theirs", list.Items[0].Title)
}

func TestClients_WriteEvictsDealListings(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "org-a", "member")

	// warm the deals cache
	w := env.do(t, http.MethodGet, "/api/v1/deals", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/v1/deals", tok, nil)
	require.Equal(t, middleware.CacheStatusHit, w.Header().Get(middleware.CacheStatusHeader))

	// client writes invalidate deals too (deal rows reference client data)
	w = env.do(t, http.MethodPost, "/api/v1/clients", tok, CreateClientReq{Name: "Globex"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/deals", tok, nil)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))
}

func TestDashboard_SummaryCachedAndInvalidated(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "org-a", "member")

	w := env.do(t, http.MethodGet, "/api/v1/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))

	var sum store.DashboardSummary
	decodeData(t, w, &sum)
	assert.Zero(t, sum.DealCount)

	w = env.do(t, http.MethodGet, "/api/v1/dashboard/summary", tok, nil)
	assert.Equal(t, middleware.CacheStatusHit, w.Header().Get(middleware.CacheStatusHeader))

	// any resource write refreshes the dashboard
	w = env.do(t, http.MethodPost, "/api/v1/deals", tok, CreateDealReq{
		Title: "new", Stage: store.DealStageLead,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/dashboard/summary", tok, nil)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))
	decodeData(t, w, &sum)
	assert.EqualValues(t, 1, sum.DealCount)
}

func TestMutations_RequireRoles(t *testing.T) {
	env := newTestEnv(t)
	member := env.token(t, "user-1", "org-a", "member")
	reader := env.token(t, "user-2", "org-a")

	w := env.do(t, http.MethodPost, "/api/v1/deals", member, CreateDealReq{
		Title: "gated", Stage: store.DealStageLead,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created store.Deal
	decodeData(t, w, &created)

	// a token without roles can read but not write
	w = env.do(t, http.MethodGet, "/api/v1/deals", reader, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/api/v1/deals", reader, CreateDealReq{
		Title: "nope", Stage: store.DealStageLead,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodDelete, "/api/v1/deals/"+created.ID, reader, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// members update but do not delete
	w = env.do(t, http.MethodPut, "/api/v1/deals/"+created.ID, member, UpdateDealReq{
		Title: "gated", Stage: store.DealStageQualified, Amount: 1,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, "/api/v1/deals/"+created.ID, member, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminFlush_RequiresRole(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "org-a")

	w := env.do(t, http.MethodPost, "/api/v1/admin/cache/flush", tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminFlush_OrgScope(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, "admin-1", "org-a", "admin")
	tokB := env.token(t, "user-2", "org-b")

	// warm caches for both organizations
	resp := testutil.GET("/api/v1/deals").WithToken(admin).Do(env.router)
	require.Equal(t, http.StatusOK, resp.Status())
	resp = testutil.GET("/api/v1/deals").WithToken(tokB).Do(env.router)
	require.Equal(t, http.StatusOK, resp.Status())

	resp = testutil.POST("/api/v1/admin/cache/flush").WithToken(admin).Do(env.router)
	require.Equal(t, http.StatusOK, resp.Status())

	// org-a entries are gone, org-b's survive
	resp = testutil.GET("/api/v1/deals").WithToken(admin).Do(env.router)
	assert.Equal(t, middleware.CacheStatusMiss, resp.CacheStatus())
	resp = testutil.GET("/api/v1/deals").WithToken(tokB).Do(env.router)
	assert.Equal(t, middleware.CacheStatusHit, resp.CacheStatus())
}

func TestAdminFlush_AllScope(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, "admin-1", "org-a", "admin")
	tokB := env.token(t, "user-2", "org-b")

	resp := testutil.GET("/api/v1/deals").WithToken(admin).Do(env.router)
	require.Equal(t, http.StatusOK, resp.Status())
	resp = testutil.GET("/api/v1/deals").WithToken(tokB).Do(env.router)
	require.Equal(t, http.StatusOK, resp.Status())

	resp = testutil.POST("/api/v1/admin/cache/flush").WithToken(admin).WithQuery("scope", "all").Do(env.router)
	require.Equal(t, http.StatusOK, resp.Status())

	resp = testutil.GET("/api/v1/deals").WithToken(tokB).Do(env.router)
	assert.Equal(t, middleware.CacheStatusMiss, resp.CacheStatus())
}

func TestDashboard_ShortTTLExpires(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "org-a")

	w := env.do(t, http.MethodGet, "/api/v1/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/v1/dashboard/summary", tok, nil)
	require.Equal(t, middleware.CacheStatusHit, w.Header().Get(middleware.CacheStatusHeader))

	env.mr.FastForward(31 * time.Second)

	w = env.do(t, http.MethodGet, "/api/v1/dashboard/summary", tok, nil)
	assert.Equal(t, middleware.CacheStatusMiss, w.Header().Get(middleware.CacheStatusHeader))
}
