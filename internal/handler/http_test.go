package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Lee_Channel/internal/repository/memory"
	"Lee_Channel/internal/router"
	"Lee_Channel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer() *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	members := memory.NewMemberStore()
	channels := memory.NewChannelStore(members)

	authSvc := service.NewAuthService(users, sessions, nil, time.Hour)
	channelSvc := service.NewChannelService(channels, members, users, nil)
	return router.InitRouter(authSvc, channelSvc)
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":"hunter2hunter2"}`, username)
	w := do(r, http.MethodPost, "/api/user/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":"hunter2hunter2"}`, username)
	w := do(r, http.MethodPost, "/api/user/login", "", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createChannel(t *testing.T, r *gin.Engine, token, name string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/channels", token, fmt.Sprintf(`{"name":%q}`, name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestRegisterEndpoint(t *testing.T) {
	r := newServer()

	register(t, r, "alice")

	// Duplicate identifier.
	w := do(r, http.MethodPost, "/api/user/register", "", `{"username":"alice","password":"hunter2hunter2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Malformed body.
	w = do(r, http.MethodPost, "/api/user/register", "", `{"username":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	r := newServer()
	register(t, r, "alice")

	login(t, r, "alice")

	w := do(r, http.MethodPost, "/api/user/login", "", `{"username":"alice","password":"wrong password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	r := newServer()
	register(t, r, "alice")
	token := login(t, r, "alice")

	w := do(r, http.MethodGet, "/api/user/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/user/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestLogoutEndpoint(t *testing.T) {
	r := newServer()
	register(t, r, "alice")
	token := login(t, r, "alice")

	w := do(r, http.MethodPost, "/api/user/logout", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/user/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChannelLifecycleOverHTTP(t *testing.T) {
	r := newServer()
	register(t, r, "alice")
	bobID := register(t, r, "bob")
	alice := login(t, r, "alice")
	bob := login(t, r, "bob")

	chID := createChannel(t, r, alice, "general")

	// Creator reads back as admin member.
	w := do(r, http.MethodGet, "/api/channels/"+chID+"/members", alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":1`)

	// Non-member sees 404, not 403, on every action.
	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/api/channels/" + chID},
		{http.MethodPatch, "/api/channels/" + chID},
		{http.MethodDelete, "/api/channels/" + chID},
		{http.MethodGet, "/api/channels/" + chID + "/members"},
	} {
		body := ""
		if probe.method == http.MethodPatch {
			body = `{"topic":"probe"}`
		}
		w = do(r, probe.method, probe.path, bob, body)
		assert.Equal(t, http.StatusNotFound, w.Code, probe.method+" "+probe.path)
	}

	// Admin adds bob as plain member.
	w = do(r, http.MethodPost, "/api/channels/"+chID+"/members", alice,
		fmt.Sprintf(`{"user_id":%q,"role":0}`, bobID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate add conflicts.
	w = do(r, http.MethodPost, "/api/channels/"+chID+"/members", alice,
		fmt.Sprintf(`{"user_id":%q,"role":0}`, bobID))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Member can read but not write.
	w = do(r, http.MethodGet, "/api/channels/"+chID, bob, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodDelete, "/api/channels/"+chID, bob, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(r, http.MethodPatch, "/api/channels/"+chID, bob, `{"topic":"mine now"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin patches and deletes.
	w = do(r, http.MethodPatch, "/api/channels/"+chID, alice, `{"topic":"week notes"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "week notes")

	w = do(r, http.MethodDelete, "/api/channels/"+chID, alice, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/channels/"+chID, alice, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChannelBadIDs(t *testing.T) {
	r := newServer()
	register(t, r, "alice")
	token := login(t, r, "alice")

	w := do(r, http.MethodGet, "/api/channels/not-a-uuid", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Well-formed but unknown id: the requester is no member of it.
	w = do(r, http.MethodGet, "/api/channels/6a7e5f1e-1111-2222-3333-444455556666", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemberRoleChangeOverHTTP(t *testing.T) {
	r := newServer()
	register(t, r, "alice")
	bobID := register(t, r, "bob")
	alice := login(t, r, "alice")
	bob := login(t, r, "bob")

	chID := createChannel(t, r, alice, "general")
	w := do(r, http.MethodPost, "/api/channels/"+chID+"/members", alice,
		fmt.Sprintf(`{"user_id":%q,"role":0}`, bobID))
	require.Equal(t, http.StatusCreated, w.Code)

	// Member cannot change roles.
	w = do(r, http.MethodPatch, "/api/channels/"+chID+"/members/"+bobID, bob, `{"role":1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin promotes bob; bob can now patch the channel.
	w = do(r, http.MethodPatch, "/api/channels/"+chID+"/members/"+bobID, alice, `{"role":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPatch, "/api/channels/"+chID, bob, `{"topic":"now allowed"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// Bad role value.
	w = do(r, http.MethodPatch, "/api/channels/"+chID+"/members/"+bobID, alice, `{"role":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
