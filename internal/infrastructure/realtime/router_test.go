package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func newRouterTestServer(t *testing.T, router *Router) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		router.Attach(NewConnection(r.URL.Query().Get("user"), ws))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialUser(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?user=" + userID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readText(t *testing.T, ws *websocket.Conn) string {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestNotifyUserTargetsOnlyThatUser(t *testing.T) {
	router := NewRouter()
	defer router.Close()
	srv := newRouterTestServer(t, router)

	alice := dialUser(t, srv, "1")
	bob := dialUser(t, srv, "2")

	require.Eventually(t, func() bool {
		return router.NotifyUser("2", []byte(`{"type":"new_message"}`))
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, `{"type":"new_message"}`, readText(t, bob))

	// Alice's socket stays silent.
	require.NoError(t, alice.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := alice.ReadMessage()
	assert.Error(t, err)
}

func TestNotifyUserUnknownUser(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	assert.False(t, router.NotifyUser("99", []byte("hello")))
}

func TestAttachReplacesExistingSession(t *testing.T) {
	router := NewRouter()
	defer router.Close()
	srv := newRouterTestServer(t, router)

	first := dialUser(t, srv, "7")
	require.Eventually(t, func() bool {
		return router.NotifyUser("7", []byte("first"))
	}, 2*time.Second, 10*time.Millisecond)
	readText(t, first)

	second := dialUser(t, srv, "7")

	// The first socket receives a close frame once the replacement attaches.
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := first.ReadMessage()
	require.Error(t, err)
	var closeErr *websocket.CloseError
	if assert.ErrorAs(t, err, &closeErr) {
		assert.Equal(t, 4001, closeErr.Code)
	}

	require.Eventually(t, func() bool {
		return router.NotifyUser("7", []byte("second"))
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "second", readText(t, second))
}

func TestDetachRemovesSession(t *testing.T) {
	router := NewRouter()
	defer router.Close()
	srv := newRouterTestServer(t, router)

	dialUser(t, srv, "3")
	require.Eventually(t, func() bool {
		return router.NotifyUser("3", []byte("ping"))
	}, 2*time.Second, 10*time.Millisecond)

	router.mu.RLock()
	sessionID := router.userSessions["3"]
	conn := router.sessions[sessionID]
	router.mu.RUnlock()
	require.NotNil(t, conn)

	router.Detach(conn)
	assert.False(t, router.NotifyUser("3", []byte("gone")))
}
