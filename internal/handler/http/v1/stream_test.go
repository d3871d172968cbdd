package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/live_location_sync/internal/config"
	"github.com/shenikar/live_location_sync/internal/hub"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/repository"
	"github.com/shenikar/live_location_sync/internal/service"
	"github.com/shenikar/live_location_sync/pkg/token"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streamEnv struct {
	cfg       *config.Config
	server    *httptest.Server
	svc       service.LocationService
	hub       *hub.Hub
	admin     models.Principal
	caretaker models.Principal
	entity    *models.TrackedEntity
}

// newStreamEnv поднимает настоящий сервис поверх хранилища в памяти
func newStreamEnv(t *testing.T) *streamEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := testConfig()
	store := repository.NewMemoryStore()
	h := hub.New(store, logger)
	svc := service.NewLocationService(store, store, service.NewEntityAuthorizer(store), h, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc, logger, cfg).RegisterRoutes(router.Group("/api/v1"))
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		h.Close()
		server.Close()
	})

	env := &streamEnv{
		cfg:       cfg,
		server:    server,
		svc:       svc,
		hub:       h,
		admin:     models.Principal{ID: uuid.New(), Role: models.RoleAdmin},
		caretaker: models.Principal{ID: uuid.New(), Role: models.RoleCaretaker},
	}
	env.entity = &models.TrackedEntity{CaretakerID: env.caretaker.ID, Label: "cane"}
	require.NoError(t, svc.ProvisionEntity(context.Background(), env.admin, env.entity))
	return env
}

func (e *streamEnv) pingInterval() time.Duration {
	return e.cfg.StreamPingInterval
}

func (e *streamEnv) dial(t *testing.T, principal models.Principal) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	raw, err := token.Issue(testJWTSecret, principal, time.Hour)
	require.NoError(t, err)
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") +
		"/api/v1/entities/" + e.entity.ID.String() + "/stream?access_token=" + raw
	return websocket.DefaultDialer.Dial(url, nil)
}

func (e *streamEnv) submit(t *testing.T, sec int64) {
	t.Helper()
	_, err := e.svc.Submit(context.Background(), e.caretaker, &models.PositionReport{
		EntityID:   e.entity.ID,
		Latitude:   float64(sec) / 10,
		Longitude:  1,
		CapturedAt: time.Unix(sec, 0).UTC(),
	})
	require.NoError(t, err)
}

func readFrame(t *testing.T, conn *websocket.Conn) StreamFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame StreamFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func waitForSubscribers(t *testing.T, h *hub.Hub, entityID uuid.UUID, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.Count(entityID) == n }, time.Second, 5*time.Millisecond)
}

func TestStream_SnapshotThenUpdates(t *testing.T) {
	env := newStreamEnv(t)
	env.submit(t, 100)

	conn, _, err := env.dial(t, env.caretaker)
	require.NoError(t, err)
	defer conn.Close()

	snapshot := readFrame(t, conn)
	assert.Equal(t, frameSnapshot, snapshot.Type)
	assert.Equal(t, env.entity.ID, snapshot.EntityID)
	require.NotNil(t, snapshot.LiveState)
	assert.Equal(t, int64(100), snapshot.LiveState.CapturedAt.Unix())

	env.submit(t, 200)

	update := readFrame(t, conn)
	assert.Equal(t, frameUpdate, update.Type)
	require.NotNil(t, update.LiveState)
	assert.Equal(t, int64(200), update.LiveState.CapturedAt.Unix())
}

func TestStream_EmptySnapshot(t *testing.T) {
	env := newStreamEnv(t)

	conn, _, err := env.dial(t, env.admin)
	require.NoError(t, err)
	defer conn.Close()

	snapshot := readFrame(t, conn)
	assert.Equal(t, frameSnapshot, snapshot.Type)
	assert.Nil(t, snapshot.LiveState)
}

func TestStream_ForbiddenBeforeUpgrade(t *testing.T) {
	env := newStreamEnv(t)
	stranger := models.Principal{ID: uuid.New(), Role: models.RoleCaretaker}

	_, resp, err := env.dial(t, stranger)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStream_UnsubscribeCommand(t *testing.T) {
	env := newStreamEnv(t)

	conn, _, err := env.dial(t, env.caretaker)
	require.NoError(t, err)
	defer conn.Close()
	readFrame(t, conn)
	waitForSubscribers(t, env.hub, env.entity.ID, 1)

	require.NoError(t, conn.WriteJSON(StreamCommand{Type: commandUnsubscribe}))

	waitForSubscribers(t, env.hub, env.entity.ID, 0)
	// сервер завершает поток кадром закрытия
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestStream_ClientDisconnectRemovesSubscription(t *testing.T) {
	env := newStreamEnv(t)

	conn, _, err := env.dial(t, env.caretaker)
	require.NoError(t, err)
	readFrame(t, conn)
	waitForSubscribers(t, env.hub, env.entity.ID, 1)

	require.NoError(t, conn.Close())

	waitForSubscribers(t, env.hub, env.entity.ID, 0)
}

func TestStream_RevokedSessionIsClosed(t *testing.T) {
	env := newStreamEnv(t)

	conn, _, err := env.dial(t, env.caretaker)
	require.NoError(t, err)
	defer conn.Close()
	readFrame(t, conn)

	closed, err := env.svc.RevokeSessions(context.Background(), env.admin, env.caretaker.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
}

func TestStream_StaysOpenWhileUpdatesFlow(t *testing.T) {
	env := newStreamEnv(t)

	conn, _, err := env.dial(t, env.caretaker)
	require.NoError(t, err)
	defer conn.Close()
	readFrame(t, conn)

	// отчеты чаще интервала пинга дольше двух интервалов
	deadline := time.Now().Add(3 * env.pingInterval())
	sec := int64(100)
	for time.Now().Before(deadline) {
		sec++
		env.submit(t, sec)
		update := readFrame(t, conn)
		assert.Equal(t, frameUpdate, update.Type)
		require.NotNil(t, update.LiveState)
		assert.Equal(t, sec, update.LiveState.CapturedAt.Unix())
		time.Sleep(300 * time.Millisecond)
	}

	assert.Equal(t, 1, env.hub.Count(env.entity.ID))
}

func TestStream_MalformedCommandClosesWithInternalError(t *testing.T) {
	env := newStreamEnv(t)

	conn, _, err := env.dial(t, env.caretaker)
	require.NoError(t, err)
	defer conn.Close()
	readFrame(t, conn)
	waitForSubscribers(t, env.hub, env.entity.ID, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	waitForSubscribers(t, env.hub, env.entity.ID, 0)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseInternalServerErr), "got %v", err)
}
