package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/live_location_sync/internal/config"
	"github.com/shenikar/live_location_sync/internal/metrics"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, url string) *WebhookWorker {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "top-secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWebhookWorker(nil, logger, cfg)
}

func testEvent() (WebhookEvent, string) {
	state := &models.LiveState{
		EntityID:   uuid.New(),
		Latitude:   12,
		Longitude:  22,
		CapturedAt: time.Unix(200, 0).UTC(),
		UpdatedAt:  time.Unix(201, 0).UTC(),
	}
	event := NewLocationUpdatedEvent(state)
	payload, _ := json.Marshal(event)
	return event, string(payload)
}

func TestProcessWebhookEvent_SignsPayload(t *testing.T) {
	event, payload := testEvent()
	var gotSignature, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Webhook-Signature")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := newTestWorker(t, srv.URL)
	ok := w.processWebhookEvent(context.Background(), event, payload)

	require.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "top-secret"), gotSignature)
	assert.Contains(t, gotBody, `"type":"location.updated"`)
}

func TestProcessWebhookEvent_RetriesUntilSuccess(t *testing.T) {
	event, payload := testEvent()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := newTestWorker(t, srv.URL)
	ok := w.processWebhookEvent(context.Background(), event, payload)

	assert.True(t, ok)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestProcessWebhookEvent_GivesUp(t *testing.T) {
	event, payload := testEvent()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := newTestWorker(t, srv.URL)
	retries := metrics.WebhookDeliveries.WithLabelValues("retry")
	failed := metrics.WebhookDeliveries.WithLabelValues("failed")
	retriesBefore, failedBefore := testutil.ToFloat64(retries), testutil.ToFloat64(failed)

	ok := w.processWebhookEvent(context.Background(), event, payload)

	assert.False(t, ok)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	// три попытки - два повтора, последняя неудача не считается повтором
	assert.Equal(t, 2.0, testutil.ToFloat64(retries)-retriesBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(failed)-failedBefore)
}

func TestProcessWebhookEvent_NoURL(t *testing.T) {
	event, payload := testEvent()
	w := newTestWorker(t, "")
	assert.False(t, w.processWebhookEvent(context.Background(), event, payload))
}

func TestGenerateHMACSHA256(t *testing.T) {
	a := generateHMACSHA256("payload", "secret")
	b := generateHMACSHA256("payload", "secret")
	c := generateHMACSHA256("payload", "other")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
