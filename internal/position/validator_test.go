package position

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestValidator_Check(t *testing.T) {
	entityID := uuid.New()
	t100 := time.Unix(100, 0).UTC()
	current := &models.LiveState{EntityID: entityID, Latitude: 10, Longitude: 20, CapturedAt: t100}

	tests := []struct {
		name    string
		report  models.PositionReport
		current *models.LiveState
		want    Reason
	}{
		{
			name:   "first report is accepted",
			report: models.PositionReport{EntityID: entityID, Latitude: 10, Longitude: 20, CapturedAt: t100},
			want:   ReasonNone,
		},
		{
			name:    "newer report is accepted",
			report:  models.PositionReport{EntityID: entityID, Latitude: 12, Longitude: 22, CapturedAt: t100.Add(time.Second)},
			current: current,
			want:    ReasonNone,
		},
		{
			name:   "boundary coordinates are accepted",
			report: models.PositionReport{EntityID: entityID, Latitude: -90, Longitude: 180, CapturedAt: t100},
			want:   ReasonNone,
		},
		{
			name:    "older report is stale",
			report:  models.PositionReport{EntityID: entityID, Latitude: 11, Longitude: 21, CapturedAt: t100.Add(-10 * time.Second)},
			current: current,
			want:    ReasonStale,
		},
		{
			name:    "same capture time is a duplicate",
			report:  models.PositionReport{EntityID: entityID, Latitude: 11, Longitude: 21, CapturedAt: t100},
			current: current,
			want:    ReasonDuplicate,
		},
		{
			name:   "latitude above range",
			report: models.PositionReport{EntityID: entityID, Latitude: 90.0001, Longitude: 0, CapturedAt: t100},
			want:   ReasonLatitudeOutOfRange,
		},
		{
			name:   "latitude NaN",
			report: models.PositionReport{EntityID: entityID, Latitude: math.NaN(), Longitude: 0, CapturedAt: t100},
			want:   ReasonLatitudeOutOfRange,
		},
		{
			name:   "longitude below range",
			report: models.PositionReport{EntityID: entityID, Latitude: 0, Longitude: -180.5, CapturedAt: t100},
			want:   ReasonLongitudeOutOfRange,
		},
		{
			name:   "missing capture time",
			report: models.PositionReport{EntityID: entityID, Latitude: 0, Longitude: 0},
			want:   ReasonMissingCaptureTime,
		},
		{
			name:   "negative accuracy",
			report: models.PositionReport{EntityID: entityID, Latitude: 0, Longitude: 0, Accuracy: ptr(-1), CapturedAt: t100},
			want:   ReasonInvalidAccuracy,
		},
		{
			name:    "range check wins over staleness",
			report:  models.PositionReport{EntityID: entityID, Latitude: 91, Longitude: 0, CapturedAt: t100.Add(-time.Hour)},
			current: current,
			want:    ReasonLatitudeOutOfRange,
		},
	}

	v := NewValidator(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := v.Check(&tt.report, tt.current)
			assert.Equal(t, tt.want == ReasonNone, verdict.Accepted)
			assert.Equal(t, tt.want, verdict.Reason)
			if !verdict.Accepted {
				assert.NotEmpty(t, verdict.Detail)
			}
		})
	}
}

func TestValidator_FutureSkew(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	v := NewValidator(time.Minute)
	v.now = func() time.Time { return now }

	ok := v.Check(&models.PositionReport{CapturedAt: now.Add(30 * time.Second)}, nil)
	assert.True(t, ok.Accepted)

	late := v.Check(&models.PositionReport{CapturedAt: now.Add(2 * time.Minute)}, nil)
	assert.False(t, late.Accepted)
	assert.Equal(t, ReasonFutureCaptureTime, late.Reason)
}

func TestValidator_FutureSkewDisabled(t *testing.T) {
	v := NewValidator(0)
	verdict := v.Check(&models.PositionReport{CapturedAt: time.Now().Add(24 * time.Hour)}, nil)
	assert.True(t, verdict.Accepted)
}
