// Package position проверяет входящие отчеты о местоположении на физическую
// и временную правдоподобность перед тем, как они будут приняты.
package position

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/live_location_sync/internal/models"
)

// Reason - машинно-читаемая причина отклонения отчета
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonMissingCaptureTime  Reason = "missing_capture_time"
	ReasonLatitudeOutOfRange  Reason = "latitude_out_of_range"
	ReasonLongitudeOutOfRange Reason = "longitude_out_of_range"
	ReasonInvalidAccuracy     Reason = "invalid_accuracy"
	ReasonFutureCaptureTime   Reason = "capture_time_in_future"
	ReasonDuplicate           Reason = "duplicate_report"
	ReasonStale               Reason = "stale_report"
)

// Verdict - результат проверки отчета
type Verdict struct {
	Accepted bool
	Reason   Reason
	Detail   string
}

func accept() Verdict {
	return Verdict{Accepted: true}
}

func reject(reason Reason, format string, args ...any) Verdict {
	return Verdict{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Validator - чистый предикат над отчетом и текущим состоянием сущности.
// Побеждает отчет с самым поздним временем фиксации, а не последний пришедший.
type Validator struct {
	maxFutureSkew time.Duration
	now           func() time.Time
}

// NewValidator создает валидатор. maxFutureSkew <= 0 отключает проверку времени из будущего.
func NewValidator(maxFutureSkew time.Duration) *Validator {
	return &Validator{maxFutureSkew: maxFutureSkew, now: time.Now}
}

// Check проверяет отчет относительно текущего состояния (nil - состояния еще нет)
func (v *Validator) Check(report *models.PositionReport, current *models.LiveState) Verdict {
	if report.CapturedAt.IsZero() {
		return reject(ReasonMissingCaptureTime, "capture timestamp is required")
	}
	if math.IsNaN(report.Latitude) || report.Latitude < -90 || report.Latitude > 90 {
		return reject(ReasonLatitudeOutOfRange, "latitude %v is outside [-90, 90]", report.Latitude)
	}
	if math.IsNaN(report.Longitude) || report.Longitude < -180 || report.Longitude > 180 {
		return reject(ReasonLongitudeOutOfRange, "longitude %v is outside [-180, 180]", report.Longitude)
	}
	if report.Accuracy != nil && (math.IsNaN(*report.Accuracy) || *report.Accuracy < 0) {
		return reject(ReasonInvalidAccuracy, "accuracy %v must be a non-negative number", *report.Accuracy)
	}
	if v.maxFutureSkew > 0 {
		if limit := v.now().Add(v.maxFutureSkew); report.CapturedAt.After(limit) {
			return reject(ReasonFutureCaptureTime, "capture timestamp %s is ahead of server time by more than %s",
				report.CapturedAt.Format(time.RFC3339Nano), v.maxFutureSkew)
		}
	}

	if current == nil {
		return accept()
	}
	if report.CapturedAt.Equal(current.CapturedAt) {
		return reject(ReasonDuplicate, "report captured at %s is already the live state",
			report.CapturedAt.Format(time.RFC3339Nano))
	}
	if report.CapturedAt.Before(current.CapturedAt) {
		return reject(ReasonStale, "report captured at %s is older than live state captured at %s",
			report.CapturedAt.Format(time.RFC3339Nano), current.CapturedAt.Format(time.RFC3339Nano))
	}
	return accept()
}
