package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	v1 "github.com/shenikar/live_location_sync/internal/handler/http/v1"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/pkg/logger"
	"github.com/shenikar/live_location_sync/pkg/token"
)

const TrackSimVersion = "0.1.0"

// шаг имитируемой прогулки в градусах, около 10 м
const walkStep = 0.0001

var log *logrus.Logger

func main() {
	usage := `Live location sync simulator.

Issues tokens, provisions entities, walks a simulated device and watches the live stream.

Usage:
    tracksim token --secret=<secret> --sub=<principal_id> --role=<role> [--ttl=<ttl>]
    tracksim provision [--api_url=<api_url>] --jwt=<jwt> --caretaker=<principal_id> [--label=<label>]
    tracksim submit [--api_url=<api_url>] --jwt=<jwt> --entity=<entity_id>
        [--count=<count>] [--interval=<interval>] [--lat=<lat>] [--lon=<lon>]
    tracksim watch [--api_url=<api_url>] --jwt=<jwt> --entity=<entity_id> [--frames=<frames>]
    tracksim -h | --help
    tracksim --version

Options:
    -h --help                     Show this screen.
    --version                     Show version.
    --api_url=<api_url>           Service base url [default: http://localhost:8080/api/v1].
    --secret=<secret>             JWT_SECRET of the service.
    --sub=<principal_id>          Principal ID (UUID).
    --role=<role>                 admin, caretaker or device.
    --ttl=<ttl>                   Token lifetime [default: 24h].
    --jwt=<jwt>                   Bearer token.
    --caretaker=<principal_id>    Caretaker of the new entity.
    --label=<label>               Human readable label [default: ].
    --entity=<entity_id>          Tracked entity ID.
    --count=<count>               Number of reports to send [default: 10].
    --interval=<interval>         Delay between reports [default: 1s].
    --lat=<lat>                   Start latitude [default: 55.7558].
    --lon=<lon>                   Start longitude [default: 37.6173].
    --frames=<frames>             Print this many frames then exit, 0 for no limit [default: 0].`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], TrackSimVersion)
	if err != nil {
		panic(err)
	}

	log = logger.NewWithOutput(os.Getenv("LOG_LEVEL"), logger.FormatText, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if token_, _ := opts.Bool("token"); token_ {
		err = issueToken(opts)
	} else if provision_, _ := opts.Bool("provision"); provision_ {
		err = provision(ctx, opts)
	} else if submit_, _ := opts.Bool("submit"); submit_ {
		err = submit(ctx, opts)
	} else if watch_, _ := opts.Bool("watch"); watch_ {
		err = watch(ctx, opts)
	}
	if err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

// issueToken печатает подписанный токен субъекта
func issueToken(opts docopt.Opts) error {
	secret, _ := opts.String("--secret")
	sub, _ := opts.String("--sub")
	role, _ := opts.String("--role")
	ttlStr, _ := opts.String("--ttl")

	id, err := uuid.Parse(sub)
	if err != nil {
		return fmt.Errorf("invalid --sub: %w", err)
	}
	if !models.Role(role).Valid() {
		return fmt.Errorf("invalid --role %q", role)
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return fmt.Errorf("invalid --ttl: %w", err)
	}

	raw, err := token.Issue(secret, models.Principal{ID: id, Role: models.Role(role)}, ttl)
	if err != nil {
		return err
	}
	fmt.Println(raw)
	return nil
}

// provision регистрирует сущность и печатает ее ID
func provision(ctx context.Context, opts docopt.Opts) error {
	apiURL, _ := opts.String("--api_url")
	jwt, _ := opts.String("--jwt")
	caretakerStr, _ := opts.String("--caretaker")
	label, _ := opts.String("--label")

	caretaker, err := uuid.Parse(caretakerStr)
	if err != nil {
		return fmt.Errorf("invalid --caretaker: %w", err)
	}

	var entity v1.EntityResponse
	status, err := postJSON(ctx, apiURL+"/entities", jwt, v1.CreateEntityRequest{CaretakerID: &caretaker, Label: label}, &entity)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("provision failed with status %d", status)
	}
	fmt.Println(entity.ID)
	return nil
}

// submit имитирует устройство: случайная прогулка от стартовой точки
func submit(ctx context.Context, opts docopt.Opts) error {
	apiURL, _ := opts.String("--api_url")
	jwt, _ := opts.String("--jwt")
	entityStr, _ := opts.String("--entity")
	count, err := opts.Int("--count")
	if err != nil {
		return fmt.Errorf("invalid --count: %w", err)
	}
	intervalStr, _ := opts.String("--interval")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return fmt.Errorf("invalid --interval: %w", err)
	}
	lat, err := opts.Float64("--lat")
	if err != nil {
		return fmt.Errorf("invalid --lat: %w", err)
	}
	lon, err := opts.Float64("--lon")
	if err != nil {
		return fmt.Errorf("invalid --lon: %w", err)
	}
	entityID, err := uuid.Parse(entityStr)
	if err != nil {
		return fmt.Errorf("invalid --entity: %w", err)
	}

	walk := newWalk(lat, lon)
	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(interval):
			}
		}

		lat, lon := walk.step()
		accuracy := 5 + rand.Float64()*10
		capturedAt := time.Now().UTC()
		req := v1.SubmitReportRequest{
			EntityID:   &entityID,
			Latitude:   &lat,
			Longitude:  &lon,
			Accuracy:   &accuracy,
			CapturedAt: &capturedAt,
		}

		var resp v1.SubmitReportResponse
		status, err := postJSON(ctx, apiURL+"/reports", jwt, req, &resp)
		if err != nil {
			return err
		}
		entry := log.WithFields(logrus.Fields{"seq": i + 1, "status": status, "lat": lat, "lon": lon})
		switch {
		case resp.Accepted:
			entry.Info("Report accepted")
		case status == http.StatusUnprocessableEntity:
			entry.WithField("reason", resp.Reason).Warn("Report rejected")
		default:
			entry.WithField("error", resp.Error).Error("Report failed")
			if status == http.StatusUnauthorized || status == http.StatusForbidden {
				return fmt.Errorf("access denied with status %d", status)
			}
		}
	}
	return nil
}

// watch подписывается на живой поток и печатает кадры в stdout построчно
func watch(ctx context.Context, opts docopt.Opts) error {
	apiURL, _ := opts.String("--api_url")
	jwt, _ := opts.String("--jwt")
	entityStr, _ := opts.String("--entity")
	frames, err := opts.Int("--frames")
	if err != nil {
		return fmt.Errorf("invalid --frames: %w", err)
	}
	entityID, err := uuid.Parse(entityStr)
	if err != nil {
		return fmt.Errorf("invalid --entity: %w", err)
	}

	wsURL, err := streamURL(apiURL, entityID, jwt)
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("stream handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to dial stream: %w", err)
	}
	defer conn.Close()
	log.WithField("entity_id", entityID).Info("Stream opened")

	// по сигналу просим сервер отписать нас и ждем кадр закрытия
	go func() {
		<-ctx.Done()
		_ = conn.WriteJSON(v1.StreamCommand{Type: "unsubscribe"})
	}()

	out := json.NewEncoder(os.Stdout)
	for seen := 0; frames == 0 || seen < frames; seen++ {
		var frame v1.StreamFrame
		if err := conn.ReadJSON(&frame); err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				log.WithFields(logrus.Fields{"code": closeErr.Code, "reason": closeErr.Text}).Info("Stream closed by server")
				return nil
			}
			return fmt.Errorf("stream read failed: %w", err)
		}
		if err := out.Encode(frame); err != nil {
			return err
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return nil
}

// streamURL переводит базовый http(s) адрес API в ws(s) адрес потока сущности
func streamURL(apiURL string, entityID uuid.UUID, jwt string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(apiURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid --api_url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported --api_url scheme %q", u.Scheme)
	}
	u.Path += "/entities/" + entityID.String() + "/stream"
	u.RawQuery = url.Values{"access_token": {jwt}}.Encode()
	return u.String(), nil
}

func postJSON(ctx context.Context, target, jwt string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request to %s failed: %w", target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if len(raw) > 0 && out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			log.WithField("body", string(raw)).Debug("Unexpected response body")
		}
	}
	return resp.StatusCode, nil
}

type walk struct {
	lat, lon float64
	heading  float64
}

func newWalk(lat, lon float64) *walk {
	return &walk{lat: lat, lon: lon, heading: rand.Float64() * 2 * math.Pi}
}

// step сдвигает точку вдоль слегка меняющегося курса и держит ее в допустимых границах
func (w *walk) step() (float64, float64) {
	w.heading += (rand.Float64() - 0.5) * math.Pi / 4
	w.lat = math.Max(-90, math.Min(90, w.lat+walkStep*math.Cos(w.heading)))
	w.lon += walkStep * math.Sin(w.heading)
	if w.lon > 180 {
		w.lon -= 360
	} else if w.lon < -180 {
		w.lon += 360
	}
	return w.lat, w.lon
}
