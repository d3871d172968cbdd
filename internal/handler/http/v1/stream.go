package v1

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/live_location_sync/internal/hub"
	"github.com/sirupsen/logrus"
)

const (
	defaultPingInterval = 30 * time.Second
	defaultWriteTimeout = 10 * time.Second
	maxCommandSize      = 512
)

// @Summary Stream live position
// @Description WebSocket stream: the first frame is a snapshot of the current state (live_state may be null), then updates follow. Send {"type":"unsubscribe"} or close the socket to stop. The token may be passed as access_token.
// @Tags Entities
// @Security BearerAuth
// @Param id path string true "Entity ID"
// @Param access_token query string false "JWT for clients that cannot set headers"
// @Success 101 {object} StreamFrame
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{id}/stream [get]
func (h *Handler) streamPosition(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	principal := principalFrom(c)
	log := h.logger.WithFields(logrus.Fields{"method": "streamPosition", "id": id, "principal_id": principal.ID})

	// подписка оформляется до апгрейда, чтобы отказ в доступе вернулся обычным HTTP-ответом
	sub, err := h.locationService.Subscribe(c.Request.Context(), principal, id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	defer sub.Close()
	log = log.WithField("subscription_id", sub.ID())

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	pingInterval := h.cfg.StreamPingInterval
	if pingInterval <= 0 {
		pingInterval = defaultPingInterval
	}
	writeTimeout := h.cfg.StreamWriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	go h.readCommands(conn, sub, 2*pingInterval, log)
	updates := pumpUpdates(sub)

	// пинги идут по своему таймеру и не зависят от частоты обновлений
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				sub.Fail(err)
				log.WithError(err).Info("Stream ping failed")
				return
			}

		case <-sub.Done():
			h.closeStream(conn, sub, writeTimeout, log)
			return

		case update := <-updates:
			frame := StreamFrame{
				Type:      frameUpdate,
				EntityID:  update.EntityID,
				LiveState: ModelToLiveStateResponse(update.State),
			}
			if update.Snapshot {
				frame.Type = frameSnapshot
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(frame); err != nil {
				sub.Fail(err)
				log.WithError(err).Info("Stream delivery failed")
				return
			}
		}
	}
}

// pumpUpdates переносит обновления подписки в канал до ее закрытия
func pumpUpdates(sub *hub.Subscription) <-chan hub.Update {
	updates := make(chan hub.Update)
	go func() {
		for {
			update, err := sub.Next(context.Background())
			if err != nil {
				return
			}
			select {
			case updates <- update:
			case <-sub.Done():
				return
			}
		}
	}()
	return updates
}

// readCommands читает сообщения клиента. Любой кадр клиента продлевает дедлайн чтения.
// unsubscribe или закрытие клиентом завершают подписку штатно, ошибка чтения - как сбой доставки.
func (h *Handler) readCommands(conn *websocket.Conn, sub *hub.Subscription, pongWait time.Duration, log *logrus.Entry) {
	conn.SetReadLimit(maxCommandSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd StreamCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("Client closed stream")
				sub.Close()
				return
			}
			log.WithError(err).Debug("Stream reader stopped")
			sub.Fail(err)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if cmd.Type == commandUnsubscribe {
			log.Debug("Client unsubscribed")
			sub.Close()
			return
		}
	}
}

// closeStream отправляет клиенту кадр закрытия с причиной
func (h *Handler) closeStream(conn *websocket.Conn, sub *hub.Subscription, writeTimeout time.Duration, log *logrus.Entry) {
	reason := sub.CloseReason()
	code := websocket.CloseNormalClosure
	switch reason {
	case hub.ReasonRevoked:
		code = websocket.ClosePolicyViolation
	case hub.ReasonShutdown:
		code = websocket.CloseGoingAway
	case hub.ReasonDeliveryFailed:
		code = websocket.CloseInternalServerErr
	}
	msg := websocket.FormatCloseMessage(code, string(reason))
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout)); err != nil &&
		!errors.Is(err, websocket.ErrCloseSent) {
		log.WithError(err).Debug("Failed to send close frame")
	}
	log.WithField("reason", reason).Info("Stream closed")
}
