package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/live_location_sync/internal/config"
	"github.com/shenikar/live_location_sync/internal/hub"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	locationService service.LocationService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	upgrader        websocket.Upgrader
}

func NewHandler(locationService service.LocationService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		locationService: locationService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// токен проверяется middleware, браузерные панели приходят с других origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// statusForError сопоставляет ошибку сервиса HTTP-коду
func statusForError(err error) int {
	var (
		vErr *service.ValidationError
		aErr *service.AuthorizationError
		sErr *service.StoreError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &aErr):
		return http.StatusForbidden
	case errors.Is(err, service.ErrEntityNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEntityExists):
		return http.StatusConflict
	case errors.As(err, &sErr), errors.Is(err, hub.ErrHubClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errorMessage(status int, err error) string {
	switch status {
	case http.StatusForbidden:
		return "access denied"
	case http.StatusNotFound:
		return "entity not found"
	case http.StatusConflict:
		return "entity already exists"
	case http.StatusServiceUnavailable:
		return "service unavailable, retry the request"
	case http.StatusUnprocessableEntity:
		return err.Error()
	}
	return "internal server error"
}

func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed in service")
	} else {
		log.WithError(err).Warn("Request rejected by service")
	}
	c.JSON(status, gin.H{"error": errorMessage(status, err)})
}

func parseEntityID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Submit a position report
// @Description Submit one geolocation fix for a tracked entity. Out-of-order and duplicate reports are rejected.
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param report body SubmitReportRequest true "Position report"
// @Success 202 {object} SubmitReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 422 {object} SubmitReportResponse "Report rejected"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input SubmitReportRequest
	principal := principalFrom(c)
	log := h.logger.WithFields(logrus.Fields{"method": "submitReport", "principal_id": principal.ID})

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.locationService.Submit(c.Request.Context(), principal, DTOToReportModel(input))
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			log.WithField("reason", vErr.Reason).Info("Report rejected")
			c.JSON(http.StatusUnprocessableEntity, SubmitReportResponse{
				Accepted: false,
				Reason:   string(vErr.Reason),
				Error:    vErr.Detail,
			})
			return
		}
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusAccepted, SubmitReportResponse{Accepted: true, LiveState: ModelToLiveStateResponse(state)})
}

// @Summary Get current position
// @Description Get the live state of an entity. live_state is null until the first accepted report.
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entity ID"
// @Success 200 {object} PositionResponse
// @Failure 400 {object} map[string]string "Invalid entity ID"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{id}/position [get]
func (h *Handler) currentPosition(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	principal := principalFrom(c)
	log := h.logger.WithFields(logrus.Fields{"method": "currentPosition", "id": id, "principal_id": principal.ID})

	state, err := h.locationService.CurrentPosition(c.Request.Context(), principal, id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, PositionResponse{EntityID: id, LiveState: ModelToLiveStateResponse(state)})
}

// @Summary Get recent history
// @Description Get the most recent accepted reports of an entity
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entity ID"
// @Param limit query int false "Number of entries"
// @Param order query string false "desc (default) or asc" Enums(desc, asc)
// @Success 200 {array} HistoryEntryResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 403 {object} map[string]string "Access denied"
// @Router /entities/{id}/history [get]
func (h *Handler) recentHistory(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	principal := principalFrom(c)
	log := h.logger.WithFields(logrus.Fields{"method": "recentHistory", "id": id, "principal_id": principal.ID})

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	order, ok := models.ParseSortOrder(c.Query("order"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be asc or desc"})
		return
	}

	entries, err := h.locationService.RecentHistory(c.Request.Context(), principal, id, limit, order)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToHistoryResponses(entries))
}

// @Summary List permitted entities
// @Description List the entities the caller may observe
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} EntityResponse
// @Router /entities [get]
func (h *Handler) listEntities(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithFields(logrus.Fields{"method": "listEntities", "principal_id": principal.ID})

	entities, err := h.locationService.ListEntities(c.Request.Context(), principal)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEntityResponses(entities))
}

// @Summary Provision an entity
// @Description Register a new tracked entity. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entity body CreateEntityRequest true "Entity provisioning request"
// @Success 201 {object} EntityResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 409 {object} map[string]string "Entity already exists"
// @Router /entities [post]
func (h *Handler) createEntity(c *gin.Context) {
	var input CreateEntityRequest
	principal := principalFrom(c)
	log := h.logger.WithFields(logrus.Fields{"method": "createEntity", "principal_id": principal.ID})

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity := DTOToEntityModel(input)
	if err := h.locationService.ProvisionEntity(c.Request.Context(), principal, entity); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEntityResponse(entity))
}

// @Summary Revoke principal sessions
// @Description Close every live subscription held by a principal. Admin only.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Principal ID"
// @Success 200 {object} RevokeResponse
// @Failure 400 {object} map[string]string "Invalid principal ID"
// @Failure 403 {object} map[string]string "Access denied"
// @Router /admin/principals/{id}/revoke [post]
func (h *Handler) revokeSessions(c *gin.Context) {
	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid principal ID"})
		return
	}
	principal := principalFrom(c)
	log := h.logger.WithFields(logrus.Fields{"method": "revokeSessions", "target_id": target, "principal_id": principal.ID})

	closed, err := h.locationService.RevokeSessions(c.Request.Context(), principal, target)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, RevokeResponse{Closed: closed})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
