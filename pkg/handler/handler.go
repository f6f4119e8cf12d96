package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/push-gateway/pkg/notify"
	"github.com/ranorsolutions/push-gateway/pkg/route"
	"github.com/ranorsolutions/push-gateway/pkg/service"
)

// Notifier delivers a validated notification and returns the provider message id.
type Notifier interface {
	Send(ctx context.Context, req notify.NotificationRequest) (string, error)
}

type NotificationHandler struct {
	Service   *service.Service
	Notifier  Notifier
	Validator *notify.Validator
	Topic     string

	now func() time.Time
}

func New(svc *service.Service, n Notifier) *NotificationHandler {
	return &NotificationHandler{
		Service:   svc,
		Notifier:  n,
		Validator: notify.NewValidator(),
		Topic:     svc.Config.Topic,
		now:       time.Now,
	}
}

// Routes returns the gateway's route table.
func (h *NotificationHandler) Routes() []*route.Handler {
	return []*route.Handler{
		{Method: http.MethodPost, Path: "/api/topic/notify", Handler: []gin.HandlerFunc{h.TopicNotify}},
		{Method: http.MethodPost, Path: "/api/token/notify", Handler: []gin.HandlerFunc{h.TokenNotify}},
		{Method: http.MethodGet, Path: "/health", Handler: []gin.HandlerFunc{h.Health}},
	}
}

// TopicNotify godoc
// @Summary Broadcast a notification to the topic
// @Description Sends a notification to every device subscribed to the gateway's topic.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body notify.Payload true "title and body"
// @Success 200 {object} notify.NotificationResult
// @Failure 400 {object} notify.NotificationResult "missing fields"
// @Failure 500 {object} notify.NotificationResult "send failure"
// @Router /api/topic/notify [post]
func (h *NotificationHandler) TopicNotify(c *gin.Context) {
	h.notify(c, notify.TopicRoute)
}

// TokenNotify godoc
// @Summary Send a notification to a device
// @Description Sends a notification to a single device registration token.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body notify.Payload true "token, title and body"
// @Success 200 {object} notify.NotificationResult
// @Failure 400 {object} notify.NotificationResult "missing fields or invalid token"
// @Failure 500 {object} notify.NotificationResult "send failure"
// @Router /api/token/notify [post]
func (h *NotificationHandler) TokenNotify(c *gin.Context) {
	h.notify(c, notify.TokenRoute)
}

func (h *NotificationHandler) notify(c *gin.Context, r notify.Route) {
	var payload notify.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, notify.Failed(r.RequiredMessage()))
		return
	}

	req, err := h.Validator.Validate(payload, r, h.Topic)
	if err != nil {
		var verr *notify.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, notify.Failed(r.RequiredMessage()))
			return
		}
		h.Service.HandleErr(c, err, notify.MsgSendFailed, http.StatusInternalServerError)
		return
	}

	id, err := h.Notifier.Send(c.Request.Context(), req)
	if err != nil {
		h.sendFailed(c, r, err)
		return
	}

	c.JSON(http.StatusOK, notify.Sent(id))
}

func (h *NotificationHandler) sendFailed(c *gin.Context, r notify.Route, err error) {
	code, message := notify.SendFailure, notify.MsgSendFailed

	var serr *notify.SendError
	if errors.As(err, &serr) {
		code, message = serr.Code, serr.Message()
	}

	// Only the token route distinguishes bad tokens; a topic send always fails server-side.
	if r == notify.TokenRoute && code == notify.InvalidToken {
		h.Service.HandleErr(c, err, notify.MsgInvalidToken, http.StatusBadRequest)
		return
	}
	h.Service.HandleErr(c, err, message, http.StatusInternalServerError)
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handler.HealthStatus
// @Router /health [get]
func (h *NotificationHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}
