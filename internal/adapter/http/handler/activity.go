package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/http/handler/dto"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/validator"
	ws "github.com/SakerDakak/taxipay-dashboard/pkg/wsHub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type (
	ActivityService interface {
		Report(ctx context.Context, limit int) (*models.ActivityReport, error)
	}

	ReportPublisher interface {
		PublishActivityReport(ctx context.Context, report *models.ActivityReport) error
	}
)

const publishTimeout = 15 * time.Second

var DefaultActivityBounds = dto.TopDriversBounds{
	DefaultLimit:    5,
	MaxLimit:        100,
	DefaultInterval: 30 * time.Second,
	MinInterval:     5 * time.Second,
}

type Activity struct {
	service   ActivityService
	publisher ReportPublisher
	hub       *ws.ConnectionHub
	bounds    dto.TopDriversBounds
	upgrader  websocket.Upgrader
	log       logger.Logger

	pingPeriod time.Duration
}

func NewActivity(service ActivityService, publisher ReportPublisher, hub *ws.ConnectionHub, bounds dto.TopDriversBounds, log logger.Logger) *Activity {
	return &Activity{
		service:   service,
		publisher: publisher,
		hub:       hub,
		bounds:    bounds,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log:        log,
		pingPeriod: ws.PingPeriod,
	}
}

// TopDrivers godoc
// @Summary      Top drivers by activity
// @Description  Drains every transaction page, tallies them per driver and returns the most active drivers
// @Tags         Activity
// @Produce      json
// @Param        limit  query     int  false  "Number of drivers to return (0-100)"  default(5)
// @Success      200    {object}  TopDriversResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Failure      422    {object}  ErrorResponse
// @Failure      502    {object}  ErrorResponse
// @Failure      504    {object}  ErrorResponse
// @Router       /dashboard/api/drivers/top [get]
func (h *Activity) TopDrivers(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionComputeTop)

	v := validator.New()
	req := dto.ParseTopDriversQuery(r.URL.Query(), h.bounds, false, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	report, err := h.service.Report(ctx, req.Limit)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// client went away
			return
		}
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to compute top drivers", err)
		upstreamErrorResponse(w, err)
		return
	}

	h.publish(ctx, report)

	if err := writeJSON(w, http.StatusOK, envelope{
		"drivers":                   report.Drivers,
		"generated_at":              report.GeneratedAt,
		"total_transactions":        report.TotalTransactions,
		"attributable_transactions": report.AttributableTransactions,
		"pages_fetched":             report.PagesFetched,
	}, nil); err != nil {
		h.log.Error(ctx, "failed to write response", err)
	}
}

// Feed godoc
// @Summary      Live top drivers feed
// @Description  WebSocket that pushes a fresh top drivers report every interval. Closing the socket cancels the run in flight.
// @Tags         Activity
// @Param        limit     query  int     false  "Number of drivers to return (0-100)"  default(5)
// @Param        interval  query  string  false  "Push interval, at least 5s"         default(30s)
// @Success      101
// @Failure      422  {object}  ErrorResponse
// @Router       /dashboard/api/drivers/top/ws [get]
func (h *Activity) Feed(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionActivityFeed)

	v := validator.New()
	req := dto.ParseTopDriversQuery(r.URL.Query(), h.bounds, true, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client
		h.log.Debug(ctx, "websocket upgrade failed", "error", err.Error())
		return
	}

	// the request context is not cancelled for hijacked connections; the read loop below is what notices a disconnect
	conn := ws.NewConn(context.WithoutCancel(ctx), uuid.New(), raw)
	if err := h.hub.Add(conn); err != nil {
		h.log.Error(ctx, "failed to register websocket connection", err)
		_ = conn.Close()
		return
	}
	defer func() { _ = h.hub.Delete(conn.ID()) }()

	go func() {
		// the feed is push-only; incoming messages are ignored
		if err := conn.Listen(func(map[string]any) error { return nil }); err != nil {
			h.log.Debug(ctx, "activity feed reader stopped", "error", err.Error())
		}
	}()

	go h.keepAlive(conn)

	h.log.Debug(ctx, "activity feed opened", "conn_id", conn.ID(), "limit", req.Limit, "interval", req.Interval)

	h.runFeed(conn, req)

	h.log.Debug(ctx, "activity feed closed", "conn_id", conn.ID())
}

// feedMessage is one frame of the activity feed.
type feedMessage struct {
	Type   string                 `json:"type"`
	Report *models.ActivityReport `json:"report,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// runFeed pushes a report right away and then every interval until the connection closes.
func (h *Activity) runFeed(conn *ws.Conn, req dto.TopDriversQuery) {
	ctx := conn.Context()

	ticker := time.NewTicker(req.Interval)
	defer ticker.Stop()

	for {
		if !h.push(ctx, conn, req.Limit) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// keepAlive pings the peer until the connection closes, including while a
// report is being computed. A failed ping closes the connection, which also
// cancels the run in flight.
func (h *Activity) keepAlive(conn *ws.Conn) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-conn.Context().Done():
			return
		case <-ticker.C:
			if err := conn.Ping(); err != nil {
				h.log.Debug(conn.Context(), "activity feed ping failed", "conn_id", conn.ID(), "error", err.Error())
				_ = conn.Close()
				return
			}
		}
	}
}

// push computes and sends one report. It returns false once the connection is gone.
func (h *Activity) push(ctx context.Context, conn *ws.Conn, limit int) bool {
	report, err := h.service.Report(ctx, limit)
	if ctx.Err() != nil {
		return false
	}

	msg := feedMessage{Type: "top_drivers", Report: report}
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to compute top drivers for feed", err)
		msg = feedMessage{Type: "error", Error: "failed to fetch data from an upstream service"}
	} else {
		h.publish(ctx, report)
	}

	if err := conn.Send(msg); err != nil {
		h.log.Debug(ctx, "failed to send feed message", "error", err.Error())
		return false
	}
	return true
}

// publish hands the report to the broker in the background.
// A broker outage never fails or delays the caller.
func (h *Activity) publish(ctx context.Context, report *models.ActivityReport) {
	if h.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	go func() {
		defer cancel()
		if err := h.publisher.PublishActivityReport(ctx, report); err != nil {
			h.log.Warn(wrap.ErrorCtx(ctx, err), "failed to publish activity report", "error", err.Error())
		}
	}()
}

// TopDriversResponse documents the JSON body of TopDrivers.
type TopDriversResponse struct {
	Drivers                  []models.DriverActivity `json:"drivers"`
	GeneratedAt              time.Time               `json:"generated_at"`
	TotalTransactions        int                     `json:"total_transactions"`
	AttributableTransactions int                     `json:"attributable_transactions"`
	PagesFetched             int                     `json:"pages_fetched"`
}

// ErrorResponse documents the error envelope.
type ErrorResponse struct {
	Error any `json:"error"`
}
