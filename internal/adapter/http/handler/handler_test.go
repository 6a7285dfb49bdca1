package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/http/handler/dto"
	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/terminal"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/internal/service/activity"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/validator"
	ws "github.com/SakerDakak/taxipay-dashboard/pkg/wsHub"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockActivityService struct {
	mock.Mock
}

func (m *mockActivityService) Report(ctx context.Context, limit int) (*models.ActivityReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityReport), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishActivityReport(ctx context.Context, report *models.ActivityReport) error {
	return m.Called(ctx, report).Error(0)
}

func testLogger() logger.Logger {
	return logger.InitLoggerWithWriter(io.Discard, "test", logger.LevelError)
}

func sampleReport(limit int) *models.ActivityReport {
	return &models.ActivityReport{
		GeneratedAt:              time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
		Limit:                    limit,
		RosterSize:               3,
		TotalTransactions:        4,
		AttributableTransactions: 4,
		PagesFetched:             1,
		Drivers: []models.DriverActivity{
			{ID: "d1", Name: "Aigerim", TransactionCount: 3, PercentageActivity: 75},
		},
	}
}

func newActivityHandler(svc ActivityService, pub ReportPublisher) *Activity {
	return NewActivity(svc, pub, ws.NewConnHub(testLogger()), DefaultActivityBounds, testLogger())
}

func TestActivity_TopDrivers(t *testing.T) {
	svc := &mockActivityService{}
	svc.On("Report", mock.Anything, 3).Return(sampleReport(3), nil).Once()

	published := make(chan *models.ActivityReport, 1)
	pub := &mockPublisher{}
	pub.On("PublishActivityReport", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { published <- args.Get(1).(*models.ActivityReport) }).
		Return(nil)

	w := httptest.NewRecorder()
	newActivityHandler(svc, pub).TopDrivers(w, httptest.NewRequest(http.MethodGet, "/dashboard/api/drivers/top?limit=3", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Drivers           []models.DriverActivity `json:"drivers"`
		TotalTransactions int                     `json:"total_transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, sampleReport(3).Drivers, body.Drivers)
	assert.Equal(t, 4, body.TotalTransactions)

	select {
	case r := <-published:
		assert.Equal(t, 3, r.Limit)
	case <-time.After(time.Second):
		t.Fatal("report was not published")
	}
	svc.AssertExpectations(t)
}

func TestActivity_TopDrivers_DefaultLimit(t *testing.T) {
	svc := &mockActivityService{}
	svc.On("Report", mock.Anything, DefaultActivityBounds.DefaultLimit).Return(sampleReport(5), nil).Once()

	w := httptest.NewRecorder()
	newActivityHandler(svc, nil).TopDrivers(w, httptest.NewRequest(http.MethodGet, "/dashboard/api/drivers/top", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestActivity_TopDrivers_Validation(t *testing.T) {
	for _, q := range []string{"limit=abc", "limit=-1", "limit=101"} {
		t.Run(q, func(t *testing.T) {
			svc := &mockActivityService{}
			w := httptest.NewRecorder()

			newActivityHandler(svc, nil).TopDrivers(w, httptest.NewRequest(http.MethodGet, "/dashboard/api/drivers/top?"+q, nil))

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), `"limit"`)
			svc.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
		})
	}
}

func TestActivity_TopDrivers_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "terminal api down", err: &activity.ServiceError{Source: types.SourceTransactions, Page: 2, Err: terminal.ErrUnavailable}, want: http.StatusBadGateway},
		{name: "roster down", err: &activity.ServiceError{Source: types.SourceRoster, Err: errors.New("db")}, want: http.StatusBadGateway},
		{name: "terminal timeout", err: &activity.ServiceError{Source: types.SourceTransactions, Page: 1, Err: terminal.ErrTimeout}, want: http.StatusGatewayTimeout},
		{name: "unexpected", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockActivityService{}
			svc.On("Report", mock.Anything, 5).Return(nil, wrap.Error(context.Background(), tt.err))
			pub := &mockPublisher{}

			w := httptest.NewRecorder()
			newActivityHandler(svc, pub).TopDrivers(w, httptest.NewRequest(http.MethodGet, "/dashboard/api/drivers/top", nil))

			assert.Equal(t, tt.want, w.Code)
			assert.NotContains(t, w.Body.String(), "db", "upstream details are not leaked")
			pub.AssertNotCalled(t, "PublishActivityReport", mock.Anything, mock.Anything)
		})
	}
}

func TestActivity_Feed(t *testing.T) {
	svc := &mockActivityService{}
	svc.On("Report", mock.Anything, 2).Return(sampleReport(2), nil)

	h := newActivityHandler(svc, nil)
	h.bounds.MinInterval = 10 * time.Millisecond

	srv := httptest.NewServer(http.HandlerFunc(h.Feed))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"?limit=2&interval=20ms", nil)
	require.NoError(t, err)

	for i := range 2 {
		var msg feedMessage
		require.NoError(t, client.ReadJSON(&msg), "frame %d", i)
		assert.Equal(t, "top_drivers", msg.Type)
		require.NotNil(t, msg.Report)
		assert.Equal(t, 2, msg.Report.Limit)
	}

	require.NoError(t, client.Close())
	assert.Eventually(t, func() bool { return h.hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestActivity_Feed_PingsBetweenReports(t *testing.T) {
	svc := &mockActivityService{}
	svc.On("Report", mock.Anything, 5).Return(sampleReport(5), nil)

	h := newActivityHandler(svc, nil)
	h.pingPeriod = 10 * time.Millisecond

	srv := httptest.NewServer(http.HandlerFunc(h.Feed))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"?interval=1h", nil)
	require.NoError(t, err)
	defer client.Close()

	pings := make(chan struct{}, 10)
	client.SetPingHandler(func(data string) error {
		select {
		case pings <- struct{}{}:
		default:
		}
		return client.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	var msg feedMessage
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, "top_drivers", msg.Type)

	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for range 2 {
		select {
		case <-pings:
		case <-time.After(2 * time.Second):
			t.Fatal("feed did not ping while idle")
		}
	}
	svc.AssertNumberOfCalls(t, "Report", 1)
}

func TestActivity_Feed_CancelsRunOnDisconnect(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})

	svc := &mockActivityService{}
	svc.On("Report", mock.Anything, 5).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		close(started)
		<-ctx.Done()
		close(cancelled)
	}).Return(nil, context.Canceled).Once()

	h := newActivityHandler(svc, nil)
	srv := httptest.NewServer(http.HandlerFunc(h.Feed))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	<-started
	require.NoError(t, client.Close())

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight report was not cancelled")
	}
}

func TestActivity_Feed_Validation(t *testing.T) {
	w := httptest.NewRecorder()
	newActivityHandler(&mockActivityService{}, nil).Feed(w, httptest.NewRequest(http.MethodGet, "/dashboard/api/drivers/top/ws?interval=1s", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "interval")
}

func TestParseTopDriversQuery(t *testing.T) {
	b := dto.TopDriversBounds{DefaultLimit: 5, MaxLimit: 10, DefaultInterval: time.Minute, MinInterval: time.Second}

	tests := []struct {
		query   string
		want    dto.TopDriversQuery
		invalid string
	}{
		{query: "", want: dto.TopDriversQuery{Limit: 5, Interval: time.Minute}},
		{query: "limit=0", want: dto.TopDriversQuery{Limit: 0, Interval: time.Minute}},
		{query: "limit=10&interval=2s", want: dto.TopDriversQuery{Limit: 10, Interval: 2 * time.Second}},
		{query: "limit=11", invalid: "limit"},
		{query: "interval=soon", invalid: "interval"},
		{query: "interval=500ms", invalid: "interval"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.query), func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			v := validator.New()
			got := dto.ParseTopDriversQuery(r.URL.Query(), b, true, v)

			if tt.invalid != "" {
				assert.Contains(t, v.Errors, tt.invalid)
				return
			}
			assert.True(t, v.Valid(), v.Errors)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, GetCode(fmt.Errorf("x: %w", types.ErrInvalidLimit)))
	assert.Equal(t, http.StatusUnauthorized, GetCode(types.ErrInvalidSession))
	assert.Equal(t, http.StatusForbidden, GetCode(types.ErrNotAdmin))
	assert.Equal(t, http.StatusNotFound, GetCode(types.ErrUserNotFound))
	assert.Equal(t, http.StatusBadGateway, GetCode(&activity.ServiceError{Source: types.SourceRoster, Err: errors.New("x")}))
	assert.Equal(t, http.StatusInternalServerError, GetCode(errors.New("x")))
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		h := NewHealth("dashboard-gateway", map[string]Pinger{
			"postgres": pingerFunc(func(context.Context) error { return nil }),
			"rabbitmq": nil,
		}, testLogger())

		w := httptest.NewRecorder()
		h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"available"`)
		assert.Contains(t, w.Body.String(), `"postgres": "ok"`)
	})

	t.Run("degraded", func(t *testing.T) {
		h := NewHealth("dashboard-gateway", map[string]Pinger{
			"postgres": pingerFunc(func(context.Context) error { return errors.New("down") }),
		}, testLogger())

		w := httptest.NewRecorder()
		h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"degraded"`)
	})
}

func TestUIProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s|%s|%s", r.URL.Path, r.Header.Get("X-Admin-Check"), r.Header.Get(headerRequestID))
	}))
	defer upstream.Close()

	proxy, err := NewUIProxy(upstream.URL, testLogger())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/dashboard/merchants", nil)
	r.Header.Set("X-Admin-Check", "1")
	r = r.WithContext(wrap.WithRequestID(r.Context(), "req-1"))
	w := httptest.NewRecorder()
	proxy.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/dashboard/merchants|1|req-1", w.Body.String())
}

func TestUIProxy_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	addr := upstream.URL
	upstream.Close()

	proxy, err := NewUIProxy(addr, testLogger())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	proxy.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNewUIProxy_InvalidTarget(t *testing.T) {
	_, err := NewUIProxy("localhost:3000", testLogger())
	assert.Error(t, err)
}
