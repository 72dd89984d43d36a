package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/hirechat/internal/bus"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/config"
	"github.com/matheus3301/hirechat/internal/router"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/matheus3301/hirechat/internal/tui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func TestStartLocation(t *testing.T) {
	base, _ := url.Parse("https://jobs.example.com")
	d := router.For(chat.SurfaceSeeker)

	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "", want: "https://jobs.example.com/seeker/dashboard"},
		{raw: "/seeker/dashboard?view=chats&openAppId=9", want: "https://jobs.example.com/seeker/dashboard?view=chats&openAppId=9"},
		{raw: "https://jobs.example.com/jobs/hub", want: "https://jobs.example.com/jobs/hub"},
		{raw: "https://evil.example.org/seeker/dashboard", wantErr: true},
		{raw: "%zz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := StartLocation(base, d, tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestMetricsServerHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := chat.NewMetrics(reg)
	require.NotNil(t, m)

	srv := NewMetricsServer("127.0.0.1:0", reg, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "hirechat_"), "metrics body: %s", body)

	resp, err = http.Post(ts.URL+"/metrics", "text/plain", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMetricsServerStartStop(t *testing.T) {
	srv := NewMetricsServer("127.0.0.1:0", prometheus.NewRegistry(), zap.NewNop())
	require.NoError(t, srv.Start())
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
}

func TestOpenStoreMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := OpenStore(path, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	list, err := db.ListConversations("employer", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStartCache(t *testing.T) {
	settings := &Settings{
		Name:    "test",
		Surface: chat.SurfaceEmployer,
		Profile: &config.Profile{Conversations: []config.Conversation{
			{Channel: "application", Key: "42", Title: "Jane Doe"},
			{Channel: "support"},
		}},
	}
	open := func(t *testing.T) (*intsync.Engine, *intsync.Reconciler, func() error) {
		db, err := OpenStore(filepath.Join(t.TempDir(), "cache.db"), zap.NewNop())
		require.NoError(t, err)
		return intsync.NewEngine(db, bus.New(), nil), intsync.NewReconciler(db, nil), db.Close
	}

	t.Run("seeds and runs", func(t *testing.T) {
		engine, rec, closeDB := open(t)
		defer func() { _ = closeDB() }()
		require.NoError(t, startCache(engine, rec, settings, zap.NewNop()))
		defer engine.Stop()

		assert.True(t, engine.Running())
		known, err := rec.Known(chat.SurfaceEmployer, 10)
		require.NoError(t, err)
		assert.Len(t, known, 2)
	})

	t.Run("stops the engine when seeding fails", func(t *testing.T) {
		engine, rec, closeDB := open(t)
		require.NoError(t, closeDB())

		require.Error(t, startCache(engine, rec, settings, zap.NewNop()))
		assert.False(t, engine.Running())
	})
}

func TestModuleGraph(t *testing.T) {
	var ui *tui.App
	err := fx.ValidateApp(
		Module(Params{Profile: "test"}),
		fx.NopLogger,
		fx.Populate(&ui),
	)
	assert.NoError(t, err)
}
