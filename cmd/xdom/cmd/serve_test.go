package cmd

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/xdom/pkg/scheduler"
	"github.com/go-drift/xdom/pkg/xdom"
)

func TestServeMux(t *testing.T) {
	clock := scheduler.NewLoopClock(scheduler.DefaultConfig().FrameInterval)
	rt, err := xdom.New(clock, scheduler.DefaultConfig())
	require.NoError(t, err)
	app := newDemo(rt, "live")
	rt.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = clock.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(scheduler.NewCollector(rt.Scheduler()))
	srv := httptest.NewServer(newServeMux(clock, app, reg))
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/click/inc", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/click/missing", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := get(t, srv.URL+"/")
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<span id="count">count: 1</span>`)

	metrics := get(t, srv.URL+"/metrics")
	assert.Contains(t, metrics, "xdom_frames_total")
	assert.Contains(t, metrics, "xdom_shadow_nodes_current")
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
