package bootstrap

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobpilot/jobreview/internal/mocks"
)

func TestBuildHandler_WithoutServices(t *testing.T) {
	h := BuildHandler(&HTTPServerConfig{Config: testConfig(), Logger: discardLogger()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/count", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildHandler_RegistersAPIRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	svcs, err := NewServices(&ServiceDeps{Config: testConfig(), Dynamo: mocks.NewMockDynamoAPI(ctrl), Logger: discardLogger()})
	require.NoError(t, err)

	h := BuildHandler(&HTTPServerConfig{Config: testConfig(), Services: svcs, Logger: discardLogger()})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs?cursor=not-a-token", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartHTTPServer_ShutsDownOnSignal(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.HTTP.ShutdownTimeout = time.Second

	errCh := make(chan error, 1)
	server, err := StartHTTPServer(&HTTPServerConfig{Config: cfg, Logger: discardLogger()}, errCh)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		resp, getErr := http.Get("http://" + server.Addr + "/healthz")
		if getErr != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM
	err = waitForShutdown(shutdownConfig{
		quit:       quit,
		errCh:      errCh,
		httpServer: server,
		timeout:    cfg.HTTP.ShutdownTimeout,
		logger:     discardLogger(),
	})
	require.NoError(t, err)

	_, err = http.Get("http://" + server.Addr + "/healthz")
	assert.Error(t, err)
}

func TestWaitForShutdown_ReturnsServiceError(t *testing.T) {
	boom := errors.New("listener died")
	errCh := make(chan error, 1)
	errCh <- boom

	err := waitForShutdown(shutdownConfig{
		quit:   make(chan os.Signal),
		errCh:  errCh,
		logger: discardLogger(),
	})
	assert.ErrorIs(t, err, boom)
}

func TestStartHTTPServer_BadAddress(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.Addr = "256.0.0.1:bad"

	_, err := StartHTTPServer(&HTTPServerConfig{Config: cfg, Logger: discardLogger()}, make(chan error, 1))
	assert.Error(t, err)
}
