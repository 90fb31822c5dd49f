package main

import (
	"testing"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/config"
	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	logger.Logger
	errors []string
	synced bool
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.errors = append(r.errors, msg)
}

func (r *recordingLogger) With(map[string]interface{}) logger.Logger { return r }

func (r *recordingLogger) WithError(error) logger.Logger { return r }

func (r *recordingLogger) Sync() error {
	r.synced = true
	return nil
}

func TestServe_FlushesLogOnStartupFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &recordingLogger{Logger: logger.NewTestLogger(t)}

	cfg := &config.Config{
		Port:     "-1",
		Profiler: config.ProfilerConfig{Backend: config.BackendTemplate, Delay: time.Millisecond},
		Inflight: config.InflightConfig{Backend: config.InflightMemory},
	}

	code := serve(cfg, log)

	assert.Equal(t, 1, code)
	assert.Contains(t, log.errors, "server stopped")
	assert.True(t, log.synced)
}
