package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Mode: "debug"},
		Workflow: WorkflowConfig{Timeout: 120 * time.Second, MaxResumeDepth: 3},
		Sync:     SyncConfig{MirrorLimit: 10},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.Mode = "release"
	assert.Error(t, cfg.Validate())
	cfg.Workflow.Token = "pat_xxx"
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.Workflow.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Sync.MirrorLimit = 0
	assert.Error(t, cfg.Validate())
}
