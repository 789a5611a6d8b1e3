package config

import (
	"strings"
	"time"
)

// StateBackend selects where per-session list state is kept.
type StateBackend string

const (
	// StateBackendMemory keeps session state in process memory (single instance).
	StateBackendMemory StateBackend = "memory"
	// StateBackendRedis keeps session state in Redis so several instances can share it.
	StateBackendRedis StateBackend = "redis"
)

// StateConfig controls session state persistence.
type StateConfig struct {
	Backend StateBackend `env:"STATE_BACKEND" envDefault:"memory"`

	// SessionTTL is how long an idle review session keeps its list state.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// DecisionClaimTTL bounds how long an in-flight decision blocks duplicates
	// if the request never completes.
	DecisionClaimTTL time.Duration `env:"DECISION_CLAIM_TTL" envDefault:"30s"`
}

// Sanitize normalises the backend name and enforces positive TTLs.
func (s *StateConfig) Sanitize() {
	switch StateBackend(strings.ToLower(strings.TrimSpace(string(s.Backend)))) {
	case StateBackendRedis:
		s.Backend = StateBackendRedis
	default:
		s.Backend = StateBackendMemory
	}
	if s.SessionTTL <= 0 {
		s.SessionTTL = 12 * time.Hour
	}
	if s.DecisionClaimTTL <= 0 {
		s.DecisionClaimTTL = 30 * time.Second
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`

	// ClusterNodes switches to a cluster client when UseCluster is set. An empty list
	// falls back to the host in URI.
	ClusterNodes []string `env:"CLUSTER_NODES" envDefault:""`
	UseCluster   bool     `env:"USE_CLUSTER"   envDefault:"false"`
}
