package health

import (
	"news-pulse/pkg/readiness"
	"news-pulse/services/scheduler"
	databases "news-pulse/utils/databases"
	"time"
)

type Service interface {
	Report() Report
}

// CapabilityProvider tells whether the feed backend runs at full capability
// or on its fallback.
type CapabilityProvider interface {
	FullCapability() bool
}

type Report struct {
	Ready             bool      `json:"ready"`
	FullCapability    bool      `json:"fullCapability"`
	State             string    `json:"state"`
	LastPass          time.Time `json:"lastPass,omitempty"`
	DatabaseConnected bool      `json:"databaseConnected"`
}

type Impl struct {
	gate      *readiness.Gate
	backend   CapabilityProvider
	scheduler scheduler.Service
	db        databases.SqlConnection
}
