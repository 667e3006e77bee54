// Package services implements the six virtual services: named route bundles
// simulating the auth, loan, broker, document, notification, and AI backends
// over one shared fixture store.
package services

import (
	"context"
	"fmt"

	masterminds "github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
)

const logPrefix = "services:service"

// Params holds the collaborators every virtual service is constructed over.
// All six services share the same Store so writes through one service are
// immediately visible to reads through another.
type Params struct {
	Store *fixtures.Store
	Sim   *latency.Simulator
}

func (p Params) validate() error {
	if p.Store == nil {
		return fmt.Errorf("%s - store is required", logPrefix)
	}
	if p.Sim == nil {
		return fmt.Errorf("%s - latency simulator is required", logPrefix)
	}
	return nil
}

// Service is a named bundle of routes over one domain slice. The route
// registry is populated once at construction and immutable afterward; only
// the fixture store the handlers close over is mutable.
type Service struct {
	name     string
	basePath string
	version  string
	routes   *router.Registry
}

// newService creates a Service shell, validating the advertised version as
// semver before any routes bind to it.
func newService(name, basePath, version string) (*Service, error) {
	if _, err := masterminds.NewVersion(version); err != nil {
		return nil, fmt.Errorf("%s - service %s has invalid version %q: %w", logPrefix, name, version, err)
	}
	return &Service{
		name:     name,
		basePath: basePath,
		version:  version,
		routes:   router.NewRegistry(),
	}, nil
}

// Name returns the service name as reported in health payloads.
func (s *Service) Name() string { return s.name }

// BasePath returns the logical base path the service claims.
func (s *Service) BasePath() string { return s.basePath }

// Version returns the advertised service version.
func (s *Service) Version() string { return s.version }

// Routes returns the service's route registry.
func (s *Service) Routes() *router.Registry { return s.routes }

// HealthPayload is the wire shape of every /health route.
type HealthPayload struct {
	Service      string            `json:"service"`
	Status       string            `json:"status"`
	Timestamp    string            `json:"timestamp"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Metrics      map[string]any    `json:"metrics,omitempty"`
}

// healthHandler builds the /health route handler. Health records are produced
// fresh on each poll and never persisted.
func (s *Service) healthHandler(deps map[string]string, metrics map[string]any) router.HandlerFunc {
	return func(ctx context.Context, req *router.Request) *router.Result {
		return router.OK(HealthPayload{
			Service:      s.name,
			Status:       "healthy",
			Timestamp:    fixtures.NowISO(),
			Version:      s.version,
			Dependencies: deps,
			Metrics:      metrics,
		})
	}
}

// newID returns a collision-free prefixed identifier for runtime-created
// records, e.g. "client-5f0c...".
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// shortRef returns an uppercase 6-character reference used for application
// and confirmation numbers, e.g. "JX3F9A1C".
func shortRef() string {
	id := uuid.New()
	return fmt.Sprintf("%X", id[:3])
}
