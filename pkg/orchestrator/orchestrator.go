// Package orchestrator constructs and supervises the six virtual services.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jazzx/virtual-services/pkg/dispatcher"
	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
	"github.com/jazzx/virtual-services/pkg/services"
)

const logPrefix = "orchestrator:orchestrator"

// DefaultHealthInterval is the poll period used when Params leaves it zero.
const DefaultHealthInterval = 30 * time.Second

// Params configures the orchestrator.
type Params struct {
	// HealthInterval is how often every service's /health route is polled.
	HealthInterval time.Duration
	// LatencyScale multiplies every simulated delay; 0 means 1.0.
	LatencyScale float64
}

// Orchestrator owns the fixture store, the latency simulator, the six virtual
// services, and the dispatcher that fronts them. It health-polls through the
// same dispatch path real traffic takes.
type Orchestrator struct {
	store    *fixtures.Store
	sim      *latency.Simulator
	disp     *dispatcher.Dispatcher
	interval time.Duration

	mu       sync.Mutex
	services []*services.Service
	stopCh   chan struct{}
	done     chan struct{}
	running  bool
}

// New builds the orchestrator and all six virtual services over one shared
// store. Construction fails if any service constructor rejects its params.
func New(p Params) (*Orchestrator, error) {
	interval := p.HealthInterval
	if interval <= 0 {
		interval = DefaultHealthInterval
	}

	store := fixtures.NewStore()
	sim := latency.NewSimulator(p.LatencyScale)
	sp := services.Params{Store: store, Sim: sim}

	constructors := []func(services.Params) (*services.Service, error){
		services.NewAuthService,
		services.NewLoanService,
		services.NewBrokerService,
		services.NewDocumentService,
		services.NewNotificationService,
		services.NewAIService,
	}

	svcs := make([]*services.Service, 0, len(constructors))
	for _, construct := range constructors {
		svc, err := construct(sp)
		if err != nil {
			return nil, fmt.Errorf("%s - failed to construct service: %w", logPrefix, err)
		}
		svcs = append(svcs, svc)
	}

	dispServices := make([]dispatcher.Service, len(svcs))
	for i, svc := range svcs {
		dispServices[i] = svc
	}

	return &Orchestrator{
		store:    store,
		sim:      sim,
		disp:     dispatcher.NewDispatcher(dispServices),
		interval: interval,
		services: svcs,
	}, nil
}

// Dispatcher returns the dispatcher fronting all registered services.
func (o *Orchestrator) Dispatcher() *dispatcher.Dispatcher {
	return o.disp
}

// Store returns the shared fixture store.
func (o *Orchestrator) Store() *fixtures.Store {
	return o.store
}

// Start launches the periodic health poll. A second Start while running is a
// no-op.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running || len(o.services) == 0 {
		return
	}
	o.running = true
	o.stopCh = make(chan struct{})
	o.done = make(chan struct{})

	slog.Info(fmt.Sprintf("%s - starting health polling interval=%s services=%d", logPrefix, o.interval, len(o.services)))
	go o.pollLoop(ctx, o.stopCh, o.done)
}

func (o *Orchestrator) pollLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	o.pollOnce(ctx)
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.pollOnce(ctx)
		}
	}
}

// pollOnce calls every service's /health route through the dispatcher.
// Degraded results are logged, never acted upon.
func (o *Orchestrator) pollOnce(ctx context.Context) {
	o.mu.Lock()
	svcs := o.services
	o.mu.Unlock()

	for _, svc := range svcs {
		req := &router.Request{
			Method: http.MethodGet,
			Path:   svc.BasePath() + "/health",
		}
		resp := o.disp.Dispatch(ctx, req)
		if !resp.Body.Success {
			slog.Warn(fmt.Sprintf("%s - service %s degraded status=%d message=%s", logPrefix, svc.Name(), resp.Status, resp.Body.Message))
			continue
		}
		slog.Debug(fmt.Sprintf("%s - service %s healthy", logPrefix, svc.Name()))
	}
}

// GetStatus reports {name: "running"} for every registered service.
// Construction success is the only signal tracked.
func (o *Orchestrator) GetStatus() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := make(map[string]string, len(o.services))
	for _, svc := range o.services {
		status[svc.Name()] = "running"
	}
	return status
}

// ResetAll restores the fixture store to its seed state.
func (o *Orchestrator) ResetAll() {
	o.store.Reset()
	slog.Info(fmt.Sprintf("%s - fixture store reset", logPrefix))
}

// Shutdown stops health polling and releases all services. Safe to call more
// than once.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.running = false
	close(o.stopCh)
	done := o.done
	o.services = nil
	o.mu.Unlock()

	<-done
	slog.Info(fmt.Sprintf("%s - shutdown complete", logPrefix))
}
