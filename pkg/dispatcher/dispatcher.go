package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jazzx/virtual-services/pkg/router"
)

const logPrefix = "dispatcher:dispatch"

// Service is the slice of a virtual service the dispatcher needs: a name, a
// base path to claim requests under, and the route registry to delegate to.
type Service interface {
	Name() string
	BasePath() string
	Routes() *router.Registry
}

// Dispatcher is the component every simulated request passes through. It
// selects the owning service by base path, matches the route, invokes the
// handler, and converts the outcome into the normalized envelope shape.
type Dispatcher struct {
	services []Service
}

// NewDispatcher creates a Dispatcher over the given services.
func NewDispatcher(services []Service) *Dispatcher {
	return &Dispatcher{services: services}
}

// Dispatch routes a request to the owning service's matched handler and
// returns the enveloped response. Unmatched requests receive a 404 envelope;
// a handler panic is caught here and converted into a generic 500 envelope so
// no internal error detail ever reaches a caller.
func (d *Dispatcher) Dispatch(ctx context.Context, req *router.Request) *Response {
	slog.Debug(fmt.Sprintf("%s - method=%s path=%s", logPrefix, req.Method, req.Path))

	svc := d.serviceFor(req.Path)
	if svc == nil {
		return notFoundResponse()
	}

	handler, params, ok := svc.Routes().Match(req.Method, req.Path)
	if !ok {
		return notFoundResponse()
	}
	req.Params = params

	result := d.invoke(ctx, svc, handler, req)
	return &Response{
		Status: result.Status,
		Body: Envelope{
			Success: result.Status < http.StatusBadRequest,
			Data:    result.Data,
			Message: result.Message,
		},
	}
}

// invoke runs the handler with panic recovery at the dispatch boundary.
func (d *Dispatcher) invoke(ctx context.Context, svc Service, handler router.HandlerFunc, req *router.Request) (result *router.Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error(fmt.Sprintf("%s - handler panic service=%s path=%s: %v", logPrefix, svc.Name(), req.Path, r))
			result = router.Fail(http.StatusInternalServerError, "Internal server error")
		}
	}()

	result = handler(ctx, req)
	if result == nil {
		slog.Error(fmt.Sprintf("%s - nil result service=%s path=%s", logPrefix, svc.Name(), req.Path))
		return router.Fail(http.StatusInternalServerError, "Internal server error")
	}
	return result
}

// serviceFor returns the service owning path by longest base-path prefix.
func (d *Dispatcher) serviceFor(path string) Service {
	var owner Service
	longest := -1
	for _, svc := range d.services {
		base := svc.BasePath()
		if path != base && !strings.HasPrefix(path, base+"/") {
			continue
		}
		if len(base) > longest {
			owner = svc
			longest = len(base)
		}
	}
	return owner
}

func notFoundResponse() *Response {
	return &Response{
		Status: http.StatusNotFound,
		Body: Envelope{
			Success: false,
			Message: "API endpoint not found",
		},
	}
}
