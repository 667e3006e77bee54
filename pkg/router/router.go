// Package router provides the ordered route registry owned by each virtual service.
package router

import (
	"strings"
)

// Binding ties an HTTP method and path pattern to a handler. Bindings are
// owned exclusively by their Registry and are immutable after registration.
type Binding struct {
	Method  string
	Pattern string
	Handler HandlerFunc
}

// Registry is an ordered list of route bindings. Patterns are tested in
// registration order and the first structural match wins, so specific routes
// must be registered before wildcard routes that could shadow them.
type Registry struct {
	bindings []Binding
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a binding. A pattern is a /-separated path whose segments
// are either literals or :name wildcards capturing one non-empty segment.
func (r *Registry) Register(method, pattern string, h HandlerFunc) {
	r.bindings = append(r.bindings, Binding{Method: method, Pattern: pattern, Handler: h})
}

// Bindings returns the registered bindings in registration order.
func (r *Registry) Bindings() []Binding {
	return r.bindings
}

// Match returns the first-registered handler whose method and pattern match,
// together with the wildcard captures. Query strings never participate in
// matching.
func (r *Registry) Match(method, path string) (HandlerFunc, map[string]string, bool) {
	for _, b := range r.bindings {
		if b.Method != method {
			continue
		}
		params, ok := matchPattern(b.Pattern, path)
		if ok {
			return b.Handler, params, true
		}
	}
	return nil, nil, false
}

// matchPattern matches a path against a pattern segment by segment. Segment
// counts must be equal; literal segments must be equal; :name segments accept
// any non-empty value and capture it.
func matchPattern(pattern, path string) (map[string]string, bool) {
	patSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patSegs) != len(pathSegs) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range patSegs {
		if strings.HasPrefix(seg, ":") {
			if pathSegs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
