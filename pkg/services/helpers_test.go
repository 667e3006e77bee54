package services

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
)

// testParams builds service params with near-zero simulated latency.
func testParams() Params {
	return Params{
		Store: fixtures.NewStore(),
		Sim:   &latency.Simulator{Scale: 0.0001},
	}
}

// call matches and invokes a route on svc, failing the test on no match.
func call(t *testing.T, svc *Service, method, path string, body any, headers map[string]string) *router.Result {
	t.Helper()

	var raw json.RawMessage
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("services:helpers_test - marshal body: %v", err)
		}
		raw = b
	}

	p, query := path, url.Values(nil)
	if u, err := url.Parse(path); err == nil {
		p = u.Path
		query = u.Query()
	}

	handler, params, ok := svc.Routes().Match(method, p)
	if !ok {
		t.Fatalf("services:helpers_test - no route for %s %s", method, p)
	}

	req := &router.Request{
		Method:  method,
		Path:    p,
		Params:  params,
		Query:   query,
		Body:    raw,
		Headers: headers,
	}
	res := handler(context.Background(), req)
	if res == nil {
		t.Fatalf("services:helpers_test - nil result for %s %s", method, p)
	}
	return res
}

// decodeData round-trips result data through JSON into target.
func decodeData(t *testing.T, data, target any) {
	t.Helper()
	b, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("services:helpers_test - marshal data: %v", err)
	}
	if err := json.Unmarshal(b, target); err != nil {
		t.Fatalf("services:helpers_test - unmarshal data: %v", err)
	}
}

// asMap round-trips result data through JSON into a map for field assertions.
func asMap(t *testing.T, data any) map[string]any {
	t.Helper()
	b, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("services:helpers_test - marshal data: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("services:helpers_test - unmarshal data: %v", err)
	}
	return m
}
