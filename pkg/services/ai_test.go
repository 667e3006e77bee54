package services

import (
	"net/http"
	"strings"
	"testing"
)

const aiTestPrefix = "services:ai_test"

func TestRiskAssessment_ScoreAndLevelAgree(t *testing.T) {
	svc, err := NewAIService(testParams())
	if err != nil {
		t.Fatalf("%s - NewAIService: %v", aiTestPrefix, err)
	}

	for i := 0; i < 30; i++ {
		res := call(t, svc, http.MethodPost, "/api/ai/risk-assessment", map[string]any{"applicationId": "app-1"}, nil)
		if res.Status != http.StatusOK {
			t.Fatalf("%s - status = %d", aiTestPrefix, res.Status)
		}
		out := asMap(t, res.Data)
		score, _ := out["riskScore"].(float64)
		if score < 70 || score > 99 {
			t.Errorf("%s - riskScore = %.0f, want [70,99]", aiTestPrefix, score)
		}
		level, _ := out["riskLevel"].(string)
		switch {
		case score > 85 && level != "Low":
			t.Errorf("%s - score %.0f labeled %q, want Low", aiTestPrefix, score, level)
		case score > 70 && score <= 85 && level != "Medium":
			t.Errorf("%s - score %.0f labeled %q, want Medium", aiTestPrefix, score, level)
		case score <= 70 && level != "High":
			t.Errorf("%s - score %.0f labeled %q, want High", aiTestPrefix, score, level)
		}
	}
}

func TestLoanMatching_RecommendsTopMatch(t *testing.T) {
	svc, _ := NewAIService(testParams())

	out := asMap(t, call(t, svc, http.MethodPost, "/api/ai/loan-matching", map[string]any{"loanAmount": 500000}, nil).Data)
	var matches []map[string]any
	decodeData(t, out["matches"], &matches)
	if len(matches) != 2 {
		t.Fatalf("%s - matches len = %d, want 2", aiTestPrefix, len(matches))
	}
	insights := asMap(t, out["aiInsights"])
	if insights["recommendedLender"] != matches[0]["lenderId"] {
		t.Errorf("%s - recommendedLender = %v, want %v", aiTestPrefix, insights["recommendedLender"], matches[0]["lenderId"])
	}
}

func TestMarketPredictions_QueryDefaults(t *testing.T) {
	svc, _ := NewAIService(testParams())

	tests := []struct {
		name          string
		path          string
		wantTimeframe string
		wantLoanType  string
	}{
		{"defaults", "/api/ai/market-predictions", "30d", "conventional"},
		{"explicit", "/api/ai/market-predictions?timeframe=90d&loanType=fha", "90d", "fha"},
	}
	for _, tt := range tests {
		out := asMap(t, call(t, svc, http.MethodGet, tt.path, nil, nil).Data)
		if out["timeframe"] != tt.wantTimeframe || out["loanType"] != tt.wantLoanType {
			t.Errorf("%s - %s: timeframe/loanType = %v/%v", aiTestPrefix, tt.name, out["timeframe"], out["loanType"])
		}
		if _, ok := out["predictions"]; !ok {
			t.Errorf("%s - %s: payload missing predictions", aiTestPrefix, tt.name)
		}
	}
}

func TestAIClientScoring_BandsAndBreakdown(t *testing.T) {
	svc, _ := NewAIService(testParams())

	for i := 0; i < 20; i++ {
		out := asMap(t, call(t, svc, http.MethodPost, "/api/ai/client-scoring", map[string]any{"clientId": "client-1"}, nil).Data)
		score, _ := out["aiScore"].(float64)
		if score < 70 || score > 99 {
			t.Errorf("%s - aiScore = %.0f", aiTestPrefix, score)
		}
		if out["clientId"] != "client-1" || out["clientName"] != "John Smith" {
			t.Errorf("%s - clientId/clientName = %v/%v", aiTestPrefix, out["clientId"], out["clientName"])
		}
		breakdown := asMap(t, out["scoreBreakdown"])
		if len(breakdown) != 5 {
			t.Errorf("%s - scoreBreakdown has %d fields, want 5", aiTestPrefix, len(breakdown))
		}
		if score > 85 && out["timeToClose"] != "18-22 days" {
			t.Errorf("%s - score %.0f timeToClose = %v", aiTestPrefix, score, out["timeToClose"])
		}
	}
}

func TestChat_DrawsFromFixedPool(t *testing.T) {
	svc, _ := NewAIService(testParams())

	known := make(map[string]bool, len(aiChatResponses))
	for _, r := range aiChatResponses {
		known[r] = true
	}
	for i := 0; i < 10; i++ {
		out := asMap(t, call(t, svc, http.MethodPost, "/api/ai/chat", map[string]any{"message": "What are rates doing?"}, nil).Data)
		reply, _ := out["response"].(string)
		if !known[reply] {
			t.Errorf("%s - reply %q not in fixed pool", aiTestPrefix, reply)
		}
		if conv, _ := out["conversationId"].(string); !strings.HasPrefix(conv, "conv-") {
			t.Errorf("%s - conversationId = %q", aiTestPrefix, conv)
		}
	}
}

func TestAIHealth_ReportsModels(t *testing.T) {
	svc, _ := NewAIService(testParams())

	h := asMap(t, call(t, svc, http.MethodGet, "/api/ai/health", nil, nil).Data)
	if h["service"] != "ai-service" || h["version"] != "2.0.1" {
		t.Errorf("%s - service/version = %v/%v", aiTestPrefix, h["service"], h["version"])
	}
	models := asMap(t, h["models"])
	if len(models) != 5 {
		t.Errorf("%s - models = %d, want 5", aiTestPrefix, len(models))
	}
	for name, m := range models {
		if asMap(t, m)["status"] != "active" {
			t.Errorf("%s - model %s not active", aiTestPrefix, name)
		}
	}
}
