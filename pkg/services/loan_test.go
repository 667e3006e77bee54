package services

import (
	"math"
	"net/http"
	"strings"
	"testing"
)

const loanTestPrefix = "services:loan_test"

func TestCalculatePayment_Amortization(t *testing.T) {
	tests := []struct {
		name        string
		amount      float64
		rate        float64
		years       int
		wantMonthly float64
	}{
		{"standard 30yr", 500000, 6.25, 30, 3078.59},
		{"15yr", 300000, 5.5, 15, 2451.25},
		{"zero rate", 120000, 0, 10, 1000.00},
	}
	for _, tt := range tests {
		out := CalculatePayment(tt.amount, tt.rate, tt.years)
		if math.Abs(out.MonthlyPayment-tt.wantMonthly) > 0.5 {
			t.Errorf("%s - %s: monthly = %.2f, want %.2f", loanTestPrefix, tt.name, out.MonthlyPayment, tt.wantMonthly)
		}
		wantTotal := out.MonthlyPayment * float64(tt.years*12)
		if math.Abs(out.TotalPayment-wantTotal) > 1 {
			t.Errorf("%s - %s: totalPayment = %.2f, want ~%.2f", loanTestPrefix, tt.name, out.TotalPayment, wantTotal)
		}
		if math.Abs((out.TotalPayment-tt.amount)-out.TotalInterest) > 0.02 {
			t.Errorf("%s - %s: interest %.2f inconsistent with total %.2f", loanTestPrefix, tt.name, out.TotalInterest, out.TotalPayment)
		}
	}
}

func TestCalculatePayment_Breakdown(t *testing.T) {
	out := CalculatePayment(500000, 6.25, 30)
	if out.Breakdown.Principal != 500000 {
		t.Errorf("%s - principal = %.2f", loanTestPrefix, out.Breakdown.Principal)
	}
	if out.Breakdown.Taxes != 500.00 {
		t.Errorf("%s - taxes = %.2f, want 500.00", loanTestPrefix, out.Breakdown.Taxes)
	}
	if out.Breakdown.Insurance != 166.67 {
		t.Errorf("%s - insurance = %.2f, want 166.67", loanTestPrefix, out.Breakdown.Insurance)
	}
}

func TestCalculatePaymentRoute(t *testing.T) {
	svc, err := NewLoanService(testParams())
	if err != nil {
		t.Fatalf("%s - NewLoanService: %v", loanTestPrefix, err)
	}

	res := call(t, svc, http.MethodPost, "/api/loans/calculate/payment", map[string]any{
		"loanAmount": 500000, "interestRate": 6.25, "loanTerm": 30,
	}, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - status = %d", loanTestPrefix, res.Status)
	}
	out := asMap(t, res.Data)
	monthly, _ := out["monthlyPayment"].(float64)
	if math.Abs(monthly-3078.59) > 0.5 {
		t.Errorf("%s - monthlyPayment = %.2f", loanTestPrefix, monthly)
	}
}

func TestQuote_ConfidenceBands(t *testing.T) {
	svc, _ := NewLoanService(testParams())

	for i := 0; i < 20; i++ {
		res := call(t, svc, http.MethodPost, "/api/loans/quote", map[string]any{"loanAmount": 400000}, nil)
		if res.Status != http.StatusOK {
			t.Fatalf("%s - quote status = %d", loanTestPrefix, res.Status)
		}
		quote := asMap(t, res.Data)
		conf, _ := quote["confidence"].(float64)
		if conf < 90 || conf > 99 {
			t.Errorf("%s - confidence = %.0f, want [90,99]", loanTestPrefix, conf)
		}
		if quote["aiConfidenceScore"] != float64(95) {
			t.Errorf("%s - aiConfidenceScore = %v", loanTestPrefix, quote["aiConfidenceScore"])
		}
	}
}

func TestApplicationLifecycle(t *testing.T) {
	p := testParams()
	svc, _ := NewLoanService(p)

	res := call(t, svc, http.MethodPost, "/api/loans/applications", map[string]any{
		"loanAmount": 450000, "propertyValue": 600000, "loanType": "conventional",
	}, nil)
	if res.Status != http.StatusCreated {
		t.Fatalf("%s - create status = %d, want 201", loanTestPrefix, res.Status)
	}
	app := asMap(t, res.Data)
	id, _ := app["id"].(string)
	if app["status"] != "draft" || app["progress"] != float64(10) {
		t.Errorf("%s - new application status/progress = %v/%v", loanTestPrefix, app["status"], app["progress"])
	}
	if num, _ := app["applicationNumber"].(string); !strings.HasPrefix(num, "JX") {
		t.Errorf("%s - applicationNumber = %q", loanTestPrefix, num)
	}

	res = call(t, svc, http.MethodGet, "/api/loans/applications/"+id, nil, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - get status = %d", loanTestPrefix, res.Status)
	}
	if got := asMap(t, res.Data)["loanAmount"]; got != float64(450000) {
		t.Errorf("%s - loanAmount = %v", loanTestPrefix, got)
	}

	res = call(t, svc, http.MethodPost, "/api/loans/applications/"+id+"/submit", nil, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - submit status = %d", loanTestPrefix, res.Status)
	}
	if got := asMap(t, res.Data)["status"]; got != "submitted" {
		t.Errorf("%s - submit payload status = %v", loanTestPrefix, got)
	}
	stored, ok := p.Store.FindApplicationByID(id)
	if !ok || stored.Status != "submitted" || stored.Progress != 25 {
		t.Errorf("%s - stored after submit = %+v", loanTestPrefix, stored)
	}
}

func TestGetApplication_UnknownID(t *testing.T) {
	svc, _ := NewLoanService(testParams())

	res := call(t, svc, http.MethodGet, "/api/loans/applications/app-missing", nil, nil)
	if res.Status != http.StatusNotFound || res.Message != "Application not found" {
		t.Errorf("%s - status/message = %d/%q", loanTestPrefix, res.Status, res.Message)
	}
}

func TestDeleteApplication_AcknowledgesWithoutRemoving(t *testing.T) {
	p := testParams()
	svc, _ := NewLoanService(p)

	created := asMap(t, call(t, svc, http.MethodPost, "/api/loans/applications", nil, nil).Data)
	id, _ := created["id"].(string)
	before := len(p.Store.Applications())

	res := call(t, svc, http.MethodDelete, "/api/loans/applications/"+id, nil, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - delete status = %d", loanTestPrefix, res.Status)
	}
	if got := len(p.Store.Applications()); got != before {
		t.Errorf("%s - applications = %d after delete, want %d", loanTestPrefix, got, before)
	}
	if _, ok := p.Store.FindApplicationByID(id); !ok {
		t.Errorf("%s - record vanished from append-only store", loanTestPrefix)
	}
}

func TestCurrentRates_StayInsideBand(t *testing.T) {
	svc, _ := NewLoanService(testParams())

	for i := 0; i < 10; i++ {
		rates := asMap(t, call(t, svc, http.MethodGet, "/api/loans/rates/current", nil, nil).Data)
		conv30, _ := rates["conventional30"].(float64)
		if math.Abs(conv30-baseConventional30) > rateBand/2 {
			t.Errorf("%s - conventional30 = %.3f, want within %.2f of %.2f", loanTestPrefix, conv30, rateBand/2, baseConventional30)
		}
	}
}

func TestRateHistory_DaysAndOrdering(t *testing.T) {
	svc, _ := NewLoanService(testParams())

	tests := []struct {
		name string
		path string
		want int
	}{
		{"default", "/api/loans/rates/history", 30},
		{"explicit", "/api/loans/rates/history?days=7", 7},
		{"invalid falls back", "/api/loans/rates/history?days=0", 30},
	}
	for _, tt := range tests {
		res := call(t, svc, http.MethodGet, tt.path, nil, nil)
		var series []map[string]any
		decodeData(t, res.Data, &series)
		if len(series) != tt.want {
			t.Errorf("%s - %s: len = %d, want %d", loanTestPrefix, tt.name, len(series), tt.want)
			continue
		}
		first, _ := series[0]["date"].(string)
		last, _ := series[len(series)-1]["date"].(string)
		if len(series) > 1 && first > last {
			t.Errorf("%s - %s: series not oldest-first (%s .. %s)", loanTestPrefix, tt.name, first, last)
		}
	}
}

func TestListQuotes_Paginated(t *testing.T) {
	svc, _ := NewLoanService(testParams())

	res := call(t, svc, http.MethodGet, "/api/loans/quotes?page=1&limit=2", nil, nil)
	page := asMap(t, res.Data)
	if page["total"] != float64(5) || page["totalPages"] != float64(3) {
		t.Errorf("%s - total/totalPages = %v/%v", loanTestPrefix, page["total"], page["totalPages"])
	}
}
