package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/jazzx/virtual-services/pkg/dispatcher"
	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
)

const loanLogPrefix = "services:loan"

// Base rates the /rates endpoints perturb around. Rates move in a small
// random band so repeated polls look alive without ever leaving the band.
const (
	baseConventional30 = 6.25
	baseConventional15 = 5.75
	baseFHA30          = 6.00
	baseVA30           = 5.95
	baseJumbo30        = 6.45
	rateBand           = 0.5
)

type loanRoutes struct {
	store *fixtures.Store
	sim   *latency.Simulator
}

// NewLoanService builds the loan virtual service: quotes, application CRUD,
// document stubs, rate feeds, AI stubs, and the payment calculator.
func NewLoanService(p Params) (*Service, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	svc, err := newService("loan-service", "/api/loans", "1.0.0")
	if err != nil {
		return nil, err
	}

	l := &loanRoutes{store: p.Store, sim: p.Sim}
	r := svc.routes
	r.Register(http.MethodPost, "/api/loans/quote", l.generateQuote)
	r.Register(http.MethodGet, "/api/loans/quotes", l.listQuotes)
	r.Register(http.MethodPost, "/api/loans/quotes/:id/save", l.saveQuote)
	r.Register(http.MethodPost, "/api/loans/applications", l.createApplication)
	r.Register(http.MethodGet, "/api/loans/applications", l.listApplications)
	r.Register(http.MethodGet, "/api/loans/applications/:id", l.getApplication)
	r.Register(http.MethodPut, "/api/loans/applications/:id", l.updateApplication)
	r.Register(http.MethodDelete, "/api/loans/applications/:id", l.deleteApplication)
	r.Register(http.MethodPost, "/api/loans/applications/:id/submit", l.submitApplication)
	r.Register(http.MethodGet, "/api/loans/applications/:id/documents", l.listApplicationDocuments)
	r.Register(http.MethodGet, "/api/loans/applications/:id/status", l.applicationStatus)
	r.Register(http.MethodGet, "/api/loans/applications/:id/ai-recommendations", l.aiRecommendations)
	r.Register(http.MethodGet, "/api/loans/applications/:id/ai-score", l.aiScore)
	r.Register(http.MethodPost, "/api/loans/documents/upload", l.uploadDocument)
	r.Register(http.MethodDelete, "/api/loans/documents/:id", l.deleteDocument)
	r.Register(http.MethodGet, "/api/loans/documents/:id/download", l.downloadDocument)
	r.Register(http.MethodGet, "/api/loans/rates/current", l.currentRates)
	r.Register(http.MethodGet, "/api/loans/rates/history", l.rateHistory)
	r.Register(http.MethodGet, "/api/loans/market/insights", l.marketInsights)
	r.Register(http.MethodPost, "/api/loans/property/estimate", l.propertyEstimate)
	r.Register(http.MethodPost, "/api/loans/calculate/payment", l.calculatePayment)
	r.Register(http.MethodGet, "/api/loans/health", svc.healthHandler(
		map[string]string{
			"ai-engine":          "healthy",
			"document-processor": "healthy",
			"rate-provider":      "healthy",
		}, nil))
	return svc, nil
}

// quoteOutput is the AI-styled quote payload. Confidence fields are canned or
// bounded-random, never derived from the request.
type quoteOutput struct {
	ID                  string                 `json:"id"`
	LoanOptions         []fixtures.LoanOption  `json:"loanOptions"`
	AIConfidenceScore   int                    `json:"aiConfidenceScore"`
	ApprovalProbability int                    `json:"approvalProbability"`
	Confidence          int                    `json:"confidence"`
	AIProcessingTime    string                 `json:"aiProcessingTime"`
	RecommendedBroker   fixtures.BrokerProfile `json:"recommendedBroker"`
	MarketInsights      []fixtures.MarketSignal `json:"marketInsights"`
	CreatedAt           string                 `json:"createdAt"`
}

func (l *loanRoutes) newQuote() quoteOutput {
	return quoteOutput{
		ID:                  newID("quote"),
		LoanOptions:         l.store.LoanOptions(),
		AIConfidenceScore:   95,
		ApprovalProbability: 92,
		Confidence:          90 + rand.Intn(10),
		AIProcessingTime:    "2.8s",
		RecommendedBroker:   l.store.BrokerProfile(),
		MarketInsights:      l.store.MarketSignals(),
		CreatedAt:           fixtures.NowISO(),
	}
}

func (l *loanRoutes) generateQuote(ctx context.Context, req *router.Request) *router.Result {
	l.sim.AI(ctx)
	return router.OK(l.newQuote())
}

func (l *loanRoutes) listQuotes(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)
	quotes := make([]quoteOutput, 5)
	for i := range quotes {
		quotes[i] = l.newQuote()
	}
	return router.OK(paginate(quotes, req))
}

func (l *loanRoutes) saveQuote(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)
	return router.OKMessage("Quote saved successfully")
}

type applicationInput struct {
	LoanAmount       int    `json:"loanAmount"`
	PropertyValue    int    `json:"propertyValue"`
	DownPayment      int    `json:"downPayment"`
	LoanType         string `json:"loanType"`
	PropertyType     string `json:"propertyType"`
	CreditScore      int    `json:"creditScore"`
	AnnualIncome     int    `json:"annualIncome"`
	EmploymentStatus string `json:"employmentStatus"`
}

func (l *loanRoutes) createApplication(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Write(ctx)

	var input applicationInput
	if err := req.Bind(&input); err != nil {
		input = applicationInput{}
	}

	now := fixtures.NowISO()
	app := fixtures.LoanApplication{
		ID:                newID("app"),
		UserID:            "user-1",
		Status:            "draft",
		LoanAmount:        input.LoanAmount,
		PropertyValue:     input.PropertyValue,
		DownPayment:       input.DownPayment,
		LoanType:          input.LoanType,
		PropertyType:      input.PropertyType,
		CreditScore:       input.CreditScore,
		AnnualIncome:      input.AnnualIncome,
		EmploymentStatus:  input.EmploymentStatus,
		ApplicationNumber: "JX" + shortRef(),
		Progress:          10,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	l.store.AddApplication(app)
	slog.Info(fmt.Sprintf("%s - application created id=%s number=%s", loanLogPrefix, app.ID, app.ApplicationNumber))
	return router.Created(app)
}

func (l *loanRoutes) listApplications(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)
	return router.OK(paginate(l.store.Applications(), req))
}

func (l *loanRoutes) getApplication(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)

	app, ok := l.store.FindApplicationByID(req.Param("id"))
	if !ok {
		return router.Fail(http.StatusNotFound, "Application not found")
	}
	return router.OK(map[string]any{
		"id":                app.ID,
		"userId":            app.UserID,
		"status":            app.Status,
		"loanAmount":        app.LoanAmount,
		"propertyValue":     app.PropertyValue,
		"downPayment":       app.DownPayment,
		"loanType":          app.LoanType,
		"propertyType":      app.PropertyType,
		"creditScore":       app.CreditScore,
		"annualIncome":      app.AnnualIncome,
		"employmentStatus":  app.EmploymentStatus,
		"applicationNumber": app.ApplicationNumber,
		"progress":          app.Progress,
		"nextSteps":         []string{"Upload bank statements", "Schedule appraisal", "Review loan terms"},
		"createdAt":         app.CreatedAt,
		"updatedAt":         app.UpdatedAt,
	})
}

func (l *loanRoutes) updateApplication(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Write(ctx)

	var input applicationInput
	if err := req.Bind(&input); err != nil {
		input = applicationInput{}
	}

	app, ok := l.store.UpdateApplication(req.Param("id"), func(a *fixtures.LoanApplication) {
		if input.LoanAmount != 0 {
			a.LoanAmount = input.LoanAmount
		}
		if input.PropertyValue != 0 {
			a.PropertyValue = input.PropertyValue
		}
		if input.DownPayment != 0 {
			a.DownPayment = input.DownPayment
		}
		if input.LoanType != "" {
			a.LoanType = input.LoanType
		}
		if input.PropertyType != "" {
			a.PropertyType = input.PropertyType
		}
		a.UpdatedAt = fixtures.NowISO()
	})
	if !ok {
		return router.Fail(http.StatusNotFound, "Application not found")
	}
	return router.OK(app)
}

// deleteApplication acknowledges without removing; fixture collections are
// append/update-only for the life of the store.
func (l *loanRoutes) deleteApplication(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)
	return router.OKMessage("Application deleted successfully")
}

func (l *loanRoutes) submitApplication(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Write(ctx)

	now := fixtures.NowISO()
	_, ok := l.store.UpdateApplication(req.Param("id"), func(a *fixtures.LoanApplication) {
		a.Status = "submitted"
		a.Progress = 25
		a.UpdatedAt = now
	})
	if !ok {
		return router.Fail(http.StatusNotFound, "Application not found")
	}
	slog.Info(fmt.Sprintf("%s - application submitted id=%s", loanLogPrefix, req.Param("id")))
	return router.OK(map[string]any{
		"message":            "Application submitted successfully",
		"status":             "submitted",
		"submittedAt":        now,
		"confirmationNumber": "JX" + shortRef(),
	})
}

func (l *loanRoutes) listApplicationDocuments(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)
	return router.OK(l.store.Documents())
}

func (l *loanRoutes) applicationStatus(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)
	return router.OK(map[string]any{
		"currentStatus": "underwriting",
		"progress":      75,
		"timeline": []map[string]any{
			{"stage": "application", "status": "completed", "date": "2024-01-15T10:00:00Z"},
			{"stage": "documentation", "status": "completed", "date": "2024-01-18T14:30:00Z"},
			{"stage": "verification", "status": "completed", "date": "2024-01-20T09:15:00Z"},
			{"stage": "underwriting", "status": "in_progress", "date": "2024-01-22T11:00:00Z"},
			{"stage": "approval", "status": "pending", "estimatedDate": "2024-01-25T16:00:00Z"},
			{"stage": "closing", "status": "pending", "estimatedDate": "2024-01-30T10:00:00Z"},
		},
		"nextActions": []string{
			"Underwriter reviewing income documentation",
			"Appraisal scheduled for January 24th",
			"Final approval expected by January 25th",
		},
		"estimatedClosingDate": "2024-01-30T10:00:00Z",
	})
}

func (l *loanRoutes) aiRecommendations(ctx context.Context, req *router.Request) *router.Result {
	l.sim.AI(ctx)
	return router.OK([]map[string]any{
		{
			"type":             "rate_optimization",
			"title":            "Rate Lock Opportunity",
			"description":      "Current rates are 0.125% below your quoted rate. Consider locking now.",
			"confidence":       92,
			"potentialSavings": "$18,500 over loan term",
			"action":           "Lock rate within 48 hours",
		},
		{
			"type":        "document_optimization",
			"title":       "Document Efficiency",
			"description": "Upload recent bank statements to expedite underwriting by 3-5 days.",
			"confidence":  88,
			"timeSaved":   "3-5 days",
			"action":      "Upload 2 months of bank statements",
		},
	})
}

func (l *loanRoutes) aiScore(ctx context.Context, req *router.Request) *router.Result {
	l.sim.AI(ctx)
	return router.OK(map[string]any{
		"overallScore":        87,
		"approvalProbability": 94,
		"riskFactors": []map[string]any{
			{"factor": "Credit Score", "score": 95, "impact": "positive"},
			{"factor": "Debt-to-Income", "score": 82, "impact": "neutral"},
			{"factor": "Employment History", "score": 90, "impact": "positive"},
			{"factor": "Down Payment", "score": 85, "impact": "positive"},
		},
		"recommendations": []string{
			"Excellent credit profile - qualify for best rates",
			"Consider increasing down payment for better terms",
			"Strong employment history supports approval",
		},
	})
}

func (l *loanRoutes) uploadDocument(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Write(ctx)

	doc := fixtures.Document{
		ID:         newID("doc"),
		Name:       "uploaded-document.pdf",
		Type:       "income",
		Status:     "uploaded",
		UploadedAt: fixtures.NowISO(),
		Size:       500000 + rand.Intn(2000000),
		MimeType:   "application/pdf",
	}
	doc.URL = "/documents/" + doc.ID + ".pdf"
	l.store.AddDocument(doc)

	return router.OK(map[string]any{
		"id":         doc.ID,
		"name":       doc.Name,
		"type":       doc.Type,
		"status":     doc.Status,
		"uploadedAt": doc.UploadedAt,
		"size":       doc.Size,
		"mimeType":   doc.MimeType,
		"url":        doc.URL,
		"aiExtractedData": map[string]any{
			"documentType": "Pay Stub",
			"employer":     "Tech Corp Inc.",
			"grossPay":     "$8,333.33",
			"netPay":       "$6,250.00",
			"payPeriod":    "Monthly",
		},
	})
}

func (l *loanRoutes) deleteDocument(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)
	return router.OKMessage("Document deleted successfully")
}

func (l *loanRoutes) downloadDocument(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Write(ctx)
	id := req.Param("id")
	return router.OK(map[string]any{
		"documentId":  id,
		"url":         "/documents/" + id + ".pdf",
		"contentType": "application/pdf",
	})
}

func (l *loanRoutes) currentRates(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)

	trend := "down"
	if rand.Float64() > 0.5 {
		trend = "up"
	}
	return router.OK(map[string]any{
		"conventional30": perturb(baseConventional30),
		"conventional15": perturb(baseConventional15),
		"fha30":          perturb(baseFHA30),
		"va30":           perturb(baseVA30),
		"jumbo30":        perturb(baseJumbo30),
		"lastUpdated":    fixtures.NowISO(),
		"source":         "Federal Reserve Economic Data",
		"trend":          trend,
		"changePercent":  (rand.Float64() - 0.5) * 0.2,
	})
}

func (l *loanRoutes) rateHistory(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)

	days := req.QueryInt("days", 30)
	if days < 1 {
		days = 30
	}

	history := make([]map[string]any, days)
	for i := 0; i < days; i++ {
		day := time.Now().UTC().AddDate(0, 0, -i)
		wave := math.Sin(float64(i) * 0.1)
		// Oldest first.
		history[days-1-i] = map[string]any{
			"date":           day.Format("2006-01-02"),
			"conventional30": baseConventional30 + wave*0.3,
			"conventional15": baseConventional15 + wave*0.25,
			"fha30":          baseFHA30 + wave*0.3,
			"va30":           baseVA30 + wave*0.25,
		}
	}
	return router.OK(history)
}

func (l *loanRoutes) marketInsights(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Write(ctx)
	return router.OK(l.store.MarketSignals())
}

func (l *loanRoutes) propertyEstimate(ctx context.Context, req *router.Request) *router.Result {
	l.sim.AI(ctx)
	return router.OK(map[string]any{
		"estimatedValue": 580000 + rand.Intn(100000),
		"confidence":     "High",
		"valuationDate":  fixtures.NowISO(),
		"comparables": []map[string]any{
			{"address": "123 Similar St", "price": 575000, "distance": 0.2, "soldDate": "2024-01-10"},
			{"address": "456 Nearby Ave", "price": 590000, "distance": 0.3, "soldDate": "2024-01-05"},
			{"address": "789 Close Rd", "price": 565000, "distance": 0.4, "soldDate": "2023-12-28"},
		},
		"marketTrends": map[string]any{
			"priceChange30d":  2.1,
			"priceChange90d":  5.8,
			"daysOnMarket":    28,
			"inventoryLevel":  "Low",
			"marketCondition": "Seller's Market",
		},
		"aiInsights": []string{
			"Property value trending upward in this neighborhood",
			"Low inventory supporting price appreciation",
			"Comparable sales indicate strong market demand",
		},
	})
}

type paymentInput struct {
	LoanAmount   float64 `json:"loanAmount"`
	InterestRate float64 `json:"interestRate"`
	LoanTerm     int     `json:"loanTerm"`
}

type paymentOutput struct {
	MonthlyPayment float64          `json:"monthlyPayment"`
	TotalInterest  float64          `json:"totalInterest"`
	TotalPayment   float64          `json:"totalPayment"`
	Breakdown      paymentBreakdown `json:"breakdown"`
}

type paymentBreakdown struct {
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Taxes     float64 `json:"taxes"`
	Insurance float64 `json:"insurance"`
}

func (l *loanRoutes) calculatePayment(ctx context.Context, req *router.Request) *router.Result {
	l.sim.Read(ctx)

	var input paymentInput
	if err := req.Bind(&input); err != nil {
		return router.Fail(http.StatusNotFound, "Invalid calculation input")
	}
	return router.OK(CalculatePayment(input.LoanAmount, input.InterestRate, input.LoanTerm))
}

// CalculatePayment computes a standard fixed-rate amortization:
// monthly = P * r(1+r)^n / ((1+r)^n - 1) with r = rate/100/12 and n = term*12.
// All dollar amounts are rounded to the cent. Taxes and insurance are rough
// monthly estimates from annual factors of 1.2% and 0.4% of principal.
func CalculatePayment(loanAmount, interestRate float64, loanTermYears int) paymentOutput {
	monthlyRate := interestRate / 100 / 12
	numPayments := float64(loanTermYears * 12)

	var monthly float64
	if monthlyRate == 0 {
		monthly = loanAmount / numPayments
	} else {
		factor := math.Pow(1+monthlyRate, numPayments)
		monthly = loanAmount * (monthlyRate * factor) / (factor - 1)
	}

	totalPayment := monthly * numPayments
	totalInterest := totalPayment - loanAmount

	return paymentOutput{
		MonthlyPayment: roundCents(monthly),
		TotalInterest:  roundCents(totalInterest),
		TotalPayment:   roundCents(totalPayment),
		Breakdown: paymentBreakdown{
			Principal: loanAmount,
			Interest:  roundCents(totalInterest),
			Taxes:     roundCents(loanAmount * 0.012 / 12),
			Insurance: roundCents(loanAmount * 0.004 / 12),
		},
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// perturb returns base plus a uniform offset inside ±rateBand/2.
func perturb(base float64) float64 {
	return base + (rand.Float64()-0.5)*rateBand
}

// paginate applies the request's page/limit query parameters to items.
func paginate[T any](items []T, req *router.Request) *dispatcher.Paginated[T] {
	return dispatcher.Paginate(items, req.QueryInt("page", 1), req.QueryInt("limit", 10))
}
