package services

import (
	"context"
	"math/rand"
	"net/http"

	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
)

// aiChatResponses is the fixed pool the chat assistant draws from. Replies are
// picked at random and never derived from the prompt.
var aiChatResponses = []string{
	"Based on your credit score of 785 and income of $120,000, you qualify for our best rates. I recommend the 30-year fixed at 6.125% APR.",
	"Your application is progressing well. The underwriter has reviewed your income documentation and everything looks good. Next step is the property appraisal.",
	"Current market conditions favor rate locking within the next 7 days. Rates are expected to increase by 0.125% based on Fed signals.",
	"I've analyzed your client portfolio and identified 3 high-value prospects who are likely to close within 30 days. Would you like me to prioritize them?",
	"Your document upload was successful. I've extracted the key information and verified the income amounts. No additional documentation needed for this category.",
}

type aiRoutes struct {
	store *fixtures.Store
	sim   *latency.Simulator
	svc   *Service
}

// NewAIService builds the AI virtual service. Every response is canned or
// bounded-random; risk and client scores land in the 70-99 band.
func NewAIService(p Params) (*Service, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	svc, err := newService("ai-service", "/api/ai", "2.0.1")
	if err != nil {
		return nil, err
	}

	a := &aiRoutes{store: p.Store, sim: p.Sim, svc: svc}
	r := svc.routes
	r.Register(http.MethodPost, "/api/ai/loan-matching", a.loanMatching)
	r.Register(http.MethodPost, "/api/ai/risk-assessment", a.riskAssessment)
	r.Register(http.MethodPost, "/api/ai/document-analysis", a.documentAnalysis)
	r.Register(http.MethodGet, "/api/ai/market-predictions", a.marketPredictions)
	r.Register(http.MethodPost, "/api/ai/client-scoring", a.clientScoring)
	r.Register(http.MethodPost, "/api/ai/performance-optimization", a.performanceOptimization)
	r.Register(http.MethodPost, "/api/ai/chat", a.chat)
	r.Register(http.MethodGet, "/api/ai/health", a.health)
	return svc, nil
}

// health reports per-model status instead of the flat dependency map the
// other services use.
func (a *aiRoutes) health(ctx context.Context, req *router.Request) *router.Result {
	return router.OK(map[string]any{
		"service":   a.svc.Name(),
		"status":    "healthy",
		"timestamp": fixtures.NowISO(),
		"version":   a.svc.Version(),
		"models": map[string]any{
			"loan-matching":     map[string]string{"status": "active", "accuracy": "94.2%", "version": "v2.1"},
			"risk-assessment":   map[string]string{"status": "active", "accuracy": "91.8%", "version": "v2.0"},
			"document-analysis": map[string]string{"status": "active", "accuracy": "96.5%", "version": "v2.1"},
			"market-prediction": map[string]string{"status": "active", "accuracy": "87.3%", "version": "v1.8"},
			"client-scoring":    map[string]string{"status": "active", "accuracy": "89.7%", "version": "v1.9"},
		},
		"metrics": map[string]any{
			"requestsProcessed": 45672,
			"avgResponseTime":   "2.3s",
			"modelAccuracy":     "93.1%",
			"uptime":            "99.8%",
		},
	})
}

func (a *aiRoutes) loanMatching(ctx context.Context, req *router.Request) *router.Result {
	a.sim.AI(ctx)
	return router.OK(map[string]any{
		"requestId": newID("ai-match"),
		"matches": []map[string]any{
			{
				"lenderId":       "lender-1",
				"lenderName":     "Premier Mortgage Corp",
				"loanType":       "30-Year Fixed",
				"interestRate":   6.125,
				"apr":            6.234,
				"monthlyPayment": 3045,
				"confidence":     0.94,
				"matchReasons": []string{
					"Excellent credit score match",
					"Income-to-debt ratio optimal",
					"Property type preference",
				},
				"estimatedApprovalTime": "3-5 business days",
			},
			{
				"lenderId":       "lender-2",
				"lenderName":     "National Bank Lending",
				"loanType":       "30-Year Fixed",
				"interestRate":   6.25,
				"apr":            6.31,
				"monthlyPayment": 3078,
				"confidence":     0.89,
				"matchReasons": []string{
					"Strong employment history",
					"Competitive rate offering",
					"Fast processing capability",
				},
				"estimatedApprovalTime": "2-4 business days",
			},
		},
		"aiInsights": map[string]any{
			"recommendedLender":   "lender-1",
			"confidenceScore":     0.94,
			"riskAssessment":      "Low",
			"approvalProbability": 0.92,
			"keyFactors": []string{
				"Credit score: 785 (Excellent)",
				"Debt-to-income: 28% (Good)",
				"Down payment: 20% (Strong)",
				"Employment: 5+ years (Stable)",
			},
		},
		"processingTime": "3.2 seconds",
		"modelVersion":   "JazzX-LoanMatch-v2.1",
	})
}

func (a *aiRoutes) riskAssessment(ctx context.Context, req *router.Request) *router.Result {
	a.sim.AI(ctx)

	var input struct {
		ApplicationID string `json:"applicationId"`
	}
	if err := req.Bind(&input); err != nil {
		input.ApplicationID = ""
	}

	riskScore := 70 + rand.Intn(30)
	riskLevel := "High"
	recommendation := "Standard processing recommended"
	switch {
	case riskScore > 85:
		riskLevel = "Low"
		recommendation = "Excellent candidate for premium rates"
	case riskScore > 70:
		riskLevel = "Medium"
	}

	return router.OK(map[string]any{
		"applicationId":       input.ApplicationID,
		"riskScore":           riskScore,
		"riskLevel":           riskLevel,
		"approvalProbability": (float64(riskScore) + rand.Float64()*10) / 100,
		"riskFactors": []map[string]any{
			{
				"factor":  "Credit Score",
				"score":   riskScore + rand.Intn(10),
				"weight":  0.35,
				"impact":  "positive",
				"details": "Excellent credit history with no recent delinquencies",
			},
			{
				"factor":  "Income Stability",
				"score":   riskScore + rand.Intn(8),
				"weight":  0.25,
				"impact":  "positive",
				"details": "5+ years with current employer, consistent income growth",
			},
			{
				"factor":  "Debt-to-Income Ratio",
				"score":   riskScore - rand.Intn(5),
				"weight":  0.20,
				"impact":  "neutral",
				"details": "28% DTI ratio within acceptable range",
			},
			{
				"factor":  "Property Value",
				"score":   riskScore + rand.Intn(12),
				"weight":  0.20,
				"impact":  "positive",
				"details": "Property in stable, appreciating neighborhood",
			},
		},
		"recommendations": []string{
			recommendation,
			"Consider expedited underwriting",
			"Monitor for rate lock opportunities",
		},
		"modelConfidence": 0.92,
		"lastUpdated":     fixtures.NowISO(),
	})
}

func (a *aiRoutes) documentAnalysis(ctx context.Context, req *router.Request) *router.Result {
	a.sim.AI(ctx)

	var input struct {
		DocumentID   string `json:"documentId"`
		DocumentType string `json:"documentType"`
	}
	if err := req.Bind(&input); err != nil {
		input.DocumentID, input.DocumentType = "", ""
	}
	if input.DocumentType == "" {
		input.DocumentType = "Pay Stub"
	}

	return router.OK(map[string]any{
		"documentId": input.DocumentID,
		"analysisId": newID("ai-doc"),
		"results": map[string]any{
			"documentType": input.DocumentType,
			"confidence":   0.96,
			"extractedData": map[string]any{
				"employer":    "Tech Corporation Inc.",
				"employee":    "John Smith",
				"payPeriod":   "Monthly",
				"grossIncome": 8333.33,
				"netIncome":   6250.00,
				"payDate":     "2024-01-15",
				"ytdGross":    8333.33,
				"deductions": map[string]float64{
					"federal":   1250.00,
					"state":     416.67,
					"fica":      637.50,
					"insurance": 278.16,
				},
			},
			"validationResults": map[string]any{
				"authenticity": map[string]any{"score": 0.98, "passed": true},
				"completeness": map[string]any{"score": 0.95, "passed": true},
				"consistency":  map[string]any{"score": 0.97, "passed": true},
				"recency":      map[string]any{"score": 0.92, "passed": true},
			},
			"fraudIndicators": map[string]any{
				"alterationDetected": false,
				"inconsistentFonts":  false,
				"suspiciousPatterns": false,
				"overallFraudRisk":   "Low",
			},
			"qualityMetrics": map[string]float64{
				"readability":  0.94,
				"imageQuality": 0.89,
				"textClarity":  0.92,
			},
		},
		"processingTime": "3.8 seconds",
		"modelVersion":   "JazzX-DocAI-v2.1",
	})
}

func (a *aiRoutes) marketPredictions(ctx context.Context, req *router.Request) *router.Result {
	a.sim.AI(ctx)

	timeframe := req.QueryValue("timeframe")
	if timeframe == "" {
		timeframe = "30d"
	}
	loanType := req.QueryValue("loanType")
	if loanType == "" {
		loanType = "conventional"
	}

	return router.OK(map[string]any{
		"timeframe": timeframe,
		"loanType":  loanType,
		"predictions": map[string]any{
			"interestRates": map[string]any{
				"current":      6.25,
				"predicted30d": 6.375,
				"predicted90d": 6.50,
				"confidence":   0.87,
				"trend":        "upward",
				"factors": []string{
					"Federal Reserve policy signals",
					"Inflation expectations",
					"Economic growth indicators",
					"Housing market demand",
				},
			},
			"housingMarket": map[string]any{
				"priceAppreciation": map[string]any{
					"predicted30d": 0.8,
					"predicted90d": 2.4,
					"confidence":   0.82,
				},
				"inventory": map[string]any{
					"trend":      "increasing",
					"impact":     "moderate_positive",
					"confidence": 0.79,
				},
				"demandIndicators": map[string]any{
					"buyerActivity":      "high",
					"seasonalAdjustment": 1.15,
					"confidence":         0.85,
				},
			},
			"lendingEnvironment": map[string]any{
				"approvalRates": map[string]any{
					"current":    0.78,
					"predicted":  0.76,
					"confidence": 0.83,
				},
				"competitiveness": "high",
				"newProducts": []string{
					"AI-assisted underwriting",
					"Green mortgage incentives",
					"First-time buyer programs",
				},
			},
		},
		"recommendations": []string{
			"Consider rate lock within 14 days",
			"Monitor Fed announcements closely",
			"Prepare for increased competition",
		},
		"generatedAt":  fixtures.NowISO(),
		"modelVersion": "JazzX-MarketAI-v1.8",
	})
}

func (a *aiRoutes) clientScoring(ctx context.Context, req *router.Request) *router.Result {
	a.sim.AI(ctx)

	var input struct {
		ClientID string `json:"clientId"`
	}
	if err := req.Bind(&input); err != nil {
		input.ClientID = ""
	}

	score := 70 + rand.Intn(30)
	riskLevel := "High"
	timeToClose := "28-35 days"
	action := "Standard processing"
	switch {
	case score > 85:
		riskLevel = "Low"
		timeToClose = "18-22 days"
		action = "Fast-track application"
	case score > 70:
		riskLevel = "Medium"
		timeToClose = "22-28 days"
	}

	clientName := "Unknown Client"
	if client, ok := a.store.FindClientByID(input.ClientID); ok {
		clientName = client.FirstName + " " + client.LastName
	}

	return router.OK(map[string]any{
		"clientId":   input.ClientID,
		"clientName": clientName,
		"aiScore":    score,
		"scoreBreakdown": map[string]int{
			"creditworthiness": score + rand.Intn(10),
			"incomeStability":  score + rand.Intn(8),
			"propertyValue":    score + rand.Intn(12),
			"marketTiming":     score + rand.Intn(6),
			"brokerFit":        score + rand.Intn(15),
		},
		"riskLevel":           riskLevel,
		"approvalProbability": (float64(score) + rand.Float64()*15) / 100,
		"timeToClose":         timeToClose,
		"recommendedActions": []string{
			action,
			"Schedule follow-up within 48 hours",
			"Prepare rate lock strategy",
		},
		"crossSellOpportunities": []map[string]any{
			{"product": "Home Insurance", "probability": 0.78, "value": 1200},
			{"product": "HELOC", "probability": 0.45, "value": 3500},
			{"product": "Investment Property", "probability": 0.23, "value": 8500},
		},
		"confidence":  0.91,
		"lastUpdated": fixtures.NowISO(),
	})
}

func (a *aiRoutes) performanceOptimization(ctx context.Context, req *router.Request) *router.Result {
	a.sim.AI(ctx)

	var input struct {
		BrokerID string `json:"brokerId"`
	}
	if err := req.Bind(&input); err != nil {
		input.BrokerID = ""
	}

	return router.OK(map[string]any{
		"brokerId": input.BrokerID,
		"optimizations": []map[string]any{
			{
				"area":           "Client Communication",
				"currentScore":   78,
				"potentialScore": 89,
				"recommendations": []string{
					"Increase follow-up frequency by 25%",
					"Implement automated status updates",
					"Use AI-suggested response templates",
				},
				"estimatedImpact": map[string]string{
					"conversionIncrease": "12%",
					"timesSaved":         "4.5 hours/week",
					"clientSatisfaction": "+0.8 points",
				},
			},
			{
				"area":           "Lead Qualification",
				"currentScore":   82,
				"potentialScore": 94,
				"recommendations": []string{
					"Focus on tech industry professionals",
					"Prioritize clients with 750+ credit scores",
					"Target loan amounts $400K-$800K",
				},
				"estimatedImpact": map[string]string{
					"conversionIncrease": "18%",
					"avgLoanSize":        "+$45K",
					"processingTime":     "-3.2 days",
				},
			},
			{
				"area":           "Rate Strategy",
				"currentScore":   75,
				"potentialScore": 87,
				"recommendations": []string{
					"Implement dynamic rate locking",
					"Monitor competitor rates daily",
					"Use AI-powered rate predictions",
				},
				"estimatedImpact": map[string]string{
					"competitiveAdvantage": "15%",
					"clientRetention":      "+8%",
					"marginImprovement":    "+0.125%",
				},
			},
		},
		"overallScore":   78,
		"potentialScore": 90,
		"implementationPlan": map[string]string{
			"phase1": "Communication optimization (2 weeks)",
			"phase2": "Lead qualification refinement (3 weeks)",
			"phase3": "Rate strategy implementation (4 weeks)",
		},
		"confidence":  0.88,
		"generatedAt": fixtures.NowISO(),
	})
}

func (a *aiRoutes) chat(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Write(ctx)
	return router.OK(map[string]any{
		"response":   aiChatResponses[rand.Intn(len(aiChatResponses))],
		"confidence": 0.92,
		"suggestedActions": []string{
			"Review rate lock options",
			"Schedule client consultation",
			"Upload additional documents",
		},
		"relatedInsights": []string{
			"Market rates trending upward",
			"Client satisfaction score: 4.8/5",
			"Processing time: 18% faster than average",
		},
		"conversationId": newID("conv"),
		"timestamp":      fixtures.NowISO(),
	})
}
