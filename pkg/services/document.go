package services

import (
	"context"
	"math/rand"
	"net/http"

	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
)

var documentCategories = []string{"income", "asset", "employment", "property", "identity"}

type documentRoutes struct {
	store *fixtures.Store
	sim   *latency.Simulator
}

// NewDocumentService builds the document virtual service: upload with canned
// AI extraction, list/detail views, verification, categorization, requirement
// checklists, and templates.
//
// Fixed routes under /api/documents (upload, analyze, categorize,
// requirements, templates, health) register before the :id wildcards so the
// first-match scan never captures them as document ids.
func NewDocumentService(p Params) (*Service, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	svc, err := newService("document-service", "/api/documents", "1.0.0")
	if err != nil {
		return nil, err
	}

	d := &documentRoutes{store: p.Store, sim: p.Sim}
	r := svc.routes
	r.Register(http.MethodPost, "/api/documents/upload", d.upload)
	r.Register(http.MethodPost, "/api/documents/analyze", d.analyze)
	r.Register(http.MethodPost, "/api/documents/categorize", d.categorize)
	r.Register(http.MethodGet, "/api/documents/requirements", d.requirements)
	r.Register(http.MethodGet, "/api/documents/templates", d.templates)
	r.Register(http.MethodGet, "/api/documents/health", svc.healthHandler(
		map[string]string{
			"ai-ocr-engine":        "healthy",
			"document-storage":     "healthy",
			"fraud-detection":      "healthy",
			"classification-model": "healthy",
		},
		map[string]any{
			"documentsProcessed": 15847,
			"avgProcessingTime":  "2.3s",
			"accuracyRate":       "96.8%",
			"fraudDetectionRate": "99.2%",
		}))
	r.Register(http.MethodGet, "/api/documents", d.list)
	r.Register(http.MethodGet, "/api/documents/:id", d.get)
	r.Register(http.MethodPut, "/api/documents/:id/verify", d.verify)
	r.Register(http.MethodDelete, "/api/documents/:id", d.remove)
	r.Register(http.MethodGet, "/api/documents/:id/download", d.download)
	return svc, nil
}

func (d *documentRoutes) upload(ctx context.Context, req *router.Request) *router.Result {
	d.sim.AI(ctx)

	doc := fixtures.Document{
		ID:         newID("doc"),
		Type:       "income",
		Status:     "processing",
		UploadedAt: fixtures.NowISO(),
		Size:       500000 + rand.Intn(2000000),
		MimeType:   "application/pdf",
	}
	doc.Name = "document-" + doc.ID + ".pdf"
	doc.URL = "/documents/" + doc.Name
	d.store.AddDocument(doc)

	return router.OK(map[string]any{
		"id":         doc.ID,
		"name":       doc.Name,
		"type":       doc.Type,
		"status":     doc.Status,
		"uploadedAt": doc.UploadedAt,
		"size":       doc.Size,
		"mimeType":   doc.MimeType,
		"url":        doc.URL,
		"aiProcessing": map[string]any{
			"status":     "completed",
			"confidence": 0.95,
			"extractedData": map[string]string{
				"documentType": "Pay Stub",
				"employer":     "Tech Corporation Inc.",
				"employeeName": "John Smith",
				"grossPay":     "$8,333.33",
				"netPay":       "$6,250.00",
				"payPeriod":    "Monthly",
				"payDate":      "2024-01-15",
				"ytdGross":     "$8,333.33",
				"ytdNet":       "$6,250.00",
			},
			"validationResults": map[string]bool{
				"formatValid":      true,
				"dataConsistent":   true,
				"signaturePresent": true,
				"dateRecent":       true,
				"amountReasonable": true,
			},
		},
	})
}

func (d *documentRoutes) list(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Write(ctx)

	docs := d.store.Documents()
	if t := req.QueryValue("type"); t != "" {
		docs = filterDocuments(docs, func(doc fixtures.Document) bool { return doc.Type == t })
	}
	if s := req.QueryValue("status"); s != "" {
		docs = filterDocuments(docs, func(doc fixtures.Document) bool { return doc.Status == s })
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		var riskFlags []string
		if rand.Float64() > 0.8 {
			riskFlags = []string{"Date discrepancy detected"}
		}
		out = append(out, map[string]any{
			"id":         doc.ID,
			"name":       doc.Name,
			"type":       doc.Type,
			"status":     doc.Status,
			"uploadedAt": doc.UploadedAt,
			"verifiedAt": doc.VerifiedAt,
			"size":       doc.Size,
			"mimeType":   doc.MimeType,
			"url":        doc.URL,
			"aiAnalysis": map[string]any{
				"readabilityScore":  80 + rand.Intn(20),
				"completenessScore": 85 + rand.Intn(15),
				"accuracyScore":     90 + rand.Intn(10),
				"riskFlags":         riskFlags,
			},
		})
	}
	return router.OK(out)
}

// get falls back to the first fixture document when the id is unknown.
func (d *documentRoutes) get(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Read(ctx)

	doc, ok := d.store.FindDocumentByID(req.Param("id"))
	if !ok {
		doc = d.store.Documents()[0]
	}
	modified := doc.VerifiedAt
	if modified == "" {
		modified = doc.UploadedAt
	}
	return router.OK(map[string]any{
		"id":         doc.ID,
		"name":       doc.Name,
		"type":       doc.Type,
		"status":     doc.Status,
		"uploadedAt": doc.UploadedAt,
		"verifiedAt": doc.VerifiedAt,
		"size":       doc.Size,
		"mimeType":   doc.MimeType,
		"url":        doc.URL,
		"metadata": map[string]any{
			"pages":        2,
			"resolution":   "300 DPI",
			"colorMode":    "RGB",
			"fileSize":     doc.Size,
			"createdDate":  doc.UploadedAt,
			"modifiedDate": modified,
		},
		"aiAnalysis": map[string]any{
			"documentClassification": map[string]any{
				"type":       doc.Type,
				"subtype":    "Monthly Pay Stub",
				"confidence": 0.97,
			},
			"extractedFields": map[string]any{
				"employer":  "Tech Corporation Inc.",
				"employee":  "John Smith",
				"payPeriod": "Monthly",
				"grossPay":  8333.33,
				"netPay":    6250.00,
				"deductions": map[string]float64{
					"federalTax":     1250.00,
					"stateTax":       416.67,
					"socialSecurity": 516.67,
					"medicare":       120.83,
					"insurance":      278.16,
				},
			},
			"validationResults": map[string]bool{
				"mathAccuracy":      true,
				"dateConsistency":   true,
				"formatCompliance":  true,
				"signaturePresent":  true,
				"watermarkDetected": false,
			},
			"riskAssessment": map[string]string{
				"fraudRisk":        "Low",
				"alterationRisk":   "Low",
				"completenessRisk": "Low",
				"overallRisk":      "Low",
			},
		},
	})
}

type verifyInput struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (d *documentRoutes) verify(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Write(ctx)

	var input verifyInput
	if err := req.Bind(&input); err != nil {
		input = verifyInput{}
	}

	flags := []string{}
	recommendations := []string{"Request updated document"}
	if input.Status == "approved" {
		recommendations = []string{"Document meets all requirements"}
	}
	if input.Status == "rejected" {
		flags = []string{"Income amount inconsistent"}
	}

	return router.OK(map[string]any{
		"documentId": req.Param("id"),
		"status":     input.Status,
		"verifiedAt": fixtures.NowISO(),
		"verifiedBy": "AI-System",
		"notes":      input.Notes,
		"verificationDetails": map[string]any{
			"method":          "AI + Human Review",
			"confidence":      0.94,
			"flags":           flags,
			"recommendations": recommendations,
		},
	})
}

// remove acknowledges without deleting; the document list is append-only.
func (d *documentRoutes) remove(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Read(ctx)
	return router.OK(map[string]any{
		"message":   "Document deleted successfully",
		"deletedAt": fixtures.NowISO(),
	})
}

func (d *documentRoutes) download(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Write(ctx)
	id := req.Param("id")
	return router.OK(map[string]any{
		"documentId":  id,
		"url":         "/documents/" + id + ".pdf",
		"contentType": "application/pdf",
	})
}

func (d *documentRoutes) analyze(ctx context.Context, req *router.Request) *router.Result {
	d.sim.AI(ctx)

	var input struct {
		DocumentID string `json:"documentId"`
	}
	if err := req.Bind(&input); err != nil {
		input.DocumentID = ""
	}

	return router.OK(map[string]any{
		"documentId": input.DocumentID,
		"analysisId": newID("analysis"),
		"results": map[string]any{
			"documentType": "Pay Stub",
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
			"validationChecks": map[string]any{
				"mathematicalAccuracy": map[string]any{"passed": true, "confidence": 0.99},
				"dateConsistency":      map[string]any{"passed": true, "confidence": 0.97},
				"formatCompliance":     map[string]any{"passed": true, "confidence": 0.95},
				"employerVerification": map[string]any{"passed": true, "confidence": 0.92},
			},
			"riskFlags": []string{},
			"recommendations": []string{
				"Document appears authentic and complete",
				"All mathematical calculations verified",
				"Format consistent with standard pay stub templates",
			},
		},
		"processingTime": "3.2 seconds",
		"aiModel":        "JazzX-DocAI-v2.1",
	})
}

func (d *documentRoutes) categorize(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Write(ctx)

	var input struct {
		DocumentIDs []string `json:"documentIds"`
	}
	if err := req.Bind(&input); err != nil {
		input.DocumentIDs = nil
	}

	results := make([]map[string]any, 0, len(input.DocumentIDs))
	var confidenceSum float64
	for _, id := range input.DocumentIDs {
		confidence := 0.85 + rand.Float64()*0.14
		confidenceSum += confidence
		results = append(results, map[string]any{
			"documentId":    id,
			"category":      documentCategories[rand.Intn(len(documentCategories))],
			"confidence":    confidence,
			"subcategory":   "Pay Stub",
			"suggestedTags": []string{"verified", "current", "complete"},
		})
	}

	avgConfidence := 0.0
	if len(results) > 0 {
		avgConfidence = confidenceSum / float64(len(results))
	}
	return router.OK(map[string]any{
		"results": results,
		"summary": map[string]any{
			"totalDocuments": len(input.DocumentIDs),
			"categorized":    len(results),
			"avgConfidence":  avgConfidence,
		},
	})
}

func (d *documentRoutes) requirements(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Read(ctx)

	loanType := req.QueryValue("loanType")
	requirements := []map[string]any{
		{
			"category":     "income",
			"documents":    []string{"Pay Stubs (2 months)", "Tax Returns (2 years)", "W-2 Forms (2 years)"},
			"required":     true,
			"aiVerifiable": true,
		},
		{
			"category":     "asset",
			"documents":    []string{"Bank Statements (2 months)", "Investment Statements", "Gift Letter (if applicable)"},
			"required":     true,
			"aiVerifiable": true,
		},
		{
			"category":     "employment",
			"documents":    []string{"Employment Verification Letter", "HR Contact Information"},
			"required":     true,
			"aiVerifiable": false,
		},
		{
			"category":     "property",
			"documents":    []string{"Purchase Agreement", "Property Appraisal", "Homeowners Insurance"},
			"required":     true,
			"aiVerifiable": true,
		},
	}
	if loanType == "fha" {
		requirements = append(requirements, map[string]any{
			"category":     "fha_specific",
			"documents":    []string{"FHA Case Number", "Mortgage Insurance Premium"},
			"required":     true,
			"aiVerifiable": false,
		})
	}

	return router.OK(map[string]any{
		"loanType":                loanType,
		"loanAmount":              req.QueryValue("loanAmount"),
		"requirements":            requirements,
		"estimatedProcessingTime": "5-7 business days",
		"aiProcessingCapable":     true,
	})
}

func (d *documentRoutes) templates(ctx context.Context, req *router.Request) *router.Result {
	d.sim.Read(ctx)
	return router.OK([]map[string]any{
		{
			"id":          "template-paystub",
			"name":        "Pay Stub Template",
			"category":    "income",
			"description": "Standard pay stub format for income verification",
			"fields":      []string{"employer", "employee", "payPeriod", "grossPay", "netPay", "deductions"},
			"downloadUrl": "/templates/paystub-template.pdf",
		},
		{
			"id":          "template-bank-statement",
			"name":        "Bank Statement Template",
			"category":    "asset",
			"description": "Bank statement format for asset verification",
			"fields":      []string{"accountNumber", "balance", "transactions", "statementPeriod"},
			"downloadUrl": "/templates/bank-statement-template.pdf",
		},
	})
}

func filterDocuments(docs []fixtures.Document, keep func(fixtures.Document) bool) []fixtures.Document {
	out := docs[:0:0]
	for _, d := range docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
