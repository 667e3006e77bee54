package fixtures

// Seed data mirrors the demo accounts and records the UI expects at first
// load. Each seed function returns a fresh slice so Reset restores pristine
// collections regardless of runtime mutation.

func seedUsers() []User {
	return []User{
		{
			ID:        "1",
			Email:     "demo@borrower.com",
			FirstName: "John",
			LastName:  "Smith",
			Phone:     "(555) 123-4567",
			UserType:  "borrower",
			CreatedAt: "2024-01-15T10:00:00Z",
			UpdatedAt: "2024-01-15T10:00:00Z",
		},
		{
			ID:        "2",
			Email:     "broker@company.com",
			FirstName: "Sarah",
			LastName:  "Johnson",
			Phone:     "(555) 987-6543",
			UserType:  "broker",
			CreatedAt: "2024-01-10T09:00:00Z",
			UpdatedAt: "2024-01-10T09:00:00Z",
		},
	}
}

func seedClients() []Client {
	return []Client{
		{
			ID: "client-1", FirstName: "John", LastName: "Smith",
			Email: "john@email.com", Phone: "(555) 123-4567",
			Status: "active", AIScore: 85, LoanAmount: 450000,
			LoanType: "30-Year Fixed", LastActivity: "2 hours ago",
			Tags:           []string{"Rate Lock Expiring", "High Priority"},
			AssignedBroker: "broker-1", CreatedAt: "2024-01-15T10:00:00Z",
		},
		{
			ID: "client-2", FirstName: "Maria", LastName: "Garcia",
			Email: "maria@email.com", Phone: "(555) 234-5678",
			Status: "active", AIScore: 72, LoanAmount: 320000,
			LoanType: "15-Year Fixed", LastActivity: "1 day ago",
			Tags:           []string{"AI Flagged", "Income Discrepancy"},
			AssignedBroker: "broker-1", CreatedAt: "2024-01-16T11:00:00Z",
		},
		{
			ID: "client-3", FirstName: "Robert", LastName: "Johnson",
			Email: "robert@email.com", Phone: "(555) 345-6789",
			Status: "active", AIScore: 91, LoanAmount: 680000,
			LoanType: "30-Year Fixed", LastActivity: "3 hours ago",
			Tags:           []string{"Strong Profile", "Underwriting"},
			AssignedBroker: "broker-1", CreatedAt: "2024-01-17T09:00:00Z",
		},
	}
}

func seedDocuments() []Document {
	return []Document{
		{
			ID: "doc-1", Name: "Pay_Stub_December_2024.pdf", Type: "income",
			Status: "verified", UploadedAt: "2024-01-15T14:30:00Z",
			VerifiedAt: "2024-01-15T16:45:00Z", Size: 245760,
			MimeType: "application/pdf", URL: "/documents/doc-1.pdf",
		},
		{
			ID: "doc-2", Name: "Tax_Return_2023.pdf", Type: "income",
			Status: "verified", UploadedAt: "2024-01-15T14:35:00Z",
			VerifiedAt: "2024-01-15T17:20:00Z", Size: 1024000,
			MimeType: "application/pdf", URL: "/documents/doc-2.pdf",
		},
		{
			ID: "doc-3", Name: "Bank_Statement_January_2024.pdf", Type: "asset",
			Status: "pending", UploadedAt: "2024-01-20T10:15:00Z",
			Size: 512000, MimeType: "application/pdf", URL: "/documents/doc-3.pdf",
		},
	}
}

func seedMessages() []Message {
	return []Message{
		{
			ID: "msg-1", SenderID: "broker-1", ReceiverID: "client-1",
			Content: "Hi John! Great news - your employment verification came through successfully. Your employer confirmed your position and salary details.",
			Type:    "text", IsRead: true, CreatedAt: "2024-01-20T14:30:00Z",
		},
		{
			ID: "msg-2", SenderID: "broker-1", ReceiverID: "client-1",
			Content: "We're now just waiting on your recent bank statements to complete the document verification phase. Once we have those, we can move to underwriting!",
			Type:    "text", IsRead: true, CreatedAt: "2024-01-20T14:31:00Z",
		},
		{
			ID: "msg-3", SenderID: "client-1", ReceiverID: "broker-1",
			Content: "That's fantastic news! I'll upload the bank statements today. Should I include both checking and savings accounts?",
			Type:    "text", IsRead: true, CreatedAt: "2024-01-20T15:15:00Z",
		},
	}
}

func seedInsights() []Insight {
	return []Insight{
		{
			ID: "insight-1", Type: "alert", Priority: "urgent",
			Title:       "Rate Lock Opportunities",
			Description: "3 clients should lock rates immediately. Market analysis shows 0.25% increase likely within 48 hours.",
			ActionItems: []string{"Contact John Smith - $450K", "Contact David Wilson - $395K", "Contact Lisa Chen - $525K"},
			Confidence:  92, Impact: "High revenue protection",
			CreatedAt: "2024-01-20T08:00:00Z",
		},
		{
			ID: "insight-2", Type: "opportunity", Priority: "high",
			Title:       "Cross-Sell Opportunities",
			Description: "AI identified 5 existing clients likely to need refinancing or HELOC products.",
			ActionItems: []string{"Generate refinance campaigns", "Contact high-value prospects", "Schedule consultations"},
			Confidence:  73, Impact: "$890K refinance potential, $340K HELOC potential",
			CreatedAt: "2024-01-20T07:30:00Z",
		},
		{
			ID: "insight-3", Type: "recommendation", Priority: "medium",
			Title:       "Process Optimization",
			Description: "Document processing time can be reduced by 35% by implementing AI-suggested workflow changes.",
			ActionItems: []string{"Implement automated document categorization", "Update workflow templates", "Train team on new processes"},
			Confidence:  85, Impact: "4.2 hours/week time savings, 35% efficiency gain",
			CreatedAt: "2024-01-20T07:00:00Z",
		},
	}
}

func seedMarketSignals() []MarketSignal {
	return []MarketSignal{
		{
			Type: "rate_trend", Title: "Interest Rate Forecast",
			Description: "Rates expected to increase 0.25% in next 30 days based on Fed policy signals",
			Impact:      "negative", Confidence: 85, Actionable: true,
		},
		{
			Type: "market_condition", Title: "Housing Market Update",
			Description: "Strong seller's market continues with 8% YoY price growth",
			Impact:      "positive", Confidence: 92, Actionable: false,
		},
		{
			Type: "recommendation", Title: "First-Time Buyer Opportunity",
			Description: "First-time buyer activity up 15% - focus on FHA products",
			Impact:      "positive", Confidence: 78, Actionable: true,
		},
	}
}

func seedNotifications() []Notification {
	return []Notification{
		{
			ID: "notif-1", UserID: "user-1", Type: "application_update",
			Title: "Application Status Update", Priority: "medium", Status: "unread",
			Message:   "Your loan application has moved to underwriting stage",
			ActionURL: "/loan-status", CreatedAt: "2024-01-20T12:00:00Z",
			Metadata: map[string]any{
				"applicationId":  "app-123",
				"previousStatus": "documentation",
				"newStatus":      "underwriting",
			},
		},
		{
			ID: "notif-2", UserID: "user-1", Type: "document_required",
			Title: "Document Upload Required", Priority: "high", Status: "unread",
			Message:   "Please upload your recent bank statements to continue processing",
			ActionURL: "/documents", CreatedAt: "2024-01-20T10:00:00Z",
			Metadata: map[string]any{"documentType": "bank_statement"},
		},
		{
			ID: "notif-3", UserID: "user-1", Type: "rate_alert",
			Title: "Rate Lock Opportunity", Priority: "medium", Status: "read",
			Message:   "Interest rates have dropped 0.125%. Consider locking your rate now.",
			ActionURL: "/quote-results", CreatedAt: "2024-01-19T14:00:00Z",
			Metadata: map[string]any{
				"currentRate":   6.125,
				"previousRate":  6.25,
				"savingsAmount": 18500,
			},
		},
		{
			ID: "notif-4", UserID: "broker-1", Type: "client_action",
			Title: "Client Action Required", Priority: "urgent", Status: "unread",
			Message:   "John Smith needs rate lock extension approval",
			ActionURL: "/client-management/client-1", CreatedAt: "2024-01-20T13:30:00Z",
			Metadata: map[string]any{
				"clientId":   "client-1",
				"actionType": "rate_lock_extension",
			},
		},
		{
			ID: "notif-5", UserID: "broker-1", Type: "ai_insight",
			Title: "AI Recommendation", Priority: "medium", Status: "unread",
			Message:   "High-value prospect identified: Maria Garcia (Score: 94)",
			ActionURL: "/ai-insights", CreatedAt: "2024-01-20T12:00:00Z",
			Metadata: map[string]any{
				"clientId":           "client-2",
				"aiScore":            94,
				"recommendationType": "high_value_prospect",
			},
		},
	}
}

func seedLoanOptions() []LoanOption {
	return []LoanOption{
		{
			ID: "1", LoanType: "30-Year Fixed", InterestRate: 6.25, APR: 6.31,
			MonthlyPayment: 3078, TotalInterest: 608080, LoanTerm: 30,
			IsRecommended: true,
			Features:      []string{"Fixed rate for entire term", "Predictable payments", "No prepayment penalty"},
			Pros:          []string{"Lowest total cost over loan lifetime", "Stable payments with no rate changes", "Best match for your financial profile"},
			Cons:          []string{"Higher monthly payment than ARM options"},
		},
		{
			ID: "2", LoanType: "15-Year Fixed", InterestRate: 5.75, APR: 5.82,
			MonthlyPayment: 4156, TotalInterest: 248080, LoanTerm: 15,
			IsRecommended: false,
			Features:      []string{"Shorter loan term", "Lower interest rate", "Build equity faster"},
			Pros:          []string{"Pay off loan 15 years earlier", "Save $360,000 in total interest", "Build equity faster"},
			Cons:          []string{"Higher monthly payment", "Less cash flow flexibility"},
		},
		{
			ID: "3", LoanType: "5/1 ARM", InterestRate: 5.50, APR: 6.85,
			MonthlyPayment: 2838, TotalInterest: 520000, LoanTerm: 30,
			IsRecommended: false,
			Features:      []string{"Fixed rate for 5 years", "Rate adjusts annually after", "Lower initial payment"},
			Pros:          []string{"Lowest initial payment", "Good if planning to move within 5-7 years", "Maximum cash flow initially"},
			Cons:          []string{"Rate uncertainty after 5 years", "Payment may increase significantly"},
		},
	}
}

func seedBrokerProfile() BrokerProfile {
	return BrokerProfile{
		ID: "broker-1", FirstName: "Sarah", LastName: "Johnson",
		Email: "sarah@brokerage.com", Phone: "(555) 987-6543",
		Company:     "Premier Mortgage Solutions",
		Specialties: []string{"First-time homebuyers", "Conventional loans", "FHA loans"},
		Rating:      4.9, ReviewCount: 127, LicenseNumber: "NMLS-123456",
		YearsExperience: 8,
	}
}

func seedBrokerStats() BrokerStats {
	return BrokerStats{
		TotalApplications:     45,
		ActiveLoans:           23,
		ApprovalRate:          89,
		AverageProcessingTime: 12,
		MonthlyVolume:         2400000,
		ConversionRate:        68,
		TotalClients:          67,
		PipelineValue:         3200000,
		MonthlyCommission:     24500,
		ClientSatisfaction:    4.8,
	}
}
