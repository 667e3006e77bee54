// Package fixtures holds the in-memory domain records shared by all virtual
// services, plus the store that guards them. Records are plain attribute bags
// with stable string identifiers; timestamps are RFC 3339 strings as they
// appear on the wire.
package fixtures

// User is an account record used by the auth service and read by others.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	UserType  string `json:"userType"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Client is a broker-managed lead or borrower.
type Client struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Status         string   `json:"status"`
	AIScore        int      `json:"aiScore"`
	LoanAmount     int      `json:"loanAmount"`
	LoanType       string   `json:"loanType"`
	LastActivity   string   `json:"lastActivity"`
	Tags           []string `json:"tags"`
	AssignedBroker string   `json:"assignedBroker"`
	CreatedAt      string   `json:"createdAt"`
}

// Document is an uploaded loan document.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	UploadedAt string `json:"uploadedAt"`
	VerifiedAt string `json:"verifiedAt,omitempty"`
	Size       int    `json:"size"`
	MimeType   string `json:"mimeType"`
	URL        string `json:"url"`
}

// Message is one broker/client chat message.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	IsRead     bool   `json:"isRead"`
	CreatedAt  string `json:"createdAt"`
}

// Insight is a pre-scripted AI insight surfaced to brokers.
type Insight struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"actionItems"`
	Confidence  int      `json:"confidence"`
	Impact      string   `json:"impact"`
	CreatedAt   string   `json:"createdAt"`
}

// MarketSignal is a canned market observation.
type MarketSignal struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Confidence  int    `json:"confidence"`
	Actionable  bool   `json:"actionable"`
}

// Notification is an in-app notification record.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Priority  string         `json:"priority"`
	Status    string         `json:"status"`
	ActionURL string         `json:"actionUrl"`
	CreatedAt string         `json:"createdAt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// LoanApplication is a runtime-created mortgage application.
type LoanApplication struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	Status            string `json:"status"`
	LoanAmount        int    `json:"loanAmount,omitempty"`
	PropertyValue     int    `json:"propertyValue,omitempty"`
	DownPayment       int    `json:"downPayment,omitempty"`
	LoanType          string `json:"loanType,omitempty"`
	PropertyType      string `json:"propertyType,omitempty"`
	CreditScore       int    `json:"creditScore,omitempty"`
	AnnualIncome      int    `json:"annualIncome,omitempty"`
	EmploymentStatus  string `json:"employmentStatus,omitempty"`
	ApplicationNumber string `json:"applicationNumber"`
	Progress          int    `json:"progress"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// LoanOption is one canned quote variant.
type LoanOption struct {
	ID             string   `json:"id"`
	LoanType       string   `json:"loanType"`
	InterestRate   float64  `json:"interestRate"`
	APR            float64  `json:"apr"`
	MonthlyPayment int      `json:"monthlyPayment"`
	TotalInterest  int      `json:"totalInterest"`
	LoanTerm       int      `json:"loanTerm"`
	IsRecommended  bool     `json:"isRecommended"`
	Features       []string `json:"features"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
}

// BrokerProfile describes the recommended broker attached to quotes.
type BrokerProfile struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Company         string   `json:"company"`
	Specialties     []string `json:"specialties"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"reviewCount"`
	LicenseNumber   string   `json:"licenseNumber"`
	YearsExperience int      `json:"yearsExperience"`
}

// BrokerStats is the dashboard statistics block.
type BrokerStats struct {
	TotalApplications     int     `json:"totalApplications"`
	ActiveLoans           int     `json:"activeLoans"`
	ApprovalRate          int     `json:"approvalRate"`
	AverageProcessingTime int     `json:"averageProcessingTime"`
	MonthlyVolume         int     `json:"monthlyVolume"`
	ConversionRate        int     `json:"conversionRate"`
	TotalClients          int     `json:"totalClients"`
	PipelineValue         int     `json:"pipelineValue"`
	MonthlyCommission     int     `json:"monthlyCommission"`
	ClientSatisfaction    float64 `json:"clientSatisfaction"`
}
