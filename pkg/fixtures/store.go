package fixtures

import (
	"strings"
	"sync"
	"time"
)

// Store owns the shared in-memory collections. Several services read and
// write the same collections (auth and broker both see Users and Clients),
// so one Store instance is passed to every service at construction time.
// Collections are append/update-only for the life of the store: delete
// handlers acknowledge without removing records. Reset restores the seed
// fixtures.
type Store struct {
	mu sync.RWMutex

	users         []User
	clients       []Client
	documents     []Document
	messages      []Message
	insights      []Insight
	marketSignals []MarketSignal
	notifications []Notification
	applications  []LoanApplication
	loanOptions   []LoanOption
	brokerProfile BrokerProfile
	brokerStats   BrokerStats
}

// NewStore creates a Store populated with the seed fixtures.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset restores every collection to its seed state, discarding records
// appended at runtime.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = seedUsers()
	s.clients = seedClients()
	s.documents = seedDocuments()
	s.messages = seedMessages()
	s.insights = seedInsights()
	s.marketSignals = seedMarketSignals()
	s.notifications = seedNotifications()
	s.applications = nil
	s.loanOptions = seedLoanOptions()
	s.brokerProfile = seedBrokerProfile()
	s.brokerStats = seedBrokerStats()
}

// NowISO returns the current UTC time as an RFC 3339 string, the timestamp
// format used on the wire.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// --- users ---

// Users returns a copy of the user collection.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User(nil), s.users...)
}

// UserCount returns the number of user records.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// FindUserByEmail returns the first user with the given email.
func (s *Store) FindUserByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

// FindUser returns the user matching both email and user type.
func (s *Store) FindUser(email, userType string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.UserType == userType {
			return u, true
		}
	}
	return User{}, false
}

// FindUserByID returns the user with the given id.
func (s *Store) FindUserByID(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// AddUser appends a user record.
func (s *Store) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// UpdateUser applies fn to the user with the given id under the write lock.
func (s *Store) UpdateUser(id string, fn func(*User)) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			fn(&s.users[i])
			return s.users[i], true
		}
	}
	return User{}, false
}

// --- clients ---

// Clients returns a copy of the client collection.
func (s *Store) Clients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Client(nil), s.clients...)
}

// FindClientByID returns the client with the given id.
func (s *Store) FindClientByID(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// AddClient appends a client record.
func (s *Store) AddClient(c Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, c)
}

// UpdateClient applies fn to the client with the given id under the write lock.
func (s *Store) UpdateClient(id string, fn func(*Client)) (Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			fn(&s.clients[i])
			return s.clients[i], true
		}
	}
	return Client{}, false
}

// --- documents ---

// Documents returns a copy of the document collection.
func (s *Store) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Document(nil), s.documents...)
}

// FindDocumentByID returns the document with the given id.
func (s *Store) FindDocumentByID(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

// AddDocument appends a document record.
func (s *Store) AddDocument(d Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, d)
}

// --- messages ---

// Messages returns a copy of the message collection.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages...)
}

// AddMessage appends a message record.
func (s *Store) AddMessage(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// --- applications ---

// Applications returns a copy of the loan application collection.
func (s *Store) Applications() []LoanApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LoanApplication(nil), s.applications...)
}

// FindApplicationByID returns the application with the given id.
func (s *Store) FindApplicationByID(id string) (LoanApplication, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.applications {
		if a.ID == id {
			return a, true
		}
	}
	return LoanApplication{}, false
}

// AddApplication appends a loan application record.
func (s *Store) AddApplication(a LoanApplication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications = append(s.applications, a)
}

// UpdateApplication applies fn to the application under the write lock.
func (s *Store) UpdateApplication(id string, fn func(*LoanApplication)) (LoanApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.applications {
		if s.applications[i].ID == id {
			fn(&s.applications[i])
			return s.applications[i], true
		}
	}
	return LoanApplication{}, false
}

// --- notifications ---

// Notifications returns a copy of the notification collection.
func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification(nil), s.notifications...)
}

// AddNotification appends a notification record.
func (s *Store) AddNotification(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

// MarkNotificationRead marks one notification read.
func (s *Store) MarkNotificationRead(id string) (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Status = "read"
			return s.notifications[i], true
		}
	}
	return Notification{}, false
}

// MarkAllNotificationsRead marks every unread notification read and returns
// how many changed.
func (s *Store) MarkAllNotificationsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for i := range s.notifications {
		if s.notifications[i].Status == "unread" {
			s.notifications[i].Status = "read"
			updated++
		}
	}
	return updated
}

// --- read-only collections ---

// Insights returns a copy of the AI insight collection.
func (s *Store) Insights() []Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Insight(nil), s.insights...)
}

// MarketSignals returns a copy of the market signal collection.
func (s *Store) MarketSignals() []MarketSignal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MarketSignal(nil), s.marketSignals...)
}

// LoanOptions returns a copy of the canned loan option variants.
func (s *Store) LoanOptions() []LoanOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LoanOption(nil), s.loanOptions...)
}

// BrokerProfile returns the recommended broker profile.
func (s *Store) BrokerProfile() BrokerProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brokerProfile
}

// BrokerStats returns the dashboard statistics block.
func (s *Store) BrokerStats() BrokerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brokerStats
}
