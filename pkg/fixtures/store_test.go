package fixtures

import (
	"sync"
	"testing"
	"time"
)

const storeTestPrefix = "fixtures:store_test"

func TestNewStore_SeedFixtures(t *testing.T) {
	s := NewStore()

	if got := len(s.Users()); got != 2 {
		t.Errorf("%s - seed users = %d, want 2", storeTestPrefix, got)
	}
	if got := len(s.Clients()); got != 3 {
		t.Errorf("%s - seed clients = %d, want 3", storeTestPrefix, got)
	}
	if got := len(s.Documents()); got != 3 {
		t.Errorf("%s - seed documents = %d, want 3", storeTestPrefix, got)
	}
	if got := len(s.Notifications()); got != 5 {
		t.Errorf("%s - seed notifications = %d, want 5", storeTestPrefix, got)
	}
	if got := len(s.Applications()); got != 0 {
		t.Errorf("%s - seed applications = %d, want 0", storeTestPrefix, got)
	}

	user, ok := s.FindUserByEmail("demo@borrower.com")
	if !ok {
		t.Fatalf("%s - demo borrower missing from seed", storeTestPrefix)
	}
	if user.FirstName != "John" || user.UserType != "borrower" {
		t.Errorf("%s - demo borrower = %q/%q", storeTestPrefix, user.FirstName, user.UserType)
	}
}

func TestReset_DiscardsRuntimeRecords(t *testing.T) {
	s := NewStore()
	before := len(s.Clients())

	s.AddClient(Client{ID: "client-x", FirstName: "Extra"})
	s.AddApplication(LoanApplication{ID: "app-x"})
	if got := len(s.Clients()); got != before+1 {
		t.Fatalf("%s - clients after add = %d, want %d", storeTestPrefix, got, before+1)
	}

	s.Reset()
	if got := len(s.Clients()); got != before {
		t.Errorf("%s - clients after reset = %d, want %d", storeTestPrefix, got, before)
	}
	if got := len(s.Applications()); got != 0 {
		t.Errorf("%s - applications after reset = %d, want 0", storeTestPrefix, got)
	}
}

func TestFindUser_MatchesEmailAndType(t *testing.T) {
	s := NewStore()

	tests := []struct {
		email    string
		userType string
		found    bool
	}{
		{"demo@borrower.com", "borrower", true},
		{"broker@company.com", "broker", true},
		{"demo@borrower.com", "broker", false},
		{"nobody@nowhere.com", "borrower", false},
	}
	for _, tt := range tests {
		_, ok := s.FindUser(tt.email, tt.userType)
		if ok != tt.found {
			t.Errorf("%s - FindUser(%q, %q) = %v, want %v", storeTestPrefix, tt.email, tt.userType, ok, tt.found)
		}
	}
}

func TestUpdateUser_MutatesUnderLock(t *testing.T) {
	s := NewStore()
	users := s.Users()
	id := users[0].ID

	updated, ok := s.UpdateUser(id, func(u *User) { u.Phone = "+1-555-0000" })
	if !ok {
		t.Fatalf("%s - UpdateUser(%q) not found", storeTestPrefix, id)
	}
	if updated.Phone != "+1-555-0000" {
		t.Errorf("%s - returned phone = %q", storeTestPrefix, updated.Phone)
	}

	reread, _ := s.FindUserByID(id)
	if reread.Phone != "+1-555-0000" {
		t.Errorf("%s - stored phone = %q, mutation not persisted", storeTestPrefix, reread.Phone)
	}

	if _, ok := s.UpdateUser("user-missing", func(u *User) {}); ok {
		t.Errorf("%s - UpdateUser on unknown id reported found", storeTestPrefix)
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	s := NewStore()

	clients := s.Clients()
	clients[0].FirstName = "Mutated"
	if s.Clients()[0].FirstName == "Mutated" {
		t.Errorf("%s - caller mutation leaked into the store", storeTestPrefix)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := NewStore()

	unread := 0
	for _, n := range s.Notifications() {
		if n.Status == "unread" {
			unread++
		}
	}
	if unread == 0 {
		t.Fatalf("%s - seed has no unread notifications to mark", storeTestPrefix)
	}

	if got := s.MarkAllNotificationsRead(); got != unread {
		t.Errorf("%s - MarkAllNotificationsRead = %d, want %d", storeTestPrefix, got, unread)
	}
	for _, n := range s.Notifications() {
		if n.Status != "read" {
			t.Errorf("%s - notification %s status = %q after read-all", storeTestPrefix, n.ID, n.Status)
		}
	}
	if got := s.MarkAllNotificationsRead(); got != 0 {
		t.Errorf("%s - second read-all marked %d, want 0", storeTestPrefix, got)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore()
	before := len(s.Messages())

	var wg sync.WaitGroup
	const writers = 20
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddMessage(Message{ID: "msg-concurrent", CreatedAt: NowISO()})
		}()
	}
	wg.Wait()

	if got := len(s.Messages()); got != before+writers {
		t.Errorf("%s - messages = %d, want %d", storeTestPrefix, got, before+writers)
	}
}

func TestNowISO_RFC3339(t *testing.T) {
	if _, err := time.Parse(time.RFC3339, NowISO()); err != nil {
		t.Errorf("%s - NowISO not RFC3339: %v", storeTestPrefix, err)
	}
}
