package services

import (
	"net/http"
	"testing"
)

const notificationTestPrefix = "services:notification_test"

func TestListNotifications_Filters(t *testing.T) {
	svc, err := NewNotificationService(testParams())
	if err != nil {
		t.Fatalf("%s - NewNotificationService: %v", notificationTestPrefix, err)
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"all", "/api/notifications", 5},
		{"unread", "/api/notifications?status=unread", 4},
		{"read", "/api/notifications?status=read", 1},
		{"by user", "/api/notifications?userId=user-1", 3},
		{"by broker", "/api/notifications?userId=broker-1", 2},
		{"by type", "/api/notifications?type=rate_alert", 1},
		{"stacked", "/api/notifications?userId=user-1&status=unread", 2},
	}
	for _, tt := range tests {
		res := call(t, svc, http.MethodGet, tt.path, nil, nil)
		if res.Status != http.StatusOK {
			t.Fatalf("%s - %s: status = %d", notificationTestPrefix, tt.name, res.Status)
		}
		page := asMap(t, res.Data)
		if page["total"] != float64(tt.want) {
			t.Errorf("%s - %s: total = %v, want %d", notificationTestPrefix, tt.name, page["total"], tt.want)
		}
	}
}

func TestMarkRead_MutatesStore(t *testing.T) {
	p := testParams()
	svc, _ := NewNotificationService(p)

	res := call(t, svc, http.MethodPut, "/api/notifications/notif-1/read", nil, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - markRead status = %d", notificationTestPrefix, res.Status)
	}
	out := asMap(t, res.Data)
	if out["notificationId"] != "notif-1" || out["status"] != "read" {
		t.Errorf("%s - payload = %v", notificationTestPrefix, out)
	}
	for _, n := range p.Store.Notifications() {
		if n.ID == "notif-1" && n.Status != "read" {
			t.Errorf("%s - notif-1 still %q in store", notificationTestPrefix, n.Status)
		}
	}
}

func TestReadAll_CountsThenZero(t *testing.T) {
	p := testParams()
	svc, _ := NewNotificationService(p)

	out := asMap(t, call(t, svc, http.MethodPut, "/api/notifications/read-all", nil, nil).Data)
	if out["updatedCount"] != float64(4) {
		t.Errorf("%s - first read-all updated %v, want 4", notificationTestPrefix, out["updatedCount"])
	}

	out = asMap(t, call(t, svc, http.MethodPut, "/api/notifications/read-all", nil, nil).Data)
	if out["updatedCount"] != float64(0) {
		t.Errorf("%s - second read-all updated %v, want 0", notificationTestPrefix, out["updatedCount"])
	}

	for _, n := range p.Store.Notifications() {
		if n.Status != "read" {
			t.Errorf("%s - %s left %q", notificationTestPrefix, n.ID, n.Status)
		}
	}
}

func TestSend_AppendsUnread(t *testing.T) {
	p := testParams()
	svc, _ := NewNotificationService(p)
	before := len(p.Store.Notifications())

	res := call(t, svc, http.MethodPost, "/api/notifications/send", map[string]any{
		"userId": "user-2", "type": "rate_alert", "title": "Rates moved", "message": "Down 0.125%", "priority": "high",
	}, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - send status = %d", notificationTestPrefix, res.Status)
	}
	out := asMap(t, res.Data)
	if out["status"] != "unread" || out["deliveryStatus"] != "delivered" {
		t.Errorf("%s - status/deliveryStatus = %v/%v", notificationTestPrefix, out["status"], out["deliveryStatus"])
	}
	if got := len(p.Store.Notifications()); got != before+1 {
		t.Errorf("%s - notifications = %d, want %d", notificationTestPrefix, got, before+1)
	}
}

func TestSendBulk_PerRecipientResults(t *testing.T) {
	svc, _ := NewNotificationService(testParams())

	res := call(t, svc, http.MethodPost, "/api/notifications/send-bulk", map[string]any{
		"recipients": []string{"user-1", "user-2", "broker-1"},
		"title":      "Maintenance window", "message": "Saturday 2am",
	}, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - send-bulk status = %d", notificationTestPrefix, res.Status)
	}
	out := asMap(t, res.Data)
	var results []map[string]any
	decodeData(t, out["results"], &results)
	if len(results) != 3 {
		t.Errorf("%s - results len = %d, want 3", notificationTestPrefix, len(results))
	}
	summary := asMap(t, out["summary"])
	if summary["delivered"] != float64(3) || summary["failed"] != float64(0) {
		t.Errorf("%s - summary = %v", notificationTestPrefix, summary)
	}
}

func TestRemoveNotification_AcknowledgesWithoutRemoving(t *testing.T) {
	p := testParams()
	svc, _ := NewNotificationService(p)
	before := len(p.Store.Notifications())

	res := call(t, svc, http.MethodDelete, "/api/notifications/notif-2", nil, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - delete status = %d", notificationTestPrefix, res.Status)
	}
	if got := len(p.Store.Notifications()); got != before {
		t.Errorf("%s - notifications = %d after delete, want %d", notificationTestPrefix, got, before)
	}
}

func TestPreferences_UpdateEchoesBody(t *testing.T) {
	svc, _ := NewNotificationService(testParams())

	res := call(t, svc, http.MethodGet, "/api/notifications/preferences?userId=user-1", nil, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - get preferences status = %d", notificationTestPrefix, res.Status)
	}
	if asMap(t, res.Data)["userId"] != "user-1" {
		t.Errorf("%s - preferences userId = %v", notificationTestPrefix, asMap(t, res.Data)["userId"])
	}

	res = call(t, svc, http.MethodPut, "/api/notifications/preferences", map[string]any{
		"emailEnabled": false, "smsEnabled": true,
	}, nil)
	out := asMap(t, res.Data)
	if out["emailEnabled"] != false || out["smsEnabled"] != true {
		t.Errorf("%s - updated preferences = %v", notificationTestPrefix, out)
	}
	if _, ok := out["updatedAt"]; !ok {
		t.Errorf("%s - updated preferences missing updatedAt", notificationTestPrefix)
	}
}

// Fixed paths register ahead of /:id wildcards; stats must never resolve as
// a notification id.
func TestNotificationFixedRoutesBeatWildcard(t *testing.T) {
	svc, _ := NewNotificationService(testParams())

	out := asMap(t, call(t, svc, http.MethodGet, "/api/notifications/stats", nil, nil).Data)
	if out["period"] != "30d" {
		t.Errorf("%s - default period = %v", notificationTestPrefix, out["period"])
	}
	stats := asMap(t, out["stats"])
	if stats["total"] != float64(127) {
		t.Errorf("%s - stats payload = %v", notificationTestPrefix, stats)
	}

	var templates []map[string]any
	decodeData(t, call(t, svc, http.MethodGet, "/api/notifications/templates", nil, nil).Data, &templates)
	if len(templates) == 0 {
		t.Errorf("%s - templates route returned nothing", notificationTestPrefix)
	}
}

func TestNotificationHealth(t *testing.T) {
	svc, _ := NewNotificationService(testParams())

	h := asMap(t, call(t, svc, http.MethodGet, "/api/notifications/health", nil, nil).Data)
	if h["service"] != "notification-service" || h["status"] != "healthy" {
		t.Errorf("%s - health payload = %v", notificationTestPrefix, h)
	}
}
