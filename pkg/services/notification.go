package services

import (
	"context"
	"math/rand"
	"net/http"

	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
)

type notificationRoutes struct {
	store *fixtures.Store
	sim   *latency.Simulator
}

// NewNotificationService builds the notification virtual service over the
// shared fixture store. Fixed routes (read-all, send, preferences, templates,
// stats, health) register ahead of the :id wildcards.
func NewNotificationService(p Params) (*Service, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	svc, err := newService("notification-service", "/api/notifications", "1.0.0")
	if err != nil {
		return nil, err
	}

	n := &notificationRoutes{store: p.Store, sim: p.Sim}
	r := svc.routes
	r.Register(http.MethodGet, "/api/notifications", n.list)
	r.Register(http.MethodPut, "/api/notifications/read-all", n.readAll)
	r.Register(http.MethodPost, "/api/notifications/send", n.send)
	r.Register(http.MethodPost, "/api/notifications/send-bulk", n.sendBulk)
	r.Register(http.MethodGet, "/api/notifications/preferences", n.getPreferences)
	r.Register(http.MethodPut, "/api/notifications/preferences", n.updatePreferences)
	r.Register(http.MethodGet, "/api/notifications/templates", n.templates)
	r.Register(http.MethodGet, "/api/notifications/stats", n.stats)
	r.Register(http.MethodGet, "/api/notifications/health", svc.healthHandler(
		map[string]string{
			"email-provider":  "healthy",
			"sms-provider":    "healthy",
			"push-service":    "healthy",
			"template-engine": "healthy",
		},
		map[string]any{
			"notificationsSent": 15847,
			"deliveryRate":      "98.5%",
			"avgDeliveryTime":   "1.2s",
			"unsubscribeRate":   "0.8%",
		}))
	r.Register(http.MethodPut, "/api/notifications/:id/read", n.markRead)
	r.Register(http.MethodDelete, "/api/notifications/:id", n.remove)
	return svc, nil
}

func (n *notificationRoutes) list(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Read(ctx)

	notifs := n.store.Notifications()
	if t := req.QueryValue("type"); t != "" {
		notifs = filterNotifications(notifs, func(x fixtures.Notification) bool { return x.Type == t })
	}
	if s := req.QueryValue("status"); s != "" {
		notifs = filterNotifications(notifs, func(x fixtures.Notification) bool { return x.Status == s })
	}
	if u := req.QueryValue("userId"); u != "" {
		notifs = filterNotifications(notifs, func(x fixtures.Notification) bool { return x.UserID == u })
	}
	return router.OK(paginate(notifs, req))
}

func (n *notificationRoutes) markRead(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Read(ctx)

	id := req.Param("id")
	n.store.MarkNotificationRead(id)
	return router.OK(map[string]any{
		"notificationId": id,
		"status":         "read",
		"readAt":         fixtures.NowISO(),
	})
}

func (n *notificationRoutes) readAll(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Read(ctx)

	updated := n.store.MarkAllNotificationsRead()
	return router.OK(map[string]any{
		"message":      "All notifications marked as read",
		"updatedCount": updated,
		"updatedAt":    fixtures.NowISO(),
	})
}

// remove acknowledges without deleting; the notification list is append-only.
func (n *notificationRoutes) remove(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Read(ctx)
	return router.OK(map[string]any{
		"message":   "Notification deleted successfully",
		"deletedAt": fixtures.NowISO(),
	})
}

type sendInput struct {
	UserID    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Priority  string         `json:"priority"`
	ActionURL string         `json:"actionUrl"`
	Metadata  map[string]any `json:"metadata"`
}

func (n *notificationRoutes) send(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Write(ctx)

	var input sendInput
	if err := req.Bind(&input); err != nil {
		input = sendInput{}
	}

	notif := fixtures.Notification{
		ID:        newID("notif"),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		Priority:  input.Priority,
		Status:    "unread",
		ActionURL: input.ActionURL,
		CreatedAt: fixtures.NowISO(),
		Metadata:  input.Metadata,
	}
	n.store.AddNotification(notif)

	channels := make([]string, 0, 3)
	for _, ch := range []string{"in_app", "email", "sms"} {
		if rand.Float64() > 0.3 {
			channels = append(channels, ch)
		}
	}
	return router.OK(map[string]any{
		"id":             notif.ID,
		"userId":         notif.UserID,
		"type":           notif.Type,
		"title":          notif.Title,
		"message":        notif.Message,
		"priority":       notif.Priority,
		"status":         notif.Status,
		"actionUrl":      notif.ActionURL,
		"createdAt":      notif.CreatedAt,
		"metadata":       notif.Metadata,
		"deliveryStatus": "delivered",
		"channels":       channels,
	})
}

func (n *notificationRoutes) sendBulk(ctx context.Context, req *router.Request) *router.Result {
	n.sim.AI(ctx)

	var input struct {
		Recipients []string `json:"recipients"`
	}
	if err := req.Bind(&input); err != nil {
		input.Recipients = nil
	}

	results := make([]map[string]any, 0, len(input.Recipients))
	for _, userID := range input.Recipients {
		results = append(results, map[string]any{
			"userId":         userID,
			"notificationId": newID("notif"),
			"status":         "delivered",
			"deliveredAt":    fixtures.NowISO(),
		})
	}
	return router.OK(map[string]any{
		"batchId": newID("batch"),
		"results": results,
		"summary": map[string]any{
			"total":     len(input.Recipients),
			"delivered": len(results),
			"failed":    0,
		},
	})
}

func (n *notificationRoutes) getPreferences(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Read(ctx)
	return router.OK(map[string]any{
		"userId": req.QueryValue("userId"),
		"preferences": map[string]any{
			"email": map[string]any{
				"enabled":   true,
				"types":     []string{"application_update", "document_required", "rate_alert"},
				"frequency": "immediate",
			},
			"sms": map[string]any{
				"enabled":   true,
				"types":     []string{"urgent", "rate_alert"},
				"frequency": "immediate",
			},
			"push": map[string]any{
				"enabled":   true,
				"types":     []string{"application_update", "document_required", "rate_alert", "ai_insight"},
				"frequency": "immediate",
			},
			"inApp": map[string]any{
				"enabled":   true,
				"types":     []string{"all"},
				"frequency": "immediate",
			},
		},
		"updatedAt": fixtures.NowISO(),
	})
}

// updatePreferences echoes the submitted preference document back with a
// timestamp; nothing is persisted.
func (n *notificationRoutes) updatePreferences(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Read(ctx)

	out := map[string]any{}
	if err := req.Bind(&out); err != nil {
		out = map[string]any{}
	}
	out["updatedAt"] = fixtures.NowISO()
	out["message"] = "Notification preferences updated successfully"
	return router.OK(out)
}

func (n *notificationRoutes) templates(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Read(ctx)
	return router.OK([]map[string]any{
		{
			"id":        "template-app-update",
			"name":      "Application Update",
			"type":      "application_update",
			"subject":   "Your loan application status has been updated",
			"body":      "Your application {{applicationId}} has moved to {{newStatus}} stage.",
			"channels":  []string{"email", "sms", "push"},
			"variables": []string{"applicationId", "newStatus", "estimatedCompletion"},
		},
		{
			"id":        "template-doc-required",
			"name":      "Document Required",
			"type":      "document_required",
			"subject":   "Document upload required for your loan application",
			"body":      "Please upload {{documentType}} to continue processing your application.",
			"channels":  []string{"email", "sms", "push"},
			"variables": []string{"documentType", "dueDate", "applicationId"},
		},
		{
			"id":        "template-rate-alert",
			"name":      "Rate Alert",
			"type":      "rate_alert",
			"subject":   "Interest rate opportunity available",
			"body":      "Rates have {{changeDirection}} by {{changeAmount}}%. {{actionRecommendation}}",
			"channels":  []string{"email", "push"},
			"variables": []string{"changeDirection", "changeAmount", "actionRecommendation"},
		},
	})
}

func (n *notificationRoutes) stats(ctx context.Context, req *router.Request) *router.Result {
	n.sim.Write(ctx)

	period := req.QueryValue("period")
	if period == "" {
		period = "30d"
	}
	return router.OK(map[string]any{
		"period": period,
		"userId": req.QueryValue("userId"),
		"stats": map[string]any{
			"total":  127,
			"unread": 8,
			"byType": map[string]int{
				"application_update": 45,
				"document_required":  32,
				"rate_alert":         28,
				"ai_insight":         15,
				"client_action":      7,
			},
			"byPriority": map[string]int{
				"urgent": 12,
				"high":   38,
				"medium": 65,
				"low":    12,
			},
			"deliveryStats": map[string]any{
				"email": map[string]int{"sent": 127, "delivered": 125, "opened": 89, "clicked": 34},
				"sms":   map[string]int{"sent": 45, "delivered": 44, "clicked": 12},
				"push":  map[string]int{"sent": 127, "delivered": 120, "opened": 78},
				"inApp": map[string]int{"sent": 127, "delivered": 127, "read": 119},
			},
		},
		"generatedAt": fixtures.NowISO(),
	})
}

func filterNotifications(notifs []fixtures.Notification, keep func(fixtures.Notification) bool) []fixtures.Notification {
	out := notifs[:0:0]
	for _, x := range notifs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}
