package cart

import "context"

// Store persists guest carts as a serialized item list under a single key
// per cart. Corrupt content is recovered as an empty cart by implementations
type Store interface {
	Load(ctx context.Context, key string) ([]CartItem, error)
	Save(ctx context.Context, key string, items []CartItem) error
	Delete(ctx context.Context, key string) error
}

// NotificationLevel distinguishes success from error announcements
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// NotificationAction is an optional single action attached to a notification,
// a label plus a navigation target
type NotificationAction struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Notification is a transient, dismissible announcement shown to the user
type Notification struct {
	Level   NotificationLevel   `json:"level"`
	Message string              `json:"message"`
	Action  *NotificationAction `json:"action,omitempty"`
}

// Notifier is the sink notifications are published to
type Notifier interface {
	Publish(ctx context.Context, n Notification)
}
