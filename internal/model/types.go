package model

// NotificationConfig controls how dispatch outcomes are mirrored outside the
// TUI in addition to the in-app notice stream.
type NotificationConfig struct {
	// Desktop enables desktop notifications via system APIs.
	Desktop bool `json:"desktop"`
	// WebhookURL is the optional URL to send webhook notifications.
	WebhookURL string `json:"webhook_url,omitempty"`
}
