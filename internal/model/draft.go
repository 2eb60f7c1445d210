// Package model defines core data structures for Outboundly.
package model

// Urgency is the campaign urgency level.
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyNormal   Urgency = "Normal"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// Channel is the user's preferred outbound medium. Auto leaves the decision to
// the backend pipeline.
type Channel string

const (
	ChannelAuto     Channel = "Auto"
	ChannelLinkedIn Channel = "LinkedIn"
	ChannelEmail    Channel = "Email"
	ChannelSMS      Channel = "SMS"
	ChannelCall     Channel = "Call"
)

// DraftField names one mutable field of a CampaignDraft.
type DraftField string

const (
	FieldIntent   DraftField = "intent"
	FieldAudience DraftField = "audience"
	FieldUrgency  DraftField = "urgency"
	FieldChannel  DraftField = "channel"
	FieldContext  DraftField = "context"
)

// GeneratedContent is the structured copy the pipeline produced for a draft.
// It is replaced wholesale on every successful generation and is read-only to
// the export side.
type GeneratedContent struct {
	Headline   string `json:"headline"`
	Body       string `json:"body"`
	CTA        string `json:"cta"`
	Platform   string `json:"platform"`
	CampaignID string `json:"campaign_id,omitempty"`
}

// CampaignDraft is the user-editable campaign description plus the latest
// generation result. Exactly one draft exists per session.
//
// Enum-typed fields are UI-constrained, not validated here: unrecognized
// values coming from user input or old persisted state are preserved as-is.
type CampaignDraft struct {
	Intent   string            `json:"intent"`
	Audience string            `json:"audience"`
	Urgency  Urgency           `json:"urgency"`
	Channel  Channel           `json:"channel"`
	Context  string            `json:"context"`
	Result   *GeneratedContent `json:"result,omitempty"`
}

// DefaultDraft returns the draft used on first load and after a reset.
func DefaultDraft() CampaignDraft {
	return CampaignDraft{
		Urgency: UrgencyNormal,
		Channel: ChannelAuto,
	}
}

// Urgencies lists the selectable urgency levels in display order.
func Urgencies() []Urgency {
	return []Urgency{UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical}
}

// Channels lists the selectable channel preferences in display order.
func Channels() []Channel {
	return []Channel{ChannelAuto, ChannelLinkedIn, ChannelEmail, ChannelSMS, ChannelCall}
}
