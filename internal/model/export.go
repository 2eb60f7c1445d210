package model

// ChannelKey identifies an outbound export channel.
type ChannelKey string

const (
	ExportLinkedIn ChannelKey = "linkedin"
	ExportEmail    ChannelKey = "email"
	ExportCall     ChannelKey = "call"
)

// ExportChannels lists the export channels in menu order.
func ExportChannels() []ChannelKey {
	return []ChannelKey{ExportLinkedIn, ExportEmail, ExportCall}
}

// LinkedInMode selects one of the three mutually exclusive LinkedIn delivery
// modes, chosen by the user at confirmation time.
type LinkedInMode string

const (
	// LinkedInAutomated sends the copy through the export backend webhook.
	LinkedInAutomated LinkedInMode = "automated"
	// LinkedInManualMessage copies the text to the clipboard and opens the
	// messaging surface for the user to paste into.
	LinkedInManualMessage LinkedInMode = "manual_message"
	// LinkedInFeedShare opens a pre-filled feed share composer link.
	LinkedInFeedShare LinkedInMode = "feed_share"
)

// ExportRequest is a tagged union over the export channels. The payload
// matching Channel is set; the others are nil. Requests are transient: built
// when the user confirms an export and discarded when it resolves.
type ExportRequest struct {
	Channel  ChannelKey
	LinkedIn *LinkedInExport
	Email    *EmailExport
	Call     *CallExport
}

// LinkedInExport carries the LinkedIn confirmation form fields.
type LinkedInExport struct {
	Mode          LinkedInMode
	RecipientName string
}

// EmailExport carries the email confirmation form fields. An empty Subject
// falls back to the generated headline at dispatch time.
type EmailExport struct {
	Recipient string
	Subject   string
}

// CallExport carries the call-queue confirmation form fields. Priority runs
// from 1 (highest) to 10 (lowest).
type CallExport struct {
	LeadName string
	Phone    string
	Priority int
}
