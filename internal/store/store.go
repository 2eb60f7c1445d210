// Package store provides draft persistence for Outboundly.
package store

import "github.com/outboundly/outboundly/internal/model"

// DraftStore is the single source of truth for the current campaign draft.
// Implementations persist every mutation as a fire-and-forget side effect and
// survive process restarts.
type DraftStore interface {
	// Draft returns a snapshot of the current draft.
	Draft() model.CampaignDraft
	// SetField replaces one field. Values are stored as given; enum fields
	// are constrained by the UI, not here.
	SetField(field model.DraftField, value string)
	// SetResult replaces the generation result wholesale.
	SetResult(result *model.GeneratedContent)
	// Reset restores all fields, including the result, to their defaults.
	Reset()
	// Close flushes pending writes and releases resources.
	Close() error
}
