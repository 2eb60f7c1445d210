// Package generate drives the content-generation pipeline for the current
// draft: payload serialization, the submission guard, and the single-flight
// request.
package generate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/store"
	"github.com/outboundly/outboundly/pkg/textutil"
)

var (
	// ErrEmptyDraft is returned when intent, audience, and context are all
	// blank. The guard runs client-side; nothing reaches the network.
	ErrEmptyDraft = errors.New("draft has no content to submit")
	// ErrInFlight is returned when a generation request is already
	// outstanding. Submissions are refused, never queued or restarted.
	ErrInFlight = errors.New("generation already in flight")
)

// contentGenerator is the slice of the backend client the orchestrator needs.
type contentGenerator interface {
	Generate(ctx context.Context, contextText string) (*model.GeneratedContent, error)
}

// Orchestrator submits the current draft for generation, one request at a
// time, and writes the result back into the store.
type Orchestrator struct {
	store    store.DraftStore
	client   contentGenerator
	log      *zap.Logger
	inFlight atomic.Bool
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(s store.DraftStore, client contentGenerator, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:  s,
		client: client,
		log:    log,
	}
}

// Payload serializes a draft into the positional free-text block the backend
// classifier parses. The line order is a wire contract; do not reorder.
func Payload(d model.CampaignDraft) string {
	return fmt.Sprintf("Intent: %s\nTarget Audience: %s\nUrgency: %s\nPreferred Channel: %s\nContext: %s",
		d.Intent, d.Audience, d.Urgency, d.Channel, d.Context)
}

// CanSubmit reports whether the draft carries any submit-worthy content.
func CanSubmit(d model.CampaignDraft) bool {
	return !textutil.AllBlank(d.Intent, d.Audience, d.Context)
}

// InFlight reports whether a generation request is outstanding.
func (o *Orchestrator) InFlight() bool {
	return o.inFlight.Load()
}

// Submit sends the current draft to the backend. On success the result is
// written into the store wholesale; on failure the prior result, if any, is
// left untouched.
func (o *Orchestrator) Submit(ctx context.Context) (*model.GeneratedContent, error) {
	draft := o.store.Draft()
	if !CanSubmit(draft) {
		return nil, ErrEmptyDraft
	}
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer o.inFlight.Store(false)

	result, err := o.client.Generate(ctx, Payload(draft))
	if err != nil {
		o.log.Warn("generation failed", zap.Error(err))
		return nil, err
	}

	o.store.SetResult(result)
	o.log.Info("generation completed",
		zap.String("platform", result.Platform),
		zap.String("campaign_id", result.CampaignID))
	return result, nil
}
