package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/model"
)

// draftFile is the fixed storage key for the persisted draft blob.
const draftFile = "draft.json"

// JSONDraftStore implements DraftStore using JSON file persistence.
//
// Mutations return immediately; a single writer goroutine picks up a
// coalescing save signal and serializes the latest snapshot, so rapid
// successive writes collapse to last-write-wins on disk.
type JSONDraftStore struct {
	mu    sync.RWMutex
	path  string
	draft model.CampaignDraft
	log   *zap.Logger

	saveCh chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewJSONDraftStore creates a store backed by draft.json in configDir. Prior
// state is rehydrated if present; an absent or corrupt file silently yields
// the default draft.
func NewJSONDraftStore(configDir string, log *zap.Logger) (*JSONDraftStore, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}

	s := &JSONDraftStore{
		path:   filepath.Join(configDir, draftFile),
		draft:  model.DefaultDraft(),
		log:    log,
		saveCh: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	s.load()

	s.wg.Add(1)
	go s.writeLoop()

	return s, nil
}

// load rehydrates the persisted draft. Any failure leaves the defaults in
// place; corruption must never surface to the user.
func (s *JSONDraftStore) load() {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var d model.CampaignDraft
	if err := json.Unmarshal(content, &d); err != nil {
		s.log.Warn("discarding corrupt draft state", zap.Error(err))
		return
	}
	// Old blobs may predate these fields; fill the defaults they'd have had.
	if d.Urgency == "" {
		d.Urgency = model.UrgencyNormal
	}
	if d.Channel == "" {
		d.Channel = model.ChannelAuto
	}
	s.draft = d
}

// Draft returns a snapshot of the current draft.
func (s *JSONDraftStore) Draft() model.CampaignDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := s.draft
	if d.Result != nil {
		r := *d.Result
		d.Result = &r
	}
	return d
}

// SetField replaces one draft field. Unknown field names are ignored.
func (s *JSONDraftStore) SetField(field model.DraftField, value string) {
	s.mu.Lock()
	switch field {
	case model.FieldIntent:
		s.draft.Intent = value
	case model.FieldAudience:
		s.draft.Audience = value
	case model.FieldUrgency:
		s.draft.Urgency = model.Urgency(value)
	case model.FieldChannel:
		s.draft.Channel = model.Channel(value)
	case model.FieldContext:
		s.draft.Context = value
	default:
		s.mu.Unlock()
		s.log.Warn("ignoring unknown draft field", zap.String("field", string(field)))
		return
	}
	s.mu.Unlock()
	s.scheduleSave()
}

// SetResult replaces the generation result wholesale; the other fields are
// untouched.
func (s *JSONDraftStore) SetResult(result *model.GeneratedContent) {
	s.mu.Lock()
	if result == nil {
		s.draft.Result = nil
	} else {
		r := *result
		s.draft.Result = &r
	}
	s.mu.Unlock()
	s.scheduleSave()
}

// Reset restores the default draft.
func (s *JSONDraftStore) Reset() {
	s.mu.Lock()
	s.draft = model.DefaultDraft()
	s.mu.Unlock()
	s.scheduleSave()
}

// Close stops the writer and flushes the final state.
func (s *JSONDraftStore) Close() error {
	close(s.done)
	s.wg.Wait()
	return s.save()
}

// scheduleSave queues a save without blocking. The channel holds one pending
// signal; the writer always serializes the latest snapshot, so dropped
// signals lose nothing.
func (s *JSONDraftStore) scheduleSave() {
	select {
	case s.saveCh <- struct{}{}:
	default:
	}
}

func (s *JSONDraftStore) writeLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.saveCh:
			if err := s.save(); err != nil {
				s.log.Warn("draft save failed", zap.Error(err))
			}
		case <-s.done:
			return
		}
	}
}

func (s *JSONDraftStore) save() error {
	s.mu.RLock()
	content, err := json.MarshalIndent(s.draft, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, content, 0644)
}
