package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/model"
)

func newTestStore(t *testing.T, dir string) *JSONDraftStore {
	t.Helper()
	s, err := NewJSONDraftStore(dir, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestJSONDraftStore_FirstLoadDefaults(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	defer s.Close()

	d := s.Draft()
	assert.Equal(t, model.UrgencyNormal, d.Urgency)
	assert.Equal(t, model.ChannelAuto, d.Channel)
	assert.Empty(t, d.Intent)
	assert.Nil(t, d.Result)
}

func TestJSONDraftStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := newTestStore(t, dir)
	s.SetField(model.FieldIntent, "book demos")
	s.SetField(model.FieldAudience, "founders")
	s.SetField(model.FieldUrgency, string(model.UrgencyHigh))
	s.SetField(model.FieldContext, "launch week push")
	s.SetResult(&model.GeneratedContent{
		Headline:   "Launch week",
		Body:       "We just shipped.",
		CTA:        "Book a call",
		Platform:   "LinkedIn",
		CampaignID: "c-42",
	})
	require.NoError(t, s.Close())

	reopened := newTestStore(t, dir)
	defer reopened.Close()

	want := model.CampaignDraft{
		Intent:   "book demos",
		Audience: "founders",
		Urgency:  model.UrgencyHigh,
		Channel:  model.ChannelAuto,
		Context:  "launch week push",
		Result: &model.GeneratedContent{
			Headline:   "Launch week",
			Body:       "We just shipped.",
			CTA:        "Book a call",
			Platform:   "LinkedIn",
			CampaignID: "c-42",
		},
	}
	if diff := cmp.Diff(want, reopened.Draft()); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONDraftStore_Reset(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)
	defer s.Close()

	s.SetField(model.FieldIntent, "something")
	s.SetResult(&model.GeneratedContent{Headline: "h"})
	s.Reset()

	d := s.Draft()
	assert.Equal(t, model.DefaultDraft(), d)

	// Resetting an already-default draft is a no-op.
	s.Reset()
	assert.Equal(t, model.DefaultDraft(), s.Draft())
}

func TestJSONDraftStore_CorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, draftFile), []byte("{not json"), 0644))

	s := newTestStore(t, dir)
	defer s.Close()

	assert.Equal(t, model.DefaultDraft(), s.Draft())
}

func TestJSONDraftStore_OldBlobGetsEnumDefaults(t *testing.T) {
	dir := t.TempDir()
	blob := `{"intent":"hi","audience":"","context":""}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, draftFile), []byte(blob), 0644))

	s := newTestStore(t, dir)
	defer s.Close()

	d := s.Draft()
	assert.Equal(t, "hi", d.Intent)
	assert.Equal(t, model.UrgencyNormal, d.Urgency)
	assert.Equal(t, model.ChannelAuto, d.Channel)
}

func TestJSONDraftStore_UnknownEnumValuePreserved(t *testing.T) {
	dir := t.TempDir()

	s := newTestStore(t, dir)
	s.SetField(model.FieldUrgency, "Ludicrous")
	require.NoError(t, s.Close())

	reopened := newTestStore(t, dir)
	defer reopened.Close()
	assert.Equal(t, model.Urgency("Ludicrous"), reopened.Draft().Urgency)
}

func TestJSONDraftStore_UnknownFieldIgnored(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	defer s.Close()

	before := s.Draft()
	s.SetField("bogus", "value")
	assert.Equal(t, before, s.Draft())
}

func TestJSONDraftStore_DraftReturnsSnapshot(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	defer s.Close()

	s.SetResult(&model.GeneratedContent{Headline: "original"})
	snap := s.Draft()
	snap.Result.Headline = "mutated"

	assert.Equal(t, "original", s.Draft().Result.Headline)
}
