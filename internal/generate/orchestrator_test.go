package generate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/model"
)

// memStore is an in-memory DraftStore for orchestrator tests.
type memStore struct {
	mu    sync.Mutex
	draft model.CampaignDraft
}

func (m *memStore) Draft() model.CampaignDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

func (m *memStore) SetField(field model.DraftField, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch field {
	case model.FieldIntent:
		m.draft.Intent = value
	case model.FieldContext:
		m.draft.Context = value
	}
}

func (m *memStore) SetResult(result *model.GeneratedContent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Result = result
}

func (m *memStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = model.DefaultDraft()
}

func (m *memStore) Close() error { return nil }

type stubGenerator struct {
	mu      sync.Mutex
	calls   int
	result  *model.GeneratedContent
	err     error
	release chan struct{}
}

func (g *stubGenerator) Generate(ctx context.Context, contextText string) (*model.GeneratedContent, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.release != nil {
		<-g.release
	}
	return g.result, g.err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestPayload(t *testing.T) {
	d := model.CampaignDraft{
		Intent:  "book demo",
		Urgency: model.UrgencyNormal,
		Channel: model.ChannelAuto,
	}
	want := "Intent: book demo\nTarget Audience: \nUrgency: Normal\nPreferred Channel: Auto\nContext: "
	assert.Equal(t, want, Payload(d))
}

func TestPayload_AllFields(t *testing.T) {
	d := model.CampaignDraft{
		Intent:   "launch",
		Audience: "founders",
		Urgency:  model.UrgencyHigh,
		Channel:  model.ChannelEmail,
		Context:  "multi\nline context",
	}
	want := "Intent: launch\nTarget Audience: founders\nUrgency: High\nPreferred Channel: Email\nContext: multi\nline context"
	assert.Equal(t, want, Payload(d))
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name  string
		draft model.CampaignDraft
		want  bool
	}{
		{"all blank", model.DefaultDraft(), false},
		{"whitespace only", model.CampaignDraft{Intent: "  ", Context: "\t"}, false},
		{"intent only", model.CampaignDraft{Intent: "x"}, true},
		{"audience only", model.CampaignDraft{Audience: "x"}, true},
		{"context only", model.CampaignDraft{Context: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanSubmit(tt.draft))
		})
	}
}

func TestOrchestrator_SubmitEmptyDraft(t *testing.T) {
	s := &memStore{draft: model.DefaultDraft()}
	gen := &stubGenerator{}
	o := NewOrchestrator(s, gen, zap.NewNop())

	_, err := o.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptyDraft)
	assert.Zero(t, gen.callCount(), "empty drafts must never reach the network")
}

func TestOrchestrator_SubmitSuccess(t *testing.T) {
	s := &memStore{draft: model.CampaignDraft{Intent: "launch"}}
	gen := &stubGenerator{result: &model.GeneratedContent{Headline: "h", Platform: "Email"}}
	o := NewOrchestrator(s, gen, zap.NewNop())

	result, err := o.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "h", result.Headline)
	require.NotNil(t, s.Draft().Result)
	assert.Equal(t, "h", s.Draft().Result.Headline)
	assert.False(t, o.InFlight())
}

func TestOrchestrator_FailureLeavesPriorResult(t *testing.T) {
	prior := &model.GeneratedContent{Headline: "keep me"}
	s := &memStore{draft: model.CampaignDraft{Intent: "launch", Result: prior}}
	gen := &stubGenerator{err: errors.New("backend down")}
	o := NewOrchestrator(s, gen, zap.NewNop())

	_, err := o.Submit(context.Background())
	require.Error(t, err)
	require.NotNil(t, s.Draft().Result)
	assert.Equal(t, "keep me", s.Draft().Result.Headline)
	assert.False(t, o.InFlight())
}

func TestOrchestrator_SingleFlight(t *testing.T) {
	s := &memStore{draft: model.CampaignDraft{Intent: "launch"}}
	gen := &stubGenerator{
		result:  &model.GeneratedContent{Headline: "h"},
		release: make(chan struct{}),
	}
	o := NewOrchestrator(s, gen, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, o.InFlight, time.Second, time.Millisecond)

	// A second submit while the first is outstanding is refused, not queued.
	_, err := o.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)

	close(gen.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gen.callCount())
	assert.False(t, o.InFlight())
}

func TestStages(t *testing.T) {
	t.Run("idle with no result", func(t *testing.T) {
		stages := Stages(false, false)
		require.Len(t, stages, 4)
		for _, s := range stages {
			assert.False(t, s.Done)
			assert.False(t, s.Active)
		}
	})

	t.Run("request outstanding", func(t *testing.T) {
		stages := Stages(true, false)
		assert.True(t, stages[0].Active)
		for _, s := range stages[1:] {
			assert.False(t, s.Active)
		}
	})

	t.Run("result landed", func(t *testing.T) {
		stages := Stages(false, true)
		for _, s := range stages {
			assert.True(t, s.Done)
			assert.False(t, s.Active)
		}
	})

	t.Run("labels in pipeline order", func(t *testing.T) {
		stages := Stages(false, false)
		assert.Equal(t, "Classify Intent", stages[0].Label)
		assert.Equal(t, "ICP Match", stages[1].Label)
		assert.Equal(t, "Channel Decision", stages[2].Label)
		assert.Equal(t, "Generate Copy", stages[3].Label)
	})
}
