package export

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/notify"
)

type fakeClient struct {
	mu sync.Mutex

	linkedInReq  api.LinkedInExportRequest
	linkedInResp *api.LinkedInExportResponse
	linkedInErr  error

	emailReq  api.EmailExportRequest
	emailResp *api.EmailExportResponse
	emailErr  error

	callReq  api.CallExportRequest
	callResp *api.CallExportResponse
	callErr  error

	release chan struct{}
}

func (f *fakeClient) ExportLinkedIn(ctx context.Context, req api.LinkedInExportRequest) (*api.LinkedInExportResponse, error) {
	f.mu.Lock()
	f.linkedInReq = req
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	return f.linkedInResp, f.linkedInErr
}

func (f *fakeClient) ExportEmail(ctx context.Context, req api.EmailExportRequest) (*api.EmailExportResponse, error) {
	f.mu.Lock()
	f.emailReq = req
	f.mu.Unlock()
	return f.emailResp, f.emailErr
}

func (f *fakeClient) ExportCall(ctx context.Context, req api.CallExportRequest) (*api.CallExportResponse, error) {
	f.mu.Lock()
	f.callReq = req
	f.mu.Unlock()
	return f.callResp, f.callErr
}

type fakeOpener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeOpener) OpenURL(target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, target)
	return f.err
}

func (f *fakeOpener) opened() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.urls...)
}

type pushed struct {
	Kind    notify.Kind
	Message string
}

type fakeNotices struct {
	mu      sync.Mutex
	notices []pushed
}

func (f *fakeNotices) Push(kind notify.Kind, message string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, pushed{kind, message})
	return "id"
}

func (f *fakeNotices) all() []pushed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pushed{}, f.notices...)
}

type fixture struct {
	client  *fakeClient
	opener  *fakeOpener
	notices *fakeNotices
	copied  []string
	copyOK  bool
	disp    *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		client:  &fakeClient{},
		opener:  &fakeOpener{},
		notices: &fakeNotices{},
		copyOK:  true,
	}
	copyFn := func(text string) bool {
		f.copied = append(f.copied, text)
		return f.copyOK
	}
	f.disp = NewDispatcher(f.client, f.opener, f.notices, copyFn, zap.NewNop())
	return f
}

func (f *fixture) selectChannel(t *testing.T, ch model.ChannelKey) {
	t.Helper()
	require.True(t, f.disp.OpenMenu())
	require.True(t, f.disp.Select(ch))
}

var testContent = model.GeneratedContent{
	Headline:   "Big Launch",
	Body:       "We shipped the thing.",
	CTA:        "Book a demo",
	Platform:   "LinkedIn",
	CampaignID: "c-7",
}

func TestDispatcher_StateMachine(t *testing.T) {
	f := newFixture(t)

	t.Run("opens only from idle", func(t *testing.T) {
		assert.Equal(t, PhaseIdle, f.disp.State().Phase)
		assert.True(t, f.disp.OpenMenu())
		assert.False(t, f.disp.OpenMenu())
		f.disp.CloseMenu()
		assert.Equal(t, PhaseIdle, f.disp.State().Phase)
	})

	t.Run("select requires an open menu", func(t *testing.T) {
		assert.False(t, f.disp.Select(model.ExportEmail))
		require.True(t, f.disp.OpenMenu())
		assert.True(t, f.disp.Select(model.ExportEmail))
		assert.Equal(t, PhaseSelected, f.disp.State().Phase)
		assert.Equal(t, model.ExportEmail, f.disp.State().Channel)
	})

	t.Run("cancel returns to idle", func(t *testing.T) {
		f.disp.Cancel()
		assert.Equal(t, PhaseIdle, f.disp.State().Phase)
	})
}

func TestDispatcher_ConfirmRefusedWhenNotSelected(t *testing.T) {
	f := newFixture(t)
	req := model.ExportRequest{Channel: model.ExportEmail, Email: &model.EmailExport{}}

	assert.False(t, f.disp.Confirm(context.Background(), testContent, req))
	assert.Empty(t, f.notices.all())
}

func TestDispatcher_ConfirmRefusedOnChannelMismatch(t *testing.T) {
	f := newFixture(t)
	f.selectChannel(t, model.ExportCall)

	req := model.ExportRequest{Channel: model.ExportEmail, Email: &model.EmailExport{}}
	assert.False(t, f.disp.Confirm(context.Background(), testContent, req))
	assert.Equal(t, PhaseSelected, f.disp.State().Phase)
}

func TestDispatcher_ConfirmWhileBusyRefused(t *testing.T) {
	f := newFixture(t)
	f.client.release = make(chan struct{})
	f.client.linkedInResp = &api.LinkedInExportResponse{Success: true, Message: "queued"}
	f.selectChannel(t, model.ExportLinkedIn)

	req := model.ExportRequest{
		Channel:  model.ExportLinkedIn,
		LinkedIn: &model.LinkedInExport{Mode: model.LinkedInAutomated},
	}

	done := make(chan bool, 1)
	go func() { done <- f.disp.Confirm(context.Background(), testContent, req) }()

	require.Eventually(t, func() bool {
		return f.disp.State().Busy()
	}, time.Second, time.Millisecond)

	assert.False(t, f.disp.Confirm(context.Background(), testContent, req))

	close(f.client.release)
	assert.True(t, <-done)
	assert.Equal(t, PhaseIdle, f.disp.State().Phase)
	require.Len(t, f.notices.all(), 1)
}

func TestDispatcher_LinkedInAutomated(t *testing.T) {
	f := newFixture(t)
	f.client.linkedInResp = &api.LinkedInExportResponse{Success: true, Message: "LinkedIn export queued"}
	f.selectChannel(t, model.ExportLinkedIn)

	req := model.ExportRequest{
		Channel:  model.ExportLinkedIn,
		LinkedIn: &model.LinkedInExport{Mode: model.LinkedInAutomated, RecipientName: "Dana"},
	}
	require.True(t, f.disp.Confirm(context.Background(), testContent, req))

	assert.Equal(t, "automated", f.client.linkedInReq.ExportType)
	assert.Equal(t, "Dana", f.client.linkedInReq.RecipientName)
	assert.Equal(t, "Big Launch", f.client.linkedInReq.Headline)
	assert.Equal(t, "c-7", f.client.linkedInReq.CampaignID)

	notices := f.notices.all()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.KindSuccess, notices[0].Kind)
	assert.Equal(t, "LinkedIn export queued", notices[0].Message)
	assert.Equal(t, PhaseIdle, f.disp.State().Phase)
}

func TestDispatcher_LinkedInManualMessage(t *testing.T) {
	t.Run("copy succeeds", func(t *testing.T) {
		f := newFixture(t)
		f.selectChannel(t, model.ExportLinkedIn)

		req := model.ExportRequest{
			Channel:  model.ExportLinkedIn,
			LinkedIn: &model.LinkedInExport{Mode: model.LinkedInManualMessage},
		}
		require.True(t, f.disp.Confirm(context.Background(), testContent, req))

		require.Len(t, f.copied, 1)
		assert.Equal(t, "Big Launch\n\nWe shipped the thing.\n\nBook a demo", f.copied[0])
		assert.Equal(t, []string{"https://www.linkedin.com/messaging/"}, f.opener.opened())

		notices := f.notices.all()
		require.Len(t, notices, 1)
		assert.Equal(t, notify.KindSuccess, notices[0].Kind)
		assert.Equal(t, "Copy placed on clipboard. Paste it into the LinkedIn message window.", notices[0].Message)
	})

	t.Run("copy fails, window stays closed", func(t *testing.T) {
		f := newFixture(t)
		f.copyOK = false
		f.selectChannel(t, model.ExportLinkedIn)

		req := model.ExportRequest{
			Channel:  model.ExportLinkedIn,
			LinkedIn: &model.LinkedInExport{Mode: model.LinkedInManualMessage},
		}
		require.True(t, f.disp.Confirm(context.Background(), testContent, req))

		assert.Empty(t, f.opener.opened())
		notices := f.notices.all()
		require.Len(t, notices, 1)
		assert.Equal(t, notify.KindError, notices[0].Kind)
		assert.Equal(t, "Could not copy to clipboard. The message window was not opened.", notices[0].Message)
	})

	t.Run("surface open failure still succeeds", func(t *testing.T) {
		f := newFixture(t)
		f.opener.err = errors.New("no browser")
		f.selectChannel(t, model.ExportLinkedIn)

		req := model.ExportRequest{
			Channel:  model.ExportLinkedIn,
			LinkedIn: &model.LinkedInExport{Mode: model.LinkedInManualMessage},
		}
		require.True(t, f.disp.Confirm(context.Background(), testContent, req))

		notices := f.notices.all()
		require.Len(t, notices, 1)
		assert.Equal(t, notify.KindSuccess, notices[0].Kind)
	})
}

func TestDispatcher_LinkedInFeedShare(t *testing.T) {
	f := newFixture(t)
	f.selectChannel(t, model.ExportLinkedIn)

	req := model.ExportRequest{
		Channel:  model.ExportLinkedIn,
		LinkedIn: &model.LinkedInExport{Mode: model.LinkedInFeedShare},
	}
	require.True(t, f.disp.Confirm(context.Background(), testContent, req))

	opened := f.opener.opened()
	require.Len(t, opened, 1)
	assert.Contains(t, opened[0], "shareActive=true")
	assert.Contains(t, opened[0], "Big+Launch")

	notices := f.notices.all()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.KindSuccess, notices[0].Kind)
	assert.Equal(t, "Share composer opened with the generated copy.", notices[0].Message)
}

func TestDispatcher_Email(t *testing.T) {
	t.Run("subject falls back to headline", func(t *testing.T) {
		f := newFixture(t)
		f.client.emailResp = &api.EmailExportResponse{Success: true, Message: "Email sent"}
		f.selectChannel(t, model.ExportEmail)

		req := model.ExportRequest{
			Channel: model.ExportEmail,
			Email:   &model.EmailExport{Recipient: "dana@example.com"},
		}
		require.True(t, f.disp.Confirm(context.Background(), testContent, req))

		assert.Equal(t, "Big Launch", f.client.emailReq.Subject)
		assert.Equal(t, "We shipped the thing.\n\nBook a demo", f.client.emailReq.Body)
		assert.Equal(t, "dana@example.com", f.client.emailReq.Recipient)
	})

	t.Run("backend failure envelope is shown verbatim", func(t *testing.T) {
		f := newFixture(t)
		f.client.emailResp = &api.EmailExportResponse{Success: false, Message: "SMTP not configured"}
		f.selectChannel(t, model.ExportEmail)

		req := model.ExportRequest{
			Channel: model.ExportEmail,
			Email:   &model.EmailExport{Recipient: "dana@example.com", Subject: "Hi"},
		}
		require.True(t, f.disp.Confirm(context.Background(), testContent, req))

		notices := f.notices.all()
		require.Len(t, notices, 1)
		assert.Equal(t, notify.KindError, notices[0].Kind)
		assert.Equal(t, "SMTP not configured", notices[0].Message)
	})
}

func TestDispatcher_Call(t *testing.T) {
	f := newFixture(t)
	f.client.callResp = &api.CallExportResponse{Success: true, Message: "Queued for calling"}
	f.selectChannel(t, model.ExportCall)

	req := model.ExportRequest{
		Channel: model.ExportCall,
		Call:    &model.CallExport{LeadName: "Dana", Phone: "+44 20 1234"},
	}
	require.True(t, f.disp.Confirm(context.Background(), testContent, req))

	assert.Equal(t, "Big Launch\n\nWe shipped the thing.\n\nCTA: Book a demo", f.client.callReq.Script)
	assert.Equal(t, 5, f.client.callReq.Priority, "unset priority defaults to the middle")
	assert.Equal(t, "Dana", f.client.callReq.LeadName)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "outcome error verbatim",
			err:  &OutcomeError{Message: "SMTP not configured"},
			want: "SMTP not configured",
		},
		{
			name: "api error detail",
			err:  &api.Error{StatusCode: 422, Detail: "recipient is invalid"},
			want: "recipient is invalid",
		},
		{
			name: "clipboard failure",
			err:  ErrClipboard,
			want: "Could not copy to clipboard. The message window was not opened.",
		},
		{
			name: "anything else is generic",
			err:  errors.New("connection refused"),
			want: "Export failed. Please try again.",
		},
		{
			name: "blank outcome falls through to generic",
			err:  &OutcomeError{Message: "   "},
			want: "Export failed. Please try again.",
		},
		{
			name: "api error without detail is generic",
			err:  &api.Error{StatusCode: 500},
			want: "Export failed. Please try again.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.err))
		})
	}
}
