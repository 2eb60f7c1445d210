package export

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/surface"
	"github.com/outboundly/outboundly/pkg/textutil"
)

// dispatchLinkedIn resolves among the three LinkedIn delivery modes.
func (d *Dispatcher) dispatchLinkedIn(ctx context.Context, content model.GeneratedContent, req *model.LinkedInExport) (string, error) {
	if req == nil {
		return "", errors.New("missing linkedin payload")
	}

	switch req.Mode {
	case model.LinkedInAutomated:
		resp, err := d.client.ExportLinkedIn(ctx, api.LinkedInExportRequest{
			Headline:      content.Headline,
			Body:          content.Body,
			CTA:           content.CTA,
			RecipientName: req.RecipientName,
			ExportType:    string(req.Mode),
			CampaignID:    content.CampaignID,
		})
		if err != nil {
			return "", err
		}
		if !resp.Success {
			return "", &OutcomeError{Message: resp.Message}
		}
		return resp.Message, nil

	case model.LinkedInManualMessage:
		// The messaging surface is only opened once the text is actually on
		// the clipboard; otherwise the user would land on an empty composer.
		text := textutil.JoinBlocks(content.Headline, content.Body, content.CTA)
		if !d.copyText(text) {
			return "", ErrClipboard
		}
		if err := d.opener.OpenURL(surface.MessagingURL); err != nil {
			d.log.Warn("messaging surface open failed", zap.Error(err))
		}
		return "Copy placed on clipboard. Paste it into the LinkedIn message window.", nil

	case model.LinkedInFeedShare:
		// Fire-and-forget: once the composer link is issued the outcome is
		// not observable, so this always reports success.
		text := textutil.JoinBlocks(content.Headline, content.Body, content.CTA)
		if err := d.opener.OpenURL(surface.ShareComposerURL(text)); err != nil {
			d.log.Warn("share composer open failed", zap.Error(err))
		}
		return "Share composer opened with the generated copy.", nil

	default:
		return "", errors.New("unknown linkedin mode " + string(req.Mode))
	}
}

// dispatchEmail sends through the export backend. The outcome notice is
// taken verbatim from the backend's success/message envelope, not inferred
// from the HTTP status.
func (d *Dispatcher) dispatchEmail(ctx context.Context, content model.GeneratedContent, req *model.EmailExport) (string, error) {
	if req == nil {
		return "", errors.New("missing email payload")
	}

	subject := req.Subject
	if strings.TrimSpace(subject) == "" {
		subject = content.Headline
	}

	resp, err := d.client.ExportEmail(ctx, api.EmailExportRequest{
		Subject:    subject,
		Body:       content.Body + "\n\n" + content.CTA,
		Recipient:  req.Recipient,
		CampaignID: content.CampaignID,
	})
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &OutcomeError{Message: resp.Message}
	}
	return resp.Message, nil
}

// dispatchCall enqueues a call-queue entry with the assembled call script.
func (d *Dispatcher) dispatchCall(ctx context.Context, content model.GeneratedContent, req *model.CallExport) (string, error) {
	if req == nil {
		return "", errors.New("missing call payload")
	}

	priority := req.Priority
	if priority == 0 {
		priority = 5
	}

	resp, err := d.client.ExportCall(ctx, api.CallExportRequest{
		LeadName:   req.LeadName,
		Phone:      req.Phone,
		Script:     content.Headline + "\n\n" + content.Body + "\n\nCTA: " + content.CTA,
		Priority:   priority,
		CampaignID: content.CampaignID,
	})
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &OutcomeError{Message: resp.Message}
	}
	return resp.Message, nil
}
