package api

import "time"

// ---------- Content Generation ----------

// GenerateRequest is the payload for POST /content/generate.
type GenerateRequest struct {
	Context string `json:"context"`
}

// ---------- Exports ----------

// LinkedInExportRequest is the payload for POST /export/linkedin.
type LinkedInExportRequest struct {
	Headline      string `json:"headline"`
	Body          string `json:"body"`
	CTA           string `json:"cta"`
	RecipientName string `json:"recipient_name,omitempty"`
	ExportType    string `json:"export_type"`
	CampaignID    string `json:"campaign_id,omitempty"`
}

// LinkedInExportResponse is the backend's answer to a LinkedIn export.
type LinkedInExportResponse struct {
	Success  bool   `json:"success"`
	ExportID int64  `json:"export_id"`
	Message  string `json:"message"`
}

// EmailExportRequest is the payload for POST /export/email.
type EmailExportRequest struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Recipient  string `json:"recipient"`
	CampaignID string `json:"campaign_id,omitempty"`
}

// EmailExportResponse is the backend's answer to an email export. Delivery
// failures come back as success=false with a 200 status, so callers must read
// Success rather than rely on the HTTP code.
type EmailExportResponse struct {
	Success  bool   `json:"success"`
	ExportID int64  `json:"export_id"`
	Message  string `json:"message"`
}

// CallExportRequest is the payload for POST /export/call.
type CallExportRequest struct {
	LeadName   string `json:"lead_name"`
	Phone      string `json:"phone"`
	Script     string `json:"script"`
	Priority   int    `json:"priority"`
	CampaignID string `json:"campaign_id,omitempty"`
}

// CallExportResponse is the backend's answer to a call-queue export.
type CallExportResponse struct {
	Success bool   `json:"success"`
	QueueID int64  `json:"queue_id"`
	Message string `json:"message"`
}

// ---------- Dashboard ----------

// ExportCountByChannel is one per-channel export tally.
type ExportCountByChannel struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

// ActivityEntry is one export log row.
type ActivityEntry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Channel     string    `json:"channel"`
	Status      string    `json:"status"`
	Destination string    `json:"destination"`
}

// DashboardStats is the response of GET /dashboard/stats.
type DashboardStats struct {
	TotalCampaigns   int                    `json:"total_campaigns"`
	ExportsByChannel []ExportCountByChannel `json:"exports_by_channel"`
	RecentActivity   []RecentActivity       `json:"recent_activity"`
}

// RecentActivity is one recent pipeline or export action.
type RecentActivity struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Channel   string    `json:"channel"`
	Summary   string    `json:"summary"`
}

// PipelineRun is one historical generation run.
type PipelineRun struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Intent        string    `json:"intent"`
	ICPID         string    `json:"icp_id"`
	Channel       string    `json:"channel"`
	Platform      string    `json:"platform"`
	PriorityScore float64   `json:"priority_score"`
}

// PipelineHistoryResponse is the response of GET /dashboard/pipelines.
type PipelineHistoryResponse struct {
	Runs  []PipelineRun `json:"runs"`
	Total int           `json:"total"`
}

// ActivityResponse is the response of GET /dashboard/activity.
type ActivityResponse struct {
	Entries []ActivityEntry `json:"entries"`
	Total   int             `json:"total"`
}

// CallQueueItem is one pending entry in the call queue.
type CallQueueItem struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	LeadName  string    `json:"lead_name"`
	Phone     string    `json:"phone"`
	Script    string    `json:"script"`
	Priority  int       `json:"priority"`
	Status    string    `json:"status"`
}

// ---------- Settings ----------

// Settings is the response of GET /settings. Secret values are never echoed
// back; the *_set flags report whether one is stored.
type Settings struct {
	DefaultLLMModel      string `json:"default_llm_model"`
	SMTPHost             string `json:"smtp_host"`
	SMTPPort             int    `json:"smtp_port"`
	SMTPUsername         string `json:"smtp_username,omitempty"`
	LinkedInWebhookURL   string `json:"linkedin_webhook_url,omitempty"`
	OpenRouterAPIKeySet  bool   `json:"openrouter_api_key_set"`
	HuggingFaceAPIKeySet bool   `json:"huggingface_api_key_set"`
}

// SettingsUpdate is the payload for PATCH /settings. Nil fields are left
// untouched by the backend.
type SettingsUpdate struct {
	DefaultLLMModel    *string `json:"default_llm_model,omitempty"`
	SMTPHost           *string `json:"smtp_host,omitempty"`
	SMTPPort           *int    `json:"smtp_port,omitempty"`
	SMTPUsername       *string `json:"smtp_username,omitempty"`
	SMTPPassword       *string `json:"smtp_password,omitempty"`
	LinkedInWebhookURL *string `json:"linkedin_webhook_url,omitempty"`
}
