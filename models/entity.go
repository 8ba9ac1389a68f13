package models

import (
	"strconv"
	"time"
)

// The concrete entity kinds below are owned by their feature pipelines
// (preference editing, digest requests, summarization, crawling, model
// accounting). The sync layer only reads them and, for Summary, flips the
// one client-mutable flag. Each kind knows how to wrap itself into an
// [EntityEnvelope]; payload fields are passed through opaquely and never
// inspected downstream.

// Preference holds a user's digest delivery settings.
type Preference struct {
	ID            int64      `json:"id" db:"id"`
	OwnerID       int64      `json:"owner_id" db:"owner_id"`
	Language      string     `json:"language" db:"language"`
	Timezone      string     `json:"timezone" db:"timezone"`
	DigestHour    int        `json:"digest_hour" db:"digest_hour"`
	AutoSummarize bool       `json:"auto_summarize" db:"auto_summarize"`
	ServerVersion int64      `json:"server_version" db:"server_version"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ToEnvelope implements [EnvelopeProducer].
func (p Preference) ToEnvelope() EntityEnvelope {
	env := EntityEnvelope{
		EntityType:    EntityPreference,
		ID:            strconv.FormatInt(p.ID, 10),
		ServerVersion: p.ServerVersion,
		UpdatedAt:     p.UpdatedAt,
		DeletedAt:     p.DeletedAt,
	}
	if p.DeletedAt == nil {
		env.Payload = map[string]any{
			"language":       p.Language,
			"timezone":       p.Timezone,
			"digest_hour":    p.DigestHour,
			"auto_summarize": p.AutoSummarize,
		}
	}
	return env
}

// DigestRequest is a user command asking for a digest over some query.
type DigestRequest struct {
	ID            int64      `json:"id" db:"id"`
	OwnerID       int64      `json:"owner_id" db:"owner_id"`
	Command       string     `json:"command" db:"command"`
	Query         string     `json:"query" db:"query"`
	Status        string     `json:"status" db:"status"`
	ServerVersion int64      `json:"server_version" db:"server_version"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ToEnvelope implements [EnvelopeProducer].
func (r DigestRequest) ToEnvelope() EntityEnvelope {
	env := EntityEnvelope{
		EntityType:    EntityRequest,
		ID:            strconv.FormatInt(r.ID, 10),
		ServerVersion: r.ServerVersion,
		UpdatedAt:     r.UpdatedAt,
		DeletedAt:     r.DeletedAt,
	}
	if r.DeletedAt == nil {
		env.Payload = map[string]any{
			"command": r.Command,
			"query":   r.Query,
			"status":  r.Status,
		}
	}
	return env
}

// Summary is a generated article summary. IsRead is the single field a
// client may mutate through the apply path.
type Summary struct {
	ID            int64      `json:"id" db:"id"`
	OwnerID       int64      `json:"owner_id" db:"owner_id"`
	RequestID     int64      `json:"request_id" db:"request_id"`
	Title         string     `json:"title" db:"title"`
	SourceURL     string     `json:"source_url" db:"source_url"`
	Content       string     `json:"content" db:"content"`
	IsRead        bool       `json:"is_read" db:"is_read"`
	ServerVersion int64      `json:"server_version" db:"server_version"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ToEnvelope implements [EnvelopeProducer].
func (s Summary) ToEnvelope() EntityEnvelope {
	env := EntityEnvelope{
		EntityType:    EntitySummary,
		ID:            strconv.FormatInt(s.ID, 10),
		ServerVersion: s.ServerVersion,
		UpdatedAt:     s.UpdatedAt,
		DeletedAt:     s.DeletedAt,
	}
	if s.DeletedAt == nil {
		env.Payload = map[string]any{
			"request_id": s.RequestID,
			"title":      s.Title,
			"source_url": s.SourceURL,
			"content":    s.Content,
			"is_read":    s.IsRead,
		}
	}
	return env
}

// CrawlResult records one page fetch performed for a digest request.
type CrawlResult struct {
	ID            int64      `json:"id" db:"id"`
	OwnerID       int64      `json:"owner_id" db:"owner_id"`
	RequestID     int64      `json:"request_id" db:"request_id"`
	URL           string     `json:"url" db:"url"`
	HTTPStatus    int        `json:"http_status" db:"http_status"`
	ContentHash   string     `json:"content_hash" db:"content_hash"`
	ServerVersion int64      `json:"server_version" db:"server_version"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ToEnvelope implements [EnvelopeProducer].
func (c CrawlResult) ToEnvelope() EntityEnvelope {
	env := EntityEnvelope{
		EntityType:    EntityCrawl,
		ID:            strconv.FormatInt(c.ID, 10),
		ServerVersion: c.ServerVersion,
		UpdatedAt:     c.UpdatedAt,
		DeletedAt:     c.DeletedAt,
	}
	if c.DeletedAt == nil {
		env.Payload = map[string]any{
			"request_id":   c.RequestID,
			"url":          c.URL,
			"http_status":  c.HTTPStatus,
			"content_hash": c.ContentHash,
		}
	}
	return env
}

// ModelCall is an accounting record for one LLM invocation.
type ModelCall struct {
	ID               int64      `json:"id" db:"id"`
	OwnerID          int64      `json:"owner_id" db:"owner_id"`
	RequestID        int64      `json:"request_id" db:"request_id"`
	Model            string     `json:"model" db:"model"`
	PromptTokens     int64      `json:"prompt_tokens" db:"prompt_tokens"`
	CompletionTokens int64      `json:"completion_tokens" db:"completion_tokens"`
	ServerVersion    int64      `json:"server_version" db:"server_version"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ToEnvelope implements [EnvelopeProducer].
func (m ModelCall) ToEnvelope() EntityEnvelope {
	env := EntityEnvelope{
		EntityType:    EntityModelCall,
		ID:            strconv.FormatInt(m.ID, 10),
		ServerVersion: m.ServerVersion,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     m.DeletedAt,
	}
	if m.DeletedAt == nil {
		env.Payload = map[string]any{
			"request_id":        m.RequestID,
			"model":             m.Model,
			"prompt_tokens":     m.PromptTokens,
			"completion_tokens": m.CompletionTokens,
		}
	}
	return env
}
