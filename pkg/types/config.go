// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the PubMed ESearch stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Queries is a list of full PubMed search expressions, run in order.
	// When empty, a journal-OR query is built from Journals instead.
	Queries []string `json:"queries" yaml:"queries"`

	// Journals lists journal names or abbreviations for the fallback
	// journal-OR query ([ta] field).
	Journals []string `json:"journals" yaml:"journals"`

	// WindowDays is the size of the fixed EDAT window in days. The window
	// always ends at the current UTC date, so re-runs within the same day
	// see the same window.
	WindowDays int `json:"window_days" yaml:"window_days"`

	// MaxResults caps the number of PMIDs returned per query (default 500).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// InterQueryDelay is the pause between consecutive ESearch calls.
	InterQueryDelay time.Duration `json:"inter_query_delay" yaml:"inter_query_delay"`

	// ToolEmail is sent as the E-utilities &email contact parameter.
	ToolEmail string `json:"tool_email" yaml:"tool_email"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// PubTypeLang selects how publication-type labels render in the digest.
type PubTypeLang string

const (
	PubTypeEnglish  PubTypeLang = "en"
	PubTypeJapanese PubTypeLang = "ja"
)

// DisplayConfig holds record rendering options.
type DisplayConfig struct {
	// PubTypeLang selects publication-type label rendering: "en" passes
	// labels through as-is, "ja" maps them through the localized table.
	PubTypeLang PubTypeLang `json:"pubtype_lang" yaml:"pubtype_lang"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	AIConfig `yaml:",inline"`

	// SleepBetweenCalls is the fixed pause between consecutive per-record
	// AI calls, to stay under the external API rate limit.
	SleepBetweenCalls time.Duration `json:"sleep_between_calls" yaml:"sleep_between_calls"`

	// MaxAbstractChars truncates the abstract sent to the AI backend
	// (default 7000).
	MaxAbstractChars int `json:"max_abstract_chars" yaml:"max_abstract_chars"`
}

// StateConfig holds settings for the dedup state store.
type StateConfig struct {
	// Path is the location of the persisted state file
	// (default "state/sent.json").
	Path string `json:"path" yaml:"path"`
}

// ArchiveConfig holds settings for the local record archive.
type ArchiveConfig struct {
	// Dir is the directory containing the archive database
	// (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// MailConfig holds settings for digest delivery over SMTP.
type MailConfig struct {
	// Host is the SMTP server hostname (default "smtp.gmail.com").
	Host string `json:"host" yaml:"host"`

	// Port is the SMTP-over-TLS port (default 465).
	Port int `json:"port" yaml:"port"`

	// From is the sender address, also used for authentication.
	From string `json:"from" yaml:"from"`

	// Password is the SMTP password (e.g. a Gmail app password).
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// To is the recipient address. Defaults to From when empty.
	To string `json:"to" yaml:"to"`
}

// DigestConfig holds settings for digest assembly.
type DigestConfig struct {
	// Heading is the first line of the digest body.
	Heading string `json:"heading" yaml:"heading"`

	// Topic is a short topic line printed under the heading and included
	// in the subject (e.g. "Radiation Oncology").
	Topic string `json:"topic" yaml:"topic"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Display DisplayConfig `json:"display" yaml:"display"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	State   StateConfig   `json:"state" yaml:"state"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
	Mail    MailConfig    `json:"mail" yaml:"mail"`
	Digest  DigestConfig  `json:"digest" yaml:"digest"`
}
