// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-digest/internal/eutils"
	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// pipelineConfig assembles the full pipeline configuration from viper,
// applying defaults and filling credentials from loaded secrets when the
// config leaves them empty.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			Queries:         configQueries(),
			Journals:        viper.GetStringSlice("search.journals"),
			WindowDays:      viper.GetInt("search.window_days"),
			MaxResults:      viper.GetInt("search.max_results"),
			InterQueryDelay: viper.GetDuration("search.inter_query_delay"),
			ToolEmail:       viper.GetString("search.tool_email"),
			APIKey:          secretDefault("ncbi-api-key", viper.GetString("search.api_key")),
		},
		Display: types.DisplayConfig{
			PubTypeLang: types.PubTypeLang(viper.GetString("display.pubtype_lang")),
		},
		Summary: types.SummaryConfig{
			AIConfig: types.AIConfig{
				Model:      viper.GetString("summary.model"),
				APIKey:     secretDefault("gemini-api-key", viper.GetString("summary.api_key")),
				MaxRetries: viper.GetInt("summary.max_retries"),
			},
			SleepBetweenCalls: viper.GetDuration("summary.sleep_between_calls"),
			MaxAbstractChars:  viper.GetInt("summary.max_abstract_chars"),
		},
		State: types.StateConfig{
			Path: viper.GetString("state.path"),
		},
		Archive: types.ArchiveConfig{
			Dir:        viper.GetString("archive.dir"),
			MaxResults: viper.GetInt("archive.max_results"),
		},
		Mail: types.MailConfig{
			Host:     viper.GetString("mail.host"),
			Port:     viper.GetInt("mail.port"),
			From:     viper.GetString("mail.from"),
			Password: secretDefault("gmail-app-password", viper.GetString("mail.password")),
			To:       viper.GetString("mail.to"),
		},
		Digest: types.DigestConfig{
			Heading: viper.GetString("digest.heading"),
			Topic:   viper.GetString("digest.topic"),
		},
	}

	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 60 * time.Second
	}
	if cfg.Search.UserAgent == "" {
		cfg.Search.UserAgent = "pubmed-digest/" + version
	}
	if cfg.Search.WindowDays == 0 {
		cfg.Search.WindowDays = 7
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 500
	}
	if cfg.Search.InterQueryDelay == 0 {
		cfg.Search.InterQueryDelay = time.Second
	}
	if cfg.Display.PubTypeLang == "" {
		cfg.Display.PubTypeLang = types.PubTypeJapanese
	}
	if cfg.Summary.Model == "" {
		cfg.Summary.Model = "gemini-2.5-flash"
	}
	if cfg.Summary.MaxRetries == 0 {
		cfg.Summary.MaxRetries = 3
	}
	if cfg.Summary.SleepBetweenCalls == 0 {
		cfg.Summary.SleepBetweenCalls = 2 * time.Second
	}
	if cfg.Summary.MaxAbstractChars == 0 {
		cfg.Summary.MaxAbstractChars = 7000
	}
	if cfg.State.Path == "" {
		cfg.State.Path = "state/sent.json"
	}
	if cfg.Archive.Dir == "" {
		cfg.Archive.Dir = "archive"
	}
	if cfg.Archive.MaxResults == 0 {
		cfg.Archive.MaxResults = 20
	}
	if cfg.Mail.Host == "" {
		cfg.Mail.Host = "smtp.gmail.com"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 465
	}
	if cfg.Digest.Heading == "" {
		cfg.Digest.Heading = "Daily PubMed digest"
	}
	if cfg.Digest.Topic == "" {
		cfg.Digest.Topic = "PubMed"
	}
	return cfg
}

// configQueries reads search queries either as a YAML list or as a single
// string with "---" separator lines, which is how the value arrives
// through an environment variable. The two shapes must be told apart on
// the raw value: string-casting a list or list-casting a string would
// mangle the query terms.
func configQueries() []string {
	switch v := viper.Get("search.queries").(type) {
	case nil:
		return nil
	case string:
		return eutils.SplitQueries(v)
	case []string:
		return v
	default:
		return viper.GetStringSlice("search.queries")
	}
}
