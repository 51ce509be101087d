// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads the edgaringest configuration surface (§6) from
// viper: a TOML file plus EDGARINGEST_-prefixed environment variables,
// mirroring the teacher's cmd/root.go initConfig wiring.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the fully-resolved configuration surface (§6).
type Config struct {
	StorageDSN string

	SECAPI struct {
		RateLimit               float64
		Timeout                 int
		UserAgent               string
		PartialSuccessThreshold float64
	}

	Database struct {
		PoolSize int
		Timeout  int
	}

	Chunker struct {
		MinTokens     int
		MaxTokens     int
		OverlapTokens int
		TokensPerWord float64
	}

	Reconciler struct {
		TolerancePercent float64
		StrictMode       bool
	}

	Features struct {
		AsyncDownloads    bool
		SectionExtraction bool
		TableExtraction   bool
		CachingEnabled    bool
	}

	FilesystemRoot string
	BackblazeBucket string
}

// Defaults establishes the §6 defaults before a config file or environment
// variables are layered on top.
func Defaults() {
	viper.SetDefault("sec_api.rate_limit", 8.0)
	viper.SetDefault("sec_api.timeout", 30)
	viper.SetDefault("sec_api.partial_success_threshold", 0.5)

	viper.SetDefault("database.pool_size", 10)
	viper.SetDefault("database.timeout", 30)

	viper.SetDefault("chunker.min_tokens", 100)
	viper.SetDefault("chunker.max_tokens", 512)
	viper.SetDefault("chunker.overlap_tokens", 50)
	viper.SetDefault("chunker.tokens_per_word", 1.33)

	viper.SetDefault("reconciler.tolerance_percent", 1.0)
	viper.SetDefault("reconciler.strict_mode", false)

	viper.SetDefault("features.async_downloads", true)
	viper.SetDefault("features.section_extraction", true)
	viper.SetDefault("features.table_extraction", true)
	viper.SetDefault("features.caching_enabled", false)

	viper.SetDefault("filesystem_root", "data")
}

// Load resolves a Config from viper's current state and validates it per
// §6/§7's startup config-error taxonomy. Returns the first failing check.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.StorageDSN = viper.GetString("storage.dsn")

	cfg.SECAPI.RateLimit = viper.GetFloat64("sec_api.rate_limit")
	cfg.SECAPI.Timeout = viper.GetInt("sec_api.timeout")
	cfg.SECAPI.UserAgent = viper.GetString("sec_api.user_agent")
	cfg.SECAPI.PartialSuccessThreshold = viper.GetFloat64("sec_api.partial_success_threshold")

	cfg.Database.PoolSize = viper.GetInt("database.pool_size")
	cfg.Database.Timeout = viper.GetInt("database.timeout")

	cfg.Chunker.MinTokens = viper.GetInt("chunker.min_tokens")
	cfg.Chunker.MaxTokens = viper.GetInt("chunker.max_tokens")
	cfg.Chunker.OverlapTokens = viper.GetInt("chunker.overlap_tokens")
	cfg.Chunker.TokensPerWord = viper.GetFloat64("chunker.tokens_per_word")

	cfg.Reconciler.TolerancePercent = viper.GetFloat64("reconciler.tolerance_percent")
	cfg.Reconciler.StrictMode = viper.GetBool("reconciler.strict_mode")

	cfg.Features.AsyncDownloads = viper.GetBool("features.async_downloads")
	cfg.Features.SectionExtraction = viper.GetBool("features.section_extraction")
	cfg.Features.TableExtraction = viper.GetBool("features.table_extraction")
	cfg.Features.CachingEnabled = viper.GetBool("features.caching_enabled")

	cfg.FilesystemRoot = viper.GetString("filesystem_root")
	cfg.BackblazeBucket = viper.GetString("backblaze.bucket")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate runs the §7 "config errors" startup checks, each a single-line
// diagnostic on failure.
func (c *Config) Validate() error {
	ua := strings.TrimSpace(c.SECAPI.UserAgent)
	if !strings.Contains(ua, "@") || len(ua) < 10 {
		return fmt.Errorf("config: sec_api.user_agent must contain a contact address and be at least 10 characters")
	}

	if c.SECAPI.RateLimit <= 0 || c.SECAPI.RateLimit > 10 {
		return fmt.Errorf("config: sec_api.rate_limit must be in (0, 10], got %v", c.SECAPI.RateLimit)
	}

	if c.StorageDSN == "" {
		return fmt.Errorf("config: storage.dsn is required")
	}

	return nil
}
