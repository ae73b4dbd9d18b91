package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/krishnaVerma87/new-trakly/internal/dedup"
)

// fileConfig is the YAML shape of --config. Pointer fields distinguish
// "absent" from an explicit zero.
type fileConfig struct {
	Threshold            *float64 `yaml:"threshold"`
	FallbackThreshold    *float64 `yaml:"fallback_threshold"`
	Limit                *int     `yaml:"limit"`
	MaxVocabulary        *int     `yaml:"max_vocabulary"`
	LikelyDuplicateScore *int     `yaml:"likely_duplicate_score"`
	MinTitleRunes        *int     `yaml:"min_title_runes"`
	DisableVectorizer    *bool    `yaml:"disable_vectorizer"`
	Stopwords            []string `yaml:"stopwords"`
}

// engineConfig resolves the engine configuration: defaults, then the
// optional --config YAML file, then TRAKLY_DEDUP_* environment variables,
// then command flags. The engine itself owns no files and no environment
// variables; resolution is strictly a CLI concern.
//
// Environment variables:
//   - TRAKLY_DEDUP_THRESHOLD: vector-space inclusion threshold, 0.0-1.0 (default: 0.30)
//   - TRAKLY_DEDUP_FALLBACK_THRESHOLD: token-overlap inclusion threshold (default: 0.20)
//   - TRAKLY_DEDUP_LIMIT: maximum similar issues returned (default: 5)
//   - TRAKLY_DEDUP_MAX_VOCABULARY: vector-space vocabulary cap (default: 1000)
//   - TRAKLY_DEDUP_LIKELY_SCORE: high-confidence percentage cutoff (default: 70)
//   - TRAKLY_DEDUP_MIN_TITLE_RUNES: skip similarity search below this title length (default: 0)
//   - TRAKLY_DEDUP_DISABLE_VECTORIZER: force the token-overlap fallback (default: false)
func engineConfig(cmd *cobra.Command) (dedup.Config, error) {
	cfg := dedup.DefaultConfig()

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		applyFileConfig(&cfg, fc)
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return cfg, err
	}

	// --no-vectorizer is only defined on commands that run checks; the
	// lookup error for other commands just leaves the default in place.
	if disable, err := cmd.Flags().GetBool("no-vectorizer"); err == nil && disable {
		cfg.DisableVectorizer = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFileConfig(cfg *dedup.Config, fc fileConfig) {
	if fc.Threshold != nil {
		cfg.Threshold = *fc.Threshold
	}
	if fc.FallbackThreshold != nil {
		cfg.FallbackThreshold = *fc.FallbackThreshold
	}
	if fc.Limit != nil {
		cfg.Limit = *fc.Limit
	}
	if fc.MaxVocabulary != nil {
		cfg.MaxVocabulary = *fc.MaxVocabulary
	}
	if fc.LikelyDuplicateScore != nil {
		cfg.LikelyDuplicateScore = *fc.LikelyDuplicateScore
	}
	if fc.MinTitleRunes != nil {
		cfg.MinTitleRunes = *fc.MinTitleRunes
	}
	if fc.DisableVectorizer != nil {
		cfg.DisableVectorizer = *fc.DisableVectorizer
	}
	if fc.Stopwords != nil {
		cfg.Stopwords = fc.Stopwords
	}
}

func applyEnvConfig(cfg *dedup.Config) error {
	if err := parseEnvFloat("TRAKLY_DEDUP_THRESHOLD", &cfg.Threshold); err != nil {
		return err
	}
	if err := parseEnvFloat("TRAKLY_DEDUP_FALLBACK_THRESHOLD", &cfg.FallbackThreshold); err != nil {
		return err
	}
	if err := parseEnvInt("TRAKLY_DEDUP_LIMIT", &cfg.Limit); err != nil {
		return err
	}
	if err := parseEnvInt("TRAKLY_DEDUP_MAX_VOCABULARY", &cfg.MaxVocabulary); err != nil {
		return err
	}
	if err := parseEnvInt("TRAKLY_DEDUP_LIKELY_SCORE", &cfg.LikelyDuplicateScore); err != nil {
		return err
	}
	if err := parseEnvInt("TRAKLY_DEDUP_MIN_TITLE_RUNES", &cfg.MinTitleRunes); err != nil {
		return err
	}
	if err := parseEnvBool("TRAKLY_DEDUP_DISABLE_VECTORIZER", &cfg.DisableVectorizer); err != nil {
		return err
	}
	return nil
}

// parseEnvFloat parses a float64 from an environment variable
func parseEnvFloat(key string, dest *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
