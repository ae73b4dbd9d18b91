package dedup

import "fmt"

// Config holds configuration for the duplicate detection engine.
//
// The zero value is not usable; start from DefaultConfig and override
// individual fields. All thresholds and lists live here rather than in
// package-level variables so the engine stays a pure, test-doubled
// component.
type Config struct {
	// Threshold is the minimum raw similarity (0.0-1.0) for the
	// vector-space strategy to include a candidate.
	// Default: 0.30
	Threshold float64

	// FallbackThreshold is the inclusion threshold for the token-overlap
	// fallback. Deliberately lower than Threshold: Jaccard over word sets
	// is coarser than TF-IDF cosine, so parity would suppress legitimate
	// matches.
	// Default: 0.20
	FallbackThreshold float64

	// Limit is the maximum number of similar issues returned per check.
	// Default: 5
	Limit int

	// MaxVocabulary caps the number of distinct terms the vector-space
	// strategy keeps when building its per-request model.
	// Default: 1000
	MaxVocabulary int

	// LikelyDuplicateScore is the integer percentage at or above which any
	// single candidate marks the whole result as a likely duplicate. It is
	// independent of the inclusion thresholds above.
	// Default: 70
	LikelyDuplicateScore int

	// MinTitleRunes skips the similarity search for titles shorter than
	// this many runes; the deduplication hash is still computed. Very short
	// titles carry too little signal to score. 0 disables the check.
	// Default: 0
	MinTitleRunes int

	// DisableVectorizer forces the token-overlap fallback, as when no
	// vectorization capability is available in the runtime.
	// Default: false
	DisableVectorizer bool

	// Stopwords are removed before tokenization by both strategies.
	// Defaults to DefaultStopwords().
	Stopwords []string
}

// DefaultConfig returns the default engine configuration.
//
// The defaults match the tracker's historical behavior: inclusion at 30%
// cosine similarity (20% Jaccard on the fallback path), five results, a
// 1000-term vocabulary and the 70% high-confidence cutoff.
func DefaultConfig() Config {
	return Config{
		Threshold:            0.30,
		FallbackThreshold:    0.20,
		Limit:                5,
		MaxVocabulary:        1000,
		LikelyDuplicateScore: 70,
		MinTitleRunes:        0,
		DisableVectorizer:    false,
		Stopwords:            DefaultStopwords(),
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.Threshold < 0.0 || c.Threshold > 1.0 {
		return fmt.Errorf("threshold must be between 0.0 and 1.0 (got %.2f)", c.Threshold)
	}
	if c.FallbackThreshold < 0.0 || c.FallbackThreshold > 1.0 {
		return fmt.Errorf("fallback_threshold must be between 0.0 and 1.0 (got %.2f)", c.FallbackThreshold)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive (got %d)", c.Limit)
	}
	if c.Limit > 100 {
		return fmt.Errorf("limit too large (got %d, max 100)", c.Limit)
	}
	if c.MaxVocabulary <= 0 {
		return fmt.Errorf("max_vocabulary must be positive (got %d)", c.MaxVocabulary)
	}
	if c.MaxVocabulary > 100000 {
		return fmt.Errorf("max_vocabulary too large (got %d, max 100000)", c.MaxVocabulary)
	}
	if c.LikelyDuplicateScore < 0 || c.LikelyDuplicateScore > 100 {
		return fmt.Errorf("likely_duplicate_score must be between 0 and 100 (got %d)", c.LikelyDuplicateScore)
	}
	if c.MinTitleRunes < 0 {
		return fmt.Errorf("min_title_runes cannot be negative (got %d)", c.MinTitleRunes)
	}
	if c.MinTitleRunes > 500 {
		return fmt.Errorf("min_title_runes too large (got %d, max 500)", c.MinTitleRunes)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Threshold: %.2f, Fallback: %.2f, Limit: %d, MaxVocabulary: %d, "+
			"LikelyScore: %d, MinTitleRunes: %d, DisableVectorizer: %t, Stopwords: %d}",
		c.Threshold, c.FallbackThreshold, c.Limit, c.MaxVocabulary,
		c.LikelyDuplicateScore, c.MinTitleRunes, c.DisableVectorizer, len(c.Stopwords),
	)
}

// stopwordSet builds the lookup set both strategies filter against.
func (c Config) stopwordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Stopwords))
	for _, w := range c.Stopwords {
		set[NormalizeText(w)] = struct{}{}
	}
	delete(set, "")
	return set
}

// DefaultStopwords returns the curated English stopword list shared by both
// similarity strategies. Function words only; domain terms like "bug" or
// "error" stay significant on purpose.
func DefaultStopwords() []string {
	return []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been",
		"being", "have", "has", "had", "do", "does", "did", "will",
		"would", "could", "should", "may", "might", "must", "shall",
		"can", "need", "dare", "ought", "used", "to", "of", "in",
		"for", "on", "with", "at", "by", "from", "as", "into",
		"through", "during", "before", "after", "above", "below",
		"between", "under", "again", "further", "then", "once",
		"and", "but", "or", "nor", "so", "yet", "both", "either",
		"neither", "not", "only", "own", "same", "than", "too",
		"very", "just", "also", "now", "here", "there", "when",
		"where", "why", "how", "all", "each", "every",
		"few", "more", "most", "other", "some", "such", "no",
		"any", "this", "that", "these", "those", "it", "its",
	}
}
