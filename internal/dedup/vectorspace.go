package dedup

import (
	"math"
	"sort"

	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// VectorSpaceStrategy is the primary scorer: cosine similarity over TF-IDF
// vectors built from unigrams and bigrams of the normalized, stopword
// filtered text. The vocabulary is capped at a fixed size and fitted fresh
// for every Score call, so no vocabulary ever leaks between requests.
type VectorSpaceStrategy struct {
	threshold     float64
	maxVocabulary int
	stopwords     map[string]struct{}
}

// Compile-time check that VectorSpaceStrategy implements Strategy
var _ Strategy = (*VectorSpaceStrategy)(nil)

// NewVectorSpaceStrategy creates a vector-space scorer from cfg. The
// returned value holds configuration only; all model state is local to
// Score.
func NewVectorSpaceStrategy(cfg Config) *VectorSpaceStrategy {
	return &VectorSpaceStrategy{
		threshold:     cfg.Threshold,
		maxVocabulary: cfg.MaxVocabulary,
		stopwords:     cfg.stopwordSet(),
	}
}

// Name identifies the strategy in logs
func (s *VectorSpaceStrategy) Name() string { return "vector-space" }

// Threshold returns the vector-space inclusion threshold
func (s *VectorSpaceStrategy) Threshold() float64 { return s.threshold }

// bigramWeight damps bigram features relative to unigrams. Issue titles are
// short, so at full weight the mostly non-overlapping bigrams inflate
// vector norms and drown out genuine word-level matches.
const bigramWeight = 0.5

// Score builds a TF-IDF model over the corpus plus the candidate and
// returns the cosine similarity between the candidate's vector and every
// corpus document's vector. The model lives only for this call.
func (s *VectorSpaceStrategy) Score(corpus []types.IssueDocument, candidateText string) []IndexScore {
	if len(corpus) == 0 {
		return nil
	}

	docs := make([]map[string]float64, 0, len(corpus)+1)
	for i := range corpus {
		docs = append(docs, s.termFrequencies(corpus[i].Text()))
	}
	docs = append(docs, s.termFrequencies(candidateText))

	vocab := buildVocabulary(docs, s.maxVocabulary)
	if len(vocab) == 0 {
		// Every document normalized to stopwords or nothing. Graceful
		// no-match outcome, not an error.
		return nil
	}

	idf := inverseDocumentFrequencies(docs, vocab)

	vectors := make([]sparseVector, len(docs))
	for i, tf := range docs {
		vectors[i] = tfidfVector(tf, vocab, idf)
	}

	candidate := vectors[len(vectors)-1]
	scores := make([]IndexScore, len(corpus))
	for i := range corpus {
		scores[i] = IndexScore{Index: i, Score: cosine(candidate, vectors[i])}
	}
	return scores
}

// termFrequencies counts unigram and (half-weighted) bigram occurrences in
// text. Bigrams are formed over adjacent tokens after stopword removal.
func (s *VectorSpaceStrategy) termFrequencies(text string) map[string]float64 {
	tokens := tokenize(text, s.stopwords)
	tf := make(map[string]float64, 2*len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	for i := 0; i+1 < len(tokens); i++ {
		tf[tokens[i]+" "+tokens[i+1]] += bigramWeight
	}
	return tf
}

// buildVocabulary keeps the top maxTerms terms ranked by total weight
// across all fitted documents, ties broken lexicographically so the
// vocabulary is deterministic.
func buildVocabulary(docs []map[string]float64, maxTerms int) map[string]struct{} {
	totals := make(map[string]float64)
	for _, tf := range docs {
		for term, w := range tf {
			totals[term] += w
		}
	}
	if len(totals) == 0 {
		return nil
	}

	vocab := make(map[string]struct{}, len(totals))
	if len(totals) <= maxTerms {
		for term := range totals {
			vocab[term] = struct{}{}
		}
		return vocab
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	for _, term := range terms[:maxTerms] {
		vocab[term] = struct{}{}
	}
	return vocab
}

// inverseDocumentFrequencies computes smoothed IDF over the fitted
// documents: ln((1+N)/(1+df)) + 1. Smoothing keeps terms that occur in
// every document from vanishing entirely.
func inverseDocumentFrequencies(docs []map[string]float64, vocab map[string]struct{}) map[string]float64 {
	df := make(map[string]int, len(vocab))
	for _, tf := range docs {
		for term := range tf {
			if _, ok := vocab[term]; ok {
				df[term]++
			}
		}
	}
	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// sparseVector is an L2-normalized document vector with entries sorted by
// term. Keeping entries sorted makes every float accumulation order fixed,
// so identical inputs always produce identical scores.
type sparseVector []termWeight

type termWeight struct {
	term   string
	weight float64
}

// tfidfVector weights term frequencies by IDF and L2-normalizes the result.
// Returns nil for a document with no in-vocabulary terms.
func tfidfVector(tf map[string]float64, vocab map[string]struct{}, idf map[string]float64) sparseVector {
	vec := make(sparseVector, 0, len(tf))
	for term, count := range tf {
		if _, ok := vocab[term]; !ok {
			continue
		}
		vec = append(vec, termWeight{term: term, weight: count * idf[term]})
	}
	if len(vec) == 0 {
		return nil
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].term < vec[j].term })

	var sumSquares float64
	for _, tw := range vec {
		sumSquares += tw.weight * tw.weight
	}
	if sumSquares == 0 {
		return nil
	}
	norm := math.Sqrt(sumSquares)
	for i := range vec {
		vec[i].weight /= norm
	}
	return vec
}

// cosine is the dot product of two L2-normalized sparse vectors (a sorted
// merge join), clamped to 1 against float drift.
func cosine(a, b sparseVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term < b[j].term:
			i++
		case a[i].term > b[j].term:
			j++
		default:
			dot += a[i].weight * b[j].weight
			i++
			j++
		}
	}
	if dot > 1 {
		return 1
	}
	return dot
}
