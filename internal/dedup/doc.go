// Package dedup implements duplicate detection for tracker issues.
//
// # Overview
//
// Given a new issue's title and description, the engine decides whether it
// is an exact or near duplicate of an existing open issue in the same
// project, so the issue-creation workflow can warn the user or refuse
// creation. The engine itself is advisory: it never writes, never marks
// anything as duplicate, and never persists the hash it suggests.
//
// A check runs in five steps:
//
//  1. GenerateHash fingerprints the normalized (title, description) pair
//     for the caller's exact-duplicate index.
//  2. The corpus.Provider supplies the project's live issues (non-terminal,
//     not already flagged as duplicates).
//  3. The selected Strategy scores the candidate text against every corpus
//     document: TF-IDF cosine similarity when vectorization is available,
//     Jaccard token overlap otherwise. Selection happens once, in
//     SelectStrategy; callers never branch on strategy identity.
//  4. Rank filters by the strategy's inclusion threshold, sorts descending
//     (stable, so ties keep corpus order), truncates to the result limit
//     and converts raw scores to integer percentages by truncation.
//  5. LikelyDuplicate flags the result when any candidate reaches the
//     high-confidence score (default 70).
//
// # Concurrency
//
// Every data structure is created fresh per check and discarded with the
// response. The vector-space model in particular is fitted inside each
// Score call: reusing a fitted vocabulary across requests would leak one
// project's corpus vocabulary into another project's scores. Checks for
// the same or different projects may run fully in parallel.
//
// # Usage
//
//	checker, err := dedup.NewChecker(provider, dedup.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	result, err := checker.CheckDuplicates(ctx, projectID, title, description)
//	if err != nil {
//	    return err // corpus fetch failed; nothing partial to salvage
//	}
//	if result.IsLikelyDuplicate {
//	    // warn the user, show result.SimilarIssues
//	}
package dedup
