package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driving"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.ResolverService = (*Resolver)(nil)

// Similarity weights for the three match grades of a query token.
const (
	exactTokenScore     = 1.0
	substringTokenScore = 0.8
	editDistanceWeight  = 0.7
	editDistanceFloor   = 0.7
)

// Resolver resolves user-supplied indicator references against a catalog.
// The catalog is immutable, so a Resolver is safe for concurrent use.
type Resolver struct {
	catalog *domain.Catalog

	// tokens holds the searchable token set of each catalog record,
	// aligned with catalog insertion order.
	tokens [][]string
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(catalog *domain.Catalog) *Resolver {
	records := catalog.All()
	tokens := make([][]string, len(records))
	for i, rec := range records {
		tokens[i] = recordTokens(rec)
	}
	return &Resolver{catalog: catalog, tokens: tokens}
}

// LookupExact resolves a single identifier token by numeric ID, full key
// or short key, in that order.
func (r *Resolver) LookupExact(token string) (domain.IndicatorRecord, error) {
	return r.catalog.LookupExact(token)
}

// FuzzyLookup resolves a free-text query to an ordered indicator set.
//
// If the query is itself an exact identifier, resolution starts from that
// single record. Otherwise every catalog record is ranked by similarity to
// the query and the best-scoring cluster is taken: all records within the
// tolerance of the top score, so near-ties such as a headline indicator
// and its sex-disaggregated variant are returned together.
//
// The matched records are then expanded along their families according to
// opts.Scope and, if opts.By is set, restricted to records disaggregable
// by that dimension.
func (r *Resolver) FuzzyLookup(query string, opts domain.ResolveOptions) (domain.ResolutionResult, error) {
	logger.Section("Indicator Resolution")
	logger.Debug("Query: %q scope=%s by=%q", query, opts.Scope, opts.By)

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ResolutionResult{}, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}

	matched, err := r.matchQuery(query, opts)
	if err != nil {
		return domain.ResolutionResult{}, err
	}
	logger.Debug("Matched cluster: %d record(s)", len(matched))

	expanded := r.expand(matched, opts.Scope)
	logger.Debug("After %s expansion: %d record(s)", opts.Scope, len(expanded))

	if opts.By != "" {
		expanded, err = r.filterByDimension(expanded, opts.By)
		if err != nil {
			return domain.ResolutionResult{}, err
		}
		logger.Debug("After %q filter: %d record(s)", opts.By, len(expanded))
	}

	return domain.ResolutionResult{
		Records:   expanded,
		Scope:     opts.Scope,
		Dimension: opts.By,
	}, nil
}

// matchQuery finds the initial record cluster for a query: an exact
// identifier hit, or the best-scoring similarity cluster.
func (r *Resolver) matchQuery(query string, opts domain.ResolveOptions) ([]domain.IndicatorRecord, error) {
	if rec, err := r.catalog.LookupExact(query); err == nil {
		logger.Debug("Exact identifier hit: %s", rec.ID)
		return []domain.IndicatorRecord{rec}, nil
	}

	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = domain.DefaultTolerance
	}
	floor := opts.MinScore
	if floor <= 0 {
		floor = domain.DefaultMinScore
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil, fmt.Errorf("query %q has no searchable tokens: %w", query, domain.ErrInvalidInput)
	}

	records := r.catalog.All()
	scores := make([]float64, len(records))
	top := 0.0
	for i := range records {
		scores[i] = similarity(queryTokens, r.tokens[i])
		if scores[i] > top {
			top = scores[i]
		}
	}
	if top < floor {
		return nil, fmt.Errorf("no indicator matched %q (best score %.2f): %w", query, top, domain.ErrNotFound)
	}

	// Take everything within tolerance of the top score, ordered by
	// descending score; the stable sort keeps catalog insertion order
	// among equal scores, which makes results deterministic.
	cluster := make([]int, 0)
	for i := range records {
		if scores[i] >= top-tolerance {
			cluster = append(cluster, i)
		}
	}
	sort.SliceStable(cluster, func(a, b int) bool {
		return scores[cluster[a]] > scores[cluster[b]]
	})

	matched := make([]domain.IndicatorRecord, len(cluster))
	for i, idx := range cluster {
		matched[i] = records[idx]
		logger.Debug("  %.3f %s %q", scores[idx], records[idx].ID, records[idx].Label)
	}
	return matched, nil
}

// expand widens the matched records along their families.
// SELF keeps the matches; SUB adds family members that carry a
// disaggregation dimension; ALL adds every family member.
func (r *Resolver) expand(matched []domain.IndicatorRecord, scope domain.Scope) []domain.IndicatorRecord {
	seen := make(map[string]bool, len(matched))
	expanded := make([]domain.IndicatorRecord, 0, len(matched))
	add := func(rec domain.IndicatorRecord) {
		if !seen[rec.FullKey] {
			seen[rec.FullKey] = true
			expanded = append(expanded, rec)
		}
	}

	for _, rec := range matched {
		add(rec)
		if scope == domain.ScopeSelf {
			continue
		}
		for _, member := range r.catalog.Family(rec) {
			if scope == domain.ScopeSub && !member.Disaggregable() {
				continue
			}
			add(member)
		}
	}
	return expanded
}

// filterByDimension restricts records to those disaggregable by dim.
// A dimension no catalog record supports at all fails with
// ErrAmbiguousDimension; a dimension that is merely absent from this
// record set yields an empty slice so callers can tell the cases apart.
func (r *Resolver) filterByDimension(records []domain.IndicatorRecord, dim string) ([]domain.IndicatorRecord, error) {
	if !r.catalog.SupportsDimension(dim) {
		return nil, fmt.Errorf("dimension %q: %w", dim, domain.ErrAmbiguousDimension)
	}
	filtered := make([]domain.IndicatorRecord, 0, len(records))
	for _, rec := range records {
		if rec.HasDimension(dim) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// recordTokens collects the searchable tokens of a record: its label words
// plus the parts of all three identifier forms.
func recordTokens(rec domain.IndicatorRecord) []string {
	tokens := tokenize(rec.Label)
	tokens = append(tokens, splitKey(rec.ShortKey, "-")...)
	tokens = append(tokens, splitKey(rec.ID, ".")...)
	tokens = append(tokens, splitKey(rec.FullKey, ".")...)
	return tokens
}

// tokenize lowercases s and splits it on any non-alphanumeric rune.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

func splitKey(key, sep string) []string {
	parts := strings.Split(strings.ToLower(key), sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// similarity scores a record against the query tokens on a 0–1 scale:
// the mean, over query tokens, of the best per-token match. A token
// matches exactly, as a substring, or within a bounded edit distance.
// Token order is ignored.
func similarity(queryTokens, recordTokens []string) float64 {
	if len(queryTokens) == 0 || len(recordTokens) == 0 {
		return 0
	}
	total := 0.0
	for _, q := range queryTokens {
		total += bestTokenScore(q, recordTokens)
	}
	return total / float64(len(queryTokens))
}

func bestTokenScore(q string, candidates []string) float64 {
	best := 0.0
	for _, t := range candidates {
		var score float64
		switch {
		case q == t:
			score = exactTokenScore
		case strings.Contains(t, q) || strings.Contains(q, t):
			score = substringTokenScore
		default:
			score = editScore(q, t)
		}
		if score > best {
			best = score
			if best == exactTokenScore {
				break
			}
		}
	}
	return best
}

// editScore grades near-misses (typos, singular/plural) by normalised
// Levenshtein distance, ignoring anything below the closeness floor.
func editScore(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	closeness := 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
	if closeness < editDistanceFloor {
		return 0
	}
	return editDistanceWeight * closeness
}
