package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
)

// jsonRoot is the RETURN field that carries the whole JSON document.
const jsonRoot = "$"

// SearchText runs a full-text search via FT.SEARCH.
// Included terms are OR-ed, negated terms are excluded, and hits are ranked
// by the index scorer when the filter asks for relevance. An empty filter
// text becomes the match-all query "*" without scores, returned in the index's
// own document order.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Field == "" {
		return nil, fmt.Errorf("field is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	args := buildSearchArgs(q)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Key: q.IndexName, Err: err}
	}

	if q.Filter.SortByRelevance() {
		return parseScoredResult(raw)
	}
	return parseListResult(raw)
}

func buildSearchArgs(q *db.TextQuery) []string {
	f := q.Filter
	args := []string{q.IndexName, buildTextQuery(q.Field, f)}

	if opt, ok := f.Option("verbatim"); ok && opt == true {
		args = append(args, "VERBATIM")
	}
	if f.SortByRelevance() {
		args = append(args, "WITHSCORES")
	}
	if slop, ok := intOption(f, "slop"); ok {
		args = append(args, "SLOP", strconv.Itoa(slop))
	}
	if opt, ok := f.Option("inorder"); ok && opt == true {
		args = append(args, "INORDER")
	}
	if lang := f.Language(); lang != "" && lang != db.LanguageNone {
		args = append(args, "LANGUAGE", lang)
	}
	if scorer, ok := f.Option("scorer"); ok {
		if name, ok := scorer.(string); ok && name != "" {
			args = append(args, "SCORER", name)
		}
	}

	args = append(args,
		"RETURN", "1", jsonRoot,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)
	return args
}

// buildTextQuery renders "@field:(a|b) -@field:(c)", or "*" for match-all.
func buildTextQuery(field string, f filter.SearchFilter) string {
	if f.MatchAll() {
		return "*"
	}

	included := escapeTerms(f.Included())
	excluded := escapeTerms(f.Excluded())

	var parts []string
	if len(included) > 0 {
		parts = append(parts, fmt.Sprintf("@%s:(%s)", field, strings.Join(included, "|")))
	}
	if len(excluded) > 0 {
		parts = append(parts, fmt.Sprintf("-@%s:(%s)", field, strings.Join(excluded, "|")))
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func escapeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if e := escapeQuery(t); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func intOption(f filter.SearchFilter, key string) (int, bool) {
	v, ok := f.Option(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// --- Result parsing ---

func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/3)
	// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:      key,
			Score:    score,
			Document: documentFrom(parseFieldPairs(fields)),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseListResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:      key,
			Document: documentFrom(parseFieldPairs(fields)),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

func documentFrom(fields map[string]string) []byte {
	doc, ok := fields[jsonRoot]
	if !ok {
		return nil
	}
	return []byte(doc)
}

// --- Query helpers ---

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`.`, `\.`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`:`, `\:`,
	`+`, `\+`,
	`&`, `\&`,
	`#`, `\#`,
	`/`, `\/`,
)
