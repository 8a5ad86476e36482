// Package term is the built-in keyword extraction strategy: a glossary-style
// term extractor over bleve's analysis pipeline. Text is tokenized on Unicode
// word boundaries, lower-cased and stripped of English possessives. Stop
// words and blacklisted terms split the token stream into runs; every
// remaining word is a candidate term and every run of two or more adjacent
// words (up to MaxPhraseWords) is a candidate phrase.
package term

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/de"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/lang/es"
	"github.com/blevesearch/bleve/v2/analysis/lang/fr"
	"github.com/blevesearch/bleve/v2/analysis/lang/it"
	"github.com/blevesearch/bleve/v2/analysis/lang/pt"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"

	"github.com/kailas-cloud/searchable/internal/domain/keyword"
)

// Name identifies the strategy in logs and metrics.
const Name = "term"

// DefaultMaxPhraseWords is the longest phrase emitted when Config leaves it unset.
const DefaultMaxPhraseWords = 3

// Config tunes the extractor.
type Config struct {
	// MinFreq drops candidates seen fewer times in one text. 0 or 1 keeps everything.
	MinFreq int
	// MaxPhraseWords caps phrase length; 1 disables phrases.
	MaxPhraseWords int
	// Collapse drops single words already covered by an emitted phrase.
	Collapse bool
}

// Extractor is safe for concurrent use: it holds only read-only state.
type Extractor struct {
	cfg       Config
	tokenizer analysis.Tokenizer
	lower     analysis.TokenFilter
	possess   analysis.TokenFilter
	stopWords map[string]analysis.TokenMap
}

// New builds an extractor with stop-word tables for every supported language.
func New(cfg Config) (*Extractor, error) {
	if cfg.MaxPhraseWords <= 0 {
		cfg.MaxPhraseWords = DefaultMaxPhraseWords
	}
	if cfg.MinFreq < 0 {
		return nil, fmt.Errorf("min_freq must not be negative")
	}

	tables := map[string][]byte{
		"english":    en.EnglishStopWords,
		"french":     fr.FrenchStopWords,
		"german":     de.GermanStopWords,
		"spanish":    es.SpanishStopWords,
		"italian":    it.ItalianStopWords,
		"portuguese": pt.PortugueseStopWords,
	}
	stop := make(map[string]analysis.TokenMap, len(tables))
	for lang, data := range tables {
		tm := analysis.NewTokenMap()
		if err := tm.LoadBytes(data); err != nil {
			return nil, fmt.Errorf("load %s stop words: %w", lang, err)
		}
		stop[lang] = tm
	}

	return &Extractor{
		cfg:       cfg,
		tokenizer: bleveunicode.NewUnicodeTokenizer(),
		lower:     lowercase.NewLowerCaseFilter(),
		possess:   en.NewPossessiveFilter(),
		stopWords: stop,
	}, nil
}

// Name returns the strategy name.
func (e *Extractor) Name() string { return Name }

// Extract returns raw candidate terms in first-seen order. It never returns
// an error for well-formed input; an empty slice means no terms were found.
func (e *Extractor) Extract(ctx context.Context, text string, opts keyword.ExtractOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input := []byte(text)
	tokens := e.lower.Filter(e.tokenizer.Tokenize(input))
	if opts.Language == "" || opts.Language == "english" {
		tokens = e.possess.Filter(tokens)
	}

	stop := e.stopWords[opts.Language]
	if opts.Language == "" {
		stop = e.stopWords["english"]
	}

	c := newCandidates()
	var run []string
	var prevEnd int
	flush := func() {
		e.emitRun(c, run)
		run = run[:0]
	}

	for _, tok := range tokens {
		word := string(tok.Term)
		skip := word == "" || stop[word] || opts.Blacklist.Contains(word) || !hasLetterOrDigit(word)
		if skip {
			flush()
			prevEnd = tok.End
			continue
		}
		if len(run) > 0 && !onlySpace(input[prevEnd:tok.Start]) {
			flush()
		}
		run = append(run, word)
		prevEnd = tok.End
	}
	flush()

	return c.result(e.cfg), nil
}

// emitRun records each word and the phrases of a run of adjacent words.
// Runs longer than MaxPhraseWords yield every window of that length.
func (e *Extractor) emitRun(c *candidates, run []string) {
	for _, w := range run {
		c.addWord(w)
	}
	if len(run) < 2 || e.cfg.MaxPhraseWords < 2 {
		return
	}
	size := min(len(run), e.cfg.MaxPhraseWords)
	for i := 0; i+size <= len(run); i++ {
		c.addPhrase(run[i : i+size])
	}
}

func onlySpace(b []byte) bool {
	for _, r := range string(b) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// candidates counts words and phrases in first-seen order.
type candidates struct {
	order   []string
	counts  map[string]int
	phrases map[string][]string
}

func newCandidates() *candidates {
	return &candidates{
		counts:  make(map[string]int),
		phrases: make(map[string][]string),
	}
}

func (c *candidates) addWord(w string) {
	if _, ok := c.counts[w]; !ok {
		c.order = append(c.order, w)
	}
	c.counts[w]++
}

func (c *candidates) addPhrase(words []string) {
	p := strings.Join(words, " ")
	if _, ok := c.counts[p]; !ok {
		c.order = append(c.order, p)
		c.phrases[p] = append([]string(nil), words...)
	}
	c.counts[p]++
}

func (c *candidates) result(cfg Config) []string {
	kept := make(map[string]bool, len(c.order))
	for _, t := range c.order {
		if c.counts[t] >= max(cfg.MinFreq, 1) {
			kept[t] = true
		}
	}

	covered := make(map[string]bool)
	if cfg.Collapse {
		for p, words := range c.phrases {
			if !kept[p] {
				continue
			}
			for _, w := range words {
				covered[w] = true
			}
		}
	}

	out := make([]string, 0, len(kept))
	for _, t := range c.order {
		if !kept[t] {
			continue
		}
		if _, isPhrase := c.phrases[t]; !isPhrase && covered[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}
