// Package config loads the statement format registry and its extraction
// patterns. The registry is built once and is read-only afterwards.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrNoFormats      = errors.New("config: no statement formats defined")
	ErrMissingPattern = errors.New("config: missing pattern")
)

// Format is one registered statement layout.
type Format struct {
	ID       string
	Name     string
	Keywords []string

	patterns map[string]*regexp.Regexp
}

type rawFormat struct {
	ID       string            `mapstructure:"id"`
	Name     string            `mapstructure:"name"`
	Keywords []string          `mapstructure:"keywords"`
	Patterns map[string]string `mapstructure:"patterns"`
}

// Matches reports whether any keyword occurs in text, ignoring case.
func (f Format) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range f.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Patterns starts a lookup over the format's compiled patterns.
func (f Format) Patterns() *PatternSet {
	return &PatternSet{format: f}
}

// PatternSet resolves several patterns and keeps the first missing key, so
// a caller can fill a struct and check once.
type PatternSet struct {
	format Format
	err    error
}

func (p *PatternSet) Get(key string) *regexp.Regexp {
	re, ok := p.format.patterns[key]
	if !ok && p.err == nil {
		p.err = fmt.Errorf("%w %q for %s", ErrMissingPattern, key, p.format.ID)
	}
	return re
}

func (p *PatternSet) Err() error {
	return p.err
}

// Registry is the ordered list of known formats.
type Registry struct {
	formats []Format
	byID    map[string]int
}

// Load builds a registry from the "statement" key of v.
func Load(v *viper.Viper) (*Registry, error) {
	var raw []rawFormat
	if err := v.UnmarshalKey("statement", &raw); err != nil {
		return nil, fmt.Errorf("config: decode statement formats: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoFormats
	}

	reg := &Registry{byID: make(map[string]int, len(raw))}
	for _, rf := range raw {
		if rf.ID == "" {
			return nil, errors.New("config: statement format without id")
		}
		if _, dup := reg.byID[rf.ID]; dup {
			return nil, fmt.Errorf("config: duplicate statement format %q", rf.ID)
		}
		f := Format{
			ID:       rf.ID,
			Name:     rf.Name,
			Keywords: rf.Keywords,
			patterns: make(map[string]*regexp.Regexp, len(rf.Patterns)),
		}
		if f.Name == "" {
			f.Name = rf.ID
		}
		for key, expr := range rf.Patterns {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("config: %s pattern %q: %w", rf.ID, key, err)
			}
			f.patterns[key] = re
		}
		reg.byID[f.ID] = len(reg.formats)
		reg.formats = append(reg.formats, f)
	}
	return reg, nil
}

// Default builds the registry from the embedded configuration.
func Default() (*Registry, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(DefaultYAML)); err != nil {
		return nil, fmt.Errorf("config: read embedded defaults: %w", err)
	}
	return Load(v)
}

// MustDefault is Default for tests and program start-up.
func MustDefault() *Registry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}

// Formats returns the formats in detection order.
func (r *Registry) Formats() []Format {
	out := make([]Format, len(r.formats))
	copy(out, r.formats)
	return out
}

// Lookup finds a format by id.
func (r *Registry) Lookup(id string) (Format, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Format{}, false
	}
	return r.formats[i], true
}

// Names lists display names in detection order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for _, f := range r.formats {
		names = append(names, f.Name)
	}
	return names
}

// IDs lists format ids in detection order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.formats))
	for _, f := range r.formats {
		ids = append(ids, f.ID)
	}
	return ids
}
