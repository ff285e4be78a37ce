// Package config holds the rewrite profile: which headers start a function,
// which functions qualify, and the substitution table.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fppatch/internal/classify"
	"fppatch/internal/parser"
	"fppatch/internal/rewrite"
	"fppatch/internal/tracker"
)

// ErrInvalidProfile is returned for a profile that fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile describes one rewrite.
type Profile struct {
	// Header is a regexp tested against the left-trimmed line. Group 1 is the
	// function identifier.
	Header string `yaml:"header"`

	// Allow lists identifiers that always qualify.
	Allow []string `yaml:"allow"`

	// Suffix qualifies any identifier ending with it. Empty disables it.
	Suffix string `yaml:"suffix"`

	// Exclude lists identifiers that never qualify, whatever Allow and Suffix say.
	Exclude []string `yaml:"exclude,omitempty"`

	// Rules are applied in order; all matching rules fire on a line.
	Rules []rewrite.Rule `yaml:"rules"`
}

// Default returns the single-precision fpresult_update profile.
func Default() *Profile {
	return &Profile{
		Header: parser.DefaultHeader,
		Allow: []string{
			"fadds", "fsubs", "fmuls", "fdivs",
			"fmadds", "fmsubs", "fnmadds", "fnmsubs",
			"frsp", "fres", "fsqrts", "fre", "frsqrte", "fsel",
		},
		Suffix: "s",
		Rules: []rewrite.Rule{
			{From: "fpresult_update(ppc_dblresult64_d);", To: "fpresult_update(ppc_dblresult64_d, true);"},
			{From: "fpresult_update(0.0);", To: "fpresult_update(0.0, true);"},
			{From: "fpresult_update(select_nan(fpscr_invalid_raised()));", To: "fpresult_update(select_nan(fpscr_invalid_raised()), true);"},
		},
	}
}

// Validate checks that the profile can drive a rewrite. Every replacement
// must come out of the whole rule table unchanged, which rejects rules that
// re-match their own output and cycles between rules. It does not rule out a
// replacement joining with surrounding text to form a pattern (e.g. "ab" ->
// "b" on "aab"); re-runs of such tables can change more lines.
func (p *Profile) Validate() error {
	if _, err := parser.CompileHeader(p.Header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if len(p.Rules) == 0 {
		return fmt.Errorf("%w: no rules", ErrInvalidProfile)
	}
	for i, r := range p.Rules {
		if r.From == "" {
			return fmt.Errorf("%w: rule %d has an empty pattern", ErrInvalidProfile, i+1)
		}
	}
	for i, r := range p.Rules {
		if again := applyAll(p.Rules, r.To); again != r.To {
			return fmt.Errorf("%w: rule %d replacement %q is rewritten again to %q", ErrInvalidProfile, i+1, r.To, again)
		}
	}
	return nil
}

func applyAll(rules []rewrite.Rule, text string) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}

// Tracker builds the function-boundary tracker for this profile.
func (p *Profile) Tracker() (*tracker.Tracker, error) {
	h, err := parser.CompileHeader(p.Header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return tracker.New(h, p.Classifier()), nil
}

// Classifier builds the classifier for this profile.
func (p *Profile) Classifier() *classify.Classifier {
	return classify.New(p.Allow, p.Suffix, p.Exclude)
}

// Parse decodes a YAML profile. Fields left out keep their Default values.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads a profile from path. An empty path yields Default.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Marshal encodes the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
