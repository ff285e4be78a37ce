// Package classify decides whether an opcode handler belongs to the
// single-precision rewrite target set.
package classify

import "strings"

// Reason records which branch of the rule produced a decision.
type Reason int

const (
	ReasonNone      Reason = iota // neither listed nor suffixed
	ReasonAllowList               // listed only
	ReasonSuffix                  // suffixed only
	ReasonBoth                    // listed and suffixed
	ReasonExcluded                // explicitly excluded, overrides the other branches
)

func (r Reason) String() string {
	switch r {
	case ReasonAllowList:
		return "allow-list"
	case ReasonSuffix:
		return "suffix"
	case ReasonBoth:
		return "allow-list+suffix"
	case ReasonExcluded:
		return "excluded"
	default:
		return "none"
	}
}

// Decision is the outcome of classifying one identifier.
type Decision struct {
	Qualifies bool
	Reason    Reason
}

// Classifier is a pure identifier -> Decision mapping. It keeps no state
// between calls and is safe for concurrent use once built.
//
// Precedence: exclude wins; otherwise allow-list and suffix are a union.
type Classifier struct {
	allow   map[string]struct{}
	exclude map[string]struct{}
	suffix  string
}

// New builds a Classifier. An empty suffix disables the suffix branch.
func New(allow []string, suffix string, exclude []string) *Classifier {
	c := &Classifier{
		allow:   make(map[string]struct{}, len(allow)),
		exclude: make(map[string]struct{}, len(exclude)),
		suffix:  suffix,
	}
	for _, id := range allow {
		c.allow[id] = struct{}{}
	}
	for _, id := range exclude {
		c.exclude[id] = struct{}{}
	}
	return c
}

// Classify returns the decision for id.
func (c *Classifier) Classify(id string) Decision {
	if _, ok := c.exclude[id]; ok {
		return Decision{Qualifies: false, Reason: ReasonExcluded}
	}
	_, listed := c.allow[id]
	suffixed := c.suffix != "" && strings.HasSuffix(id, c.suffix)
	switch {
	case listed && suffixed:
		return Decision{Qualifies: true, Reason: ReasonBoth}
	case listed:
		return Decision{Qualifies: true, Reason: ReasonAllowList}
	case suffixed:
		return Decision{Qualifies: true, Reason: ReasonSuffix}
	default:
		return Decision{Qualifies: false, Reason: ReasonNone}
	}
}

// Qualifies is shorthand for Classify(id).Qualifies.
func (c *Classifier) Qualifies(id string) bool {
	return c.Classify(id).Qualifies
}
