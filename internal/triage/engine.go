// Package triage assigns extracted claims to handling queues. Routing is a
// strict priority cascade: risk > completeness > specialization > speed.
package triage

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"fnoltriage/internal/domain"
)

// Decision pairs a route with the human-readable justification shown to
// reviewers. The reasoning text is part of the contract, not logging.
type Decision struct {
	Route     domain.Route
	Reasoning string
}

// claim is the evaluated view of one document: extracted fields folded into
// the shapes the predicates test against.
type claim struct {
	description string // case-folded, "" when absent
	claimType   string // case-folded, "" when absent
	damage      float64
	hasDamage   bool
	missing     []string
}

// rule is one (predicate, outcome-builder) pair in the cascade.
type rule struct {
	name    string
	applies func(*claim) bool
	decide  func(*claim) Decision
}

// Engine routes claims by evaluating an ordered rule list top-down with
// first-match semantics. It is stateless across calls and safe to share.
type Engine struct {
	fraudKeywords []string
	threshold     float64
	rules         []rule
}

const (
	// DefaultFastTrackThreshold is the damage amount below which complete,
	// low-risk claims qualify for expedited handling.
	DefaultFastTrackThreshold = 25000
)

// DefaultFraudKeywords are the description substrings that flag a claim for
// investigation.
var DefaultFraudKeywords = []string{"fraud", "staged", "inconsistent"}

// NewEngine builds a routing engine. Zero-value arguments fall back to the
// default threshold and keyword set.
func NewEngine(fraudKeywords []string, fastTrackThreshold float64) *Engine {
	if len(fraudKeywords) == 0 {
		fraudKeywords = DefaultFraudKeywords
	}
	if fastTrackThreshold <= 0 {
		fastTrackThreshold = DefaultFastTrackThreshold
	}
	e := &Engine{fraudKeywords: fraudKeywords, threshold: fastTrackThreshold}
	e.rules = []rule{
		{
			// Fraud risk dominates every other concern, including data
			// completeness: a suspicious claim is never automated.
			name:    "investigation-flag",
			applies: e.hasFraudIndicator,
			decide: func(*claim) Decision {
				return Decision{domain.RouteInvestigation, "Description contains fraud indicators"}
			},
		},
		{
			// Automation requires complete mandatory data.
			name:    "incomplete",
			applies: func(c *claim) bool { return len(c.missing) > 0 },
			decide: func(c *claim) Decision {
				return Decision{
					domain.RouteManualReview,
					"Missing mandatory fields: " + strings.Join(c.missing, ", "),
				}
			},
		},
		{
			// Injury claims need medical review regardless of value; this
			// must run before the value check or low-value injury claims
			// would be fast-tracked.
			name:    "injury",
			applies: func(c *claim) bool { return strings.Contains(c.claimType, "injury") },
			decide: func(*claim) Decision {
				return Decision{domain.RouteSpecialist, "Claim involves injury and requires specialist review"}
			},
		},
		{
			// An unknown damage amount is treated as infinite: it must
			// never be assumed low-risk.
			name:    "fast-track",
			applies: func(c *claim) bool { return c.damage < e.threshold },
			decide: func(c *claim) Decision {
				return Decision{
					domain.RouteFastTrack,
					fmt.Sprintf("Estimated damage ($%s) is below $%s threshold",
						formatAmount(c.damage), humanize.Commaf(e.threshold)),
				}
			},
		},
		{
			name:    "high-value-default",
			applies: func(*claim) bool { return true },
			decide: func(c *claim) Decision {
				if !c.hasDamage {
					return Decision{domain.RouteManualReview, "Claim value unknown and requires manual assessment"}
				}
				return Decision{
					domain.RouteManualReview,
					fmt.Sprintf("High-value claim ($%s) requires manual assessment", formatAmount(c.damage)),
				}
			},
		},
	}
	return e
}

// Route applies the cascade to one claim and returns exactly one decision.
// It is total: any mapping and missing-field list yields a route.
func (e *Engine) Route(fields domain.FieldMapping, missing []string) Decision {
	c := &claim{
		description: strings.ToLower(fields.Text("incident_description")),
		claimType:   strings.ToLower(fields.Text("claim_type")),
		missing:     missing,
	}
	c.damage, c.hasDamage = fields.Amount("estimated_damage")
	if !c.hasDamage {
		c.damage = math.Inf(1)
	}
	for _, r := range e.rules {
		if r.applies(c) {
			return r.decide(c)
		}
	}
	// Unreachable: the last rule always applies.
	return Decision{domain.RouteManualReview, "No routing rule matched"}
}

func (e *Engine) hasFraudIndicator(c *claim) bool {
	for _, kw := range e.fraudKeywords {
		if strings.Contains(c.description, kw) {
			return true
		}
	}
	return false
}

// formatAmount renders a damage amount with thousands separators and two
// decimals, e.g. 1200 -> "1,200.00".
func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
