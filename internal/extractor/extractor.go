// Package extractor converts free-form FNOL text into a typed field mapping.
// Each field is matched independently by an anchored label + capture pattern,
// so omission or reordering of fields in the source document never blocks
// extraction of the others. Label matching is case-insensitive because intake
// channels vary in formatting.
package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fnoltriage/internal/domain"
)

// MalformedAmountError indicates a monetary label matched but its captured
// value could not be converted to a number. This is a hard failure for the
// document, reported to the caller rather than swallowed.
type MalformedAmountError struct {
	Field string
	Value string
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("field %s: malformed amount %q", e.Field, e.Value)
}

// fieldRule is one independent extraction rule: a field name, its pattern,
// and an optional post-processing step for the captured groups.
type fieldRule struct {
	field   string
	pattern *regexp.Regexp
	convert func(groups []string) (any, error)
}

func captureText(groups []string) (any, error) {
	return strings.TrimSpace(groups[1]), nil
}

func captureDateRange(groups []string) (any, error) {
	// Stored as the two dates literally captured, joined by " to "; no
	// normalization of date formats.
	return groups[1] + " to " + groups[2], nil
}

func captureAmount(field string) func(groups []string) (any, error) {
	return func(groups []string) (any, error) {
		raw := strings.ReplaceAll(groups[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &MalformedAmountError{Field: field, Value: groups[1]}
		}
		return v, nil
	}
}

// rules is the full extraction table. Patterns mirror the intake document
// conventions: a label, a separator, then the value shape for that field.
var rules = []fieldRule{
	{
		field:   "policy_number",
		pattern: regexp.MustCompile(`(?i)Policy\s*(?:Number|#)?[:\s]+([A-Z0-9-]+)`),
		convert: captureText,
	},
	{
		field:   "policyholder_name",
		pattern: regexp.MustCompile(`(?i)Policyholder(?:\s+Name)?[:\s]+([A-Za-z\s]+?)(?:\n|Policy|Effective)`),
		convert: captureText,
	},
	{
		field:   "effective_dates",
		pattern: regexp.MustCompile(`(?i)Effective\s+Dates?[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*(?:to|-)\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		convert: captureDateRange,
	},
	{
		field:   "incident_date",
		pattern: regexp.MustCompile(`(?i)Incident\s+Date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		convert: captureText,
	},
	{
		field:   "incident_time",
		pattern: regexp.MustCompile(`(?i)(?:Incident\s+)?Time[:\s]+(\d{1,2}:\d{2}(?:\s*[AP]M)?)`),
		convert: captureText,
	},
	{
		field:   "incident_location",
		pattern: regexp.MustCompile(`(?i)Location[:\s]+([^\n]+)`),
		convert: captureText,
	},
	{
		field:   "claimant",
		pattern: regexp.MustCompile(`(?i)Claimant[:\s]+([A-Za-z\s]+?)(?:\n|Contact)`),
		convert: captureText,
	},
	{
		field:   "third_party",
		pattern: regexp.MustCompile(`(?i)Third\s+Part(?:y|ies)[:\s]+([^\n]+)`),
		convert: captureText,
	},
	{
		field:   "contact_details",
		pattern: regexp.MustCompile(`(?i)Contact[:\s]+([^\n]+)`),
		convert: captureText,
	},
	{
		field:   "asset_type",
		pattern: regexp.MustCompile(`(?i)Asset\s+Type[:\s]+([^\n]+)`),
		convert: captureText,
	},
	{
		field:   "asset_id",
		pattern: regexp.MustCompile(`(?i)Asset\s+ID[:\s]+([A-Z0-9-]+)`),
		convert: captureText,
	},
	{
		field:   "estimated_damage",
		pattern: regexp.MustCompile(`(?i)Estimated\s+Damage[:\s]+\$?\s*([0-9,]+(?:\.\d{2})?)`),
		convert: captureAmount("estimated_damage"),
	},
	{
		field:   "claim_type",
		pattern: regexp.MustCompile(`(?i)Claim\s+Type[:\s]+([^\n]+)`),
		convert: captureText,
	},
	{
		field:   "attachments",
		pattern: regexp.MustCompile(`(?i)Attachments?[:\s]+([^\n]+)`),
		convert: captureText,
	},
	{
		field:   "initial_estimate",
		pattern: regexp.MustCompile(`(?i)Initial\s+Estimate[:\s]+\$?\s*([0-9,]+(?:\.\d{2})?)`),
		convert: captureAmount("initial_estimate"),
	},
}

// descStart finds the description label and its first line of text.
var descStart = regexp.MustCompile(`(?i)(?:Incident\s+)?Description[:\s]+([^\n]+)`)

// labelAhead matches a line that begins a new "label:" pattern, which
// terminates a multi-line description.
var labelAhead = regexp.MustCompile(`^[\w\s]*:`)

// Extract runs every extraction rule against text and accumulates the
// matches into a FieldMapping. Fields whose pattern does not match are
// simply absent. The only error condition is a malformed monetary capture.
func Extract(text string) (domain.FieldMapping, error) {
	fields := make(domain.FieldMapping)
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := r.convert(m)
		if err != nil {
			return nil, err
		}
		fields[r.field] = v
	}
	if desc, ok := extractDescription(text); ok {
		fields["incident_description"] = desc
	}
	return fields, nil
}

// extractDescription captures the description field, extending across
// subsequent lines until a line begins a new "label:" pattern or is blank.
// The continuation rule is a heuristic and may over- or under-capture on
// unusually formatted documents.
func extractDescription(text string) (string, bool) {
	loc := descStart.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	parts := []string{text[loc[2]:loc[3]]}
	rest := text[loc[1]:]
	for len(rest) > 0 && rest[0] == '\n' {
		rest = rest[1:]
		nl := strings.IndexByte(rest, '\n')
		var line string
		if nl < 0 {
			line, rest = rest, ""
		} else {
			line, rest = rest[:nl], rest[nl:]
		}
		if line == "" || labelAhead.MatchString(line) {
			break
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), true
}
