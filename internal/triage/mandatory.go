package triage

import "fnoltriage/internal/domain"

// MandatoryFields is the fixed, ordered set of fields every claim must carry
// before automated routing may proceed. The order is canonical: missing
// fields are always reported in this order.
var MandatoryFields = []string{
	"policy_number",
	"policyholder_name",
	"incident_date",
	"incident_description",
	"claim_type",
	"estimated_damage",
}

// MissingFields returns the mandatory fields absent from the mapping, in
// MandatoryFields order. The result is never nil.
func MissingFields(fields domain.FieldMapping) []string {
	missing := []string{}
	for _, name := range MandatoryFields {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
