package evaluation

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Normalize coerces a parsed provider object into the canonical result. It is
// total over all JSON shapes: a generative provider cannot be trusted to
// honor a requested schema, so every shape anomaly degrades into the schema's
// defaults instead of failing the request. FormattedReport is left empty here
// and filled in by the report renderer; provider-supplied values under that
// key are discarded.
func Normalize(obj gjson.Result) EvaluationResult {
	return EvaluationResult{
		ChiefComplaint:             scalarString(obj.Get("chief_complaint")),
		HistorySummary:             scalarString(obj.Get("history_summary")),
		RiskFlags:                  normalizeRiskFlags(obj.Get("risk_flags")),
		RecommendedFollowups:       normalizeStringList(obj.Get("recommended_followups")),
		DifferentialConsiderations: normalizeStringList(obj.Get("differential_considerations")),
		PatientFriendlySummary:     scalarString(obj.Get("patient_friendly_summary")),
		EmergencyGuidance:          scalarString(obj.Get("emergency_guidance")),
	}
}

// scalarString is the rule of last resort for string-typed fields: strings
// pass verbatim, booleans become "Yes"/"No", numbers keep their decimal
// token, objects and arrays are kept as their compact serialization, and
// absent or null values become "".
func scalarString(v gjson.Result) string {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return ""
	case v.Type == gjson.String:
		return v.Str
	case v.Type == gjson.True:
		return "Yes"
	case v.Type == gjson.False:
		return "No"
	case v.Type == gjson.Number:
		return v.Raw
	default:
		return string(pretty.Ugly([]byte(v.Raw)))
	}
}

// normalizeRiskFlags applies the field's own dict/list/scalar branching,
// which takes precedence over the generic scalar rule: objects keep their
// keys with every value coerced independently, lists get synthesized
// flag_1..flag_n keys in source order, and a bare scalar is wrapped under
// "note".
func normalizeRiskFlags(v gjson.Result) RiskFlags {
	flags := RiskFlags{}
	switch {
	case v.IsObject():
		v.ForEach(func(key, value gjson.Result) bool {
			flags = append(flags, Flag{Key: key.Str, Value: scalarString(value)})
			return true
		})
	case v.IsArray():
		i := 0
		v.ForEach(func(_, value gjson.Result) bool {
			i++
			flags = append(flags, Flag{Key: fmt.Sprintf("flag_%d", i), Value: scalarString(value)})
			return true
		})
	case !v.Exists(), v.Type == gjson.Null:
	default:
		flags = append(flags, Flag{Key: "note", Value: scalarString(v)})
	}
	return flags
}

// normalizeStringList coerces each element with the scalar rule, preserving
// order and duplicates. Any non-array value is wrapped as a one-element
// sequence.
func normalizeStringList(v gjson.Result) []string {
	out := []string{}
	switch {
	case v.IsArray():
		v.ForEach(func(_, value gjson.Result) bool {
			out = append(out, scalarString(value))
			return true
		})
	case !v.Exists(), v.Type == gjson.Null:
	default:
		out = append(out, scalarString(v))
	}
	return out
}
