package evaluation

import (
	"fmt"
	"sort"
	"strings"
)

// BuildPrompt renders an intake form into the generation prompt. Every field
// appears, including unanswered ones, so the provider always sees the
// complete picture; the prompt also enumerates the exact target schema, which
// is the only contract enforcement the provider ever receives.
func BuildPrompt(form IntakeForm) string {
	var b strings.Builder

	b.WriteString("Evaluate this patient intake form.\n\nPatient intake:\n")
	fmt.Fprintf(&b, "- Name: %s\n", form.Name.Or(NotProvidedMarker))
	if form.Age.Present() {
		fmt.Fprintf(&b, "- Age: %s\n", form.Age.String())
	} else {
		fmt.Fprintf(&b, "- Age: %s\n", NotProvidedMarker)
	}
	fmt.Fprintf(&b, "- Gender: %s\n", form.Gender.Or(NotProvidedMarker))
	if len(form.Symptoms) > 0 {
		fmt.Fprintf(&b, "- Symptoms: %s\n", strings.Join(form.Symptoms, ", "))
	} else {
		fmt.Fprintf(&b, "- Symptoms: none reported\n")
	}
	fmt.Fprintf(&b, "- Medical history: %s\n", form.History.Or(NotProvidedMarker))
	fmt.Fprintf(&b, "- Medications: %s\n", form.Medications.Or(NotProvidedMarker))
	fmt.Fprintf(&b, "- Allergies: %s\n", form.Allergies.Or(NotProvidedMarker))
	fmt.Fprintf(&b, "- Lifestyle: %s\n", lifestyleLine(form.Lifestyle))

	b.WriteString(`
Respond with only a single JSON object containing exactly these keys:
- "chief_complaint": string
- "history_summary": string
- "risk_flags": object mapping flag names to string descriptions
- "recommended_followups": array of strings
- "differential_considerations": array of strings
- "patient_friendly_summary": string
- "emergency_guidance": string

Every value must use the type listed above. Do not include any other keys and
do not write any text outside the JSON object.
`)
	return b.String()
}

func lifestyleLine(lifestyle map[string]string) string {
	if lifestyle == nil {
		return NotProvidedMarker
	}
	if len(lifestyle) == 0 {
		return "none reported"
	}
	keys := make([]string, 0, len(lifestyle))
	for k := range lifestyle {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, lifestyle[k]))
	}
	return strings.Join(parts, "; ")
}
