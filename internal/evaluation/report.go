package evaluation

import (
	"fmt"
	"strings"
)

// RenderText renders the human-readable evaluation report. It is
// deterministic: identical (result, form) pairs produce byte-identical
// output, so no clock or randomness is consulted. Section order is fixed and
// empty collections render as an empty section body, never as a missing
// heading.
func RenderText(result EvaluationResult, form IntakeForm) string {
	var b strings.Builder

	b.WriteString("HART Patient Evaluation\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Patient: %s\n", form.Name.Or(NotProvidedMarker))
	if form.Age.Present() {
		fmt.Fprintf(&b, "Age: %s\n", form.Age.String())
	} else {
		fmt.Fprintf(&b, "Age: %s\n", NotProvidedMarker)
	}
	fmt.Fprintf(&b, "Gender: %s\n", form.Gender.Or(NotProvidedMarker))
	if len(form.Symptoms) > 0 {
		fmt.Fprintf(&b, "Symptoms: %s\n", strings.Join(form.Symptoms, ", "))
	} else {
		fmt.Fprintf(&b, "Symptoms: none reported\n")
	}
	fmt.Fprintf(&b, "History: %s\n", form.History.Or(NotProvidedMarker))
	fmt.Fprintf(&b, "Medications: %s\n", form.Medications.Or(NotProvidedMarker))
	fmt.Fprintf(&b, "Allergies: %s\n", form.Allergies.Or(NotProvidedMarker))
	fmt.Fprintf(&b, "Lifestyle: %s\n", lifestyleLine(form.Lifestyle))

	section(&b, "Chief Complaint")
	writeParagraph(&b, result.ChiefComplaint)

	section(&b, "History Summary")
	writeParagraph(&b, result.HistorySummary)

	section(&b, "Risk Flags")
	for _, f := range result.RiskFlags {
		fmt.Fprintf(&b, "- %s: %s\n", f.Key, f.Value)
	}

	section(&b, "Recommended Follow-ups")
	for _, item := range result.RecommendedFollowups {
		fmt.Fprintf(&b, "- %s\n", item)
	}

	section(&b, "Differential Considerations")
	for _, item := range result.DifferentialConsiderations {
		fmt.Fprintf(&b, "- %s\n", item)
	}

	section(&b, "Patient-Friendly Summary")
	writeParagraph(&b, result.PatientFriendlySummary)

	section(&b, "Emergency Guidance")
	if result.EmergencyGuidance != "" {
		for _, line := range strings.Split(result.EmergencyGuidance, "\n") {
			fmt.Fprintf(&b, "[!] %s\n", line)
		}
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func writeParagraph(b *strings.Builder, text string) {
	if text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
}

// RenderMarkdown renders the markdown variant used for document export.
// Section order matches RenderText; the document boundary receives only the
// completed result, so the patient identity header is limited to the title.
func RenderMarkdown(result EvaluationResult) string {
	var b strings.Builder

	b.WriteString("# HART Patient Evaluation\n\n")

	b.WriteString("## Chief Complaint\n\n")
	mdParagraph(&b, result.ChiefComplaint)

	b.WriteString("## History Summary\n\n")
	mdParagraph(&b, result.HistorySummary)

	b.WriteString("## Risk Flags\n\n")
	for _, f := range result.RiskFlags {
		fmt.Fprintf(&b, "- %s: %s\n", f.Key, f.Value)
	}
	if len(result.RiskFlags) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("## Recommended Follow-ups\n\n")
	mdList(&b, result.RecommendedFollowups)

	b.WriteString("## Differential Considerations\n\n")
	mdList(&b, result.DifferentialConsiderations)

	b.WriteString("## Patient-Friendly Summary\n\n")
	mdParagraph(&b, result.PatientFriendlySummary)

	b.WriteString("## Emergency Guidance\n\n")
	if result.EmergencyGuidance != "" {
		for _, line := range strings.Split(result.EmergencyGuidance, "\n") {
			fmt.Fprintf(&b, "> **[!]** %s\n", line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func mdParagraph(b *strings.Builder, text string) {
	if text != "" {
		b.WriteString(text)
		b.WriteString("\n\n")
	}
}

func mdList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	if len(items) > 0 {
		b.WriteString("\n")
	}
}
