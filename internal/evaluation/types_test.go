package evaluation

import (
	"encoding/json"
	"testing"
)

func TestIntakeFormDistinguishesAbsentFromEmpty(t *testing.T) {
	var form IntakeForm
	blob := `{"name":"Jane","age":42,"gender":"","symptoms":["headache"]}`
	if err := json.Unmarshal([]byte(blob), &form); err != nil {
		t.Fatalf("decode intake: %v", err)
	}
	if !form.Name.Present() || form.Name.Value() != "Jane" {
		t.Errorf("name = %+v", form.Name)
	}
	if !form.Gender.Present() || form.Gender.Value() != "" {
		t.Error("empty gender should be present-with-empty, not absent")
	}
	if form.History.Present() {
		t.Error("absent history should not be present")
	}
	if form.History.Or(NotProvidedMarker) != NotProvidedMarker {
		t.Error("absent history should fall back to the not-provided marker")
	}
}

func TestAnswerNullIsAbsent(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte(`null`), &a); err != nil {
		t.Fatalf("decode null: %v", err)
	}
	if a.Present() {
		t.Fatal("null should decode as absent")
	}
}

func TestAgePreservesInputShape(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		text string
		out  string
	}{
		{name: "integer", in: `42`, text: "42", out: `42`},
		{name: "string", in: `"42"`, text: "42", out: `"42"`},
		{name: "worded string", in: `"forty-two"`, text: "forty-two", out: `"forty-two"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var a Age
			if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !a.Present() || a.String() != tc.text {
				t.Fatalf("age = %+v, want text %q", a, tc.text)
			}
			round, err := json.Marshal(a)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(round) != tc.out {
				t.Fatalf("marshal = %s, want %s (input shape preserved)", round, tc.out)
			}
		})
	}
}

func TestAgeRejectsStructuredValues(t *testing.T) {
	var a Age
	if err := json.Unmarshal([]byte(`{"years":42}`), &a); err == nil {
		t.Fatal("expected error for object-shaped age")
	}
}

func TestRiskFlagsMarshalKeepsOrder(t *testing.T) {
	flags := RiskFlags{{Key: "z", Value: "1"}, {Key: "a", Value: "2"}}
	blob, err := json.Marshal(flags)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(blob) != `{"z":"1","a":"2"}` {
		t.Fatalf("unexpected: %s", blob)
	}
}

func TestRiskFlagsMarshalEmpty(t *testing.T) {
	for _, flags := range []RiskFlags{nil, {}} {
		blob, err := json.Marshal(flags)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(blob) != `{}` {
			t.Fatalf("unexpected: %s", blob)
		}
	}
}

func TestRiskFlagsUnmarshalRoundTrip(t *testing.T) {
	in := `{"chest_pain":"Yes","age":"42"}`
	var flags RiskFlags
	if err := json.Unmarshal([]byte(in), &flags); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(flags)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Fatalf("round trip = %s, want %s", out, in)
	}
}

func TestEvaluationResultMarshalShape(t *testing.T) {
	res := Normalize(mustParse(t, `{}`))
	blob, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{
		"chief_complaint", "history_summary", "risk_flags", "recommended_followups",
		"differential_considerations", "patient_friendly_summary", "emergency_guidance",
		"formatted_report",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in serialized result", key)
		}
	}
	if _, ok := decoded["risk_flags"].(map[string]any); !ok {
		t.Errorf("risk_flags should serialize as an object, got %T", decoded["risk_flags"])
	}
	if _, ok := decoded["recommended_followups"].([]any); !ok {
		t.Errorf("recommended_followups should serialize as an array, got %T", decoded["recommended_followups"])
	}
}
