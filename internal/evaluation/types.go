package evaluation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NotProvidedMarker is the rendered form of an intake field the patient left
// unanswered. It is distinct from an empty answer, which means the patient
// explicitly reported "none".
const NotProvidedMarker = "Not provided"

// Answer is an optional intake field with an explicit present/absent state.
type Answer struct {
	value   string
	present bool
}

func Answered(v string) Answer { return Answer{value: v, present: true} }

func NotAnswered() Answer { return Answer{} }

func (a Answer) Present() bool { return a.present }

func (a Answer) Value() string { return a.value }

// Or returns the answer's value, or fallback when the field was not provided.
func (a Answer) Or(fallback string) string {
	if !a.present {
		return fallback
	}
	return a.value
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*a = Answer{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("answer must be a string: %w", err)
	}
	*a = Answer{value: s, present: true}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.present {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// Age preserves the intake payload's ambiguity: patients (and intake UIs)
// send age as either a JSON string or a JSON number, and the original token
// is kept as given rather than coerced at intake time.
type Age struct {
	text    string
	quoted  bool
	present bool
}

func AgeFromString(s string) Age { return Age{text: s, quoted: true, present: true} }

func AgeFromInt(n int) Age { return Age{text: fmt.Sprintf("%d", n), present: true} }

func (a Age) Present() bool { return a.present }

func (a Age) String() string { return a.text }

func (a *Age) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*a = Age{}
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*a = Age{text: s, quoted: true, present: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		*a = Age{text: n.String(), present: true}
		return nil
	}
	return fmt.Errorf("age must be a string or a number, got %s", trimmed)
}

func (a Age) MarshalJSON() ([]byte, error) {
	if !a.present {
		return []byte("null"), nil
	}
	if a.quoted {
		return json.Marshal(a.text)
	}
	return []byte(a.text), nil
}

// IntakeForm is one patient's self-reported intake. It is built once per
// request at the transport boundary and never mutated afterwards.
type IntakeForm struct {
	Name        Answer            `json:"name"`
	Age         Age               `json:"age"`
	Gender      Answer            `json:"gender"`
	Symptoms    []string          `json:"symptoms"`
	History     Answer            `json:"history"`
	Medications Answer            `json:"medications"`
	Allergies   Answer            `json:"allergies"`
	Lifestyle   map[string]string `json:"lifestyle,omitempty"`
}

// Flag is one named risk flag with its textual description.
type Flag struct {
	Key   string
	Value string
}

// RiskFlags is a string→string mapping that preserves insertion order, so
// re-serialization and report rendering are deterministic. It marshals as a
// JSON object.
type RiskFlags []Flag

func (f RiskFlags) Get(key string) (string, bool) {
	for _, fl := range f {
		if fl.Key == key {
			return fl.Value, true
		}
	}
	return "", false
}

func (f RiskFlags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fl := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fl.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fl.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *RiskFlags) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("risk_flags must be an object, got %v", tok)
	}
	flags := RiskFlags{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("risk_flags key must be a string, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("risk_flags[%s]: %w", key, err)
		}
		flags = append(flags, Flag{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = flags
	return nil
}

// EvaluationResult is the canonical output contract. After normalization
// every field is present and matches its declared type; no caller ever
// observes an un-normalized shape.
type EvaluationResult struct {
	ChiefComplaint             string    `json:"chief_complaint"`
	HistorySummary             string    `json:"history_summary"`
	RiskFlags                  RiskFlags `json:"risk_flags"`
	RecommendedFollowups       []string  `json:"recommended_followups"`
	DifferentialConsiderations []string  `json:"differential_considerations"`
	PatientFriendlySummary     string    `json:"patient_friendly_summary"`
	EmergencyGuidance          string    `json:"emergency_guidance"`

	// FormattedReport is derived by the report renderer, never taken from
	// provider output.
	FormattedReport string `json:"formatted_report"`
}
