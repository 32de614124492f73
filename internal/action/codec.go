package action

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/i-melnichenko/store-lab/internal/state"
)

// ErrMissingType is returned when an encoded action has no type tag.
var ErrMissingType = errors.New("action: missing type")

// ErrMissingPayload is returned when a known action lacks its required payload.
var ErrMissingPayload = errors.New("action: missing payload")

// Envelope is the serialized form of an action. Deletes carry the id at the
// top level, creates and updates carry a data object.
type Envelope struct {
	Type Type     `json:"type" yaml:"type"`
	ID   *int     `json:"id,omitempty" yaml:"id,omitempty"`
	Data *Payload `json:"data,omitempty" yaml:"data,omitempty"`
}

// Payload is the data object of create and update envelopes.
type Payload struct {
	ID     *int    `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string  `json:"name" yaml:"name"`
	Salary float64 `json:"salary" yaml:"salary"`
}

// Decode parses a single JSON envelope.
func Decode(raw []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("action: decode: %w", err)
	}
	return env.Action()
}

// Encode serializes a as a JSON envelope.
func Encode(a Action) ([]byte, error) {
	env, err := ToEnvelope(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Action converts the envelope into its typed variant.
func (e Envelope) Action() (Action, error) {
	switch e.Type {
	case "":
		return nil, ErrMissingType
	case IncrementType:
		return Increment{}, nil
	case DecrementType:
		return Decrement{}, nil
	case ResetType:
		return Reset{}, nil
	case CreateEmployeeType:
		if e.Data == nil {
			return nil, fmt.Errorf("%w: %s requires data", ErrMissingPayload, e.Type)
		}
		return Create(EmployeeData{Name: e.Data.Name, Salary: e.Data.Salary}), nil
	case UpdateEmployeeType:
		if e.Data == nil || e.Data.ID == nil {
			return nil, fmt.Errorf("%w: %s requires data with id", ErrMissingPayload, e.Type)
		}
		return Update(state.Employee{ID: *e.Data.ID, Name: e.Data.Name, Salary: e.Data.Salary}), nil
	case DeleteEmployeeType:
		if e.ID == nil {
			return nil, fmt.Errorf("%w: %s requires id", ErrMissingPayload, e.Type)
		}
		return Delete(*e.ID), nil
	default:
		return Unknown{Tag: e.Type}, nil
	}
}

// ToEnvelope converts a typed action into its serialized form.
func ToEnvelope(a Action) (Envelope, error) {
	if a == nil {
		return Envelope{}, ErrMissingType
	}
	env := Envelope{Type: a.Type()}
	switch v := a.(type) {
	case CreateEmployee:
		env.Data = &Payload{Name: v.Data.Name, Salary: v.Data.Salary}
	case UpdateEmployee:
		id := v.Data.ID
		env.Data = &Payload{ID: &id, Name: v.Data.Name, Salary: v.Data.Salary}
	case DeleteEmployee:
		id := v.ID
		env.ID = &id
	}
	if env.Type == "" {
		return Envelope{}, ErrMissingType
	}
	return env, nil
}

// DecodeJSONLines reads one JSON envelope per line. Blank lines and lines
// starting with '#' are skipped.
func DecodeJSONLines(r io.Reader) ([]Action, error) {
	var out []Action
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		a, err := Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("action: read script: %w", err)
	}
	return out, nil
}

// DecodeYAMLScript reads a YAML sequence of envelopes.
func DecodeYAMLScript(r io.Reader) ([]Action, error) {
	var envs []Envelope
	if err := yaml.NewDecoder(r).Decode(&envs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("action: decode yaml: %w", err)
	}
	out := make([]Action, 0, len(envs))
	for i, env := range envs {
		a, err := env.Action()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// String renders a short human-readable form of a, used in logs.
func String(a Action) string {
	if a == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(string(a.Type()))
	switch v := a.(type) {
	case CreateEmployee:
		fmt.Fprintf(&b, " name=%q salary=%v", v.Data.Name, v.Data.Salary)
	case UpdateEmployee:
		fmt.Fprintf(&b, " id=%d name=%q salary=%v", v.Data.ID, v.Data.Name, v.Data.Salary)
	case DeleteEmployee:
		fmt.Fprintf(&b, " id=%d", v.ID)
	}
	return b.String()
}
