package graph

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// DateTime is an RFC 3339 timestamp.
type DateTime struct {
	time.Time
}

func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("invalid DateTime %q: %w", v, err)
		}
		t.Time = parsed
		return nil
	case time.Time:
		t.Time = v
		return nil
	default:
		return fmt.Errorf("wrong type for DateTime: %T", v)
	}
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func newDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func optionalDateTime(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	return &DateTime{Time: *t}
}

// JSON passes arbitrary JSON values through the API unchanged.
type JSON struct {
	Value interface{}
}

func (JSON) ImplementsGraphQLType(name string) bool {
	return name == "JSON"
}

func (j *JSON) UnmarshalGraphQL(input interface{}) error {
	j.Value = input
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Value)
}

// Object returns the value as a JSON object, or an error for any other shape.
func (j *JSON) Object() (map[string]interface{}, error) {
	if j == nil || j.Value == nil {
		return nil, nil
	}
	obj, ok := j.Value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", j.Value)
	}
	return obj, nil
}
