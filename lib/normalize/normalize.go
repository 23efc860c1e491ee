// Package normalize turns raw, deeply optional FHIR resources into flat records.
//
// Each output field is described by a Rule: an ordered fallback chain over the resource's nested structure,
// where the first present value wins. A resource kind is described declaratively by its Fields; the same
// engine serves every kind.
package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// Field binds an output field name to the rule producing its value.
type Field struct {
	Name string
	Rule Rule
}

// Fields is the ordered field map of one record shape.
type Fields []Field

// Extract applies every field rule to source. Absent values are omitted from the record.
func (f Fields) Extract(source gjson.Result) map[string]any {
	record := make(map[string]any, len(f))
	for _, field := range f {
		if value, ok := field.Rule(source); ok {
			record[field.Name] = value
		}
	}
	return record
}

// Records filters resources on their declared resourceType and extracts a record from each one that matches.
// It never fails: missing or malformed fields degrade to absent values.
func Records(resourceType string, resources []json.RawMessage, fields Fields) []map[string]any {
	records := make([]map[string]any, 0, len(resources))
	for _, raw := range resources {
		if len(raw) == 0 {
			continue
		}
		resource := gjson.ParseBytes(raw)
		if resource.Get("resourceType").String() != resourceType {
			continue
		}
		records = append(records, fields.Extract(resource))
	}
	return records
}

// Decode converts extracted records into typed results. Field names map onto the `json` tags of T.
func Decode[T any](records []map[string]any) ([]T, error) {
	results := make([]T, 0, len(records))
	for i, record := range records {
		var result T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &result,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(record); err != nil {
			return nil, fmt.Errorf("decode record %d into %T: %w", i, result, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Normalize is Records followed by Decode.
func Normalize[T any](resourceType string, resources []json.RawMessage, fields Fields) ([]T, error) {
	return Decode[T](Records(resourceType, resources, fields))
}
