// Package schema infers a JSON-Schema-shaped description from a record
// sequence. Field types are accumulated as unions across records; a field is
// required when every record carries it.
package schema

import (
	"encoding/json"
	"sort"

	"github.com/textmend/textmend/pkg/record"
)

// FieldType enumerates the JSON types a field can take.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeNull    FieldType = "null"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

// Field describes one record field: the union of observed types and whether
// the field appeared in every record.
type Field struct {
	Name     string      `json:"name"`
	Types    []FieldType `json:"types"`
	Required bool        `json:"required"`
}

// Schema is the inferred shape of a record sequence.
type Schema struct {
	Fields []Field `json:"fields"`
}

// Infer builds a schema from extracted records. Fields are sorted by name so
// the result is deterministic for a given input.
func Infer(records []record.Record) Schema {
	observed := make(map[string]map[FieldType]bool)
	counts := make(map[string]int)

	for _, r := range records {
		for name, value := range r.Fields() {
			if observed[name] == nil {
				observed[name] = make(map[FieldType]bool)
			}
			observed[name][typeOf(value)] = true
			counts[name]++
		}
	}

	names := make([]string, 0, len(observed))
	for name := range observed {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		types := make([]FieldType, 0, len(observed[name]))
		for t := range observed[name] {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		fields = append(fields, Field{
			Name:     name,
			Types:    types,
			Required: len(records) > 0 && counts[name] == len(records),
		})
	}

	return Schema{Fields: fields}
}

// Compare returns the field names added and removed between two schemas.
func Compare(old, updated Schema) (added, removed []string) {
	oldNames := fieldSet(old)
	newNames := fieldSet(updated)

	for name := range newNames {
		if !oldNames[name] {
			added = append(added, name)
		}
	}
	for name := range oldNames {
		if !newNames[name] {
			removed = append(removed, name)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

func fieldSet(s Schema) map[string]bool {
	set := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		set[f.Name] = true
	}
	return set
}

// JSONSchema renders the schema as a JSON Schema document describing the
// record array.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	var required []string

	for _, f := range s.Fields {
		var typ any
		if len(f.Types) == 1 {
			typ = string(f.Types[0])
		} else {
			union := make([]string, len(f.Types))
			for i, t := range f.Types {
				union[i] = string(t)
			}
			typ = union
		}
		properties[f.Name] = map[string]any{"type": typ}
		if f.Required {
			required = append(required, f.Name)
		}
	}

	items := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		items["required"] = required
	}
	return map[string]any{
		"type":  "array",
		"items": items,
	}
}

// MarshalIndent renders the JSON Schema document with 2-space indentation.
func (s Schema) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s.JSONSchema(), "", "  ")
}

func typeOf(v any) FieldType {
	switch v.(type) {
	case nil:
		return TypeNull
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case int, int64:
		return TypeInteger
	case float32, float64:
		return TypeNumber
	case map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	default:
		return TypeString
	}
}
