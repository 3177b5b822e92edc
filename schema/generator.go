/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"chainguard.dev/cefrassess/cefr"
	"github.com/invopop/jsonschema"
)

var levelType = reflect.TypeFor[cefr.Level]()

// Generator wraps jsonschema.Reflector with project defaults.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator wired with the defaults we need for
// response-format instructions.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
			Mapper:                     mapLevel,
		},
	}
}

// mapLevel renders cefr.Level as its label enum rather than the underlying int.
func mapLevel(t reflect.Type) *jsonschema.Schema {
	if t != levelType {
		return nil
	}
	enum := make([]any, 0, len(cefr.Standard))
	for _, l := range cefr.Standard {
		enum = append(enum, l.String())
	}
	return &jsonschema.Schema{
		Type: "string",
		Enum: enum,
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect derives the JSON schema for the provided value using a default generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType allocates a zero value of T and reflects it to a schema.
func ReflectType[T any]() *jsonschema.Schema {
	var zero T
	return Reflect(&zero)
}

// Describe renders the schema of T as indented JSON for inclusion in a prompt.
func Describe[T any]() (string, error) {
	b, err := json.MarshalIndent(ReflectType[T](), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(b), nil
}
