package ability

import (
	"sort"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema for stored ability documents. The content
// pipeline validates every card's ability against this before it is ever
// handed to Parse.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(&Document{})
}

// JSONSchema renders EffectType as a closed string enum in the schema.
func (EffectType) JSONSchema() *jsonschema.Schema {
	return enumSchema(effectTypeNames)
}

// JSONSchema renders Trigger as a closed string enum in the schema.
func (Trigger) JSONSchema() *jsonschema.Schema {
	return enumSchema(triggerNames)
}

// JSONSchema renders TargetOwner as a closed string enum in the schema.
func (TargetOwner) JSONSchema() *jsonschema.Schema {
	return enumSchema(ownerNames)
}

// JSONSchema renders TargetZone as a closed string enum in the schema.
func (TargetZone) JSONSchema() *jsonschema.Schema {
	return enumSchema(zoneNames)
}

// JSONSchema renders Selection as a closed string enum in the schema.
func (Selection) JSONSchema() *jsonschema.Schema {
	return enumSchema(selectionNames)
}

// JSONSchema renders Duration as a closed string enum in the schema.
func (Duration) JSONSchema() *jsonschema.Schema {
	return enumSchema(durationNames)
}

// JSONSchema renders NegateType as a closed string enum in the schema.
func (NegateType) JSONSchema() *jsonschema.Schema {
	return enumSchema(negateTypeNames)
}

func enumSchema[K comparable](names map[K]string) *jsonschema.Schema {
	values := make([]string, 0, len(names))
	for _, s := range names {
		if s != "" {
			values = append(values, s)
		}
	}
	sort.Strings(values)

	enum := make([]any, len(values))
	for i, s := range values {
		enum[i] = s
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}
