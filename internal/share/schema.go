package share

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/edusheet/internal/worksheet"
)

const wireSchemaURL = "schema://edusheet/share-projection.json"

var (
	wireSchemaOnce sync.Once
	wireSchema     *jsonschema.Schema
	wireSchemaErr  error
)

func stringEnum[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// wireSchemaDefinition describes the token payload. Optional strings accept
// null because older links may carry explicit nulls.
func wireSchemaDefinition() map[string]any {
	optionalString := map[string]any{"type": []any{"string", "null"}}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"t":  map[string]any{"type": "string"},
			"s":  map[string]any{"type": "string"},
			"g":  map[string]any{"enum": stringEnum([]worksheet.GradeLevel{worksheet.GradePrimary, worksheet.GradeSecondary, worksheet.GradeHighSchool})},
			"sn": optionalString,
			"cn": optionalString,
			"q": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"i":  map[string]any{"type": "string"},
						"c":  map[string]any{"type": "string"},
						"tp": map[string]any{"enum": stringEnum(worksheet.AllTypes)},
						"o": map[string]any{
							"type":  []any{"array", "null"},
							"items": map[string]any{"type": "string"},
						},
						"ca": map[string]any{"type": "string"},
						"ex": optionalString,
						"d":  map[string]any{"enum": stringEnum([]worksheet.Difficulty{worksheet.DifficultyEasy, worksheet.DifficultyMedium, worksheet.DifficultyHard})},
						"mp": map[string]any{
							"type": []any{"array", "null"},
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"left":  map[string]any{"type": "string"},
									"right": map[string]any{"type": "string"},
								},
								"required": []any{"left", "right"},
							},
						},
					},
					"required": []any{"i", "c", "tp", "ca", "d"},
				},
			},
		},
		"required": []any{"t", "s", "g", "q"},
	}
}

func compiledWireSchema() (*jsonschema.Schema, error) {
	wireSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(wireSchemaURL, wireSchemaDefinition()); err != nil {
			wireSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		wireSchema, wireSchemaErr = c.Compile(wireSchemaURL)
	})
	return wireSchema, wireSchemaErr
}

// validateWire checks a parsed token payload against the projection schema.
func validateWire(doc any) error {
	sch, err := compiledWireSchema()
	if err != nil {
		return fmt.Errorf("compile projection schema: %w", err)
	}
	return sch.Validate(doc)
}
