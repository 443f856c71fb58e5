// internal/api/schema.go
package api

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// requestSchema describes the recommendation request body. Validation here
// covers shape and types; the engine re-checks the business rules.
var requestSchema = map[string]interface{}{
	"type":                 "object",
	"required":             []string{"userId", "budget", "minAreaM2", "investmentStyle"},
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"userId": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
		},
		"budget": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
		},
		"minAreaM2": map[string]interface{}{
			"type":             "number",
			"minimum":          0,
			"exclusiveMinimum": true,
		},
		"investmentStyle": map[string]interface{}{
			"type": "string",
			"enum": []string{"stable", "profit"},
		},
		"transitImportance": map[string]interface{}{
			"type": "integer",
			"enum": []int{1, 3, 5},
		},
		"preferredDistrict": map[string]interface{}{
			"type": "string",
		},
	},
}

func validateRequestBody(body []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(requestSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %v", errs)
	}

	return nil
}
