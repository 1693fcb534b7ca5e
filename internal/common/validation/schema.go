// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// searchRequestSchema constrains the inbound search payload before any
// retrieval work begins.
var searchRequestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"query": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": 2000,
		},
		"companyId": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"projectId": map[string]interface{}{
			"type": "string",
		},
		"mode": map[string]interface{}{
			"type": "string",
			"enum": []string{"search", "shortlist"},
		},
		"tier": map[string]interface{}{
			"type": "string",
		},
	},
	"required":             []string{"query", "companyId"},
	"additionalProperties": false,
}

// ValidateSearchRequest validates a decoded search request payload.
// Returns a list of human-readable violations, empty when valid.
func ValidateSearchRequest(payload map[string]interface{}) ([]string, error) {
	schemaLoader := gojsonschema.NewGoLoader(searchRequestSchema)
	documentLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}
