package remote

// BuildAnalysisJSONSchema returns a JSON-Schema (draft 2020-12 subset) for
// the extraction service's response, as a generic map. Responses failing it
// are treated as malformed, never half-applied.
func BuildAnalysisJSONSchema() map[string]any {
	fieldNames := []string{
		"vendor_name", "vendor_address", "tax_id",
		"amount", "currency", "issue_date", "due_date",
		"document_number", "bank_account",
	}
	props := map[string]any{
		"overall_confidence": confidenceProp(),
		"schema_version":     map[string]any{"type": "integer", "minimum": 1},
	}
	for _, name := range fieldNames {
		props[name] = fieldProp()
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"overall_confidence", "schema_version"},
	}
}

func fieldProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"value":      map[string]any{"type": "string", "minLength": 1},
			"confidence": confidenceProp(),
			"candidates": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"value":      map[string]any{"type": "string", "minLength": 1},
						"confidence": confidenceProp(),
					},
					"required": []string{"value", "confidence"},
				},
			},
		},
		"required": []string{"value", "confidence"},
	}
}

func confidenceProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
}
