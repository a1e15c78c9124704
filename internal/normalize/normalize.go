// Package normalize turns raw model output into typed results. Parsing is
// all-or-nothing: any deviation from the expected shape yields a
// CodeMalformedResponse error and no partial value.
package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/prompt"
	"github.com/yoockh/chatrel/internal/providers/llm"
	"github.com/yoockh/chatrel/internal/utils"
)

var validate = validator.New()

func Analysis(raw string) (*models.AnalysisResult, error) {
	return decode[models.AnalysisResult]("normalize.Analysis", raw, prompt.AnalysisSchema)
}

// AnalysisV1 parses the deprecated narrow shape and upgrades it.
func AnalysisV1(raw string) (*models.AnalysisResult, error) {
	v1, err := decode[models.AnalysisResultV1]("normalize.AnalysisV1", raw, prompt.AnalysisSchemaV1)
	if err != nil {
		return nil, err
	}
	out := v1.Upgrade()
	return &out, nil
}

func QuickScan(raw string) (*models.QuickScanResult, error) {
	return decode[models.QuickScanResult]("normalize.QuickScan", raw, prompt.QuickScanSchema)
}

func decode[T any](op, raw string, schema map[string]any) (*T, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return nil, malformed(op, err)
	}

	var generic any
	if err := json.Unmarshal([]byte(body), &generic); err != nil {
		return nil, malformed(op, err)
	}
	if err := checkRequired(schema, generic, "$"); err != nil {
		return nil, malformed(op, err)
	}

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, malformed(op, err)
	}
	if err := validate.Struct(out); err != nil {
		return nil, malformed(op, err)
	}
	return &out, nil
}

func malformed(op string, err error) error {
	return utils.E(utils.CodeMalformedResponse, op, "malformed model response", err)
}

// checkRequired walks v alongside schema and fails on the first required
// field that is absent or null, or on a null item in a typed array.
func checkRequired(schema map[string]any, v any, path string) error {
	switch schema["type"] {
	case "object":
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object", path)
		}
		for _, name := range llm.RequiredFields(schema) {
			if val, ok := obj[name]; !ok || val == nil {
				return fmt.Errorf("%s.%s: missing required field", path, name)
			}
		}
		props, _ := schema["properties"].(map[string]any)
		for name, p := range props {
			ps, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if val, ok := obj[name]; ok && val != nil {
				if err := checkRequired(ps, val, path+"."+name); err != nil {
					return err
				}
			}
		}
	case "array":
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array", path)
		}
		items, ok := schema["items"].(map[string]any)
		if !ok {
			return nil
		}
		_, typed := items["type"]
		for i, item := range arr {
			if item == nil && typed {
				return fmt.Errorf("%s[%d]: null item", path, i)
			}
			if err := checkRequired(items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
