package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeTagCategoryDocument reads one category or a list of categories
// from JSON or YAML.
func DecodeTagCategoryDocument(data []byte) ([]*TagCategoryInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	if data[0] != '{' && data[0] != '[' {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}
	if data[0] == '[' {
		inputs := make([]*TagCategoryInput, 0)
		if err := json.Unmarshal(data, &inputs); err != nil {
			return nil, fmt.Errorf("failed to decode category list: %w", err)
		}
		for i, input := range inputs {
			if input == nil {
				return nil, fmt.Errorf("category %d is empty", i)
			}
		}
		return inputs, nil
	}
	var input TagCategoryInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}
	return []*TagCategoryInput{&input}, nil
}

// yamlToJSON re-encodes YAML as JSON so the JSON decoders of the model
// types apply (numbers in option values stay numbers).
func yamlToJSON(data []byte) ([]byte, error) {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	converted, err := json.Marshal(stringifyKeys(document))
	if err != nil {
		return nil, fmt.Errorf("failed to convert yaml: %w", err)
	}
	return bytes.TrimSpace(converted), nil
}

// stringifyKeys turns the map[any]any that yaml produces for non-string keys
// (`1:`, `yes:`) into map[string]any, which json can encode.
func stringifyKeys(value any) any {
	switch v := value.(type) {
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[fmt.Sprint(key)] = stringifyKeys(item)
		}
		return converted
	case map[string]any:
		for key, item := range v {
			v[key] = stringifyKeys(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = stringifyKeys(item)
		}
		return v
	default:
		return value
	}
}
