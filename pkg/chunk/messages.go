package chunk

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseCatalog parses a YAML message catalog and flattens nested keys with
// dot notation, so "errors: {not_found: ...}" becomes "errors.not_found".
func parseCatalog(raw []byte) (map[string]string, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}

	catalog := make(map[string]string)
	flatten(tree, "", catalog)
	return catalog, nil
}

func flatten(tree map[string]any, prefix string, out map[string]string) {
	for key, value := range tree {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			out[fullKey] = v
		case map[string]any:
			flatten(v, fullKey, out)
		default:
			out[fullKey] = fmt.Sprintf("%v", v)
		}
	}
}
