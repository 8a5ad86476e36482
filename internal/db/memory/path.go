package memory

import (
	"fmt"
	"strings"
)

// resolvePath evaluates the subset of JSONPath used in index schemas:
// "$.a.b", "$.a[*]" and bare attribute names. Arrays are flattened one level.
func resolvePath(doc any, path string) []any {
	p := strings.TrimPrefix(path, "$")
	p = strings.TrimPrefix(p, ".")
	p = strings.TrimSuffix(p, "[*]")
	if p == "" {
		return nil
	}

	cur := doc
	for _, seg := range strings.Split(p, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}

	switch v := cur.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

func stringValues(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case nil:
		case string:
			out = append(out, t)
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}
