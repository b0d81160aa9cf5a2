//go:build unit || e2e

package testutil

// Field sets key, or deletes it when value is nil.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// Lines replaces the cart lines with raw objects, for malformed line tests.
func Lines(lines ...map[string]any) func(m map[string]any) {
	items := make([]any, len(lines))
	for i, l := range lines {
		items[i] = l
	}
	return Field("items", items)
}
