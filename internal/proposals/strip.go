package proposals

// identifierField is the reserved key carrying the internal record
// identifier inside persisted payloads.
const identifierField = "_id"

// StripKey walks an unmarshaled JSON tree and returns a copy with the named
// key omitted from every object, at any nesting depth. Scalars pass through
// unchanged.
func StripKey(v any, key string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if k == key {
				continue
			}
			out[k] = StripKey(child, key)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = StripKey(child, key)
		}
		return out
	default:
		return v
	}
}
