package common

// CleanNulls removes the named fields from the map when their value is
// null. GeoJSON declares some fields optional but never null (bbox on every
// object, id on Feature), so the JSON boundary drops them instead of
// emitting `"field": null`. The in-memory map form keeps the null entries;
// only serialization applies this policy. Entities with extra omit-if-null
// fields pass them on top of the base set.
func CleanNulls(m map[string]any, fields ...string) map[string]any {
	for _, field := range fields {
		if v, ok := m[field]; ok && v == nil {
			delete(m, field)
		}
	}
	return m
}
