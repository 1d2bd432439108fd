package repository

import "github.com/google/uuid"

// normalizeRows rewrites values pgx decodes into shapes encoding/json renders poorly.
func normalizeRows(records []map[string]any) []map[string]any {
	for _, record := range records {
		for column, value := range record {
			record[column] = normalizeValue(value)
		}
	}
	return records
}

// normalizeValue renders uuid columns as canonical strings instead of byte arrays.
// Array columns are walked element by element.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case [16]byte:
		return uuid.UUID(v).String()
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = normalizeValue(elem)
		}
		return out
	default:
		return value
	}
}
