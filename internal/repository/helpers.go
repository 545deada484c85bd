package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// extractRecordNumber returns the integer key of a record id such as user:42.
// It accepts the client's RecordID type as well as string and map encodings.
func extractRecordNumber(id interface{}) int64 {
	switch v := id.(type) {
	case models.RecordID:
		return toInt64(v.ID)
	case *models.RecordID:
		if v != nil {
			return toInt64(v.ID)
		}
	case string:
		if i := strings.LastIndexByte(v, ':'); i >= 0 {
			v = v[i+1:]
		}
		n, _ := strconv.ParseInt(strings.Trim(v, "⟨⟩`"), 10, 64)
		return n
	case map[string]interface{}:
		if raw, ok := v["id"]; ok {
			return toInt64(raw)
		}
		if raw, ok := v["ID"]; ok {
			return toInt64(raw)
		}
	default:
		return toInt64(v)
	}
	return 0
}

// toInt64 converts the numeric types the CBOR decoder may produce.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case int32:
		return int64(n)
	case uint64:
		return int64(n)
	case uint32:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

// extractQueryResults extracts the record array of the first statement
func extractQueryResults(results []interface{}) []map[string]interface{} {
	if len(results) == 0 {
		return nil
	}
	first, ok := results[0].(map[string]interface{})
	if !ok {
		return nil
	}
	rows, ok := first["result"].([]interface{})
	if !ok {
		return nil
	}
	return toRows(rows)
}

// toRows keeps only the map-shaped entries of a result array
func toRows(rows []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		if m, ok := r.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// optional maps a nil pointer to NONE-compatible nil for option<string> fields
func optional(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a map
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

// getBool extracts a bool value from a map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// getTime extracts a time value from a map, zero if absent
func getTime(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case models.CustomDateTime:
		return v.Time
	case *models.CustomDateTime:
		if v != nil {
			return v.Time
		}
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
