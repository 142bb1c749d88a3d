package job

import (
	"math"
	"net/url"
	"strconv"
)

// Filters is the normalized, validated constraint set for a search query.
// A nil MinSalary means no lower bound. HasEquity false imposes no equity
// constraint, it is not "equity = 0". Built per request, never persisted.
type Filters struct {
	MinSalary *int
	HasEquity bool
	Title     string
}

func (f Filters) Empty() bool {
	return f.MinSalary == nil && !f.HasEquity && f.Title == ""
}

// ParseFilterQuery coerces raw query parameters into typed filter values
// ahead of schema validation. minSalary gets a permissive numeric coercion,
// non-numeric input becomes NaN and is rejected by the schema instead of
// failing here. hasEquity is opt-in only via the literal string "true",
// every other value (absent, "false", "TRUE", "1") maps to false. Unknown
// keys pass through untouched so the schema can reject them.
func ParseFilterQuery(query url.Values) map[string]interface{} {
	payload := make(map[string]interface{}, len(query))
	for key := range query {
		payload[key] = query.Get(key)
	}
	if raw, ok := payload["minSalary"].(string); ok {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			n = math.NaN()
		}
		payload["minSalary"] = n
	}
	payload["hasEquity"] = query.Get("hasEquity") == "true"
	return payload
}

// FiltersFromPayload builds the typed filter set from a payload that
// already passed the search schema.
func FiltersFromPayload(payload map[string]interface{}) Filters {
	f := Filters{}
	if v, ok := payload["minSalary"].(float64); ok {
		minSalary := int(v)
		f.MinSalary = &minSalary
	}
	if v, ok := payload["hasEquity"].(bool); ok {
		f.HasEquity = v
	}
	if v, ok := payload["title"].(string); ok {
		f.Title = v
	}
	return f
}
