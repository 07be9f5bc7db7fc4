// Package attribution merges campaign tracking parameters from the page a
// request was submitted on with parameters supplied by the caller.
package attribution

import "net/url"

// Keys lists the recognized attribution parameters in display order.
var Keys = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content"}

// Map holds recognized attribution keys only. Absent keys are omitted.
type Map map[string]string

// Get returns the value for key, or "" when absent
func (m Map) Get(key string) string {
	return m[key]
}

// Resolve merges the attribution found in sourceURL's query string with the
// explicit parameters. Explicit non-empty values win; URL values are kept for
// every key the caller did not supply. It never fails: an unparseable URL
// contributes nothing.
func Resolve(sourceURL string, explicit map[string]string) Map {
	merged := fromURL(sourceURL)

	for _, key := range Keys {
		if value := explicit[key]; value != "" {
			merged[key] = value
		}
	}
	return merged
}

func fromURL(raw string) Map {
	out := Map{}
	if raw == "" {
		return out
	}

	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return out
	}

	query := parsed.Query()
	for _, key := range Keys {
		if value := query.Get(key); value != "" {
			out[key] = value
		}
	}
	return out
}
