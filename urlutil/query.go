package urlutil

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// numericIndex matches a bracketed list index, literal or percent-encoded.
var numericIndex = regexp.MustCompile(`(\[|%5[Bb])[0-9]+(\]|%5[Dd])`)

// queryPair is one key[=value] item of a raw query string. key and value
// keep their original encoding; name is the decoded key used for matching.
type queryPair struct {
	key      string
	value    string
	hasValue bool
	name     string
}

func parseQuery(raw string) []queryPair {
	parts := strings.Split(raw, "&")
	pairs := make([]queryPair, 0, len(parts))
	for _, part := range parts {
		key, value, hasValue := strings.Cut(part, "=")
		pairs = append(pairs, queryPair{
			key:      key,
			value:    value,
			hasValue: hasValue,
			name:     decodeQueryKey(key),
		})
	}
	return pairs
}

func decodeQueryKey(key string) string {
	name, err := url.QueryUnescape(key)
	if err != nil {
		return key
	}
	return name
}

func (p queryPair) String() string {
	if !p.hasValue {
		return p.key
	}
	return p.key + "=" + p.value
}

func (p queryPair) empty() bool {
	if p.key == "" && p.value == "" {
		return true
	}
	return p.hasValue && p.value == ""
}

// normalizeQuery applies the enabled query steps in a fixed order:
// duplicates, empty pairs, sort, numeric indices, tracking parameters.
// It returns "" when nothing is left.
func normalizeQuery(raw string, policy QueryPolicy) string {
	if raw == "" {
		return ""
	}

	pairs := parseQuery(raw)
	if policy.WithoutDuplicates {
		pairs = withoutDuplicates(pairs)
	}
	if policy.WithoutEmptyPairs {
		pairs = slices.DeleteFunc(pairs, queryPair.empty)
	}
	if policy.WithSortedParams {
		slices.SortStableFunc(pairs, func(a, b queryPair) int {
			return strings.Compare(a.name, b.name)
		})
	}
	if policy.WithoutNumericIndices {
		for i := range pairs {
			pairs[i] = pairs[i].withoutNumericIndex()
		}
	}
	if policy.WithoutTrackingParams && len(policy.TrackingParams) > 0 {
		pairs = slices.DeleteFunc(pairs, func(p queryPair) bool {
			return slices.Contains(policy.TrackingParams, p.name)
		})
	}

	return joinQuery(pairs)
}

// withoutDuplicates keeps the first pair for each key. Keys ending in "[]"
// append to a list and are left alone.
func withoutDuplicates(pairs []queryPair) []queryPair {
	seen := make(map[string]struct{}, len(pairs))
	out := pairs[:0]
	for _, p := range pairs {
		if !strings.HasSuffix(p.name, "[]") {
			if _, dup := seen[p.name]; dup {
				continue
			}
			seen[p.name] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}

func (p queryPair) withoutNumericIndex() queryPair {
	if !numericIndex.MatchString(p.key) {
		return p
	}
	p.key = numericIndex.ReplaceAllString(p.key, "${1}${2}")
	p.name = decodeQueryKey(p.key)
	return p
}

func joinQuery(pairs []queryPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, "&")
}
