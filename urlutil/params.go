package urlutil

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Params is the mapping form of a query string. Values may be scalars,
// slices or nested maps with string keys.
type Params map[string]any

// Encode serializes p as key=value pairs joined by "&", keys sorted.
// Nested values use bracketed keys (filter[type]=image, ids[0]=1). Booleans
// encode as 1 and 0; nil values are skipped.
func (p Params) Encode() string {
	var parts []string
	for _, key := range slices.Sorted(maps.Keys(p)) {
		parts = appendParam(parts, url.QueryEscape(key), reflect.ValueOf(p[key]))
	}
	return strings.Join(parts, "&")
}

func appendParam(parts []string, prefix string, v reflect.Value) []string {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return parts
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return parts
	}

	switch v.Kind() {
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		values := make(map[string]reflect.Value, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			values[k] = iter.Value()
		}
		slices.Sort(keys)
		for _, k := range keys {
			parts = appendParam(parts, prefix+"["+url.QueryEscape(k)+"]", values[k])
		}
		return parts
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return append(parts, prefix+"="+url.QueryEscape(string(v.Bytes())))
		}
		for i := range v.Len() {
			parts = appendParam(parts, prefix+"["+strconv.Itoa(i)+"]", v.Index(i))
		}
		return parts
	case reflect.Bool:
		if v.Bool() {
			return append(parts, prefix+"=1")
		}
		return append(parts, prefix+"=0")
	default:
		return append(parts, prefix+"="+url.QueryEscape(fmt.Sprint(v.Interface())))
	}
}
