package query

import "strings"

// Recognised request parameter names.
const (
	ParamQuery     = "q"
	ParamAlgorithm = "algorithm"
)

// Params is the parsed key/value mapping of a raw HTTP query string.
type Params map[string]string

// ParseParams splits an ampersand-delimited raw query string into key/value
// pairs. A segment is accepted only when splitting on '=' yields exactly two
// non-empty parts; anything else is dropped silently rather than treated as
// an error. Values are left percent-encoded.
func ParseParams(rawQuery string) Params {
	params := make(Params)
	if rawQuery == "" {
		return params
	}
	for _, segment := range strings.Split(rawQuery, "&") {
		kv := strings.Split(segment, "=")
		if len(kv) == 2 && kv[0] != "" && kv[1] != "" {
			params[kv[0]] = kv[1]
		}
	}
	return params
}

// Term returns the raw "q" parameter, if present.
func (p Params) Term() (string, bool) {
	v, ok := p[ParamQuery]
	return v, ok
}

// Algorithm returns the "algorithm" parameter, if present. No default is
// substituted here; strategy selection decides what an absent value means.
func (p Params) Algorithm() (string, bool) {
	v, ok := p[ParamAlgorithm]
	return v, ok
}
