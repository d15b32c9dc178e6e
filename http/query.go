package http

import (
	"net/url"
	"sort"
	"strings"
)

// Values maps a query parameter name to its values in the order they appeared.
type Values map[string][]string

func (v Values) Get(name string) string {
	vs := v[name]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func (v Values) Add(name, value string) {
	v[name] = append(v[name], value)
}

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Encode form-encodes v, sorted by name. Values of a repeated name keep their order.
func (v Values) Encode() string {
	if len(v) == 0 {
		return ""
	}

	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		escaped := url.QueryEscape(name)
		for _, value := range v[name] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(escaped)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(value))
		}
	}
	return sb.String()
}

// ParseQuery decodes a form-encoded query string. Both '&' and ';' separate
// pairs, the first '=' separates name from value and '+' decodes to a space.
// A '%' not followed by two hex digits is kept as a literal.
func ParseQuery(query string) Values {
	values := Values{}

	for query != "" {
		var pair string
		if i := strings.IndexAny(query, "&;"); i >= 0 {
			pair, query = query[:i], query[i+1:]
		} else {
			pair, query = query, ""
		}
		if pair == "" {
			continue
		}

		name, value, _ := strings.Cut(pair, "=")
		name = unescapeQuery(name)
		if name == "" {
			continue
		}
		values.Add(name, unescapeQuery(value))
	}

	return values
}

// unescapeQuery decodes '+' and every valid %XX escape. A '%' that does not
// start a valid escape is copied through unchanged.
func unescapeQuery(s string) string {
	if strings.IndexAny(s, "%+") < 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '+':
			sb.WriteByte(' ')
		case '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				sb.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
				i += 2
				continue
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
