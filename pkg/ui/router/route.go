package router

import (
	"fmt"
	"net/url"
	"strings"
)

// Pattern is a route template: a literal path, optionally followed by a
// single trailing "{name}" segment, e.g. "weapons" or "weaponDetail/{key}".
type Pattern struct {
	literal string
	param   string
}

// ParsePattern validates a route template.
func ParsePattern(s string) (Pattern, error) {
	if s == "" {
		return Pattern{}, fmt.Errorf("router: empty pattern")
	}

	open := strings.IndexByte(s, '{')
	if open < 0 {
		if strings.ContainsRune(s, '}') {
			return Pattern{}, fmt.Errorf("router: pattern %q: unbalanced brace", s)
		}
		return Pattern{literal: s}, nil
	}

	if !strings.HasSuffix(s, "}") || open == 0 || s[open-1] != '/' {
		return Pattern{}, fmt.Errorf("router: pattern %q: parameter must be the last segment", s)
	}
	param := s[open+1 : len(s)-1]
	if param == "" || strings.ContainsAny(param, "{}/") {
		return Pattern{}, fmt.Errorf("router: pattern %q: bad parameter name", s)
	}
	return Pattern{literal: s[:open], param: param}, nil
}

func (p Pattern) String() string {
	if p.param == "" {
		return p.literal
	}
	return p.literal + "{" + p.param + "}"
}

// Render fills the parameter with key, path-escaped.
func (p Pattern) Render(key string) (string, error) {
	if p.param == "" {
		return p.literal, nil
	}
	if key == "" {
		return "", fmt.Errorf("router: route %q needs a %s", p.String(), p.param)
	}
	return p.literal + url.PathEscape(key), nil
}

// Match reports whether path is an instance of the pattern and returns the
// unescaped parameter value.
func (p Pattern) Match(path string) (string, bool) {
	if p.param == "" {
		return "", path == p.literal
	}
	if !strings.HasPrefix(path, p.literal) {
		return "", false
	}
	raw := path[len(p.literal):]
	if raw == "" || strings.Contains(raw, "/") {
		return "", false
	}
	key, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	return key, true
}
