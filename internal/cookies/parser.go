package cookies

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	signedPrefix = "s:"
	jsonPrefix   = "j:"
)

// Parsed holds the cookies of one request. A cookie name appears in at most one map.
type Parsed struct {
	Plain  map[string]string `json:"cookies"`
	Signed map[string]string `json:"signedCookies"`
	JSON   map[string]any    `json:"jsonCookies"`
}

func newParsed() *Parsed {
	return &Parsed{
		Plain:  make(map[string]string),
		Signed: make(map[string]string),
		JSON:   make(map[string]any),
	}
}

type pair struct {
	Name  string
	Value string
}

// Parse reads every cookie of r. When a name repeats, the first occurrence wins.
// A nil codec leaves "s:" values in Plain.
func Parse(r *http.Request, codec *Codec) *Parsed {
	p := newParsed()
	seen := make(map[string]struct{})

	for _, ck := range splitHeader(strings.Join(r.Header.Values("Cookie"), "; ")) {
		if _, dup := seen[ck.Name]; dup {
			continue
		}
		seen[ck.Name] = struct{}{}

		value := unescape(ck.Value)

		if codec != nil && strings.HasPrefix(value, signedPrefix) {
			decoded, err := codec.Decode(ck.Name, value)
			if err != nil {
				slog.DebugContext(r.Context(), "Dropping cookie with invalid signature",
					"cookie", ck.Name,
					"error", err,
				)
				continue
			}
			p.Signed[ck.Name] = decoded
			continue
		}

		if v, ok := decodeJSON(r.Context(), ck.Name, value); ok {
			p.JSON[ck.Name] = v
			continue
		}

		p.Plain[ck.Name] = value
	}

	return p
}

// splitHeader splits a Cookie header on ';' and the first '=' of each pair. Unlike
// http.Request.Cookies it keeps values with bytes RFC 6265 disallows, such as raw JSON.
// Pairs without '=' or with an empty name are skipped. One pair of surrounding quotes is removed.
func splitHeader(header string) []pair {
	var pairs []pair
	for _, part := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		name = strings.Trim(name, " \t")
		if name == "" {
			continue
		}
		value = strings.Trim(value, " \t")
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		pairs = append(pairs, pair{Name: name, Value: value})
	}
	return pairs
}

// unescape mirrors decodeURIComponent: '+' stays literal and malformed escapes keep the raw value.
func unescape(raw string) string {
	if !strings.Contains(raw, "%") {
		return raw
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return v
}

func decodeJSON(ctx context.Context, name, value string) (any, bool) {
	if !strings.HasPrefix(value, jsonPrefix) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(value[len(jsonPrefix):]), &v); err != nil {
		slog.DebugContext(ctx, "Cookie has JSON prefix but invalid body", "cookie", name)
		return nil, false
	}
	return v, true
}
