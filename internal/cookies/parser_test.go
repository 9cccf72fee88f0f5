package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func requestWithCookie(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/cookies", nil)
	req.Header.Set("Cookie", header)
	return req
}

func TestParse_PlainCookies(t *testing.T) {
	p := Parse(requestWithCookie("theme=dark; lang=pl"), nil)

	assert.Equal(t, map[string]string{"theme": "dark", "lang": "pl"}, p.Plain)
	assert.Empty(t, p.Signed)
	assert.Empty(t, p.JSON)
}

func TestParse_NoCookieHeader(t *testing.T) {
	p := Parse(httptest.NewRequest(http.MethodGet, "/", nil), nil)

	require.NotNil(t, p.Plain)
	assert.Empty(t, p.Plain)
}

func TestParse_UnescapesValues(t *testing.T) {
	p := Parse(requestWithCookie("city=Krak%C3%B3w; plus=a+b; broken=%E0%A4%A"), nil)

	assert.Equal(t, "Kraków", p.Plain["city"])
	assert.Equal(t, "a+b", p.Plain["plus"])
	assert.Equal(t, "%E0%A4%A", p.Plain["broken"])
}

func TestParse_FirstOccurrenceWins(t *testing.T) {
	p := Parse(requestWithCookie("id=first; id=second"), nil)

	assert.Equal(t, "first", p.Plain["id"])
}

func TestParse_JSONCookies(t *testing.T) {
	p := Parse(requestWithCookie("prefs=j%3A%7B%22units%22%3A%22kN%22%7D; bad=j%3A%7Bnope"), nil)

	assert.Equal(t, map[string]any{"units": "kN"}, p.JSON["prefs"])
	assert.NotContains(t, p.Plain, "prefs")
	assert.Equal(t, "j:{nope", p.Plain["bad"])
}

func TestParse_SignedCookies(t *testing.T) {
	codec, err := NewCodec(testSecret, false)
	require.NoError(t, err)
	signed, err := codec.Encode("user", "anna")
	require.NoError(t, err)

	p := Parse(requestWithCookie("user="+signed+"; theme=dark"), codec)

	assert.Equal(t, map[string]string{"user": "anna"}, p.Signed)
	assert.Equal(t, map[string]string{"theme": "dark"}, p.Plain)
}

func TestParse_TamperedSignedCookieIsDropped(t *testing.T) {
	codec, err := NewCodec(testSecret, false)
	require.NoError(t, err)
	other, err := NewCodec("ffffffffffffffffffffffffffffffff", false)
	require.NoError(t, err)
	forged, err := other.Encode("user", "admin")
	require.NoError(t, err)

	p := Parse(requestWithCookie("user="+forged), codec)

	assert.Empty(t, p.Signed)
	assert.Empty(t, p.Plain)
}

func TestParse_SignedValueWithoutCodecStaysPlain(t *testing.T) {
	p := Parse(requestWithCookie("user=s:abc"), nil)

	assert.Equal(t, "s:abc", p.Plain["user"])
}

func TestParse_RawJSONCookie(t *testing.T) {
	p := Parse(requestWithCookie(`prefs=j:{"a":1}; plain=x y; enc=j%3A%7B%22a%22%3A1%7D`), nil)

	assert.Equal(t, map[string]any{"a": float64(1)}, p.JSON["prefs"])
	assert.Equal(t, map[string]any{"a": float64(1)}, p.JSON["enc"])
	assert.Equal(t, map[string]string{"plain": "x y"}, p.Plain)
}

func TestParse_QuotedValues(t *testing.T) {
	p := Parse(requestWithCookie(`name="Jan Kowalski"; path="C:\temp"; lone="`), nil)

	assert.Equal(t, "Jan Kowalski", p.Plain["name"])
	assert.Equal(t, `C:\temp`, p.Plain["path"])
	assert.Equal(t, `"`, p.Plain["lone"])
}

func TestParse_LenientSplitting(t *testing.T) {
	p := Parse(requestWithCookie("token=YWJj==;  novalue ; =orphan;\tspaced = yes "), nil)

	assert.Equal(t, map[string]string{"token": "YWJj==", "spaced": "yes"}, p.Plain)
}

func TestParse_MultipleCookieHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cookies", nil)
	req.Header.Add("Cookie", "a=1")
	req.Header.Add("Cookie", "b=2; a=3")

	p := Parse(req, nil)

	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, p.Plain)
}
