// Package oauth1 implements OAuth 1.0a request signing (HMAC-SHA1) for
// user-context requests with JSON bodies. Only the oauth_* parameters enter
// the signature base string; a JSON body is not form-encoded and therefore
// does not contribute parameters.
package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Signer holds a fixed user-context credential set and produces
// Authorization headers for individual requests.
type Signer struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string

	// Nonce and Clock exist so tests can pin the signature; when nil a
	// random nonce and the wall clock are used.
	Nonce func() string
	Clock func() time.Time
}

// AuthorizationHeader computes the full "OAuth ..." header value for a
// request with the given method and URL.
func (s *Signer) AuthorizationHeader(method, rawURL string) string {
	params := map[string]string{
		"oauth_consumer_key":     s.ConsumerKey,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_token":            s.AccessToken,
		"oauth_version":          "1.0",
	}
	base := SignatureBase(method, rawURL, params)
	params["oauth_signature"] = Sign(SigningKey(s.ConsumerSecret, s.AccessSecret), base)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, PercentEncode(params[k])))
	}
	return "OAuth " + strings.Join(pairs, ", ")
}

// SignatureBase builds the canonical base string:
// METHOD&enc(url)&enc(sorted k=v pairs joined by &).
func SignatureBase(method, rawURL string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, PercentEncode(k)+"="+PercentEncode(params[k]))
	}
	return strings.ToUpper(method) + "&" + PercentEncode(rawURL) + "&" + PercentEncode(strings.Join(pairs, "&"))
}

// SigningKey combines the two secrets: enc(consumerSecret)&enc(tokenSecret).
func SigningKey(consumerSecret, tokenSecret string) string {
	return PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
}

// Sign returns base64(HMAC-SHA1(key, base)).
func Sign(signingKey, base string) string {
	mac := hmac.New(sha1.New, []byte(signingKey))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// PercentEncode applies RFC 3986 encoding: unreserved characters pass
// through, everything else becomes %XX with uppercase hex.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

func (s *Signer) nonce() string {
	if s.Nonce != nil {
		return s.Nonce()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *Signer) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
