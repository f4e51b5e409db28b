package slackbot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	SignatureHeader = "X-Slack-Signature"
	TimestampHeader = "X-Slack-Request-Timestamp"

	signatureVersion = "v0"
)

var (
	ErrMissingSignature = errors.New("signature header is required")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidTimestamp = errors.New("invalid signature timestamp")
	ErrTimestampExpired = errors.New("signature timestamp outside allowed skew")
)

// Verify reports whether signature is the v0 HMAC-SHA256 of
// "v0:<timestamp>:<body>" keyed by secret. The signature must be of the form
// "v0=<lowercase hex>".
func Verify(secret, signature, timestamp string, body []byte) bool {
	version, digest, ok := strings.Cut(signature, "=")
	if !ok || version != signatureVersion || digest == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signatureVersion + ":" + timestamp + ":"))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(digest))
}

// Authenticator gates requests on the Slack signing secret.
type Authenticator struct {
	signingSecret string
	maxSkew       time.Duration
	now           func() time.Time
}

// NewAuthenticator creates an Authenticator. A maxSkew of zero disables the
// timestamp freshness check.
func NewAuthenticator(signingSecret string, maxSkew time.Duration) *Authenticator {
	if maxSkew < 0 {
		maxSkew = 0
	}
	return &Authenticator{
		signingSecret: signingSecret,
		maxSkew:       maxSkew,
		now:           time.Now,
	}
}

// Authenticate validates the signature headers against the raw body.
func (a *Authenticator) Authenticate(headers http.Header, body []byte) error {
	signature := headers.Get(SignatureHeader)
	timestamp := headers.Get(TimestampHeader)
	if signature == "" || timestamp == "" {
		return ErrMissingSignature
	}

	if a.maxSkew > 0 {
		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		now := a.now()
		sent := time.Unix(ts, 0)
		if now.Sub(sent) > a.maxSkew || sent.Sub(now) > a.maxSkew {
			return ErrTimestampExpired
		}
	}

	if !Verify(a.signingSecret, signature, timestamp, body) {
		return ErrInvalidSignature
	}
	return nil
}
