package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	appbilling "github.com/cinevault-inc/cinevault/internal/application/subscription/billing"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
)

// signatureTolerance bounds how stale a signed webhook may be. Replaying a
// captured event outside this window fails verification even with a valid
// signature.
const signatureTolerance = 5 * time.Minute

// SignatureVerifier checks the provider's signature header. The header
// carries a unix timestamp and one or more HMAC-SHA256 signatures over
// "<timestamp>.<payload>", e.g. "t=1712000000,v1=5257a8...".
type SignatureVerifier struct {
	secret []byte
}

// NewSignatureVerifier creates a verifier for the given endpoint secret
func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(secret)}
}

var _ appbilling.WebhookVerifier = (*SignatureVerifier)(nil)

// VerifySignature authenticates a raw webhook payload against its header
func (v *SignatureVerifier) VerifySignature(payload []byte, sigHeader string) error {
	if sigHeader == "" {
		return fmt.Errorf("missing signature header")
	}

	var timestamp int64
	var signatures [][]byte
	for _, part := range strings.Split(sigHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("malformed signature timestamp")
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	age := biztime.NowUTC().Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return fmt.Errorf("signature mismatch")
}
