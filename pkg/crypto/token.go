package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// TokenPrefix marks a session token minted by this package. The
	// prefix is part of the persisted token format, so changing it
	// invalidates existing sessions.
	TokenPrefix = "demo"

	tokenSeparator  = "_"
	suffixLength    = 11
	DefaultTokenTTL = 7 * 24 * time.Hour

	// The suffix alphabet must not contain the separator so that the
	// suffix can be split back off unambiguously.
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	ErrMalformedToken = errors.New("malformed session token")
)

// TokenPayload is the informational content embedded in a session token.
//
// The payload is not signed. Possession of a well-formed token proves
// nothing; callers must re-validate the embedded id against the store.
type TokenPayload struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"` // unix millis; informational only, never enforced
}

// Expired reports whether the informational expiry has passed. Nothing
// in the session flow calls this; it exists for diagnostics.
func (p *TokenPayload) Expired(now time.Time) bool {
	return p.Exp > 0 && now.UnixMilli() > p.Exp
}

// MintSessionToken builds an opaque bearer token of the form
// demo_<base64url(JSON payload)>_<random suffix>.
func MintSessionToken(id uint, email, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	payload := TokenPayload{
		ID:    id,
		Email: email,
		Role:  role,
		Exp:   time.Now().Add(ttl).UnixMilli(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode token payload: %w", err)
	}
	suffix, err := gonanoid.Generate(suffixAlphabet, suffixLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate token suffix: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	return TokenPrefix + tokenSeparator + encoded + tokenSeparator + suffix, nil
}

// ParseSessionToken decodes the informational payload out of a token.
func ParseSessionToken(token string) (*TokenPayload, error) {
	parts := strings.Split(token, tokenSeparator)
	if len(parts) < 3 || parts[0] != TokenPrefix {
		return nil, ErrMalformedToken
	}
	// base64url output may itself contain the separator; the suffix
	// alphabet does not. Everything between the prefix and the final
	// separator is payload.
	encoded := strings.Join(parts[1:len(parts)-1], tokenSeparator)
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrMalformedToken
	}
	var payload TokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrMalformedToken
	}
	return &payload, nil
}
