package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	asymmetricMethods = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}
	hmacMethods       = []string{"HS256", "HS384", "HS512"}
)

// JWTVerifier validates signed JWTs against key material loaded once at
// start. The token subject is the uid.
type JWTVerifier struct {
	keys    map[string]any // by kid
	ordered []any
	secret  []byte
	parser  *jwt.Parser
}

// LoadJWTVerifier reads the credential file at path and builds a verifier.
// Empty issuer or audience disables the corresponding check.
func LoadJWTVerifier(path, issuer, audience string) (*JWTVerifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	return NewJWTVerifier(data, issuer, audience)
}

// errServiceAccount rejects a provider's service-account file, which holds a
// signing key rather than the public certificates tokens are checked against.
var errServiceAccount = errors.New("credential file is a service-account key; expected a key id to certificate map, PEM public keys or a shared secret")

// NewJWTVerifier builds a verifier from credential bytes. Accepted layouts:
//
//   - a JSON object mapping key id to a PEM certificate or public key
//   - one or more PEM blocks (CERTIFICATE, PUBLIC KEY, RSA PUBLIC KEY)
//   - anything else is used verbatim as an HMAC secret
func NewJWTVerifier(data []byte, issuer, audience string) (*JWTVerifier, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, errors.New("credential file is empty")
	}

	v := &JWTVerifier{keys: map[string]any{}}
	methods := asymmetricMethods

	switch {
	case strings.HasPrefix(trimmed, "{"):
		var byKid map[string]string
		if err := json.Unmarshal([]byte(trimmed), &byKid); err != nil {
			return nil, fmt.Errorf("parse key map: %w", err)
		}
		if byKid["type"] == "service_account" || byKid["private_key"] != "" {
			return nil, errServiceAccount
		}
		for kid, raw := range byKid {
			keys, err := parsePEMKeys([]byte(raw))
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", kid, err)
			}
			v.keys[kid] = keys[0]
			v.ordered = append(v.ordered, keys[0])
		}
		if len(v.ordered) == 0 {
			return nil, errors.New("key map has no entries")
		}
	case strings.Contains(trimmed, "-----BEGIN"):
		keys, err := parsePEMKeys([]byte(trimmed))
		if err != nil {
			return nil, err
		}
		v.ordered = keys
	default:
		v.secret = []byte(trimmed)
		methods = hmacMethods
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	v.parser = jwt.NewParser(opts...)
	return v, nil
}

// Verify implements Verifier.
func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}
	var claims jwt.RegisteredClaims
	if _, err := v.parser.ParseWithClaims(token, &claims, v.keyFor); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrUnauthenticated)
	}
	return Identity{UID: claims.Subject}, nil
}

func (v *JWTVerifier) keyFor(t *jwt.Token) (any, error) {
	if v.secret != nil {
		return v.secret, nil
	}
	if kid, _ := t.Header["kid"].(string); kid != "" {
		if k, ok := v.keys[kid]; ok {
			return k, nil
		}
		if len(v.keys) > 0 {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
	}
	if len(v.ordered) == 1 {
		return v.ordered[0], nil
	}
	return nil, errors.New("cannot select verification key")
}

func parsePEMKeys(data []byte) ([]any, error) {
	var out []any
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		k, err := parsePEMBlock(block)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil, errors.New("no PEM key found")
	}
	return out, nil
}

func parsePEMBlock(block *pem.Block) (any, error) {
	var (
		pub any
		err error
	)
	switch block.Type {
	case "CERTIFICATE":
		var cert *x509.Certificate
		if cert, err = x509.ParseCertificate(block.Bytes); err == nil {
			pub = cert.PublicKey
		}
	case "PUBLIC KEY":
		pub, err = x509.ParsePKIXPublicKey(block.Bytes)
	case "RSA PUBLIC KEY":
		pub, err = x509.ParsePKCS1PublicKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unsupported PEM block %q", block.Type)
	}
	if err != nil {
		return nil, err
	}
	switch pub.(type) {
	case *rsa.PublicKey, *ecdsa.PublicKey:
		return pub, nil
	default:
		return nil, fmt.Errorf("unsupported key type %T", pub)
	}
}
