package service

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/storefront/internal/core/domain"
)

// TokenClaims are the claims the session reads from a bearer token. They are
// decoded without verifying the signature and only serve as hints.
type TokenClaims struct {
	Subject string
	Role    string
}

var tokenParser = jwt.NewParser()

// DecodeToken reads the payload segment of a compact JWS. A token without
// exactly three segments, without a subject, or with an undecodable payload
// is malformed. A missing or unknown role claim decodes as customer.
func DecodeToken(token string) (TokenClaims, error) {
	if strings.Count(token, ".") != 2 {
		return TokenClaims{}, domain.ErrMalformedToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := tokenParser.ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return TokenClaims{}, fmt.Errorf("%w: missing subject", domain.ErrMalformedToken)
	}

	role, _ := claims["role"].(string)
	if !domain.ValidRole(role) {
		role = domain.RoleCustomer
	}

	return TokenClaims{Subject: sub, Role: role}, nil
}
