package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingClaim = errors.New("token is missing a required claim")
	ErrAccessDenied = errors.New("access denied")
)

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleDeveloper      Role = "developer"
)

// TokenTypeAccess is the only token type accepted on the API.
const TokenTypeAccess = "access"

// Claims are the verified fields the API relies on.
type Claims struct {
	UserID string
	Role   Role
	Type   string
}

// Service verifies tokens issued by the portal auth service. It never issues them.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// ClaimsFromContext reads the claims of the token verified by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token == nil {
		return Claims{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Claims{}, fmt.Errorf("%w: user_id", ErrMissingClaim)
	}
	role, _ := claims["role"].(string)
	tokenType, _ := claims["type"].(string)

	return Claims{
		UserID: userID,
		Role:   Role(role),
		Type:   tokenType,
	}, nil
}
