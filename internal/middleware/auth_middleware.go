package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

type contextKey string

const ContextKeyUserID = contextKey("userID")

// TokenIssuer identifies the service that issues all access tokens.
const TokenIssuer = "HomeIQ"

// AuthMiddleware protects manager-facing endpoints. The JWT is read
// from Authorization: Bearer and its subject is the property manager
// ID, placed on the request context under ContextKeyUserID.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil || !tok.Valid {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid claims", nil,
				)
				return
			}
			sub, ok := claims["sub"].(string)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", nil,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateToken checks the token's signature and standard claims.
// Any deviation returns a descriptive error.
func ValidateToken(tokenString string, publicKey *rsa.PublicKey) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok {
		return nil, errors.New("missing issuer claim")
	}
	if iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	return token, nil
}

func extractAccessToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
