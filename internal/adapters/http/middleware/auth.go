package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

const (
	// ContextKeyClaims is the gin context key for the verified caller.
	ContextKeyClaims = "claims"

	defaultSubjectHeader = "X-User-ID"
	bearerPrefix         = "Bearer "
)

var errMalformedAuthorization = errors.New("authorization header is not a bearer token")

// Claims is the verified identity of the caller.
type Claims struct {
	// Subject is the opaque user ID favorites are keyed by.
	Subject string

	// Method is the auth mode that produced the identity.
	Method string
}

// Authenticate returns middleware that attaches the caller identity when the
// request carries one. It never rejects an anonymous request; RequireAuth
// does that for routes that need a caller. In jwt mode a presented token
// that fails verification is rejected on every route.
func Authenticate(cfg *config.AuthConfig) gin.HandlerFunc {
	if cfg != nil && cfg.Mode == config.AuthModeJWT {
		return bearerAuth(cfg)
	}

	header := defaultSubjectHeader
	if cfg != nil && cfg.SubjectHeader != "" {
		header = cfg.SubjectHeader
	}

	return func(c *gin.Context) {
		if subject := strings.TrimSpace(c.GetHeader(header)); subject != "" {
			setClaims(c, &Claims{Subject: subject, Method: config.AuthModeHeader})
		}

		c.Next()
	}
}

func bearerAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	key := []byte(cfg.SigningKey)

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.Next()
			return
		}

		subject, err := verifyBearer(parser, key, raw)
		if err != nil {
			ctx := c.Request.Context()
			logging.FromContext(ctx).WarnContext(ctx, "rejected bearer token", slog.Any("error", err))
			dto.AbortWithCode(c, dto.ErrorCodeUnauthenticated, "invalid bearer token")

			return
		}

		setClaims(c, &Claims{Subject: subject, Method: config.AuthModeJWT})
		c.Next()
	}
}

func verifyBearer(parser *jwt.Parser, key []byte, header string) (string, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", errMalformedAuthorization
	}

	claims := &jwt.RegisteredClaims{}

	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return "", fmt.Errorf("verifying token: %w", err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ContextKeyClaims, claims)
	c.Request = c.Request.WithContext(logging.WithUserID(c.Request.Context(), claims.Subject))
}

// GetClaims retrieves the caller identity, or nil for anonymous requests.
func GetClaims(c *gin.Context) *Claims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		if cl, ok := claims.(*Claims); ok {
			return cl
		}
	}

	return nil
}

// UserID returns the authenticated subject, or "".
func UserID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.Subject
	}

	return ""
}

// RequireAuth rejects anonymous requests with UNAUTHENTICATED.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			dto.AbortWithCode(c, dto.ErrorCodeUnauthenticated, "authentication required")
			return
		}

		c.Next()
	}
}
