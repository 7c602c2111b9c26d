package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClientIDCtx = "clientID"
	IsAdminCtx  = "isAdmin"
)

// AuthMiddlewareProvider verifies tokens issued by the external identity
// provider. No credentials are checked here: the token's subject is trusted
// as the opaque student identifier, is_admin as the single admin flag.
type AuthMiddlewareProvider struct {
	log       logger.Log
	secretKey []byte
}

func NewAuthMiddlewareProvider(log logger.Log, secretKey string) *AuthMiddlewareProvider {
	return &AuthMiddlewareProvider{
		log:       log,
		secretKey: []byte(secretKey),
	}
}

type identityClaims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

func (h *AuthMiddlewareProvider) AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = parts[1]
	}
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims := &identityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return h.secretKey, nil
	})
	if err != nil || !parsed.Valid {
		h.log.Info("failed to parse token")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cant parse token"})
		return
	}

	studentID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
		return
	}

	c.Set(ClientIDCtx, studentID)
	c.Set(IsAdminCtx, claims.IsAdmin)
	c.Next()
}
