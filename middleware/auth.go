package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/killjoy47/MniseCosmetics/models"
)

const tokenLifetime = 12 * time.Hour

func jwtSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("mnise-dev-secret")
}

// Authorize is the access gate: every protected operation passes through it
// with an explicit role, never ambient state.
func Authorize(role string, allowed ...string) error {
	if role == "" {
		return models.ErrUnauthenticated
	}
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return models.ErrForbidden
}

// SignedToken issues the session token handed out at login.
func SignedToken(role string) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
		"iat":  time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// RequireRole validates the bearer token, checks the role claim against the
// allowed set and stores the role in the context for the handler.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := roleFromRequest(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Session invalide ou expirée"})
			c.Abort()
			return
		}

		if err := Authorize(role, allowed...); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, models.ErrUnauthenticated) {
				status = http.StatusUnauthorized
			}
			c.JSON(status, gin.H{"success": false, "message": "Accès refusé"})
			c.Abort()
			return
		}

		c.Set("role", role)
		c.Next()
	}
}

// Role returns the authenticated role set by RequireRole.
func Role(c *gin.Context) string {
	return c.GetString("role")
}

func roleFromRequest(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", models.ErrUnauthenticated
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", models.ErrUnauthenticated
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return "", models.ErrUnauthenticated
	}
	return role, nil
}
