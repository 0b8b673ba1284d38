package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT issues a 24h HS256 token for the user.
func GenerateJWT(secret, userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": strings.ToLower(email),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWTMiddleware checks the bearer token and stores userId and email in locals.
func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Missing or invalid Authorization header")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid Authorization header format")
		}
		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid token payload")
		}
		userID := claimString(claims, "sub")
		if userID == "" {
			userID = claimString(claims, "userId")
		}
		if userID == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid token payload")
		}

		c.Locals("userId", userID)
		c.Locals("email", strings.ToLower(claimString(claims, "email")))
		return c.Next()
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64: // numeric ids decode as float64
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
