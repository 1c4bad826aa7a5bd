package authctx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKey is the Fiber locals key the JWT middleware stores the parsed token under.
const TokenKey = "user"

var ErrNoToken = errors.New("invalid token in context")

func claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// GetMemberID extracts the member UUID from the JWT "sub" claim.
func GetMemberID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetEmail returns the "email" claim, or "" when absent.
func GetEmail(c *fiber.Ctx) string {
	claims, err := claims(c)
	if err != nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
