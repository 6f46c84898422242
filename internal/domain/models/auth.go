package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set accepted by the API. Tokens carry the caller in
// either the standard "sub" claim or a legacy numeric or string "user_id".
type Claims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	LegacyUserID         any    `json:"user_id,omitempty"`
	Email                string `json:"email,omitempty"`
	Role                 string `json:"role,omitempty"`
}

// GetUserID returns the caller's id: "user_id" when present, otherwise "sub".
func (c *Claims) GetUserID() string {
	switch v := c.LegacyUserID.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
	default:
		return fmt.Sprint(v)
	}
	return c.Subject
}
