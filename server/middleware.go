package server

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/faramade/ecotrack/auth"
	"github.com/faramade/ecotrack/pkg/llm"
)

const (
	localsClaims    = "claims"
	localsToken     = "bearer_token"
	localsRequestID = "request_id"
)

func requestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(localsRequestID).(string)
	return id
}

// requireAuth validates the bearer credential and stashes the claims (and the
// raw token, for logout) in the request locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	token, err := auth.ExtractBearer(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return unauthorized(c, err)
	}

	claims, err := s.auth.Verify(token)
	if err != nil {
		s.logger.Debug("rejected bearer token", zap.Error(err))
		return unauthorized(c, err)
	}

	c.Locals(localsClaims, claims)
	c.Locals(localsToken, token)
	return c.Next()
}

func unauthorized(c *fiber.Ctx, err error) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(llm.ErrorResponse{Error: err.Error()})
}

func claimsFrom(c *fiber.Ctx) auth.Claims {
	claims, _ := c.Locals(localsClaims).(auth.Claims)
	return claims
}
