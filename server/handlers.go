package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/faramade/ecotrack/auth"
	"github.com/faramade/ecotrack/chat"
	"github.com/faramade/ecotrack/pkg/llm"
	"github.com/faramade/ecotrack/store"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type tokenRequest struct {
	// Username also accepts an email address, as the original login form did.
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	user, err := s.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUser):
			return c.Status(fiber.StatusConflict).JSON(llm.ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrInvalidUsername),
			errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrPasswordTooLong):
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
		}
		s.logger.Error("registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "registration failed"})
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return c.Status(fiber.StatusCreated).JSON(registerResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	token, err := s.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return unauthorized(c, err)
		}
		s.logger.Error("login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "login failed"})
	}

	return c.JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	token, _ := c.Locals(localsToken).(string)
	s.auth.Revoke(token)

	s.logger.Info("user logged out", zap.String("username", claimsFrom(c).Subject))
	return c.JSON(map[string]string{"message": "Successfully logged out"})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	claims := claimsFrom(c)
	reply, err := s.orchestrator.Send(c.Context(), claims.Subject, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
		}
		var completionErr *llm.CompletionError
		if errors.As(err, &completionErr) {
			s.logger.Error("completion failed",
				zap.String("request_id", requestIDFrom(c)),
				zap.String("user", claims.Subject),
				zap.Error(err),
			)
			return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "completion failed"})
		}
		s.logger.Error("exchange failed",
			zap.String("request_id", requestIDFrom(c)),
			zap.String("user", claims.Subject),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "exchange failed"})
	}

	return c.JSON(chatResponse{Reply: reply})
}
