package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/termpro2000/fdapp/internal/application/auth"
	"github.com/termpro2000/fdapp/internal/application/dto"
)

// AuthHandler handles registration, login and session introspection.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Register a user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, name"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 요청 본문입니다.")
	}
	if in.Username == "" || in.Password == "" || in.Name == "" {
		return fail(c, fiber.StatusBadRequest, "아이디, 비밀번호, 이름은 필수입니다.")
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Log in and issue a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 요청 본문입니다.")
	}
	if in.Username == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "아이디와 비밀번호는 필수입니다.")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Current user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetIdentity(c))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// CheckUsername godoc
// @Summary      Check username availability
// @Tags         auth
// @Produce      json
// @Param        username  path  string  true  "username to check"
// @Success      200  {object}  dto.UsernameCheckResponse
// @Router       /api/auth/check-username/{username} [get]
func (h *AuthHandler) CheckUsername(c *fiber.Ctx) error {
	out, err := h.uc.CheckUsername(c.Params("username"))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}
