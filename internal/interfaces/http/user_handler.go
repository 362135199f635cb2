package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/application/usecase"
)

// UserHandler handles account administration and the activity log. Reads are
// gated to manager and above in the router, writes to admin.
type UserHandler struct {
	users    *usecase.UserUseCase
	activity *usecase.ActivityUseCase
}

// NewUserHandler builds the user admin handler.
func NewUserHandler(users *usecase.UserUseCase, activity *usecase.ActivityUseCase) *UserHandler {
	return &UserHandler{users: users, activity: activity}
}

// List godoc
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "page"
// @Param        limit   query  int     false  "page size"
// @Param        search  query  string  false  "matches username, name or company"
// @Param        role    query  string  false  "admin, manager or user"
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.UserListRequest
	if err := c.QueryParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 쿼리 파라미터입니다.")
	}
	out, err := h.users.List(in)
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get one user account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	out, err := h.users.Get(c.Params("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "account fields"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 요청 본문입니다.")
	}
	out, err := h.users.Create(GetIdentity(c), in, requestMeta(c))
	if err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "user id"
// @Param        body  body  dto.UpdateUserRequest  true  "fields to change"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 요청 본문입니다.")
	}
	out, err := h.users.Update(GetIdentity(c), c.Params("id"), in, requestMeta(c))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a user account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(GetIdentity(c), c.Params("id"), requestMeta(c)); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(fiber.Map{"message": "사용자가 삭제되었습니다."})
}

// Activities godoc
// @Summary      List audit-trail records
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page     query  int     false  "page"
// @Param        limit    query  int     false  "page size"
// @Param        user_id  query  string  false  "filter by actor"
// @Param        action   query  string  false  "filter by action"
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/users/activities/logs [get]
func (h *UserHandler) Activities(c *fiber.Ctx) error {
	var in dto.ActivityListRequest
	if err := c.QueryParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 쿼리 파라미터입니다.")
	}
	out, err := h.activity.List(in)
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}
