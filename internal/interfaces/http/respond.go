package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain"
)

// fail writes the error body {"error": <reason phrase>, "message": <human>}.
// The frontend switches on the message, not the error kind.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   utils.StatusMessage(status),
		Message: message,
	})
}

// failDomain maps a domain error onto the HTTP taxonomy. Unknown errors are
// reported as 500 without leaking internals.
func failDomain(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatus):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "인증에 실패했습니다.")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "권한이 없습니다.")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "요청한 리소스를 찾을 수 없습니다.")
	case errors.Is(err, domain.ErrUsernameTaken):
		return fail(c, fiber.StatusConflict, "이미 사용 중인 아이디입니다.")
	case errors.Is(err, domain.ErrDuplicateTracking):
		return fail(c, fiber.StatusConflict, "이미 사용 중인 운송장 번호입니다.")
	case errors.Is(err, domain.ErrTerminalStatus):
		return fail(c, fiber.StatusConflict, "완료된 주문의 상태는 변경할 수 없습니다.")
	case errors.Is(err, domain.ErrHasOrders):
		return fail(c, fiber.StatusConflict, "배송 주문이 있는 사용자는 삭제할 수 없습니다.")
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "서버 오류가 발생했습니다.")
	}
}
