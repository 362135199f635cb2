package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/application/export"
)

// ExportHandler streams the orders export and the statistics report.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler builds the export handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Orders godoc
// @Summary      Download the orders export
// @Tags         exports
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        status     query  string  false  "shipping status or all"
// @Param        userId     query  string  false  "filter by owner (manager+)"
// @Param        format     query  string  false  "xlsx (default) or csv"
// @Success      200  {file}  binary
// @Router       /api/exports/orders [get]
func (h *ExportHandler) Orders(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 쿼리 파라미터입니다.")
	}
	file, err := h.uc.ExportOrders(GetIdentity(c), in, requestMeta(c))
	if err != nil {
		return failDomain(c, err)
	}
	return sendFile(c, file)
}

// Statistics godoc
// @Summary      Download the statistics report
// @Tags         exports
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        status     query  string  false  "shipping status or all"
// @Param        format     query  string  false  "xlsx (default) or csv"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/exports/statistics [get]
func (h *ExportHandler) Statistics(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 쿼리 파라미터입니다.")
	}
	file, err := h.uc.ExportStatistics(GetIdentity(c), in, requestMeta(c))
	if err != nil {
		return failDomain(c, err)
	}
	return sendFile(c, file)
}
