package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/application/shipping"
)

// ShippingHandler handles order intake, listing, lifecycle transitions and
// the public tracking lookup.
type ShippingHandler struct {
	uc *shipping.ShippingUseCase
}

// NewShippingHandler builds the shipping handler.
func NewShippingHandler(uc *shipping.ShippingUseCase) *ShippingHandler {
	return &ShippingHandler{uc: uc}
}

// Create godoc
// @Summary      Register a shipping order
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderRequest  true  "intake form"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipping/orders [post]
func (h *ShippingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 요청 본문입니다.")
	}
	out, err := h.uc.Create(GetIdentity(c), in)
	if err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List shipping orders
// @Tags         shipping
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "page (default 1)"
// @Param        limit  query  int  false  "page size (default 10, max 100)"
// @Success      200    {object}  dto.OrderListResponse
// @Router       /api/shipping/orders [get]
func (h *ShippingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 쿼리 파라미터입니다.")
	}
	out, err := h.uc.List(GetIdentity(c), page)
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get one shipping order
// @Tags         shipping
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipping/orders/{id} [get]
func (h *ShippingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetIdentity(c), c.Params("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transition an order's status
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "order id"
// @Param        body  body  dto.UpdateStatusRequest  true  "new status"
// @Success      200   {object}  dto.UpdateStatusResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipping/orders/{id}/status [patch]
func (h *ShippingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 요청 본문입니다.")
	}
	out, err := h.uc.UpdateStatus(GetIdentity(c), c.Params("id"), in, requestMeta(c))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// AssignTracking godoc
// @Summary      Assign a tracking number
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "order id"
// @Param        body  body  dto.AssignTrackingRequest  true  "tracking fields"
// @Success      200   {object}  dto.AssignTrackingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipping/orders/{id}/tracking [post]
func (h *ShippingHandler) AssignTracking(c *fiber.Ctx) error {
	var in dto.AssignTrackingRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "잘못된 요청 본문입니다.")
	}
	out, err := h.uc.AssignTracking(GetIdentity(c), c.Params("id"), in, requestMeta(c))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// Track godoc
// @Summary      Public tracking lookup
// @Tags         shipping
// @Produce      json
// @Param        trackingNumber  path  string  true  "tracking number"
// @Success      200  {object}  dto.TrackingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipping/tracking/{trackingNumber} [get]
func (h *ShippingHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.Track(c.Params("trackingNumber"))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(out)
}

// Waybill godoc
// @Summary      Printable waybill PDF
// @Tags         shipping
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "order id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipping/orders/{id}/waybill [get]
func (h *ShippingHandler) Waybill(c *fiber.Ctx) error {
	file, err := h.uc.Waybill(GetIdentity(c), c.Params("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return sendFile(c, file)
}

// sendFile streams a rendered download with the attachment headers set.
func sendFile(c *fiber.Ctx, file *dto.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Data)
}
