package handlers

import (
	"errors"
	"fmt"

	"revuea.app/configs/configslog"
	"revuea.app/middlewares"
	"revuea.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ResponseHandler anonim gönderim ve CSV dışa aktarma uçları için handler.
type ResponseHandler struct {
	service          services.IResponseService
	analyticsService services.IAnalyticsService
}

// NewResponseHandler yeni bir ResponseHandler örneği oluşturur.
func NewResponseHandler() *ResponseHandler {
	return &ResponseHandler{
		service:          services.NewResponseService(),
		analyticsService: services.NewAnalyticsService(),
	}
}

// Submit (POST /api/response/submit/:formId) kimlik doğrulaması istemez.
func (h *ResponseHandler) Submit(c *fiber.Ctx) error {
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	var input services.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := h.service.SubmitResponse(c.UserContext(), formID, input); err != nil {
		switch {
		case errors.Is(err, services.ErrFormNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Form not found"})
		case errors.Is(err, services.ErrSubmissionInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
		default:
			configslog.Log.Error("Submit Response Error", zap.Uint("form_id", formID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Response submitted successfully"})
}

// Export (GET /api/response/form/:formId/export) CSV eki döndürür.
// Yalnızca formun sahibi dışa aktarabilir.
func (h *ResponseHandler) Export(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	filename, data, err := h.analyticsService.ExportCSV(c.UserContext(), formID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoResponsesToExport) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No responses to export"})
		}
		return formError(c, "Export CSV Error", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(data)
}
