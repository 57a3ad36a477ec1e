package handlers

import (
	"errors"
	"time"

	"revuea.app/configs/configslog"
	"revuea.app/middlewares"
	"revuea.app/models"
	"revuea.app/pkg/queryparams"
	"revuea.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FormHandler form yaşam döngüsü, analiz ve özet uçları için handler.
type FormHandler struct {
	service          services.IFormService
	analyticsService services.IAnalyticsService
	summaryService   services.ISummaryService
}

// NewFormHandler yeni bir FormHandler örneği oluşturur.
func NewFormHandler(summaryService services.ISummaryService) *FormHandler {
	return &FormHandler{
		service:          services.NewFormService(),
		analyticsService: services.NewAnalyticsService(),
		summaryService:   summaryService,
	}
}

// formError servis hatalarını HTTP durum koduna ve istemci mesajına çevirir.
func formError(c *fiber.Ctx, operation string, err error) error {
	switch {
	case errors.Is(err, services.ErrFormNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Form not found"})
	case errors.Is(err, services.ErrFormForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You are not authorized to perform this action"})
	case errors.Is(err, services.ErrFormHasResponses):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Cannot edit form that has responses"})
	case errors.Is(err, services.ErrFormInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	default:
		configslog.Log.Error(operation, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}
}

func parseFormID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("formId")
	if err != nil || id <= 0 {
		return 0, errors.New("geçersiz form ID")
	}
	return uint(id), nil
}

// formWithActive türetilmiş isActive alanını form gösterimine ekler.
type formWithActive struct {
	*models.Form
	IsActive bool `json:"isActive"`
}

// Create (POST /api/form/create)
func (h *FormHandler) Create(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)

	var input services.FormInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	form, err := h.service.CreateForm(c.UserContext(), userID, input)
	if err != nil {
		return formError(c, "Form Create Error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Form created successfully",
		"data":    fiber.Map{"formId": form.ID, "shareKey": form.ShareKey, "questions": form.Questions},
	})
}

// MyForms (GET /api/form/my-forms) kullanıcının formlarını sayfalı listeler.
func (h *FormHandler) MyForms(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)

	params := queryparams.DefaultListParams("start_time")
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("start_time")
	}

	result, err := h.service.GetFormsForUser(c.UserContext(), userID, params)
	if err != nil {
		return formError(c, "MyForms Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    result.Data,
		"meta":    result.Meta,
	})
}

// GetByID (GET /api/form/:formId) public uçtur; isActive türetilmiş alanıyla döner.
func (h *FormHandler) GetByID(c *fiber.Ctx) error {
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	form, err := h.service.GetFormByID(c.UserContext(), formID)
	if err != nil {
		return formError(c, "GetForm Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    formWithActive{Form: form, IsActive: form.IsActiveAt(time.Now())},
	})
}

// GetByShareKey (GET /api/form/key/:shareKey) public paylaşım linki ucu.
func (h *FormHandler) GetByShareKey(c *fiber.Ctx) error {
	shareKey := c.Params("shareKey")

	form, err := h.service.GetFormByShareKey(c.UserContext(), shareKey)
	if err != nil {
		return formError(c, "GetFormByShareKey Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    formWithActive{Form: form, IsActive: form.IsActiveAt(time.Now())},
	})
}

// Update (PUT /api/form/:formId) soru setini komple değiştirir; yanıt almış
// formlarda reddedilir.
func (h *FormHandler) Update(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	var input services.FormInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	form, err := h.service.UpdateForm(c.UserContext(), formID, userID, input)
	if err != nil {
		return formError(c, "Form Update Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Form updated successfully",
		"data":    fiber.Map{"formId": form.ID, "questions": form.Questions},
	})
}

// End (PATCH /api/form/:formId/end) formu derhal kapatır.
func (h *FormHandler) End(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	form, err := h.service.EndForm(c.UserContext(), formID, userID)
	if err != nil {
		return formError(c, "Form End Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Form ended successfully",
		"data":    fiber.Map{"id": form.ID, "endTime": form.EndTime},
	})
}

// Delete (DELETE /api/form/:formId)
func (h *FormHandler) Delete(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	if err := h.service.DeleteForm(c.UserContext(), formID, userID); err != nil {
		return formError(c, "Form Delete Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Form deleted successfully"})
}

// Analytics (GET /api/form/:formId/analytics) soru bazlı özetleri döndürür.
func (h *FormHandler) Analytics(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	analytics, err := h.analyticsService.FormAnalytics(c.UserContext(), formID, userID)
	if err != nil {
		return formError(c, "Form Analytics Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Analytics fetched successfully",
		"data":    analytics,
	})
}

// Summary (GET /api/form/:formId/summary) AI özetini döndürür.
func (h *FormHandler) Summary(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	formID, err := parseFormID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid form id"})
	}

	summary, err := h.summaryService.SummarizeForm(c.UserContext(), formID, userID)
	if err != nil {
		if errors.Is(err, services.ErrSummaryFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Something went wrong"})
		}
		return formError(c, "Form Summary Error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Summary generated successfully",
		"data":    fiber.Map{"summary": summary},
	})
}
