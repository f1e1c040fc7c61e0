package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medportal/internal/domain"
)

// @Summary Справочник услуг
// @Description Возвращает услуги клиники. По умолчанию только активные
// @Tags Услуги
// @Produce json
// @Param all query bool false "Показать также снятые услуги"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список услуг"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /services [get]
func (h *Handler) getClinicServices(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.ClinicServiceFilter{
		OnlyActive: c.DefaultQuery("all", "false") != "true",
		Limit:      limit,
		Offset:     offset,
	}

	services, total, err := h.services.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения справочника услуг", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, services, total, page, limit)
}

// @Summary Получить услугу по ID
// @Tags Услуги
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} domain.ClinicService "Услуга"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Router /services/{id} [get]
func (h *Handler) getClinicServiceByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	clinicService, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "услуга не найдена")
		return
	}

	successResponse(c, http.StatusOK, clinicService)
}

// @Summary Создать услугу
// @Tags Услуги
// @Accept json
// @Produce json
// @Param input body domain.CreateClinicServiceDTO true "Данные услуги"
// @Success 201 {object} map[string]interface{} "ID созданной услуги"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /services [post]
func (h *Handler) createClinicService(c *gin.Context) {
	var input domain.CreateClinicServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Catalog.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("ошибка создания услуги", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить услугу
// @Tags Услуги
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.UpdateClinicServiceDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *Handler) updateClinicService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var input domain.UpdateClinicServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Catalog.Update(c.Request.Context(), id, input); err != nil {
		h.logger.Error("ошибка обновления услуги", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "услуга обновлена")
}

// @Summary Снять услугу
// @Description Деактивирует услугу, существующие записи на прием сохраняются
// @Tags Услуги
// @Produce json
// @Param id path int true "ID услуги"
// @Success 204 {object} nil "Услуга снята"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /services/{id} [delete]
func (h *Handler) deleteClinicService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления услуги", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	noContentResponse(c)
}
