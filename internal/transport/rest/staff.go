package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medportal/internal/domain"
)

// @Summary Список сотрудников
// @Description Возвращает сотрудников клиники с фильтрацией по роли и специальности
// @Tags Сотрудники
// @Produce json
// @Param role query string false "Роль: doctor или nurse"
// @Param specialty query string false "Специальность"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список сотрудников"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /staff [get]
func (h *Handler) getStaffList(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.StaffFilter{Limit: limit, Offset: offset}

	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.StaffRole(roleStr)
		filter.Role = &role
	}
	if specialty := c.Query("specialty"); specialty != "" {
		filter.Specialty = &specialty
	}

	staff, total, err := h.services.Staff.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения списка сотрудников", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, staff, total, page, limit)
}

// @Summary Получить сотрудника по ID
// @Tags Сотрудники
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 200 {object} domain.Staff "Карточка сотрудника"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Router /staff/{id} [get]
func (h *Handler) getStaffByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	staff, err := h.services.Staff.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "сотрудник не найден")
		return
	}

	successResponse(c, http.StatusOK, staff)
}

// @Summary Создать карточку сотрудника
// @Description Администратор привязывает карточку врача или медсестры к пользователю
// @Tags Сотрудники
// @Accept json
// @Produce json
// @Param input body domain.CreateStaffDTO true "Данные сотрудника"
// @Success 201 {object} map[string]interface{} "ID созданной карточки"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /staff [post]
func (h *Handler) createStaff(c *gin.Context) {
	var input domain.CreateStaffDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Staff.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("ошибка создания карточки сотрудника", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить карточку сотрудника
// @Tags Сотрудники
// @Accept json
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param input body domain.UpdateStaffDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /staff/{id} [put]
func (h *Handler) updateStaff(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var input domain.UpdateStaffDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Staff.Update(c.Request.Context(), id, input); err != nil {
		h.logger.Error("ошибка обновления сотрудника", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "карточка сотрудника обновлена")
}

// @Summary Деактивировать сотрудника
// @Tags Сотрудники
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 204 {object} nil "Сотрудник деактивирован"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /staff/{id} [delete]
func (h *Handler) deleteStaff(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Staff.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления сотрудника", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	noContentResponse(c)
}
