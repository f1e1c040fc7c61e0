package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medportal/internal/domain"
)

// @Summary Недельный график сотрудника
// @Description Возвращает график на все семь дней. Пока индивидуальный график не задан, действует типовой
// @Tags Расписание
// @Produce json
// @Param staffId path int true "ID сотрудника"
// @Success 200 {array} domain.ShiftEntry "График по дням недели"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /schedules/{staffId}/week [get]
func (h *Handler) getShiftWeek(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("staffId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	entries, err := h.services.Shift.GetWeek(c.Request.Context(), staffID)
	if err != nil {
		h.logger.Warn("ошибка получения графика", zap.Int64("staffId", staffID), zap.Error(err))
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, entries)
}

// @Summary Заменить недельный график
// @Description Полная замена графика сотрудника: ровно семь дней, при любом нарушении прежний график остается
// @Tags Расписание
// @Accept json
// @Produce json
// @Param staffId path int true "ID сотрудника"
// @Param input body domain.ReplaceShiftWeekDTO true "Новый график на неделю"
// @Success 200 {object} messageResponseType "График заменен"
// @Failure 400 {object} errorResponseBody "Неполная неделя или перевернутое окно смены"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /schedules/{staffId}/week [put]
func (h *Handler) replaceShiftWeek(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("staffId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	var input domain.ReplaceShiftWeekDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Shift.ReplaceWeek(c.Request.Context(), staffID, input); err != nil {
		h.logger.Warn("ошибка замены графика", zap.Int64("staffId", staffID), zap.Error(err))
		schedulingErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "график заменен")
}
