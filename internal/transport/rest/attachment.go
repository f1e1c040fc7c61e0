package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxAttachmentSize = 10 << 20 // 10 МБ

// @Summary Прикрепить файл к записи
// @Description Сотрудник загружает документ (скан, результаты исследований) к записи на прием
// @Tags Вложения
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID записи"
// @Param file formData file true "Файл: jpeg, png или pdf"
// @Success 201 {object} map[string]interface{} "ID вложения"
// @Failure 400 {object} errorResponseBody "Недопустимый тип или размер файла"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id}/attachments [post]
func (h *Handler) uploadAttachment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	appointmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID записи")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "файл не передан")
		return
	}

	if fileHeader.Size > maxAttachmentSize {
		badRequestResponse(c, "размер файла превышает 10 МБ")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("ошибка открытия файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка чтения файла")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка чтения файла")
		return
	}

	id, err := h.services.Attachment.Upload(c.Request.Context(), userID, appointmentID, data, fileHeader.Filename)
	if err != nil {
		h.logger.Warn("ошибка загрузки вложения", zap.Int64("appointmentId", appointmentID), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Вложения записи
// @Tags Вложения
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {array} domain.Attachment "Список вложений"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Security ApiKeyAuth
// @Router /appointments/{id}/attachments [get]
func (h *Handler) getAppointmentAttachments(c *gin.Context) {
	appointmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID записи")
		return
	}

	attachments, err := h.services.Attachment.GetByAppointmentID(c.Request.Context(), appointmentID)
	if err != nil {
		h.logger.Error("ошибка получения вложений", zap.Int64("appointmentId", appointmentID), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, attachments)
}

// @Summary Удалить вложение
// @Tags Вложения
// @Produce json
// @Param id path int true "ID вложения"
// @Success 204 {object} nil "Вложение удалено"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /attachments/{id} [delete]
func (h *Handler) deleteAttachment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Attachment.Delete(c.Request.Context(), id); err != nil {
		h.logger.Warn("ошибка удаления вложения", zap.Int64("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	noContentResponse(c)
}
