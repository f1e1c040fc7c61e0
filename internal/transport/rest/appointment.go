package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medportal/internal/domain"
	"medportal/internal/scheduling"
)

// @Summary Свободные слоты
// @Description Возвращает доступные времена начала приема для сотрудника, даты и услуги
// @Tags Расписание
// @Produce json
// @Param staff_id query int true "ID сотрудника"
// @Param service_id query int true "ID услуги"
// @Param date query string true "Дата в формате YYYY-MM-DD"
// @Success 200 {array} string "Времена начала в формате HH:MM:SS"
// @Failure 400 {object} errorResponseBody "Дата вне допустимого диапазона или неверный формат"
// @Failure 404 {object} errorResponseBody "Сотрудник или услуга не найдены"
// @Router /schedules/free-slots [get]
func (h *Handler) getFreeSlots(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Query("staff_id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат staff_id")
		return
	}

	serviceID, err := strconv.ParseInt(c.Query("service_id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат service_id")
		return
	}

	date, err := scheduling.ParseDateStamp(c.Query("date"))
	if err != nil {
		badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	slots, err := h.services.Appointment.GetFreeSlots(c.Request.Context(), staffID, serviceID, date)
	if err != nil {
		h.logger.Warn("ошибка получения свободных слотов",
			zap.Int64("staffId", staffID),
			zap.String("date", date.String()),
			zap.Error(err))
		schedulingErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Создать запись на прием
// @Description Пациент бронирует свободный слот. Время окончания вычисляется из длительности услуги
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные для записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или дата вне диапазона"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 409 {object} errorResponseBody "Выбранный слот уже занят"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.logger.Warn("ошибка создания записи на прием", zap.Error(err))
		schedulingErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Оформить очную запись
// @Description Регистратура оформляет пациента без предварительной записи на текущий день
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateWalkInDTO true "Данные очной записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Выбранный слот уже занят"
// @Security ApiKeyAuth
// @Router /appointments/walkin [post]
func (h *Handler) createWalkInAppointment(c *gin.Context) {
	var input domain.CreateWalkInDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Appointment.CreateWalkIn(c.Request.Context(), input)
	if err != nil {
		h.logger.Warn("ошибка оформления очной записи", zap.Error(err))
		schedulingErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Получить запись по ID
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Данные записи"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "запись не найдена")
		return
	}

	role, _ := getUserRole(c)
	if role == domain.UserRolePatient && appointment.PatientID != userID {
		h.logger.Warn("попытка доступа к чужой записи", zap.Int64("userId", userID), zap.Int64("appointmentId", id))
		forbiddenResponse(c)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Список записей
// @Description Пациент видит только свои записи, врач - свои приемы, регистратура и администратор - все
// @Tags Записи
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param date_from query string false "Начало периода YYYY-MM-DD"
// @Param date_to query string false "Конец периода YYYY-MM-DD"
// @Param staff_id query int false "Фильтр по сотруднику"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список записей"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.AppointmentFilter{Limit: limit, Offset: offset}

	if statusStr := c.Query("status"); statusStr != "" {
		status := scheduling.Status(statusStr)
		filter.Status = &status
	}
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		if parsed, err := scheduling.ParseDateStamp(dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		if parsed, err := scheduling.ParseDateStamp(dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	role, _ := getUserRole(c)
	switch role {
	case domain.UserRolePatient:
		filter.PatientID = &userID
	case domain.UserRoleDoctor:
		staff, err := h.services.Staff.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			notFoundResponse(c, "карточка сотрудника не найдена")
			return
		}
		filter.StaffID = &staff.ID
	default:
		// Регистратура и администратор фильтруют по любому сотруднику.
		if staffIDStr := c.Query("staff_id"); staffIDStr != "" {
			if staffID, err := strconv.ParseInt(staffIDStr, 10, 64); err == nil {
				filter.StaffID = &staffID
			}
		}
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения списка записей", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Сменить статус записи
// @Description Переводит запись в новый статус с проверкой прав и допустимости перехода
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.ChangeStatusDTO true "Новый статус и причина отмены"
// @Success 200 {object} messageResponseType "Статус изменен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Нет прав на изменение записи"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/status [patch]
func (h *Handler) changeAppointmentStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var input domain.ChangeStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	role, _ := getUserRole(c)
	if err := h.services.Appointment.ChangeStatus(c.Request.Context(), userID, role, id, input); err != nil {
		h.logger.Warn("ошибка смены статуса записи",
			zap.Int64("id", id),
			zap.String("status", string(input.Status)),
			zap.Error(err))
		schedulingErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "статус записи изменен")
}
