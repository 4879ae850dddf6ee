package handlers

import (
	"github.com/gin-gonic/gin"

	"finderads/internal/application/banner/usecases"
	"finderads/internal/shared/authorization"
	"finderads/internal/shared/constants"
	"finderads/internal/shared/id"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/utils"
)

type ReservationHandler struct {
	createReservationUC *usecases.CreateReservationUseCase
	getReservationUC    *usecases.GetReservationUseCase
	listReservationsUC  *usecases.ListReservationsUseCase
	updateCreativeUC    *usecases.UpdateCreativeUseCase
	setActiveUC         *usecases.SetReservationActiveUseCase
	bookDatesUC         *usecases.BookDatesUseCase
	cancelReservationUC *usecases.CancelReservationUseCase
	logger              logger.Interface
}

func NewReservationHandler(
	createReservationUC *usecases.CreateReservationUseCase,
	getReservationUC *usecases.GetReservationUseCase,
	listReservationsUC *usecases.ListReservationsUseCase,
	updateCreativeUC *usecases.UpdateCreativeUseCase,
	setActiveUC *usecases.SetReservationActiveUseCase,
	bookDatesUC *usecases.BookDatesUseCase,
	cancelReservationUC *usecases.CancelReservationUseCase,
) *ReservationHandler {
	return &ReservationHandler{
		createReservationUC: createReservationUC,
		getReservationUC:    getReservationUC,
		listReservationsUC:  listReservationsUC,
		updateCreativeUC:    updateCreativeUC,
		setActiveUC:         setActiveUC,
		bookDatesUC:         bookDatesUC,
		cancelReservationUC: cancelReservationUC,
		logger:              logger.NewLogger(),
	}
}

type CreateReservationRequest struct {
	Position    string   `json:"position" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	TargetURL   string   `json:"target_url" binding:"required,url"`
	Badges      []string `json:"badges"`
}

type UpdateCreativeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	TargetURL   string   `json:"target_url" binding:"required,url"`
	Badges      []string `json:"badges"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type BookDatesRequest struct {
	Dates []string `json:"dates" binding:"required,min=1,dive,bookingdate"`
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create reservation", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateReservationCommand{
		AccountSID:  c.GetString(constants.ContextKeyAccountSID),
		Position:    req.Position,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		TargetURL:   req.TargetURL,
		Badges:      req.Badges,
	}

	result, err := h.createReservationUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Reservation submitted for review")
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	reservationSID, err := parseReservationSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetReservationQuery{
		ReservationSID: reservationSID,
		AccountSID:     callerAccountSID(c),
	}

	result, err := h.getReservationUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ListReservations returns the caller's own reservations. Admins see the
// moderation queue via the admin routes instead.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := usecases.ListReservationsQuery{
		AccountSID: c.GetString(constants.ContextKeyAccountSID),
		Offset:     p.Offset(),
		Limit:      p.PageSize,
	}

	reservations, total, err := h.listReservationsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, reservations, total, p.Page, p.PageSize)
}

func (h *ReservationHandler) UpdateCreative(c *gin.Context) {
	reservationSID, err := parseReservationSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateCreativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update creative",
			"reservation_sid", reservationSID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdateCreativeCommand{
		ReservationSID: reservationSID,
		AccountSID:     c.GetString(constants.ContextKeyAccountSID),
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		TargetURL:      req.TargetURL,
		Badges:         req.Badges,
	}

	result, err := h.updateCreativeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Creative updated")
}

func (h *ReservationHandler) SetActive(c *gin.Context) {
	reservationSID, err := parseReservationSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SetReservationActiveCommand{
		ReservationSID: reservationSID,
		AccountSID:     callerAccountSID(c),
		Active:         *req.Active,
	}

	result, err := h.setActiveUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *ReservationHandler) BookDates(c *gin.Context) {
	reservationSID, err := parseReservationSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req BookDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for book dates",
			"reservation_sid", reservationSID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.BookDatesCommand{
		ReservationSID: reservationSID,
		AccountSID:     c.GetString(constants.ContextKeyAccountSID),
		Dates:          req.Dates,
	}

	result, err := h.bookDatesUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Dates booked")
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	reservationSID, err := parseReservationSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CancelReservationCommand{
		ReservationSID: reservationSID,
		AccountSID:     callerAccountSID(c),
	}

	if err := h.cancelReservationUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parseReservationSID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "sid", id.PrefixReservation, "reservation")
}

// callerAccountSID returns the caller's account SID for ownership checks, or
// empty when the caller is an admin (admins bypass ownership).
func callerAccountSID(c *gin.Context) string {
	role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
	if role.IsAdmin() {
		return ""
	}
	return c.GetString(constants.ContextKeyAccountSID)
}
