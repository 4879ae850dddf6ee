package handlers

import (
	"github.com/gin-gonic/gin"

	accountusecases "finderads/internal/application/account/usecases"
	bannerusecases "finderads/internal/application/banner/usecases"
	"finderads/internal/shared/id"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/utils"
)

// AdminHandler exposes the back-office surface: the moderation queue, manual
// ledger adjustments and account management.
type AdminHandler struct {
	listReservationsUC *bannerusecases.ListReservationsUseCase
	approveUC          *bannerusecases.ApproveReservationUseCase
	rejectUC           *bannerusecases.RejectReservationUseCase
	registerAccountUC  *accountusecases.RegisterAccountUseCase
	getAccountUC       *accountusecases.GetAccountUseCase
	listLedgerUC       *accountusecases.ListLedgerUseCase
	adjustCreditsUC    *accountusecases.AdjustCreditsUseCase
	auditLedgerUC      *accountusecases.AuditLedgerUseCase
	logger             logger.Interface
}

func NewAdminHandler(
	listReservationsUC *bannerusecases.ListReservationsUseCase,
	approveUC *bannerusecases.ApproveReservationUseCase,
	rejectUC *bannerusecases.RejectReservationUseCase,
	registerAccountUC *accountusecases.RegisterAccountUseCase,
	getAccountUC *accountusecases.GetAccountUseCase,
	listLedgerUC *accountusecases.ListLedgerUseCase,
	adjustCreditsUC *accountusecases.AdjustCreditsUseCase,
	auditLedgerUC *accountusecases.AuditLedgerUseCase,
) *AdminHandler {
	return &AdminHandler{
		listReservationsUC: listReservationsUC,
		approveUC:          approveUC,
		rejectUC:           rejectUC,
		registerAccountUC:  registerAccountUC,
		getAccountUC:       getAccountUC,
		listLedgerUC:       listLedgerUC,
		adjustCreditsUC:    adjustCreditsUC,
		auditLedgerUC:      auditLedgerUC,
		logger:             logger.NewLogger(),
	}
}

type RegisterAccountRequest struct {
	UserEmail string `json:"user_email" binding:"required,email"`
}

type AdjustCreditsRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// ListReservations returns the moderation queue, optionally filtered by
// status.
func (h *AdminHandler) ListReservations(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := bannerusecases.ListReservationsQuery{
		Status: c.Query("status"),
		Offset: p.Offset(),
		Limit:  p.PageSize,
	}

	reservations, total, err := h.listReservationsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, reservations, total, p.Page, p.PageSize)
}

func (h *AdminHandler) ApproveReservation(c *gin.Context) {
	reservationSID, err := parseReservationSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.approveUC.Execute(c.Request.Context(), bannerusecases.ApproveReservationCommand{
		ReservationSID: reservationSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Reservation approved")
}

func (h *AdminHandler) RejectReservation(c *gin.Context) {
	reservationSID, err := parseReservationSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rejectUC.Execute(c.Request.Context(), bannerusecases.RejectReservationCommand{
		ReservationSID: reservationSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Reservation rejected")
}

func (h *AdminHandler) RegisterAccount(c *gin.Context) {
	var req RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register account", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerAccountUC.Execute(c.Request.Context(), accountusecases.RegisterAccountCommand{
		UserEmail: req.UserEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Account registered")
}

func (h *AdminHandler) GetAccount(c *gin.Context) {
	accountSID, err := parseAccountSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getAccountUC.Execute(c.Request.Context(), accountusecases.GetAccountQuery{
		AccountSID: accountSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *AdminHandler) ListAccountLedger(c *gin.Context) {
	accountSID, err := parseAccountSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)

	entries, total, err := h.listLedgerUC.Execute(c.Request.Context(), accountusecases.ListLedgerQuery{
		AccountSID: accountSID,
		Offset:     p.Offset(),
		Limit:      p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, entries, total, p.Page, p.PageSize)
}

// AdjustCredits applies a signed manual credit adjustment with a journal
// entry recording the reason.
func (h *AdminHandler) AdjustCredits(c *gin.Context) {
	accountSID, err := parseAccountSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for adjust credits",
			"account_sid", accountSID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.adjustCreditsUC.Execute(c.Request.Context(), accountusecases.AdjustCreditsCommand{
		AccountSID: accountSID,
		Amount:     req.Amount,
		Reason:     req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Credits adjusted")
}

// AuditLedger recomputes the journal sum for an account and compares it to
// the live balance.
func (h *AdminHandler) AuditLedger(c *gin.Context) {
	accountSID, err := parseAccountSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.auditLedgerUC.Execute(c.Request.Context(), accountusecases.AuditLedgerQuery{
		AccountSID: accountSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func parseAccountSID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "sid", id.PrefixAccount, "account")
}
