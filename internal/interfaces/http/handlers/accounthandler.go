package handlers

import (
	"github.com/gin-gonic/gin"

	"finderads/internal/application/account/usecases"
	"finderads/internal/shared/constants"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/utils"
)

type AccountHandler struct {
	getAccountUC  *usecases.GetAccountUseCase
	listLedgerUC  *usecases.ListLedgerUseCase
	issueAPIKeyUC *usecases.IssueAPIKeyUseCase
	logger        logger.Interface
}

func NewAccountHandler(
	getAccountUC *usecases.GetAccountUseCase,
	listLedgerUC *usecases.ListLedgerUseCase,
	issueAPIKeyUC *usecases.IssueAPIKeyUseCase,
) *AccountHandler {
	return &AccountHandler{
		getAccountUC:  getAccountUC,
		listLedgerUC:  listLedgerUC,
		issueAPIKeyUC: issueAPIKeyUC,
		logger:        logger.NewLogger(),
	}
}

// GetMe returns the caller's own account.
func (h *AccountHandler) GetMe(c *gin.Context) {
	query := usecases.GetAccountQuery{
		AccountSID: c.GetString(constants.ContextKeyAccountSID),
	}

	result, err := h.getAccountUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ListLedger returns the caller's credit journal, newest first.
func (h *AccountHandler) ListLedger(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := usecases.ListLedgerQuery{
		AccountSID: c.GetString(constants.ContextKeyAccountSID),
		Offset:     p.Offset(),
		Limit:      p.PageSize,
	}

	entries, total, err := h.listLedgerUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, entries, total, p.Page, p.PageSize)
}

// IssueAPIKey rotates the caller's API key. The plaintext key is returned
// once and only the hash is kept.
func (h *AccountHandler) IssueAPIKey(c *gin.Context) {
	cmd := usecases.IssueAPIKeyCommand{
		AccountSID: c.GetString(constants.ContextKeyAccountSID),
	}

	result, err := h.issueAPIKeyUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "API key issued")
}
