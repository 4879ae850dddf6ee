package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finderads/internal/application/banner/usecases"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/utils"
)

// BannerHandler serves the public, unauthenticated read surface: slot
// positions, availability calendars and the live ad for a position.
type BannerHandler struct {
	listPositionsUC *usecases.ListPositionsUseCase
	getCalendarUC   *usecases.GetCalendarUseCase
	resolveBannerUC *usecases.ResolveActiveBannerUseCase
	logger          logger.Interface
}

func NewBannerHandler(
	listPositionsUC *usecases.ListPositionsUseCase,
	getCalendarUC *usecases.GetCalendarUseCase,
	resolveBannerUC *usecases.ResolveActiveBannerUseCase,
) *BannerHandler {
	return &BannerHandler{
		listPositionsUC: listPositionsUC,
		getCalendarUC:   getCalendarUC,
		resolveBannerUC: resolveBannerUC,
		logger:          logger.NewLogger(),
	}
}

func (h *BannerHandler) ListPositions(c *gin.Context) {
	utils.OKResponse(c, h.listPositionsUC.Execute(c.Request.Context()))
}

// GetCalendar returns free and taken dates for a position over a range.
func (h *BannerHandler) GetCalendar(c *gin.Context) {
	query := usecases.GetCalendarQuery{
		Position: c.Param("position"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}

	result, err := h.getCalendarUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ResolveBanner returns the creative to show for a position today. An empty
// slot is a 200 with null data, not an error, so embedding pages never break.
func (h *BannerHandler) ResolveBanner(c *gin.Context) {
	query := usecases.ResolveActiveBannerQuery{
		Position: c.Param("position"),
		Date:     c.Query("date"),
	}

	result, err := h.resolveBannerUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result == nil {
		utils.SuccessResponse(c, http.StatusOK, "", nil)
		return
	}

	utils.OKResponse(c, result)
}
