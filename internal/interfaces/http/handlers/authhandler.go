package handlers

import (
	"github.com/gin-gonic/gin"

	"finderads/internal/infrastructure/auth"
	"finderads/internal/shared/authorization"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/utils"
)

// AuthHandler exchanges an advertiser API key for a short-lived JWT. Admin
// tokens are minted out of band with the token CLI command.
type AuthHandler struct {
	jwtService *auth.JWTService
	apiKeys    *auth.APIKeyVerifier
	logger     logger.Interface
}

func NewAuthHandler(jwtService *auth.JWTService, apiKeys *auth.APIKeyVerifier) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		apiKeys:    apiKeys,
		logger:     logger.NewLogger(),
	}
}

type TokenRequest struct {
	AccountSID string `json:"account_sid" binding:"required"`
	APIKey     string `json:"api_key" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) ExchangeToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.apiKeys.Verify(c.Request.Context(), req.AccountSID, req.APIKey); err != nil {
		h.logger.Warnw("token exchange rejected",
			"account_sid", req.AccountSID,
			"client_ip", c.ClientIP())
		utils.ErrorResponseWithError(c, err)
		return
	}

	token, err := h.jwtService.Generate(req.AccountSID, authorization.RoleAdvertiser)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}
