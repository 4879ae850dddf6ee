package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finderads/internal/application/billing/usecases"
	"finderads/internal/domain/account"
	"finderads/internal/infrastructure/billing"
	"finderads/internal/infrastructure/persistence/models"
	"finderads/internal/infrastructure/repository"
	"finderads/internal/shared/db"
	"finderads/internal/shared/logger"
)

const webhookTestSecret = "whsec_test"

func setupWebhookTest(t *testing.T) (*gin.Engine, *billing.WebhookVerifier, account.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.ProAccountModel{}, &models.CreditEntryModel{}))

	log := logger.NewLogger()
	accountRepo := repository.NewAccountRepository(gdb, log)
	ledgerRepo := repository.NewLedgerRepository(gdb, log)
	uc := usecases.NewHandleWebhookUseCase(accountRepo, ledgerRepo, db.NewTransactionManager(gdb), log)

	verifier := billing.NewWebhookVerifier(webhookTestSecret, 300)
	handler := NewWebhookHandler(verifier, uc)

	engine := gin.New()
	engine.POST("/webhooks/stripe", handler.HandleStripeWebhook)

	return engine, verifier, accountRepo
}

func checkoutPayload(eventID, customer, email string, credits int) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"type":"checkout.session.completed","created":%d,"data":{"object":{"id":"cs_1","customer":%q,"metadata":{"credits":"%d","account_email":%q}}}}`,
		eventID, time.Now().Unix(), customer, credits, email))
}

func postWebhook(engine *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_SignedCheckoutCreditsAccount(t *testing.T) {
	engine, verifier, accountRepo := setupWebhookTest(t)

	body := checkoutPayload("evt_http_1", "cus_http_1", "hook@example.com", 40)
	w := postWebhook(engine, body, verifier.SignHeader(body, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)

	acct, err := accountRepo.GetByEmail(context.Background(), "hook@example.com")
	require.NoError(t, err)
	assert.Equal(t, 40, acct.Credits())
}

func TestWebhookHandler_MissingSignatureRejected(t *testing.T) {
	engine, _, accountRepo := setupWebhookTest(t)

	body := checkoutPayload("evt_http_2", "cus_http_2", "nosig@example.com", 40)
	w := postWebhook(engine, body, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, err := accountRepo.GetByEmail(context.Background(), "nosig@example.com")
	assert.Error(t, err)
}

func TestWebhookHandler_TamperedBodyRejected(t *testing.T) {
	engine, verifier, _ := setupWebhookTest(t)

	body := checkoutPayload("evt_http_3", "cus_http_3", "tamper@example.com", 40)
	signature := verifier.SignHeader(body, time.Now())
	tampered := bytes.Replace(body, []byte(`"40"`), []byte(`"4000"`), 1)

	w := postWebhook(engine, tampered, signature)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_RedeliveryIsIdempotent(t *testing.T) {
	engine, verifier, accountRepo := setupWebhookTest(t)

	body := checkoutPayload("evt_http_4", "cus_http_4", "again@example.com", 25)
	for i := 0; i < 3; i++ {
		w := postWebhook(engine, body, verifier.SignHeader(body, time.Now()))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	acct, err := accountRepo.GetByEmail(context.Background(), "again@example.com")
	require.NoError(t, err)
	assert.Equal(t, 25, acct.Credits())
}
