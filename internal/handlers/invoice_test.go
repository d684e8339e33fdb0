package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/naiaprojects/linkwedding/internal/auth"
	"github.com/naiaprojects/linkwedding/internal/storage"
	"github.com/naiaprojects/linkwedding/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceRouter(handler *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Post("/api/invoice/{id}/verify", handler.VerifyInvoiceEmail)
	router.Get("/api/invoice/{id}", handler.GetInvoice)
	router.Post("/api/invoice/{id}/confirm", handler.ConfirmPayment)
	return router
}

func orderRows(orderID string, status models.PaymentStatus, deadline time.Time) *sqlmock.Rows {
	details, _ := json.Marshal(models.PackageDetails{Undangan: "1 undangan"})
	return sqlmock.NewRows([]string{
		"id", "invoice_number", "product_id", "product_name", "package_name", "package_price",
		"customer_name", "customer_email", "customer_phone", "package_details",
		"subtotal", "discount_code", "discount_amount", "tax", "total",
		"payment_method", "payment_bank", "payment_status", "payment_proof_url", "payment_deadline", "paid_at",
		"created_at", "updated_at",
	}).AddRow(
		orderID, "INV-20250314-A1B2C", "prod-1", "Undangan Digital", "Basic", int64(99000),
		"Budi", "Budi@Example.com", "0812345678", details,
		int64(99000), nil, int64(0), int64(0), int64(99000),
		"bank", "BCA", string(status), nil, deadline, nil,
		time.Now(), time.Now(),
	)
}

func displayBankRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bank_name", "account_number", "account_name", "is_active", "created_at", "updated_at",
	}).AddRow("bank-1", "BCA", "1234567890", "Naia Projects", true, time.Now(), time.Now())
}

func TestVerifyInvoiceEmail(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()
	router := invoiceRouter(handler)
	deadline := time.Now().UTC().Add(24 * time.Hour)

	t.Run("MatchCaseInsensitive", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))

		body, _ := json.Marshal(verifyEmailRequest{Email: "budi@example.com"})
		r := httptest.NewRequest(http.MethodPost, "/api/invoice/order-1/verify", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp verifyEmailResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		// The issued token must be scoped to this order only.
		_, err := auth.ValidateInvoiceJWT(resp.Token, "order-1")
		assert.NoError(t, err)
		_, err = auth.ValidateInvoiceJWT(resp.Token, "order-2")
		assert.Error(t, err)
	})

	t.Run("Mismatch", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))

		body, _ := json.Marshal(verifyEmailRequest{Email: "intruder@example.com"})
		r := httptest.NewRequest(http.MethodPost, "/api/invoice/order-1/verify", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/invoice/order-1/verify", bytes.NewBufferString(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInvoiceRequiresToken(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()
	router := invoiceRouter(handler)

	r := httptest.NewRequest(http.MethodGet, "/api/invoice/order-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInvoice(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()
	router := invoiceRouter(handler)

	token, err := auth.BuildInvoiceJWT("order-1", "budi@example.com")
	require.NoError(t, err)

	t.Run("Pending", func(t *testing.T) {
		deadline := time.Now().UTC().Add(24 * time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))
		mock.ExpectQuery(`SELECT (.+) FROM bank_accounts`).
			WillReturnRows(displayBankRows())

		r := httptest.NewRequest(http.MethodGet, "/api/invoice/order-1", nil)
		r.Header.Set("X-Invoice-Token", token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp invoiceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, models.PaymentPending, resp.Order.PaymentStatus)
		assert.Equal(t, "BCA", resp.BankAccount.BankName)
	})

	t.Run("OverdueReportsExpired", func(t *testing.T) {
		deadline := time.Now().UTC().Add(-time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))
		mock.ExpectQuery(`SELECT (.+) FROM bank_accounts`).
			WillReturnRows(displayBankRows())

		r := httptest.NewRequest(http.MethodGet, "/api/invoice/order-1", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp invoiceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, models.PaymentExpired, resp.Order.PaymentStatus)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func proofRequest(t *testing.T, orderID string, token string) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("proof", "bukti.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/invoice/"+orderID+"/confirm", &body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		r.Header.Set("X-Invoice-Token", token)
	}
	return r
}

func TestConfirmPayment(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()

	store, err := storage.NewFileStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	handler.Store = store
	router := invoiceRouter(handler)

	token, err := auth.BuildInvoiceJWT("order-1", "budi@example.com")
	require.NoError(t, err)

	t.Run("MovesToInProgress", func(t *testing.T) {
		deadline := time.Now().UTC().Add(24 * time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))
		mock.ExpectExec(`UPDATE orders SET payment_proof_url`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, proofRequest(t, "order-1", token))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "in_progress", resp["payment_status"])
		assert.Contains(t, resp["payment_proof_url"], "/uploads/payment-proofs/payment-proof-order-1-")
	})

	t.Run("RetriesStatusUpdateOnce", func(t *testing.T) {
		deadline := time.Now().UTC().Add(24 * time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))
		mock.ExpectExec(`UPDATE orders SET payment_proof_url`).
			WillReturnError(assert.AnError)
		mock.ExpectExec(`UPDATE orders SET payment_proof_url`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, proofRequest(t, "order-1", token))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("LostRaceReturnsConflict", func(t *testing.T) {
		// The order passes the pending pre-check but leaves pending before
		// the update lands. The guard miss is final, never retried.
		deadline := time.Now().UTC().Add(24 * time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))
		mock.ExpectExec(`UPDATE orders SET payment_proof_url`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, proofRequest(t, "order-1", token))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("RejectedWithoutToken", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, proofRequest(t, "order-1", ""))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("RejectedWhenNotPending", func(t *testing.T) {
		deadline := time.Now().UTC().Add(24 * time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPaid, deadline))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, proofRequest(t, "order-1", token))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("RejectedWhenOverdue", func(t *testing.T) {
		deadline := time.Now().UTC().Add(-time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, proofRequest(t, "order-1", token))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("RejectedWithoutFile", func(t *testing.T) {
		deadline := time.Now().UTC().Add(24 * time.Hour)
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1", models.PaymentPending, deadline))

		r := httptest.NewRequest(http.MethodPost, "/api/invoice/order-1/confirm", nil)
		r.Header.Set("X-Invoice-Token", token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
