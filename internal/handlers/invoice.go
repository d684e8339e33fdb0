package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/naiaprojects/linkwedding/internal/auth"
	"github.com/naiaprojects/linkwedding/internal/db"
	"github.com/naiaprojects/linkwedding/models"
	"go.uber.org/zap"
)

const maxProofSize = 10 << 20 // 10 MiB

type verifyEmailRequest struct {
	Email string `json:"email"`
}

type verifyEmailResponse struct {
	Token string `json:"token"`
}

type invoiceResponse struct {
	Order       *models.Order       `json:"order"`
	BankAccount *models.BankAccount `json:"bank_account,omitempty"`
}

// VerifyInvoiceEmail implements the invoice access guard: a viewer who
// supplies the email that placed the order receives a signed token scoped
// to this order. A mismatch never yields a token; there is no lockout.
func (h *Handler) VerifyInvoiceEmail(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding verify request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	order, err := h.Database.GetOrder(orderID)
	if err != nil {
		h.Logger.Error("error fetching order", zap.Error(err))
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	if !strings.EqualFold(req.Email, order.CustomerEmail) {
		http.Error(w, "email tidak cocok dengan data pesanan", http.StatusUnauthorized)
		return
	}

	token, err := auth.BuildInvoiceJWT(order.ID, order.CustomerEmail)
	if err != nil {
		h.Logger.Error("error building invoice token", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, verifyEmailResponse{Token: token})
}

// invoiceToken extracts and validates the invoice access token for the
// given order id, from Authorization: Bearer or X-Invoice-Token.
func (h *Handler) invoiceToken(r *http.Request, orderID string) error {
	tokenString := r.Header.Get("X-Invoice-Token")
	if tokenString == "" {
		authHeader := r.Header.Get("Authorization")
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			tokenString = ""
		}
	}
	if tokenString == "" {
		return errMissingInvoiceToken
	}

	_, err := auth.ValidateInvoiceJWT(tokenString, orderID)
	return err
}

var errMissingInvoiceToken = errors.New("invoice token is missing")

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if err := h.invoiceToken(r, orderID); err != nil {
		h.Logger.Debugw("invoice access denied", "order", orderID, "error", err)
		http.Error(w, "email verification required", http.StatusUnauthorized)
		return
	}

	order, err := h.Database.GetOrder(orderID)
	if err != nil {
		h.Logger.Error("error fetching order", zap.Error(err))
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	// Lazy expiry: report the effective status right away and let the
	// expiry manager persist it in the background.
	now := time.Now().UTC()
	if effective := order.EffectiveStatus(now); effective != order.PaymentStatus {
		order.PaymentStatus = effective
		if h.ExpiryManager != nil {
			h.ExpiryManager.Check(order.ID)
		}
	}

	resp := invoiceResponse{Order: order}
	if account, err := h.Database.GetDisplayBankAccount(); err == nil {
		resp.BankAccount = account
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ConfirmPayment accepts the uploaded proof image, stores it, and moves a
// pending order to in_progress. If the status update fails after a
// successful upload, it is retried once with the already-obtained URL
// rather than re-uploading.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if err := h.invoiceToken(r, orderID); err != nil {
		h.Logger.Debugw("invoice access denied", "order", orderID, "error", err)
		http.Error(w, "email verification required", http.StatusUnauthorized)
		return
	}

	order, err := h.Database.GetOrder(orderID)
	if err != nil {
		h.Logger.Error("error fetching order", zap.Error(err))
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	if order.EffectiveStatus(time.Now().UTC()) != models.PaymentPending {
		http.Error(w, "order is not awaiting payment", http.StatusConflict)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProofSize)
	if err = r.ParseMultipartForm(maxProofSize); err != nil {
		http.Error(w, "mohon upload bukti pembayaran", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("proof")
	if err != nil {
		http.Error(w, "mohon upload bukti pembayaran", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	proofURL, err := h.Store.SavePaymentProof(orderID, ext, file)
	if err != nil {
		h.Logger.Error("error saving payment proof", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err = h.Database.SetPaymentProof(orderID, proofURL); err != nil {
		// A guard miss means the order left pending under us; retrying
		// cannot help. Only transient failures get the second attempt.
		if !errors.Is(err, db.ErrNotAwaitingPayment) {
			h.Logger.Warnw("payment proof update failed, retrying", "order", orderID, "error", err)
			err = h.Database.SetPaymentProof(orderID, proofURL)
		}
		if errors.Is(err, db.ErrNotAwaitingPayment) {
			http.Error(w, "order is not awaiting payment", http.StatusConflict)
			return
		}
		if err != nil {
			h.Logger.Error("error updating order after proof upload", zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	if h.Mailer != nil {
		go h.Mailer.SendPaymentProofNotification(order, proofURL)
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"payment_status":    models.PaymentInProgress.String(),
		"payment_proof_url": proofURL,
	})
}
