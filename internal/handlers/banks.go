package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/naiaprojects/linkwedding/models"
	"go.uber.org/zap"
)

func (h *Handler) BankAccountsList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Database.GetActiveBankAccounts()
	if err != nil {
		h.Logger.Error("error fetching bank accounts", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []*models.BankAccount{}
	}

	h.writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) AdminBankAccountsList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Database.GetBankAccountsList()
	if err != nil {
		h.Logger.Error("error fetching bank accounts", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []*models.BankAccount{}
	}

	h.writeJSON(w, http.StatusOK, accounts)
}

type bankAccountRequest struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	IsActive      bool   `json:"is_active"`
}

func (h *Handler) AdminCreateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding bank account request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.BankName == "" || req.AccountNumber == "" || req.AccountName == "" {
		http.Error(w, "bank name, account number and account name are required", http.StatusBadRequest)
		return
	}

	account := models.BankAccount{
		ID:            uuid.New().String(),
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		IsActive:      req.IsActive,
	}

	if err := h.Database.PutBankAccount(account); err != nil {
		h.Logger.Error("error creating bank account", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, account)
}

func (h *Handler) AdminUpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req bankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding bank account request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	account := models.BankAccount{
		ID:            accountID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		IsActive:      req.IsActive,
	}

	if err := h.Database.UpdateBankAccount(account); err != nil {
		h.Logger.Error("error updating bank account", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminDeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	if err := h.Database.DeleteBankAccount(accountID); err != nil {
		h.Logger.Error("error deleting bank account", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
