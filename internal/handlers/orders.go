package handlers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/naiaprojects/linkwedding/internal/pixel"
	"github.com/naiaprojects/linkwedding/models"
	"go.uber.org/zap"
)

const invoiceCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateInvoiceNumber returns INV-<YYYYMMDD>-<5 base36 chars>. Uniqueness
// is enforced by the database constraint, not here.
func generateInvoiceNumber(now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = invoiceCharset[rand.Intn(len(invoiceCharset))]
	}
	return "INV-" + now.Format("20060102") + "-" + string(suffix)
}

type discountPreviewRequest struct {
	Code         string `json:"code"`
	PackagePrice int64  `json:"package_price"`
}

type discountPreviewResponse struct {
	Code           string `json:"code"`
	Percent        int    `json:"percent"`
	DiscountAmount int64  `json:"discount_amount"`
}

// resolveDiscount validates a code against the discount_codes table and
// returns the resolved rule, so the client never supplies an amount.
func (h *Handler) resolveDiscount(code string, now time.Time) (*models.DiscountCode, error) {
	discount, err := h.Database.GetDiscountCode(code)
	if err != nil {
		return nil, err
	}
	if !discount.Usable(now) {
		return nil, errDiscountNotUsable
	}
	return discount, nil
}

var errDiscountNotUsable = errors.New("discount code is no longer valid")

func (h *Handler) PreviewDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding discount preview request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Code == "" {
		http.Error(w, "discount code is required", http.StatusBadRequest)
		return
	}

	discount, err := h.resolveDiscount(req.Code, time.Now().UTC())
	if err != nil {
		h.Logger.Debugw("discount code rejected", "code", req.Code, "error", err)
		http.Error(w, "kode diskon tidak valid", http.StatusUnprocessableEntity)
		return
	}

	h.writeJSON(w, http.StatusOK, discountPreviewResponse{
		Code:           discount.Code,
		Percent:        discount.Percent,
		DiscountAmount: discount.Amount(req.PackagePrice),
	})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding order request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.CustomerName == "" || req.CustomerEmail == "" || req.CustomerPhone == "" {
		http.Error(w, "customer name, email and phone are required", http.StatusBadRequest)
		return
	}

	product, err := h.Database.GetProduct(req.ProductID)
	if err != nil {
		h.Logger.Error("error fetching product", zap.Error(err))
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if len(product.Packages) == 0 {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if req.PackageIndex < 0 || req.PackageIndex >= len(product.Packages) {
		http.Error(w, "invalid package index", http.StatusBadRequest)
		return
	}
	pkg := product.Packages[req.PackageIndex]

	accounts, err := h.Database.GetActiveBankAccounts()
	if err != nil {
		h.Logger.Error("error fetching bank accounts", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var selectedBank *models.BankAccount
	if len(accounts) > 0 {
		if req.BankAccountID == "" {
			http.Error(w, "payment method is required", http.StatusBadRequest)
			return
		}
		for _, account := range accounts {
			if account.ID == req.BankAccountID {
				selectedBank = account
				break
			}
		}
		if selectedBank == nil {
			http.Error(w, "payment method is not available", http.StatusBadRequest)
			return
		}
	}

	now := time.Now().UTC()
	subtotal := pkg.Price
	var tax int64 = 0
	var discountAmount int64 = 0
	var discountCode *string

	if req.DiscountCode != "" {
		discount, err := h.resolveDiscount(req.DiscountCode, now)
		if err != nil {
			h.Logger.Debugw("discount code rejected", "code", req.DiscountCode, "error", err)
			http.Error(w, "kode diskon tidak valid", http.StatusUnprocessableEntity)
			return
		}
		discountAmount = discount.Amount(subtotal)
		discountCode = &discount.Code
	}

	order := models.Order{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		PackageName:   pkg.Name,
		PackagePrice:  pkg.Price,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PackageDetails: models.PackageDetails{
			Undangan: pkg.Undangan,
			Foto:     pkg.Foto,
			Video:    pkg.Video,
			Share:    pkg.Share,
		},
		Subtotal:        subtotal,
		DiscountCode:    discountCode,
		DiscountAmount:  discountAmount,
		Tax:             tax,
		Total:           subtotal - discountAmount + tax,
		PaymentMethod:   "bank",
		PaymentStatus:   models.PaymentPending,
		PaymentDeadline: now.Add(h.paymentWindow()),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if selectedBank != nil {
		order.PaymentBank = selectedBank.BankName
	}

	// The invoice number carries a random suffix; on a unique violation
	// we regenerate and retry instead of failing the checkout.
	inserted := false
	for attempt := 0; attempt < 3; attempt++ {
		order.InvoiceNumber = generateInvoiceNumber(now)
		err = h.Database.PutOrder(order)
		if err == nil {
			inserted = true
			break
		}
		if !strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			break
		}
		h.Logger.Infow("invoice number collision, retrying", "invoice", order.InvoiceNumber)
	}
	if !inserted {
		h.Logger.Error("error creating order", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if discountCode != nil {
		if err = h.Database.IncrementDiscountUsage(*discountCode); err != nil {
			h.Logger.Warnw("failed to count discount usage", "code", *discountCode, "error", err)
		}
	}

	if h.Pixel != nil {
		h.Pixel.Track(pixel.Event{
			Name:        pixel.EventPurchase,
			ContentName: product.Name + " - " + pkg.Name,
			ContentIDs:  []string{product.ID},
			Value:       order.Total,
			Currency:    "IDR",
			NumItems:    1,
		})
	}

	if h.Mailer != nil {
		invoiceURL := h.Config.PublicBaseURL + "/invoice/" + order.ID
		go h.Mailer.SendOrderConfirmation(&order, invoiceURL)
	}

	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) paymentWindow() time.Duration {
	if h.Config != nil && h.Config.PaymentWindow > 0 {
		return h.Config.PaymentWindow
	}
	return 24 * time.Hour
}
