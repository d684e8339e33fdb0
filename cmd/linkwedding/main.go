package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/naiaprojects/linkwedding/config"
	"github.com/naiaprojects/linkwedding/internal/auth"
	"github.com/naiaprojects/linkwedding/internal/db"
	"github.com/naiaprojects/linkwedding/internal/expiry"
	"github.com/naiaprojects/linkwedding/internal/handlers"
	"github.com/naiaprojects/linkwedding/internal/mailer"
	"github.com/naiaprojects/linkwedding/internal/middleware"
	"github.com/naiaprojects/linkwedding/internal/pixel"
	"github.com/naiaprojects/linkwedding/internal/storage"
	"github.com/naiaprojects/linkwedding/logging"
)

func main() {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	cfg := config.GetConfig()
	if cfg.JWTSecret != "" {
		auth.SecretKey = cfg.JWTSecret
	}

	database, err := db.NewManager(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close()

	store, err := storage.NewFileStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal(err)
	}

	overdueOrders := make(chan string, 100)
	em := expiry.NewManager(overdueOrders, database, cfg, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go em.StartExpiryWatch(ctx)

	h := handlers.Handler{
		Config:        cfg,
		Database:      database,
		Logger:        logger,
		Store:         store,
		Mailer:        mailer.NewMailer(cfg, logger),
		Pixel:         pixel.NewClient(cfg.PixelEndpoint, cfg.PixelID, cfg.PixelAPIToken, logger),
		ExpiryManager: em,
	}

	r := initRouter(h)

	err = http.ListenAndServe(cfg.RunAddress, r)
	logger.Fatalw("failed to start server", "error", err)
}

func initRouter(h handlers.Handler) *chi.Mux {
	public := func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				handler,
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
			).ServeHTTP(w, r)
		}
	}
	credentials := func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				handler,
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
				middleware.ValidateCredentials,
			).ServeHTTP(w, r)
		}
	}
	protected := func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				handler,
				h.Logger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
				middleware.ValidateAuth,
			).ServeHTTP(w, r)
		}
	}

	r := chi.NewRouter()

	// Storefront
	r.Get(`/api/products`, public(h.ProductsList))
	r.Get(`/api/products/{id}`, public(h.GetProduct))
	r.Get(`/api/bank-accounts`, public(h.BankAccountsList))
	r.Get(`/api/landing-sections`, public(h.LandingSectionsList))
	r.Get(`/api/site-settings`, public(h.GetSiteSettings))
	r.Post(`/api/discounts/preview`, public(h.PreviewDiscount))
	r.Post(`/api/orders`, public(h.CreateOrder))
	r.Post(`/api/invoice/{id}/verify`, public(h.VerifyInvoiceEmail))
	r.Get(`/api/invoice/{id}`, public(h.GetInvoice))
	r.Post(`/api/invoice/{id}/confirm`, public(h.ConfirmPayment))

	// Admin
	r.Post(`/api/admin/register`, credentials(h.Register))
	r.Post(`/api/admin/login`, credentials(h.Login))
	r.Get(`/api/admin/orders`, protected(h.AdminOrdersList))
	r.Get(`/api/admin/orders/stats`, protected(h.AdminOrdersStats))
	r.Get(`/api/admin/orders/chart`, protected(h.AdminOrdersChart))
	r.Put(`/api/admin/orders/{id}/status`, protected(h.AdminUpdateOrderStatus))
	r.Put(`/api/admin/orders/{id}`, protected(h.AdminUpdateOrder))
	r.Delete(`/api/admin/orders/{id}`, protected(h.AdminDeleteOrder))
	r.Post(`/api/admin/orders/bulk/status`, protected(h.AdminBulkUpdateStatus))
	r.Post(`/api/admin/orders/bulk/delete`, protected(h.AdminBulkDelete))
	r.Post(`/api/admin/products`, protected(h.AdminCreateProduct))
	r.Put(`/api/admin/products/{id}`, protected(h.AdminUpdateProduct))
	r.Delete(`/api/admin/products/{id}`, protected(h.AdminDeleteProduct))
	r.Get(`/api/admin/bank-accounts`, protected(h.AdminBankAccountsList))
	r.Post(`/api/admin/bank-accounts`, protected(h.AdminCreateBankAccount))
	r.Put(`/api/admin/bank-accounts/{id}`, protected(h.AdminUpdateBankAccount))
	r.Delete(`/api/admin/bank-accounts/{id}`, protected(h.AdminDeleteBankAccount))
	r.Put(`/api/admin/site-settings`, protected(h.AdminUpdateSiteSettings))
	r.Put(`/api/admin/landing-sections/{id}`, protected(h.AdminUpdateLandingSection))

	// Uploaded payment proofs are served as public files.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.Config.UploadDir)))
	r.Get(`/uploads/*`, fileServer.ServeHTTP)

	return r
}
