package db

import (
	"time"

	"github.com/naiaprojects/linkwedding/models"
)

type Database interface {
	PutUniqueUserData(userData models.User) error
	GetUserData(login string) (models.User, error)

	PutOrder(order models.Order) error
	GetOrder(orderID string) (*models.Order, error)
	GetOrdersList() ([]*models.Order, error)
	UpdateOrderStatus(orderID string, status models.PaymentStatus) error
	SetPaymentProof(orderID string, proofURL string) error
	UpdateOrderCustomer(orderID string, name, email, phone string) error
	DeleteOrder(orderID string) error
	UpdateOrdersStatusBulk(orderIDs []string, status models.PaymentStatus) error
	DeleteOrdersBulk(orderIDs []string) error
	ExpireOverdueOrders(now time.Time) (int64, error)
	ExpireOrderIfOverdue(orderID string, now time.Time) error

	GetProduct(productID string) (*models.Product, error)
	GetProductsList() ([]*models.Product, error)
	PutProduct(product models.Product) error
	UpdateProduct(product models.Product) error
	DeleteProduct(productID string) error

	GetActiveBankAccounts() ([]*models.BankAccount, error)
	GetDisplayBankAccount() (*models.BankAccount, error)
	GetBankAccountsList() ([]*models.BankAccount, error)
	GetBankAccount(accountID string) (*models.BankAccount, error)
	PutBankAccount(account models.BankAccount) error
	UpdateBankAccount(account models.BankAccount) error
	DeleteBankAccount(accountID string) error

	GetDiscountCode(code string) (*models.DiscountCode, error)
	IncrementDiscountUsage(code string) error

	GetSiteSettings() (*models.SiteSettings, error)
	UpdateSiteSettings(settings models.SiteSettings) error
	GetLandingSections() ([]*models.LandingSection, error)
	UpdateLandingSection(section models.LandingSection) error

	Close() error
}
