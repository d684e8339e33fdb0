package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naiaprojects/linkwedding/models"
)

const orderColumns = `id, invoice_number, product_id, product_name, package_name, package_price,
		customer_name, customer_email, customer_phone, package_details,
		subtotal, discount_code, discount_amount, tax, total,
		payment_method, payment_bank, payment_status, payment_proof_url, payment_deadline, paid_at,
		created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var details []byte

	err := row.Scan(
		&order.ID, &order.InvoiceNumber, &order.ProductID, &order.ProductName,
		&order.PackageName, &order.PackagePrice,
		&order.CustomerName, &order.CustomerEmail, &order.CustomerPhone, &details,
		&order.Subtotal, &order.DiscountCode, &order.DiscountAmount, &order.Tax, &order.Total,
		&order.PaymentMethod, &order.PaymentBank, &order.PaymentStatus, &order.PaymentProofURL,
		&order.PaymentDeadline, &order.PaidAt,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(details, &order.PackageDetails); err != nil {
		return nil, fmt.Errorf("failed to decode package details: %v", err)
	}

	return &order, nil
}

func (m *Manager) PutOrder(order models.Order) error {
	details, err := json.Marshal(order.PackageDetails)
	if err != nil {
		return fmt.Errorf("failed to encode package details: %v", err)
	}

	_, err = m.Db.Exec(`
        INSERT INTO orders (id, invoice_number, product_id, product_name, package_name, package_price,
            customer_name, customer_email, customer_phone, package_details,
            subtotal, discount_code, discount_amount, tax, total,
            payment_method, payment_bank, payment_status, payment_deadline)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
    `, order.ID, order.InvoiceNumber, order.ProductID, order.ProductName, order.PackageName,
		order.PackagePrice, order.CustomerName, order.CustomerEmail, order.CustomerPhone, details,
		order.Subtotal, order.DiscountCode, order.DiscountAmount, order.Tax, order.Total,
		order.PaymentMethod, order.PaymentBank, order.PaymentStatus, order.PaymentDeadline)
	if err != nil {
		return fmt.Errorf("failed to insert order: %v", err)
	}

	return nil
}

func (m *Manager) GetOrder(orderID string) (*models.Order, error) {
	row := m.Db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID)

	order, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %v", err)
	}

	return order, nil
}

func (m *Manager) GetOrdersList() ([]*models.Order, error) {
	rows, err := m.Db.Query(`
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %v", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %v", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %v", err)
	}

	return orders, nil
}

// UpdateOrderStatus sets the payment status. paid_at is overwritten every
// time the target status is paid, even when the order is already paid.
func (m *Manager) UpdateOrderStatus(orderID string, status models.PaymentStatus) error {
	var err error
	if status == models.PaymentPaid {
		_, err = m.Db.Exec(`
			UPDATE orders SET payment_status = $1, paid_at = NOW(), updated_at = NOW()
			WHERE id = $2
		`, status, orderID)
	} else {
		_, err = m.Db.Exec(`
			UPDATE orders SET payment_status = $1, updated_at = NOW()
			WHERE id = $2
		`, status, orderID)
	}
	if err != nil {
		return fmt.Errorf("failed to update order status: %v", err)
	}

	return nil
}

// ErrNotAwaitingPayment reports that the status guard matched no row: the
// order left pending between the caller's check and the update.
var ErrNotAwaitingPayment = errors.New("order is not awaiting payment")

// SetPaymentProof attaches the uploaded proof URL and moves a pending
// order to in_progress in one statement.
func (m *Manager) SetPaymentProof(orderID string, proofURL string) error {
	result, err := m.Db.Exec(`
		UPDATE orders SET payment_proof_url = $1, payment_status = $2, updated_at = NOW()
		WHERE id = $3 AND payment_status = $4
	`, proofURL, models.PaymentInProgress, orderID, models.PaymentPending)
	if err != nil {
		return fmt.Errorf("failed to set payment proof: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %v", err)
	}
	if affected == 0 {
		return ErrNotAwaitingPayment
	}

	return nil
}

func (m *Manager) UpdateOrderCustomer(orderID string, name, email, phone string) error {
	_, err := m.Db.Exec(`
		UPDATE orders SET customer_name = $1, customer_email = $2, customer_phone = $3, updated_at = NOW()
		WHERE id = $4
	`, name, email, phone, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order: %v", err)
	}

	return nil
}

func (m *Manager) DeleteOrder(orderID string) error {
	_, err := m.Db.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %v", err)
	}

	return nil
}

// inPlaceholders builds $N placeholders for an IN list starting at $start.
func inPlaceholders(start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func idArgs(ids []string, prefix ...interface{}) []interface{} {
	args := append([]interface{}{}, prefix...)
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

func (m *Manager) UpdateOrdersStatusBulk(orderIDs []string, status models.PaymentStatus) error {
	if len(orderIDs) == 0 {
		return nil
	}

	query := `UPDATE orders SET payment_status = $1, updated_at = NOW()`
	if status == models.PaymentPaid {
		query = `UPDATE orders SET payment_status = $1, paid_at = NOW(), updated_at = NOW()`
	}
	query += ` WHERE id IN (` + inPlaceholders(2, len(orderIDs)) + `)`

	_, err := m.Db.Exec(query, idArgs(orderIDs, status)...)
	if err != nil {
		return fmt.Errorf("failed to update orders: %v", err)
	}

	return nil
}

func (m *Manager) DeleteOrdersBulk(orderIDs []string) error {
	if len(orderIDs) == 0 {
		return nil
	}

	query := `DELETE FROM orders WHERE id IN (` + inPlaceholders(1, len(orderIDs)) + `)`
	_, err := m.Db.Exec(query, idArgs(orderIDs)...)
	if err != nil {
		return fmt.Errorf("failed to delete orders: %v", err)
	}

	return nil
}

// ExpireOverdueOrders moves pending orders past their deadline to expired.
// The status guard makes repeated sweeps a no-op for already expired rows.
func (m *Manager) ExpireOverdueOrders(now time.Time) (int64, error) {
	result, err := m.Db.Exec(`
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE payment_status = $2 AND payment_deadline < $3
	`, models.PaymentExpired, models.PaymentPending, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire orders: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %v", err)
	}

	return affected, nil
}

// ExpireOrderIfOverdue applies lazy expiry to a single order on read.
func (m *Manager) ExpireOrderIfOverdue(orderID string, now time.Time) error {
	_, err := m.Db.Exec(`
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE id = $2 AND payment_status = $3 AND payment_deadline < $4
	`, models.PaymentExpired, orderID, models.PaymentPending, now)
	if err != nil {
		return fmt.Errorf("failed to expire order: %v", err)
	}

	return nil
}
