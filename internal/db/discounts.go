package db

import (
	"fmt"

	"github.com/naiaprojects/linkwedding/models"
)

// GetDiscountCode looks a code up case-insensitively.
func (m *Manager) GetDiscountCode(code string) (*models.DiscountCode, error) {
	var discount models.DiscountCode

	err := m.Db.QueryRow(`
		SELECT id, code, percent, valid_from, valid_until, max_uses, used_count, created_at
		FROM discount_codes
		WHERE UPPER(code) = UPPER($1)
	`, code).Scan(
		&discount.ID, &discount.Code, &discount.Percent, &discount.ValidFrom,
		&discount.ValidUntil, &discount.MaxUses, &discount.UsedCount, &discount.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get discount code: %v", err)
	}

	return &discount, nil
}

func (m *Manager) IncrementDiscountUsage(code string) error {
	_, err := m.Db.Exec(`
		UPDATE discount_codes SET used_count = used_count + 1
		WHERE UPPER(code) = UPPER($1)
	`, code)
	if err != nil {
		return fmt.Errorf("failed to increment discount usage: %v", err)
	}

	return nil
}
