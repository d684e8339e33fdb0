package db

import (
	"fmt"

	"github.com/naiaprojects/linkwedding/models"
)

const bankColumns = `id, bank_name, account_number, account_name, is_active, created_at, updated_at`

func scanBankAccount(row rowScanner) (*models.BankAccount, error) {
	var account models.BankAccount
	err := row.Scan(
		&account.ID, &account.BankName, &account.AccountNumber, &account.AccountName,
		&account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (m *Manager) GetActiveBankAccounts() ([]*models.BankAccount, error) {
	rows, err := m.Db.Query(`
		SELECT ` + bankColumns + `
		FROM bank_accounts
		WHERE is_active = TRUE
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank accounts: %v", err)
	}
	defer rows.Close()

	var accounts []*models.BankAccount
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %v", err)
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bank accounts: %v", err)
	}

	return accounts, nil
}

// GetDisplayBankAccount returns the account shown on invoice pages: the
// first active one by creation order.
func (m *Manager) GetDisplayBankAccount() (*models.BankAccount, error) {
	row := m.Db.QueryRow(`
		SELECT ` + bankColumns + `
		FROM bank_accounts
		WHERE is_active = TRUE
		ORDER BY created_at ASC
		LIMIT 1
	`)

	account, err := scanBankAccount(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account: %v", err)
	}

	return account, nil
}

func (m *Manager) GetBankAccountsList() ([]*models.BankAccount, error) {
	rows, err := m.Db.Query(`
		SELECT ` + bankColumns + `
		FROM bank_accounts
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank accounts: %v", err)
	}
	defer rows.Close()

	var accounts []*models.BankAccount
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %v", err)
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bank accounts: %v", err)
	}

	return accounts, nil
}

func (m *Manager) GetBankAccount(accountID string) (*models.BankAccount, error) {
	row := m.Db.QueryRow(`
		SELECT `+bankColumns+`
		FROM bank_accounts
		WHERE id = $1
	`, accountID)

	account, err := scanBankAccount(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account: %v", err)
	}

	return account, nil
}

func (m *Manager) PutBankAccount(account models.BankAccount) error {
	_, err := m.Db.Exec(`
        INSERT INTO bank_accounts (id, bank_name, account_number, account_name, is_active)
        VALUES ($1, $2, $3, $4, $5)
    `, account.ID, account.BankName, account.AccountNumber, account.AccountName, account.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert bank account: %v", err)
	}

	return nil
}

func (m *Manager) UpdateBankAccount(account models.BankAccount) error {
	_, err := m.Db.Exec(`
		UPDATE bank_accounts
		SET bank_name = $1, account_number = $2, account_name = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`, account.BankName, account.AccountNumber, account.AccountName, account.IsActive, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update bank account: %v", err)
	}

	return nil
}

func (m *Manager) DeleteBankAccount(accountID string) error {
	_, err := m.Db.Exec(`DELETE FROM bank_accounts WHERE id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete bank account: %v", err)
	}

	return nil
}
