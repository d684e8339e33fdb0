package db

import (
	"encoding/json"
	"fmt"

	"github.com/naiaprojects/linkwedding/models"
)

const productColumns = `id, name, description, category, jenis, design, packages,
		image_url, demo_url, created_at, updated_at`

func scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	var packages []byte

	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Category,
		&product.Jenis, &product.Design, &packages,
		&product.ImageURL, &product.DemoURL, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(packages, &product.Packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %v", err)
	}

	return &product, nil
}

func (m *Manager) GetProduct(productID string) (*models.Product, error) {
	row := m.Db.QueryRow(`
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, productID)

	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %v", err)
	}

	return product, nil
}

func (m *Manager) GetProductsList() ([]*models.Product, error) {
	rows, err := m.Db.Query(`
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %v", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %v", err)
	}

	return products, nil
}

func (m *Manager) PutProduct(product models.Product) error {
	packages, err := json.Marshal(product.Packages)
	if err != nil {
		return fmt.Errorf("failed to encode packages: %v", err)
	}

	_, err = m.Db.Exec(`
        INSERT INTO products (id, name, description, category, jenis, design, packages, image_url, demo_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, product.ID, product.Name, product.Description, product.Category, product.Jenis,
		product.Design, packages, product.ImageURL, product.DemoURL)
	if err != nil {
		return fmt.Errorf("failed to insert product: %v", err)
	}

	return nil
}

func (m *Manager) UpdateProduct(product models.Product) error {
	packages, err := json.Marshal(product.Packages)
	if err != nil {
		return fmt.Errorf("failed to encode packages: %v", err)
	}

	_, err = m.Db.Exec(`
		UPDATE products
		SET name = $1, description = $2, category = $3, jenis = $4, design = $5,
			packages = $6, image_url = $7, demo_url = $8, updated_at = NOW()
		WHERE id = $9
	`, product.Name, product.Description, product.Category, product.Jenis, product.Design,
		packages, product.ImageURL, product.DemoURL, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %v", err)
	}

	return nil
}

func (m *Manager) DeleteProduct(productID string) error {
	_, err := m.Db.Exec(`DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %v", err)
	}

	return nil
}
