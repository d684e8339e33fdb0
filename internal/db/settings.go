package db

import (
	"encoding/json"
	"fmt"

	"github.com/naiaprojects/linkwedding/models"
)

func (m *Manager) GetSiteSettings() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	var keywords []byte

	err := m.Db.QueryRow(`
		SELECT id, site_name, site_description, favicon_url, meta_title, meta_description,
			meta_keywords, created_at, updated_at
		FROM site_settings
		LIMIT 1
	`).Scan(
		&settings.ID, &settings.SiteName, &settings.SiteDescription, &settings.FaviconURL,
		&settings.MetaTitle, &settings.MetaDescription, &keywords,
		&settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get site settings: %v", err)
	}

	if len(keywords) > 0 {
		if err = json.Unmarshal(keywords, &settings.MetaKeywords); err != nil {
			return nil, fmt.Errorf("failed to decode meta keywords: %v", err)
		}
	}

	return &settings, nil
}

func (m *Manager) UpdateSiteSettings(settings models.SiteSettings) error {
	keywords, err := json.Marshal(settings.MetaKeywords)
	if err != nil {
		return fmt.Errorf("failed to encode meta keywords: %v", err)
	}

	_, err = m.Db.Exec(`
		UPDATE site_settings
		SET site_name = $1, site_description = $2, favicon_url = $3, meta_title = $4,
			meta_description = $5, meta_keywords = $6, updated_at = NOW()
		WHERE id = $7
	`, settings.SiteName, settings.SiteDescription, settings.FaviconURL, settings.MetaTitle,
		settings.MetaDescription, keywords, settings.ID)
	if err != nil {
		return fmt.Errorf("failed to update site settings: %v", err)
	}

	return nil
}

func (m *Manager) GetLandingSections() ([]*models.LandingSection, error) {
	rows, err := m.Db.Query(`
		SELECT id, section, title, subtitle, content, image_url, sort_order, is_active,
			created_at, updated_at
		FROM landing_page_sections
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get landing sections: %v", err)
	}
	defer rows.Close()

	var sections []*models.LandingSection
	for rows.Next() {
		var section models.LandingSection
		err = rows.Scan(
			&section.ID, &section.Section, &section.Title, &section.Subtitle, &section.Content,
			&section.ImageURL, &section.SortOrder, &section.IsActive,
			&section.CreatedAt, &section.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan landing section: %v", err)
		}
		sections = append(sections, &section)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate landing sections: %v", err)
	}

	return sections, nil
}

func (m *Manager) UpdateLandingSection(section models.LandingSection) error {
	_, err := m.Db.Exec(`
		UPDATE landing_page_sections
		SET title = $1, subtitle = $2, content = $3, image_url = $4, sort_order = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $7
	`, section.Title, section.Subtitle, section.Content, section.ImageURL, section.SortOrder,
		section.IsActive, section.ID)
	if err != nil {
		return fmt.Errorf("failed to update landing section: %v", err)
	}

	return nil
}
