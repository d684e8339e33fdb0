package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/naiaprojects/linkwedding/models"
	"go.uber.org/zap"
)

func (h *Handler) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Database.GetSiteSettings()
	if err != nil {
		h.Logger.Error("error fetching site settings", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) AdminUpdateSiteSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.Logger.Error("error decoding site settings", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if settings.SiteName == "" {
		http.Error(w, "site name is required", http.StatusBadRequest)
		return
	}

	if err := h.Database.UpdateSiteSettings(settings); err != nil {
		h.Logger.Error("error updating site settings", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) LandingSectionsList(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Database.GetLandingSections()
	if err != nil {
		h.Logger.Error("error fetching landing sections", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if sections == nil {
		sections = []*models.LandingSection{}
	}

	h.writeJSON(w, http.StatusOK, sections)
}

func (h *Handler) AdminUpdateLandingSection(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "id")

	var section models.LandingSection
	if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
		h.Logger.Error("error decoding landing section", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	section.ID = sectionID

	if err := h.Database.UpdateLandingSection(section); err != nil {
		h.Logger.Error("error updating landing section", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
