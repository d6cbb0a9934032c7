package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bannerworks/signquote/internal/catalog"
	"github.com/bannerworks/signquote/internal/quoting"
)

type server struct {
	store    *catalog.Store
	validate *validator.Validate
}

func newServer(store *catalog.Store) *server {
	return &server{
		store:    store,
		validate: validator.New(),
	}
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/api/media", s.handleListMedia)
	r.Post("/api/media", s.handleCreateMedia)
	r.Get("/api/substrates", s.handleListSubstrates)
	r.Post("/api/substrates", s.handleCreateSubstrate)
	r.Get("/api/settings", s.handleGetSettings)
	r.Put("/api/settings", s.handlePutSettings)
	r.Post("/api/quote", s.handleQuote)
	r.Get("/api/quotes", s.handleListQuotes)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleListMedia(w http.ResponseWriter, r *http.Request) {
	media, err := s.store.ListMedia()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load media")
		return
	}
	writeJSON(w, http.StatusOK, media)
}

type mediaInput struct {
	ID              string  `json:"id" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	RollWidthMM     float64 `json:"roll_width_mm" validate:"gt=0"`
	PrintWidthMM    float64 `json:"print_width_mm" validate:"min=0,ltefield=RollWidthMM"`
	PricePerLM      float64 `json:"price_per_lm" validate:"gt=0"`
	MaxPrintWidthMM float64 `json:"max_print_width_mm" validate:"min=0"`
	MaxCutWidthMM   float64 `json:"max_cut_width_mm" validate:"min=0"`
	Category        string  `json:"category"`
}

func (s *server) handleCreateMedia(w http.ResponseWriter, r *http.Request) {
	var in mediaInput
	if !s.decodeAndValidate(w, r, &in) {
		return
	}

	err := s.store.UpsertMedia(quoting.VinylMedia{
		ID:              in.ID,
		Name:            in.Name,
		RollWidthMM:     in.RollWidthMM,
		PrintWidthMM:    in.PrintWidthMM,
		PricePerLM:      in.PricePerLM,
		MaxPrintWidthMM: in.MaxPrintWidthMM,
		MaxCutWidthMM:   in.MaxCutWidthMM,
		Category:        in.Category,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save media")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": in.ID})
}

func (s *server) handleListSubstrates(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.ListSubstrates()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load substrates")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

type substrateInput struct {
	ID            string  `json:"id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	SheetWidthMM  float64 `json:"sheet_width_mm" validate:"gt=0"`
	SheetHeightMM float64 `json:"sheet_height_mm" validate:"gt=0"`
	PricePerSheet float64 `json:"price_per_sheet" validate:"gt=0"`
	ThicknessMM   float64 `json:"thickness_mm" validate:"min=0"`
}

func (s *server) handleCreateSubstrate(w http.ResponseWriter, r *http.Request) {
	var in substrateInput
	if !s.decodeAndValidate(w, r, &in) {
		return
	}

	err := s.store.UpsertSubstrate(quoting.Substrate{
		ID:            in.ID,
		Name:          in.Name,
		SheetWidthMM:  in.SheetWidthMM,
		SheetHeightMM: in.SheetHeightMM,
		PricePerSheet: in.PricePerSheet,
		ThicknessMM:   in.ThicknessMM,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save substrate")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": in.ID})
}

func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.Settings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var raw quoting.RawSettings
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings payload")
		return
	}

	settings, err := s.store.SaveSettings(raw)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

type quoteInput struct {
	quoting.SignRequest
	Save  bool   `json:"save"`
	Title string `json:"title"`
}

type quoteResponse struct {
	Reference string             `json:"reference,omitempty"`
	Breakdown *quoting.Breakdown `json:"breakdown"`
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var in quoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote payload")
		return
	}
	if err := s.validate.Struct(in.SignRequest); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := s.store.Settings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	var media *quoting.VinylMedia
	if in.MediaID != "" {
		media, err = s.store.GetMedia(in.MediaID)
		if err != nil {
			writeSelectionError(w, err, "unknown media")
			return
		}
	}
	var sub *quoting.Substrate
	if in.SubstrateID != "" {
		sub, err = s.store.GetSubstrate(in.SubstrateID)
		if err != nil {
			writeSelectionError(w, err, "unknown substrate")
			return
		}
	}

	breakdown, err := quoting.Quote(in.SignRequest, media, sub, settings)
	if err != nil {
		// The engine is pure; everything it rejects is a request problem.
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := quoteResponse{Breakdown: breakdown}
	if in.Save {
		resp.Reference = uuid.NewString()
		if err := s.store.SaveQuote(resp.Reference, in.Title, in.SignRequest, breakdown); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save quote")
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.store.ListQuotes(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeSelectionError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	writeError(w, http.StatusInternalServerError, "catalog lookup failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
