package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/farmyield/internal/catalog"
	"github.com/Simplici0/farmyield/internal/farmfile"
	"github.com/Simplici0/farmyield/internal/plans"
	"github.com/Simplici0/farmyield/internal/report"
	"github.com/Simplici0/farmyield/pkg/farm"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("invalid request body")

// clientErrors map to 400 Bad Request.
var clientErrors = []error{
	errBadRequest,
	catalog.ErrMissingName,
	plans.ErrMissingName,
	farmfile.ErrNoPlant,
	farmfile.ErrAmbiguousPlant,
	farm.ErrNegativeYield,
	farm.ErrNegativeQuantity,
	farm.ErrNotFinite,
	farm.ErrMissingCost,
	farm.ErrMissingSalePrice,
	farm.ErrMissingFactor,
	farm.ErrUnknownLevel,
	farm.ErrUnknownDimension,
}

type errorResponse struct {
	Error string `json:"error"`
}

type yieldResponse struct {
	Plant string  `json:"plant"`
	Yield float64 `json:"yield"`
}

type planResponse struct {
	Plan   plans.Plan    `json:"plan"`
	Report report.Report `json:"report"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePlantsList(w http.ResponseWriter, r *http.Request) {
	plants, err := s.plants.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plants)
}

func (s *server) handlePlantGet(w http.ResponseWriter, r *http.Request) {
	plant, err := s.plants.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plant)
}

func (s *server) handlePlantCreate(w http.ResponseWriter, r *http.Request) {
	var plant farm.Plant
	if err := decodeJSON(w, r, &plant); err != nil {
		s.writeError(w, r, err)
		return
	}
	plant.Name = strings.TrimSpace(plant.Name)

	if err := s.plants.Create(r.Context(), plant); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plant)
}

func (s *server) handlePlantUpdate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var plant farm.Plant
	if err := decodeJSON(w, r, &plant); err != nil {
		s.writeError(w, r, err)
		return
	}
	plant.Name = strings.TrimSpace(plant.Name)
	if plant.Name == "" {
		plant.Name = name
	}

	if err := s.plants.Update(r.Context(), name, plant); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plant)
}

func (s *server) handlePlantDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.plants.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handlePlantYield(w http.ResponseWriter, r *http.Request) {
	plant, err := s.plants.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// An empty body means no environment adjustment.
	var raw map[string]string
	if err := decodeJSON(w, r, &raw); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, err)
		return
	}
	env, err := farmfile.ParseEnv(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := (farm.CropEntry{Crop: plant, NumCrops: 1, EFactor: env}).Validate(false); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, yieldResponse{Plant: plant.Name, Yield: farm.YieldForPlant(plant, env)})
}

func (s *server) handleFarmReport(w http.ResponseWriter, r *http.Request) {
	var desc farmfile.File
	if err := decodeJSON(w, r, &desc); err != nil {
		s.writeError(w, r, err)
		return
	}

	f, err := desc.Resolve(r.Context(), s.plants, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Build(f))
}

func (s *server) handlePlanSave(w http.ResponseWriter, r *http.Request) {
	var desc farmfile.File
	if err := decodeJSON(w, r, &desc); err != nil {
		s.writeError(w, r, err)
		return
	}

	f, err := desc.Resolve(r.Context(), s.plants, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	plan, err := s.plans.Save(r.Context(), desc.Name, desc.Notes, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, planResponse{Plan: plan, Report: report.Build(plan.Farm)})
}

func (s *server) handlePlansList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.plans.List(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handlePlanGet(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Plan: plan, Report: report.Build(plan.Farm)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, plans.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrConflict):
		return http.StatusConflict
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
