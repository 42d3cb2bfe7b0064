package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
		"version": common.GetVersion(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"full":    common.GetFullVersion(),
	})
}

// handlePositions handles GET and POST /api/positions.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		positions, err := s.app.Storage.Positions().ListPositions(r.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list positions")
			WriteError(w, http.StatusInternalServerError, "Failed to list positions")
			return
		}
		WriteJSON(w, http.StatusOK, positions)

	case http.MethodPost:
		var pos models.Position
		if !DecodeJSON(w, r, &pos) {
			return
		}
		pos.Normalize()
		if err := pos.Validate(); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.app.Storage.Positions().UpsertPosition(r.Context(), pos); err != nil {
			s.logger.Error().Err(err).Str("ticker", pos.Ticker).Msg("Failed to save position")
			WriteError(w, http.StatusInternalServerError, "Failed to save position")
			return
		}
		WriteJSON(w, http.StatusOK, pos)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePositionDelete handles DELETE /api/positions/{ticker}.
func (s *Server) handlePositionDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	ticker := models.NormalizeTicker(PathParam(r, "/api/positions/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}
	if err := s.app.Storage.Positions().DeletePosition(r.Context(), ticker); err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Failed to delete position")
		WriteError(w, http.StatusInternalServerError, "Failed to delete position")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleCash handles GET and PUT /api/cash.
func (s *Server) handleCash(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		amount, err := s.app.Storage.Cash().GetCash(r.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to get cash balance")
			WriteError(w, http.StatusInternalServerError, "Failed to get cash balance")
			return
		}
		WriteJSON(w, http.StatusOK, models.CashUpdate{Amount: amount})

	case http.MethodPut:
		var update models.CashUpdate
		if !DecodeJSON(w, r, &update) {
			return
		}
		if err := s.app.Storage.Cash().SetCash(r.Context(), update.Amount); err != nil {
			s.logger.Error().Err(err).Msg("Failed to set cash balance")
			WriteError(w, http.StatusInternalServerError, "Failed to set cash balance")
			return
		}
		WriteJSON(w, http.StatusOK, update)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleSectorAllocations handles GET and PUT /api/sector-allocations.
func (s *Server) handleSectorAllocations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		allocations, err := s.app.Storage.SectorTargets().GetSectorAllocations(r.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list sector allocations")
			WriteError(w, http.StatusInternalServerError, "Failed to list sector allocations")
			return
		}
		WriteJSON(w, http.StatusOK, allocations)

	case http.MethodPut:
		var alloc models.SectorAllocation
		if !DecodeJSON(w, r, &alloc) {
			return
		}
		if err := s.app.Storage.SectorTargets().UpsertSectorAllocation(r.Context(), alloc.Sector, alloc.Allocation); err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.Error().Err(err).Str("sector", alloc.Sector).Msg("Failed to save sector allocation")
			WriteError(w, http.StatusInternalServerError, "Failed to save sector allocation")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleRecalculate handles POST /api/recalculate, the risk pipeline
// entrypoint. Invalid input rejects the whole request; every other
// failure degrades only the affected row.
func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RecalculateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := s.app.Evaluator.Evaluate(r.Context(), req.Rows)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("Recalculation failed")
		WriteError(w, http.StatusInternalServerError, "Recalculation failed")
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
