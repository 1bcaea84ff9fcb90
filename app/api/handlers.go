package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	rosterservice "github.com/courtside-club/bracket-bot/app/modules/roster/application"
)

// maxRosterUpload caps roster file uploads at 4 MiB.
const maxRosterUpload = 4 << 20

// BracketAPIHandlers serves the tournament REST surface.
type BracketAPIHandlers struct {
	brackets bracketservice.Service
	rosters  rosterservice.Service
}

// NewBracketAPIHandlers creates a new BracketAPIHandlers instance.
func NewBracketAPIHandlers(brackets bracketservice.Service, rosters rosterservice.Service) *BracketAPIHandlers {
	return &BracketAPIHandlers{
		brackets: brackets,
		rosters:  rosters,
	}
}

type createTournamentRequest struct {
	Name        string                          `json:"name"`
	Competitors []bracketevents.CompetitorInput `json:"competitors"`
}

type recordWinnerRequest struct {
	WinnerID string `json:"winner_id"`
}

type annotateMatchRequest struct {
	Annotation string `json:"annotation"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeResult maps a service result envelope onto HTTP: failures are
// the caller's fault, successes carry the event payload.
func writeResult(w http.ResponseWriter, successStatus int, result bracketservice.BracketOperationResult) {
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, successStatus, result.Success)
}

func tournamentID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "tournamentID"))
}

// CreateTournament seeds and builds a new bracket.
func (h *BracketAPIHandlers) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	competitors := make([]bracketdomain.Competitor, 0, len(req.Competitors))
	for _, in := range req.Competitors {
		competitors = append(competitors, bracketdomain.Competitor{
			ID:   bracketdomain.CompetitorID(in.ID),
			Name: in.Name,
			Seed: in.Seed,
			Pool: (*bracketdomain.PoolID)(in.Pool),
		})
	}

	result, err := h.brackets.CreateTournament(r.Context(), req.Name, competitors)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to create tournament: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusCreated, result)
}

// GetTournament returns tournament metadata.
func (h *BracketAPIHandlers) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		http.Error(w, "invalid tournament id", http.StatusBadRequest)
		return
	}

	tournament, err := h.brackets.GetTournament(r.Context(), id)
	if err != nil {
		if errors.Is(err, bracketdb.ErrTournamentNotFound) {
			http.Error(w, "tournament not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("failed to get tournament: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tournament)
}

// GetBracket returns the current bracket tree.
func (h *BracketAPIHandlers) GetBracket(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		http.Error(w, "invalid tournament id", http.StatusBadRequest)
		return
	}

	bracket, err := h.brackets.GetBracket(r.Context(), id)
	if err != nil {
		if errors.Is(err, bracketdb.ErrTournamentNotFound) || errors.Is(err, bracketdb.ErrNoSnapshots) {
			http.Error(w, "bracket not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("failed to get bracket: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bracket)
}

// RecordWinner applies a declared winner to a match.
func (h *BracketAPIHandlers) RecordWinner(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		http.Error(w, "invalid tournament id", http.StatusBadRequest)
		return
	}

	var req recordWinnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	matchID := bracketdomain.MatchID(chi.URLParam(r, "matchID"))
	result, err := h.brackets.RecordWinner(r.Context(), id, matchID, bracketdomain.CompetitorID(req.WinnerID))
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to record winner: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusOK, result)
}

// UndoLastResult rolls the bracket back one recorded result.
func (h *BracketAPIHandlers) UndoLastResult(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		http.Error(w, "invalid tournament id", http.StatusBadRequest)
		return
	}

	result, err := h.brackets.UndoLastResult(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to undo result: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusOK, result)
}

// AnnotateMatch attaches free-form text to a match.
func (h *BracketAPIHandlers) AnnotateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		http.Error(w, "invalid tournament id", http.StatusBadRequest)
		return
	}

	var req annotateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	matchID := bracketdomain.MatchID(chi.URLParam(r, "matchID"))
	result, err := h.brackets.AnnotateMatch(r.Context(), id, matchID, req.Annotation)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to annotate match: %v", err), http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusOK, result)
}

// ProgressChart renders the per-round completion chart as PNG.
func (h *BracketAPIHandlers) ProgressChart(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		http.Error(w, "invalid tournament id", http.StatusBadRequest)
		return
	}

	bracket, err := h.brackets.GetBracket(r.Context(), id)
	if err != nil && !errors.Is(err, bracketdb.ErrNoSnapshots) && !errors.Is(err, bracketdb.ErrTournamentNotFound) {
		http.Error(w, fmt.Sprintf("failed to get bracket: %v", err), http.StatusInternalServerError)
		return
	}

	png, err := GenerateProgressChart(bracket)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ImportRoster accepts a roster file upload and returns pooled
// competitors ready for tournament creation.
func (h *BracketAPIHandlers) ImportRoster(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRosterUpload); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("roster")
	if err != nil {
		http.Error(w, "missing roster file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxRosterUpload))
	if err != nil {
		http.Error(w, "failed to read roster file", http.StatusBadRequest)
		return
	}

	result, err := h.rosters.ImportRoster(r.Context(), header.Filename, data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// BracketRoutes sets up the routes for the tournament controller.
func BracketRoutes(handlers *BracketAPIHandlers) chi.Router {
	r := chi.NewRouter()
	r.Post("/", handlers.CreateTournament)
	r.Get("/{tournamentID}", handlers.GetTournament)
	r.Get("/{tournamentID}/bracket", handlers.GetBracket)
	r.Get("/{tournamentID}/progress.png", handlers.ProgressChart)
	r.Post("/{tournamentID}/matches/{matchID}/winner", handlers.RecordWinner)
	r.Post("/{tournamentID}/matches/{matchID}/annotation", handlers.AnnotateMatch)
	r.Post("/{tournamentID}/undo", handlers.UndoLastResult)
	return r
}
