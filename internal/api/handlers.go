package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/wegmarke/wegmarke/internal/logger"
	"github.com/wegmarke/wegmarke/internal/quest"
)

func (s *Server) handleGetAreas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"questAreas": s.store.Areas(),
	})
}

func (s *Server) handleGetArea(w http.ResponseWriter, r *http.Request) {
	areaID := mux.Vars(r)["areaId"]

	area, err := s.store.Area(areaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, area)
}

func (s *Server) handleGetMarkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"mapQuestMarkers": s.store.Markers(),
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"completedQuests":         s.store.CompletedQuestCount(),
		"totalQuests":             s.store.TotalQuestCount(),
		"completedUnlockedQuests": s.store.CompletedUnlockedQuestCount(),
		"totalUnlockedQuests":     s.store.TotalUnlockedQuestCount(),
		"totalPoints":             s.store.TotalPoints(),
		"level":                   s.store.Level(),
		"xp":                      s.store.XP(),
		"xpToNextLevel":           s.store.XPToNextLevel(),
		"achievements": map[string]bool{
			"firstQuest": s.store.FirstQuestAchieved(),
			"fiveQuests": s.store.FiveQuestsAchieved(),
			"allQuests":  s.store.AllQuestsAchieved(),
		},
		"hasNewAchievement": s.store.HasNewAchievement(),
	})
}

func (s *Server) handleCompleteMain(w http.ResponseWriter, r *http.Request) {
	areaID := mux.Vars(r)["areaId"]

	result, err := s.store.CompleteMainQuest(areaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": result})
}

func (s *Server) handleCompleteSub(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := s.store.CompleteSubQuest(vars["areaId"], vars["questId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": result})
}

type solveRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	correct, result, err := s.store.SubmitSolution(vars["areaId"], vars["questId"], req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}

	// A wrong answer is a normal negative result, not an HTTP error
	response := map[string]any{"correct": correct}
	if correct {
		response["status"] = result
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleAckAchievements(w http.ResponseWriter, r *http.Request) {
	s.store.AcknowledgeAchievements()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps store sentinels to HTTP statuses: unknown ids are 404,
// operating on a locked area is 409.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, quest.ErrAreaNotFound), errors.Is(err, quest.ErrQuestNotFound):
		status = http.StatusNotFound
	case errors.Is(err, quest.ErrAreaLocked):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
