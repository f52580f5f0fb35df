package chi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fwojciec/cdpdocs"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// AnswerSeparator joins ranked results into one answer.
const AnswerSeparator = "\n\n"

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Sentences int    `json:"sentences"`
	IndexID   string `json:"index_id"`
}

type rebuildResponse struct {
	IndexID   string         `json:"index_id"`
	Sentences int            `json:"sentences"`
	Sources   map[string]int `json:"sources"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	results, err := s.retriever.Search(r.Context(), req.Question)
	if err != nil {
		s.logger.Error("search failed", "question", req.Question, "err", err)
		results = []string{cdpdocs.NoResultsMessage}
	}
	s.respondJSON(w, http.StatusOK, askResponse{Answer: strings.Join(results, AnswerSeparator)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := s.retriever.Info()
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Sentences: info.Sentences,
		IndexID:   info.ID,
	})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	info, err := s.retriever.Rebuild(r.Context())
	if err != nil {
		s.logger.Error("rebuild failed", "err", err)
		s.respondError(w, errorStatus(err), cdpdocs.ErrorMessage(err))
		return
	}
	s.respondJSON(w, http.StatusOK, rebuildResponse{
		IndexID:   info.ID,
		Sentences: info.Sentences,
		Sources:   info.Sources,
	})
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(err error) int {
	switch cdpdocs.ErrorCode(err) {
	case cdpdocs.EINVALID:
		return http.StatusBadRequest
	case cdpdocs.ENOTFOUND:
		return http.StatusNotFound
	case cdpdocs.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
