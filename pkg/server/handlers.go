package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikogura/career-kit/pkg/history"
	"github.com/nikogura/career-kit/pkg/interview"
	"github.com/nikogura/career-kit/pkg/profile"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/nikogura/career-kit/pkg/renderer"
	"github.com/nikogura/career-kit/pkg/scorer"
	"github.com/pkg/errors"
)

// defaultInterviewLength is used when a mock interview request omits
// num_questions.
const defaultInterviewLength = 5

// ResumeResponse is the body returned by POST /v1/resumes.
type ResumeResponse struct {
	Resume string        `json:"resume"`
	ATS    scorer.Report `json:"ats"`
}

// ScoreRequest is the body accepted by POST /v1/ats.
type ScoreRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description,omitempty"`
}

// CoverLetterResponse is the body returned by POST /v1/cover-letters.
type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
	ID          string `json:"id,omitempty"`
}

// MockInterviewRequest is the body accepted by POST /v1/mock-interviews.
type MockInterviewRequest struct {
	Categories   []string `json:"categories"`
	NumQuestions *int     `json:"num_questions,omitempty"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRenderResume(w http.ResponseWriter, r *http.Request) {
	var in profile.ResumeInput
	if !decodeBody(w, r, &in) {
		return
	}

	resume := renderer.RenderResume(in)
	writeJSON(w, http.StatusOK, ResumeResponse{
		Resume: resume,
		ATS:    s.scorer.Score(resume, ""),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, s.scorer.Score(req.ResumeText, req.JobDescription))
}

func (s *Server) handleRenderCoverLetter(w http.ResponseWriter, r *http.Request) {
	var in profile.CoverLetterInput
	if !decodeBody(w, r, &in) {
		return
	}

	letter := renderer.RenderCoverLetter(in.Job, in.Applicant)
	resp := CoverLetterResponse{CoverLetter: letter}

	// Only letters for a named company and position are recorded.
	company := strings.TrimSpace(in.Job.Company)
	position := strings.TrimSpace(in.Job.Position)
	if company == "" || position == "" {
		s.logger.Debug("cover letter not recorded without company and position")
		writeJSON(w, http.StatusOK, resp)
		return
	}

	saved, err := s.history.SaveCoverLetter(r.Context(), history.CoverLetter{
		Company:  company,
		Position: position,
		Content:  letter,
	})
	if err != nil {
		s.logger.Warn("failed to record cover letter", "company", company, "position", position, "error", err)
	} else {
		resp.ID = saved.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCoverLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := s.history.ListCoverLetters(r.Context())
	if err != nil {
		s.internalError(w, "failed to list cover letters", err)
		return
	}
	writeJSON(w, http.StatusOK, letters)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	subcategory := r.URL.Query().Get("subcategory")

	var list []questions.Question
	if category == "" {
		list = s.bank.All()
	} else {
		list = s.bank.ByCategory(category, subcategory)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleRandomQuestion(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	q, ok := s.sampler.Random(category)
	if !ok {
		httpError(w, http.StatusNotFound, "no questions available for category %q", category)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.Tips())
}

func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	var req MockInterviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	n := defaultInterviewLength
	if req.NumQuestions != nil {
		n = *req.NumQuestions
	}
	categories := req.Categories
	if len(categories) == 0 {
		categories = s.bank.Categories()
	}

	st, err := s.sessions.start(s.sampler.MockInterview(categories, n))
	if errors.Is(err, interview.ErrEmptySession) {
		httpError(w, http.StatusUnprocessableEntity, "no questions matched the requested categories")
		return
	}
	if err != nil {
		s.internalError(w, "failed to start mock interview", err)
		return
	}

	s.logger.Debug("mock interview started", "id", st.ID, "questions", st.Total)
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, nil)
}

func (s *Server) handleRevealAnswer(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*interview.Session).Reveal)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*interview.Session).Next)
}

func (s *Server) handleDeleteInterview(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if !s.sessions.remove(id) {
		httpError(w, http.StatusNotFound, "mock interview not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// transition applies op to the session named in the path and writes its
// state. A nil op only reads the state.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(*interview.Session) error) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	st, found, err := s.sessions.do(id, op)
	switch {
	case !found:
		httpError(w, http.StatusNotFound, "mock interview not found")
	case errors.Is(err, interview.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": errorBody{Message: err.Error(), Type: "invalid_transition"},
			"state": st,
		})
	case err != nil:
		s.internalError(w, "failed to update mock interview", err)
	default:
		writeJSON(w, http.StatusOK, st)
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, http.StatusNotFound, "mock interview not found")
		return id, ok
	}
	ok = true
	return id, ok
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.history.ListApplications(r.Context())
	if err != nil {
		s.internalError(w, "failed to list applications", err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleSaveApplication(w http.ResponseWriter, r *http.Request) {
	var app history.Application
	if !decodeBody(w, r, &app) {
		return
	}

	saved, err := s.history.SaveApplication(r.Context(), app)
	if errors.Is(err, history.ErrInvalidRecord) {
		httpError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "failed to save application", err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleApplicationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.history.Stats(r.Context())
	if err != nil {
		s.internalError(w, "failed to compute application stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// PortfolioResponse is the body returned by GET /v1/portfolio.
type PortfolioResponse struct {
	Projects      []history.Project `json:"projects"`
	Skills        []history.Skill   `json:"skills"`
	TotalProjects int               `json:"total_projects"`
	TotalSkills   int               `json:"total_skills"`
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	projects, err := s.history.ListProjects(r.Context())
	if err != nil {
		s.internalError(w, "failed to list projects", err)
		return
	}
	skills, err := s.history.ListSkills(r.Context())
	if err != nil {
		s.internalError(w, "failed to list skills", err)
		return
	}

	writeJSON(w, http.StatusOK, PortfolioResponse{
		Projects:      projects,
		Skills:        skills,
		TotalProjects: len(projects),
		TotalSkills:   len(skills),
	})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.history.ListProjects(r.Context())
	if err != nil {
		s.internalError(w, "failed to list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	var project history.Project
	if !decodeBody(w, r, &project) {
		return
	}

	saved, err := s.history.SaveProject(r.Context(), project)
	if errors.Is(err, history.ErrInvalidRecord) {
		httpError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "failed to save project", err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.history.ListSkills(r.Context())
	if err != nil {
		s.internalError(w, "failed to list skills", err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleSaveSkill(w http.ResponseWriter, r *http.Request) {
	var skill history.Skill
	if !decodeBody(w, r, &skill) {
		return
	}

	saved, err := s.history.SaveSkill(r.Context(), skill)
	if errors.Is(err, history.ErrInvalidRecord) {
		httpError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "failed to save skill", err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

type errorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// decodeBody reads a size-limited JSON body into v, answering 400 itself
// when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) (ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpError(w, http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", maxRequestBodySize)
			return ok
		}
		httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return ok
	}

	ok = true
	return ok
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	httpError(w, http.StatusInternalServerError, "%s", msg)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, format string, args ...interface{}) {
	errType := "invalid_request_error"
	if code >= http.StatusInternalServerError {
		errType = "api_error"
	}
	writeJSON(w, code, map[string]interface{}{
		"error": errorBody{
			Message: fmt.Sprintf(format, args...),
			Type:    errType,
		},
	})
}
