package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hyperjump/askdoc/internal/apperr"
	"github.com/hyperjump/askdoc/internal/models"
	"go.uber.org/zap"
)

// multipartOverhead is allowed on top of upload.max_bytes for form fields and
// part headers.
const multipartOverhead = 1 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	data := struct{ Model string }{Model: s.config.Completion.Model}
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render index failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := s.config.Upload.MaxBytes
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusBadRequest, "uploaded file is too large")
			return
		}
		s.respondError(w, http.StatusBadRequest, models.MsgUploadInvalid)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	question := r.FormValue("question")
	file, header, err := r.FormFile("file")
	if err != nil || question == "" || header.Filename == "" {
		if file != nil {
			_ = file.Close()
		}
		s.respondError(w, http.StatusBadRequest, models.MsgUploadInvalid)
		return
	}
	defer file.Close()

	doc := models.UploadedDocument{Name: header.Filename, Size: header.Size}
	s.logger.Debug("upload request", zap.String("file_name", doc.Name), zap.Int64("size", doc.Size))
	answer, err := s.answerer.AnswerUpload(r.Context(), doc, file, question)
	if err != nil {
		s.respondAppError(w, "upload", err)
		return
	}
	s.respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req models.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, models.MsgScrapeInvalid)
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("scrape request", zap.String("url", req.URL))
	answer, err := s.answerer.AnswerURL(r.Context(), req.URL, req.Question)
	if err != nil {
		s.respondAppError(w, "scrape", err)
		return
	}
	s.respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	used, err := s.uploads.UsageBytes()
	if err != nil {
		s.logger.Error("status: upload dir usage failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.StatusResponse{
		Model:           s.config.Completion.Model,
		CompletionURL:   s.config.Completion.BaseURL,
		UploadDir:       s.uploads.Dir(),
		UploadDirBytes:  used,
		MaxContextChars: s.config.Completion.MaxContextChars,
	})
}

// respondAppError maps err's kind to a status and returns its message verbatim.
func (s *Server) respondAppError(w http.ResponseWriter, op string, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	if kind == apperr.KindInvalidInput {
		status = http.StatusBadRequest
	}
	s.logger.Error(op+" failed", zap.String("kind", string(kind)), zap.Error(err))
	s.respondError(w, status, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.ErrorResponse{Error: message})
}
