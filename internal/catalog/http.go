package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ShopFront/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.ListProducts(r.Context())
	if err != nil {
		s.respondError(w, err, "list products failed")
		return
	}
	kit.WriteJSON(w, http.StatusOK, doc)
}

func (s *Server) filterByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	doc, err := s.Store.FilterByCategory(r.Context(), category)
	if err != nil {
		s.respondError(w, err, "filter products failed", zap.String("category", category))
		return
	}
	kit.WriteJSON(w, http.StatusOK, doc)
}

func (s *Server) getByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Store.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, err, "get product failed", zap.String("id", id))
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listFAQs(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.ListFAQs(r.Context())
	if err != nil {
		s.respondError(w, err, "list faqs failed")
		return
	}
	kit.WriteJSON(w, http.StatusOK, doc)
}

func (s *Server) listPromos(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.ListPromos(r.Context())
	if err != nil {
		s.respondError(w, err, "list promos failed")
		return
	}
	kit.WriteJSON(w, http.StatusOK, doc)
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := decodeSubmitRequest(r)
	if err != nil {
		// An unreadable body carries no usable parameters.
		kit.WriteText(w, http.StatusBadRequest, MissingParamsMessage)
		return
	}

	msg, err := s.Store.SubmitFeedback(r.Context(), req)
	if err != nil {
		s.respondError(w, err, "submit feedback failed")
		return
	}
	kit.WriteText(w, http.StatusOK, msg)
}

// decodeSubmitRequest accepts JSON or form-encoded bodies.
func decodeSubmitRequest(r *http.Request) (SubmitRequest, error) {
	var req SubmitRequest

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return SubmitRequest{}, err
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return SubmitRequest{}, err
	}
	req.Name = r.PostFormValue("name")
	req.Email = r.PostFormValue("email")
	req.Feedback = r.PostFormValue("feedback")
	req.Phone = r.PostFormValue("phone")
	return req, nil
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteText(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// respondError maps store errors onto the wire contract: lookup misses and
// validation failures are 400s carrying their own message, everything else is
// a 500 with the fixed body.
func (s *Server) respondError(w http.ResponseWriter, err error, logMsg string, fields ...zap.Field) {
	var nf *NotFoundError
	var ve *ValidationError

	switch {
	case errors.As(err, &nf):
		kit.WriteText(w, http.StatusBadRequest, nf.Msg)
	case errors.As(err, &ve):
		kit.WriteText(w, http.StatusBadRequest, ve.Msg)
	default:
		if s.Log != nil {
			s.Log.Error(logMsg, append(fields, zap.Error(err))...)
		}
		kit.WriteText(w, http.StatusInternalServerError, ServerErrorMessage)
	}
}
