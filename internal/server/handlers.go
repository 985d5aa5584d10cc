package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snapgraph/snapgraph/pkg/cache"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/render"
	"github.com/snapgraph/snapgraph/pkg/store"
)

// handleValidate validates a posted document and returns the report.
// The HTTP status is 200 even for documents that fail validation; the
// report itself carries the verdict.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	key := cache.ReportKey(cache.Hash(body))
	if cached, found, _ := s.cache.Get(r.Context(), key); found {
		writeRaw(w, http.StatusOK, "application/json", cached)
		return
	}

	_, report := s.validator.ValidateBytes(body)
	data, err := json.Marshal(report)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode report"))
		return
	}
	_ = s.cache.Set(r.Context(), key, data, cacheTTL)
	writeRaw(w, http.StatusOK, "application/json", data)
}

// layoutResponse maps instance ids to computed canvas positions.
type layoutResponse struct {
	Pivots map[string]document.Pivot `json:"pivots"`
}

// handleLayout computes grid placements for a posted document without
// touching any live host.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Pivots: s.restorer.Placements(doc)})
}

// handleRender returns a DOT or SVG preview of a posted document.
// ?format=dot|svg, default svg.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "dot" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format))
		return
	}

	key := cache.RenderKey(cache.Hash(body), format)
	contentType := "image/svg+xml"
	if format == "dot" {
		contentType = "text/vnd.graphviz"
	}
	if cached, found, _ := s.cache.Get(r.Context(), key); found {
		writeRaw(w, http.StatusOK, contentType, cached)
		return
	}

	doc, err := document.Unmarshal(body)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document"))
		return
	}

	dot := render.ToDOT(doc, render.Options{})
	out := []byte(dot)
	if format == "svg" {
		out, err = render.RenderSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
			return
		}
	}

	_ = s.cache.Set(r.Context(), key, out, cacheTTL)
	writeRaw(w, http.StatusOK, contentType, out)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	metas, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if metas == nil {
		metas = []store.Meta{}
	}
	writeJSON(w, http.StatusOK, metas)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	meta, err := s.store.Put(r.Context(), chi.URLParam(r, "name"), doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := document.Marshal(doc)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode document"))
		return
	}
	writeRaw(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody reads and bounds the request body. On failure it writes the
// error response and returns ok=false.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return nil, false
	}
	return body, true
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (*document.Document, bool) {
	body, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}
	doc, err := document.Unmarshal(body)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document"))
		return nil, false
	}
	return doc, true
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidToken, errors.ErrCodeInvalidGUID:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: string(code), Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
