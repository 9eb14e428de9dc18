package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/errors"
	pkgio "github.com/saasfactory/archviz/pkg/io"
	"github.com/saasfactory/archviz/pkg/pipeline"
	"github.com/saasfactory/archviz/pkg/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	data, err := pkgio.Marshal(s.cfg.Diagram, pkgio.JSON)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.FormatJSON.ContentType())
	_, _ = w.Write(data)
}

// handleArtifact renders the diagram. ?detailed=true adds resource kinds
// under the labels, ?refresh=true bypasses cached artifacts.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Formats:  []render.Format{format},
		Detailed: boolParam(r, "detailed"),
		Refresh:  boolParam(r, "refresh"),
	}
	res, err := s.cfg.Runner.Render(r.Context(), s.cfg.Diagram, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.Hit(format) {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("ETag", strconv.Quote(res.DOTHash[:16]+"-"+string(format)))
	if format.Image() {
		w.Header().Set("Content-Disposition", "inline; filename="+strconv.Quote(render.FileName(res.Title, format)))
	}
	_, _ = w.Write(res.Artifacts[format])
}

type kindDoc struct {
	Name string `json:"name"`
	catalog.Kind
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	kinds := catalog.All()
	out := make([]kindDoc, len(kinds))
	for i, k := range kinds {
		out[i] = kindDoc{Name: k.String(), Kind: k}
	}
	writeJSON(w, http.StatusOK, out)
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
