package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/flowdraw/pkg/buildinfo"
	errs "github.com/matzehuels/flowdraw/pkg/errors"
	"github.com/matzehuels/flowdraw/pkg/graph"
	"github.com/matzehuels/flowdraw/pkg/pipeline"
)

// Response headers describing how a result was produced.
const (
	HeaderCache    = "X-Flowdraw-Cache"
	HeaderLayoutID = "X-Flowdraw-Layout-Id"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// Request is the body accepted by the layout and render routes. The
// workflow is given either under "workflow" or as top-level tasks and
// links. Geometry fields that are omitted keep their configured value.
type Request struct {
	Workflow *graph.Workflow `json:"workflow,omitempty"`
	Tasks    []graph.Task    `json:"tasks,omitempty"`
	Links    []graph.Link    `json:"links,omitempty"`

	VizType     string          `json:"viz_type,omitempty"`
	Geometry    json.RawMessage `json:"geometry,omitempty"`
	PerLinkCuts bool            `json:"per_link_cuts,omitempty"`
	AllowEmpty  bool            `json:"allow_empty,omitempty"`
	Detailed    bool            `json:"detailed,omitempty"`
	Refresh     bool            `json:"refresh,omitempty"`

	Style      string  `json:"style,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	PortLabels *bool   `json:"port_labels,omitempty"`
}

type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	if err := opts.ValidateForLayout(); err != nil {
		s.fail(w, r, err)
		return
	}
	g, err := pipeline.Parse(opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, hit, err := s.runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set(HeaderCache, cacheStatus(hit))
	w.Header().Set(HeaderLayoutID, l.LayoutID)
	writeBytes(w, http.StatusOK, contentTypes[pipeline.FormatJSON], data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errs.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set(HeaderCache, cacheStatus(res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit))
	w.Header().Set(HeaderLayoutID, res.Layout.LayoutID)
	writeBytes(w, http.StatusOK, contentTypes[format], res.Artifacts[format])
}

// decodeRequest reads the body into pipeline options, applying the
// configured defaults and size limits.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	limits := s.cfg.Server
	if limits.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBodyBytes)
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Options{}, errs.New(errs.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return pipeline.Options{}, errs.New(errs.ErrCodeInvalidInput, "decode request: %v", err)
	}

	wf := req.Workflow
	if wf == nil {
		if req.Tasks == nil && req.Links == nil {
			return pipeline.Options{}, errs.New(errs.ErrCodeInvalidInput, "request has no workflow")
		}
		wf = &graph.Workflow{Tasks: req.Tasks, Links: req.Links}
	}
	if err := errs.ValidateWorkflow(*wf, limits.MaxTasks, limits.MaxLinks); err != nil {
		return pipeline.Options{}, err
	}

	geo := s.cfg.Geometry
	if len(req.Geometry) > 0 {
		if err := json.Unmarshal(req.Geometry, &geo); err != nil {
			return pipeline.Options{}, errs.New(errs.ErrCodeInvalidGeometry, "decode geometry: %v", err)
		}
	}

	opts := pipeline.Options{
		Workflow:       wf,
		VizType:        req.VizType,
		Geometry:       geo,
		PerLinkCuts:    req.PerLinkCuts,
		AllowEmpty:     req.AllowEmpty,
		Detailed:       req.Detailed,
		Refresh:        req.Refresh,
		Style:          req.Style,
		Scale:          req.Scale,
		HidePortLabels: !s.cfg.Render.PortLabels,
	}
	if opts.Style == "" {
		opts.Style = s.cfg.Render.Style
	}
	if opts.Scale == 0 {
		opts.Scale = s.cfg.Render.Scale
	}
	if req.PortLabels != nil {
		opts.HidePortLabels = !*req.PortLabels
	}
	return opts, nil
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Server.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.Server.Timeout)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Response Helpers
// =============================================================================

// fail classifies err, reports it to the HTTP hooks and writes the error body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	e := errs.FromLayoutError(err)
	status := errs.HTTPStatus(e.Code)
	route := routePattern(r)

	hooks().OnError(r.Context(), r.Method, route, e)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "route", route, "code", e.Code, "err", err)
	} else {
		s.logger.Debug("request rejected", "route", route, "code", e.Code, "err", err)
	}
	writeError(w, e)
}

func writeError(w http.ResponseWriter, e *errs.Error) {
	writeJSON(w, errs.HTTPStatus(e.Code), errorResponse{Code: e.Code, Message: e.Message})
}

func notFound(path string) *errs.Error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBytes(w, status, contentTypes[pipeline.FormatJSON], data)
}

func writeBytes(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
