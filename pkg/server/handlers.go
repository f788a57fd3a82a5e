package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cascade/pkg/animate"
	"github.com/matzehuels/cascade/pkg/buildinfo"
	"github.com/matzehuels/cascade/pkg/config"
	cerrors "github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/pipeline"
	"github.com/matzehuels/cascade/pkg/render/sink"
	"github.com/matzehuels/cascade/pkg/scene"
	"github.com/matzehuels/cascade/pkg/sortfn"
	"github.com/matzehuels/cascade/pkg/timeline"
	"github.com/matzehuels/cascade/pkg/validate"
)

// Request is the body of every POST endpoint. Zero-valued fields keep the
// server defaults.
type Request struct {
	Scene       *scene.File      `json:"scene,omitempty"`
	Grid        string           `json:"grid,omitempty"`
	Sort        config.Sort      `json:"sort"`
	Animation   config.Animation `json:"animation"`
	Formats     []string         `json:"formats,omitempty"`
	Scale       float64          `json:"scale,omitempty"`
	Detailed    bool             `json:"detailed,omitempty"`
	LeftToRight bool             `json:"left_to_right,omitempty"`
	Refresh     bool             `json:"refresh,omitempty"`
}

// ScheduleResponse is returned by /v1/schedule.
type ScheduleResponse struct {
	Timeline *timeline.Timeline `json:"timeline"`
	Cached   bool               `json:"cached"`
}

// RenderResponse is returned by /v1/render. Artifacts are base64 encoded.
type RenderResponse struct {
	TimelineID string            `json:"timeline_id"`
	Artifacts  map[string]string `json:"artifacts"`
	Cached     bool              `json:"cached"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatTree: "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleFunctions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"functions": sortfn.KindNames(),
		"easings":   animate.EasingNames(),
		"themes":    sink.ThemeNames(),
		"formats":   pipeline.Formats,
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	req, root, err := s.decode(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts := s.options(req)
	tl, hit, err := s.runner.ScheduleWithCacheInfo(r.Context(), root, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleResponse{Timeline: tl, Cached: hit})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := cerrors.ValidateFormat(format, pipeline.Formats); err != nil {
		writeError(w, r, err)
		return
	}
	req, root, err := s.decode(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Formats = []string{format}

	artifacts, hit, err := s.execute(r, req, root)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleRenderAll(w http.ResponseWriter, r *http.Request) {
	req, root, err := s.decode(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts := s.options(req)
	tl, _, err := s.runner.ScheduleWithCacheInfo(r.Context(), root, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), tl, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := RenderResponse{TimelineID: tl.ID, Artifacts: make(map[string]string, len(artifacts)), Cached: hit}
	for f, data := range artifacts {
		resp.Artifacts[f] = base64.StdEncoding.EncodeToString(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) execute(r *http.Request, req *Request, root *scene.Box) (map[string][]byte, bool, error) {
	opts := s.options(req)
	tl, _, err := s.runner.ScheduleWithCacheInfo(r.Context(), root, opts)
	if err != nil {
		return nil, false, err
	}
	return s.runner.RenderWithCacheInfo(r.Context(), tl, opts)
}

// =============================================================================
// Request decoding
// =============================================================================

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*Request, *scene.Box, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req Request
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, cerrors.New(cerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return nil, nil, cerrors.New(cerrors.ErrCodeInvalidInput, "empty request body")
		}
		return nil, nil, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "decode request")
	}

	root, err := sceneOf(&req)
	if err != nil {
		return nil, nil, err
	}
	return &req, root, nil
}

func sceneOf(req *Request) (*scene.Box, error) {
	switch {
	case req.Scene != nil && req.Grid != "":
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "scene and grid are mutually exclusive")
	case req.Grid != "":
		return pipeline.GridScene(req.Grid)
	case req.Scene == nil:
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "scene or grid is required")
	}
	if err := validate.Struct(req.Scene); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidScene, err, "%s", validate.Message(err))
	}
	root, err := req.Scene.Build()
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidScene, err, "scene")
	}
	return root, pipeline.CheckScene(root)
}

// options overlays the request fields on the server defaults. Zero values
// are treated as unset, except delay_ms and duration_ms which count when
// present.
func (s *Server) options(req *Request) pipeline.Options {
	o := s.defaults
	o.Formats = slices.Clone(req.Formats)
	o.Animations = slices.Clone(o.Animations)

	sr := req.Sort
	if sr.Function != "" {
		// A new function replaces every sort parameter of the defaults.
		o.Sort, o.Delay, o.Duration = sr.Function, nil, nil
		o.Direction, o.Corner, o.Position = "", "", ""
		o.HorizontalWeight, o.VerticalWeight = "", ""
		o.Seed, o.Reversed = 0, false
	}
	setIf(&o.Depth, sr.Depth)
	if sr.DelayMS != nil {
		o.Delay = config.Millis(sr.DelayMS)
	}
	if sr.DurationMS != nil {
		o.Duration = config.Millis(sr.DurationMS)
	}
	setIf(&o.Direction, sr.Direction)
	setIf(&o.Corner, sr.Corner)
	setIf(&o.Position, sr.Position)
	setIf(&o.HorizontalWeight, sr.HorizontalWeight)
	setIf(&o.VerticalWeight, sr.VerticalWeight)
	setIf(&o.Seed, sr.Seed)
	o.Reversed = o.Reversed || sr.Reversed

	a := req.Animation
	if len(a.Stocks) > 0 {
		o.Animations = slices.Clone(a.Stocks)
	}
	setIf(&o.Easing, a.Easing)
	setIf(&o.AnimationDuration, time.Duration(a.DurationMS)*time.Millisecond)
	setIf(&o.Theme, a.Theme)
	o.Labels = o.Labels || a.Labels

	setIf(&o.Scale, req.Scale)
	o.Detailed = req.Detailed
	o.LeftToRight = req.LeftToRight
	o.Refresh = req.Refresh
	o.Logger = nil
	return o
}

func setIf[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := cerrors.GetCode(err)
	msg := cerrors.UserMessage(err)
	if code == "" {
		code = cerrors.ErrCodeInternal
	}
	if code == cerrors.ErrCodeInternal {
		msg = "internal error"
	}
	writeJSON(w, cerrors.HTTPStatus(err), ErrorResponse{
		Code:      string(code),
		Message:   msg,
		RequestID: RequestID(r.Context()),
	})
}

func notFound(path string) error {
	return cerrors.New(cerrors.ErrCodeNotFound, "no route for %s", path)
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
