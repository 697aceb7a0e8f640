package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/backdrop/pkg/buildinfo"
	"github.com/matzehuels/backdrop/pkg/config"
	"github.com/matzehuels/backdrop/pkg/errors"
	"github.com/matzehuels/backdrop/pkg/glyph"
	"github.com/matzehuels/backdrop/pkg/physics"
	"github.com/matzehuels/backdrop/pkg/pipeline"
)

// Response headers.
const (
	SeedHeader  = "X-Backdrop-Seed"
	CacheHeader = "X-Cache"
)

// Request limits.
const (
	maxSimulateFrames = 10000
	maxSimulateBody   = 1 << 20
	maxGlyphText      = 256
	defaultGlyphText  = "VISION"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleBackdrop renders one artifact. A missing seed draws a random one,
// which is echoed in X-Backdrop-Seed so the client can reproduce it.
func (s *Server) handleBackdrop(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.backdropOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(SeedHeader, strconv.FormatUint(result.Seed, 10))
	w.Header().Set(CacheHeader, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) backdropOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.cfg.PipelineOptions()
	opts.Logger = s.logger

	if v := q.Get("seed"); v != "" {
		seed, err := errors.ParseSeed(v)
		if err != nil {
			return opts, err
		}
		opts.Seed = seed
	} else {
		opts.RandomSeed = true
	}
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}

	var err error
	if opts.Width, err = intParam(q.Get("width"), opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q.Get("height"), opts.Height); err != nil {
		return opts, err
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil || !(opts.Scale > 0) || math.IsInf(opts.Scale, 0) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
	}
	if v := q.Get("animate"); v != "" {
		if opts.Animate, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid animate %q", v)
		}
	}
	return opts, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid integer %q", v)
	}
	return n, nil
}

// simulateRequest drives a single axis. Deltas wins over Scroll; Scroll
// holds absolute positions starting from 0. Tuning wins over Preset.
type simulateRequest struct {
	Preset string          `json:"preset"`
	Deltas []float64       `json:"deltas"`
	Scroll []float64       `json:"scroll"`
	Tuning *physics.Tuning `json:"tuning"`
}

type simulateResponse struct {
	Tuning physics.Tuning `json:"tuning"`
	Frames []frame        `json:"frames"`
}

type frame struct {
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSimulateBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	tuning, err := req.tuning(s.cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	deltas := req.Deltas
	if deltas == nil {
		deltas = physics.Deltas(0, req.Scroll)
	}
	if len(deltas) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "deltas or scroll required"))
		return
	}
	if len(deltas) > maxSimulateFrames {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "too many frames (max %d)", maxSimulateFrames))
		return
	}

	states := physics.Trace(physics.State{}, tuning, deltas)
	resp := simulateResponse{Tuning: tuning, Frames: make([]frame, len(states))}
	for i, st := range states {
		resp.Frames[i] = frame{Position: st.Position, Velocity: st.Velocity}
	}
	writeJSON(w, http.StatusOK, resp)
}

// tuning resolves the request's tuning. Named presets come from the config,
// so a deployment's tuning overrides apply to the API too.
func (req simulateRequest) tuning(cfg config.Config) (physics.Tuning, error) {
	if req.Tuning != nil {
		if err := req.Tuning.Validate(); err != nil {
			return physics.Tuning{}, errors.Wrap(errors.ErrCodeInvalidTuning, err, "invalid tuning")
		}
		return *req.Tuning, nil
	}
	switch req.Preset {
	case "", "snappy", "vertical":
		return cfg.Physics.Vertical, nil
	case "floaty", "horizontal":
		return cfg.Physics.Horizontal, nil
	}
	return physics.Tuning{}, errors.New(errors.ErrCodeInvalidTuning, "unknown preset %q", req.Preset)
}

type glyphResponse struct {
	Text   string    `json:"text"`
	Seed   int       `json:"seed"`
	Scales []float64 `json:"scales"`
}

func (s *Server) handleGlyph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	if text == "" {
		text = defaultGlyphText
	}
	if len([]rune(text)) > maxGlyphText {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "text too long (max %d characters)", maxGlyphText))
		return
	}

	var scroll float64
	if v := q.Get("scroll"); v != "" {
		var err error
		scroll, err = strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(scroll) || math.IsInf(scroll, 0) {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid scroll %q", v))
			return
		}
	}

	seed := glyph.SeedFor(scroll)
	writeJSON(w, http.StatusOK, glyphResponse{Text: text, Seed: seed, Scales: glyph.Scales(text, seed)})
}
