// Package server exposes the rendering pipeline over HTTP: an upload
// endpoint returning the rendered chart as base64 JSON, a style listing,
// and a health probe.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/klauspost/compress/gzhttp"

	"chromaglyph/internal/config"
	"chromaglyph/internal/histogram"
	"chromaglyph/internal/logger"
	"chromaglyph/internal/pipeline"
	"chromaglyph/internal/render"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

type Server struct {
	cfg   config.Config
	coord *pipeline.Coordinator
	log   logger.Logger
	http  *http.Server
}

func New(cfg config.Config, coord *pipeline.Coordinator, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop{}
	}
	s := &Server{cfg: cfg, coord: coord, log: log}
	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the route table. Responses are gzip-compressed when the
// client accepts it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/histogram", s.handleHistogram)
	mux.HandleFunc("GET /api/v1/styles", s.handleStyles)
	mux.HandleFunc("GET /health", s.handleHealth)
	return gzhttp.GzipHandler(mux)
}

func (s *Server) ListenAndServe() error {
	s.log.Info("Server", "listening", map[string]interface{}{"addr": s.cfg.Addr})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type metadata struct {
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	DominantColors   []string `json:"dominant_colors"`
	ProcessingTimeMS int64    `json:"processing_time_ms"`
}

type histogramResponse struct {
	Image    string   `json:"image"` // base64 PNG
	Metadata metadata `json:"metadata"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSizeBytes())

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing or unreadable file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "upload exceeds the size limit or was truncated")
		return
	}

	if !s.supportedType(header.Header.Get("Content-Type"), data) {
		s.writeError(w, http.StatusUnsupportedMediaType, "unsupported image type")
		return
	}

	style := r.FormValue("style")
	if style == "" {
		style = s.cfg.DefaultStyle
	}
	params, err := s.parseParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.coord.Process(r.Context(), data, style, params)
	if err != nil {
		s.writeProcessError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, histogramResponse{
		Image: base64.StdEncoding.EncodeToString(out.Image),
		Metadata: metadata{
			Width:            out.Width,
			Height:           out.Height,
			DominantColors:   out.DominantColors,
			ProcessingTimeMS: out.ProcessingTime.Milliseconds(),
		},
	})
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"styles":  s.coord.Styles(),
		"default": s.cfg.DefaultStyle,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}

// parseParams reads the optional form fields, falling back to configured
// defaults. Range validation happens in the render package.
func (s *Server) parseParams(r *http.Request) (render.Params, error) {
	params := render.Params{
		Width:       s.cfg.DefaultWidth,
		AspectRatio: s.cfg.DefaultAspectRatio,
		Smoothing:   s.cfg.DefaultSmoothing,
	}

	if v := r.FormValue("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return params, fmt.Errorf("width must be an integer")
		}
		params.Width = width
	}
	if v := r.FormValue("smoothing"); v != "" {
		smoothing, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("smoothing must be a number")
		}
		params.Smoothing = smoothing
	}
	if v := r.FormValue("aspect_ratio"); v != "" {
		aspect, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("aspect_ratio must be a number")
		}
		params.AspectRatio = aspect
	}
	return params, nil
}

// supportedType accepts the upload when either the declared or the sniffed
// content type is in the configured set.
func (s *Server) supportedType(declared string, data []byte) bool {
	sniffed := http.DetectContentType(data)
	for _, t := range s.cfg.SupportedTypes {
		if declared == t || sniffed == t {
			return true
		}
	}
	return false
}

// writeProcessError maps pipeline failures onto status codes. Validation
// and decode problems are the client's fault; anything else is reported as
// a generic processing failure without internal detail.
func (s *Server) writeProcessError(w http.ResponseWriter, err error) {
	var vErr *render.ValidationError
	switch {
	case errors.As(err, &vErr):
		s.writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, render.ErrUnknownStyle):
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%v; available: %v", err, s.coord.Styles()))
	case errors.Is(err, histogram.ErrDecode), errors.Is(err, histogram.ErrEmptyImage):
		s.writeError(w, http.StatusBadRequest, "image could not be decoded")
	default:
		s.log.Error("Server", err, nil)
		s.writeError(w, http.StatusInternalServerError, "processing failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Server", err, nil)
	}
}
