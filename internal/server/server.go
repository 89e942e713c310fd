package server

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/statplot/internal/chart"
	"github.com/san-kum/statplot/internal/dataset"
	"github.com/san-kum/statplot/internal/export"
)

const shutdownTimeout = 5 * time.Second

// Server exposes one chart controller over HTTP. Every handler holds the
// lock for the whole event, so the controller only ever sees one event at a
// time.
type Server struct {
	mu     sync.Mutex
	ctrl   *chart.Controller
	log    *slog.Logger
	engine *gin.Engine
}

// New wires the routes. ctrl must already be initialized.
func New(ctrl *chart.Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{ctrl: ctrl, log: logger}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/", s.handlePage)
	engine.POST("/axis/:name", s.handleAxisForm)
	engine.GET("/chart.svg", s.handleSVG)
	engine.GET("/chart.png", s.handlePNG)
	engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := engine.Group("/api")
	api.GET("/scene", s.handleScene)
	api.POST("/axis/:name", s.handleAxisAPI)
	api.POST("/hover/:mark", s.handleHover)
	api.DELETE("/hover", s.handleLeave)

	s.engine = engine
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// snapshot copies the current scene. Before the controller is initialized
// there is none; the request is answered with 503 and nil is returned.
func (s *Server) snapshot(c *gin.Context) *chart.Scene {
	s.mu.Lock()
	scene := s.ctrl.Scene()
	s.mu.Unlock()
	if scene == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": chart.ErrNotInitialized.Error()})
	}
	return scene
}

func (s *Server) handlePage(c *gin.Context) {
	scene := s.snapshot(c)
	if scene == nil {
		return
	}
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		SVG:      template.HTML(export.SceneToInlineSVG(scene)),
		Analysis: scene.Analysis,
	})
	if err != nil {
		s.log.Error("render page", "err", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleSVG(c *gin.Context) {
	scene := s.snapshot(c)
	if scene == nil {
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(export.SceneToSVG(scene)))
}

func (s *Server) handlePNG(c *gin.Context) {
	scene := s.snapshot(c)
	if scene == nil {
		return
	}
	var buf bytes.Buffer
	if err := export.SceneToPNG(&buf, scene); err != nil {
		s.log.Error("render png", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleScene(c *gin.Context) {
	scene := s.snapshot(c)
	if scene == nil {
		return
	}
	c.JSON(http.StatusOK, newSceneView(scene))
}

// click dispatches a label click and reports whether the axis changed.
func (s *Server) click(name string) (bool, *chart.Scene, error) {
	f, err := dataset.ParseField(name)
	if err != nil {
		return false, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switched, err := s.ctrl.OnAxisLabelClick(f)
	if err != nil {
		return false, nil, err
	}
	if switched {
		s.log.Info("axis switched", "x", f, "renders", s.ctrl.Renders())
	}
	return switched, s.ctrl.Scene(), nil
}

func (s *Server) handleAxisForm(c *gin.Context) {
	if _, _, err := s.click(c.Param("name")); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleAxisAPI(c *gin.Context) {
	switched, scene, err := s.click(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"switched": switched, "scene": newSceneView(scene)})
}

func (s *Server) handleHover(c *gin.Context) {
	var uri struct {
		Mark int `uri:"mark" binding:"min=0"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	err := s.ctrl.Dispatch(chart.HoverEvent(uri.Mark))
	scene := s.ctrl.Scene()
	s.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newSceneView(scene))
}

func (s *Server) handleLeave(c *gin.Context) {
	s.mu.Lock()
	err := s.ctrl.Dispatch(chart.LeaveEvent(chart.NoHover))
	scene := s.ctrl.Scene()
	s.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newSceneView(scene))
}

// sceneView is the JSON form of a scene. NaN coordinates become null.
type sceneView struct {
	X        dataset.Field `json:"x"`
	Y        dataset.Field `json:"y"`
	Analysis string        `json:"analysis"`
	Bounds   boundsView    `json:"bounds"`
	Labels   []labelView   `json:"axisLabels"`
	Marks    []markView    `json:"marks"`
	Hover    *int          `json:"hover"`
}

type boundsView struct {
	XMin *float64 `json:"xMin"`
	XMax *float64 `json:"xMax"`
	YMin *float64 `json:"yMin"`
	YMax *float64 `json:"yMax"`
}

type labelView struct {
	Field      dataset.Field `json:"field"`
	Text       string        `json:"text"`
	Horizontal bool          `json:"horizontal"`
	Active     bool          `json:"active"`
}

type markView struct {
	Index   int      `json:"index"`
	State   string   `json:"state"`
	Abbr    string   `json:"abbr"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	CX      *float64 `json:"cx"`
	CY      *float64 `json:"cy"`
	Tooltip string   `json:"tooltip"`
}

func newSceneView(s *chart.Scene) sceneView {
	v := sceneView{
		X:        s.X,
		Y:        s.Y,
		Analysis: s.Analysis,
		Bounds: boundsView{
			XMin: finite(s.Bounds.XMin),
			XMax: finite(s.Bounds.XMax),
			YMin: finite(s.Bounds.YMin),
			YMax: finite(s.Bounds.YMax),
		},
		Labels: make([]labelView, len(s.AxisLabels)),
		Marks:  make([]markView, len(s.Marks)),
	}
	for i, l := range s.AxisLabels {
		v.Labels[i] = labelView{Field: l.Field, Text: l.Text, Horizontal: l.Horizontal, Active: l.Active}
	}
	for i, m := range s.Marks {
		v.Marks[i] = markView{
			Index:   m.Index,
			State:   m.State,
			Abbr:    m.Abbr,
			X:       finite(m.XValue),
			Y:       finite(m.YValue),
			CX:      finite(m.CX),
			CY:      finite(m.CY),
			Tooltip: m.Tooltip.HTML(),
		}
	}
	if s.Hover != chart.NoHover {
		h := s.Hover
		v.Hover = &h
	}
	return v
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
