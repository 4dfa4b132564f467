package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"sensitivecancergpt/predictor"
)

const (
	tabSensitivity    = "sensitivity"
	tabDetection      = "detection"
	tabVisualizations = "visualizations"

	defaultDrug     = "ML323"
	defaultCellLine = "USP1"
)

var tabs = []tab{
	{ID: tabSensitivity, Path: "/sensitivity", Label: "🔬 Sensitivity Prediction"},
	{ID: tabDetection, Path: "/detection", Label: "🩺 Cancer Detection"},
	{ID: tabVisualizations, Path: "/visualizations", Label: "📊 Visualizations"},
}

type tab struct {
	ID    string
	Path  string
	Label string
}

// flash is a status box; Level is one of success, info, warning, error.
type flash struct {
	Level string
	Text  string
}

type pageData struct {
	Active  string
	Tabs    []tab
	Init    InitStatus
	Flashes []flash

	// form results
	Response    template.HTML
	Result      string
	ResultTitle string
	HasResult   bool

	Tissue   string
	Drug     string
	CellLine string

	Fields         predictor.ClinicalFields
	LymphNodeOpts  []string
	MenopauseOpts  []string
	GradeOpts      []int
	MinAge, MaxAge int
	MinSize        int
	MaxSize        int

	Sensitivity []predictor.SensitivityRecord
	Detection   []predictor.DetectionRecord
	Bar         *barChart
	Donut       *donutChart
}

func (s *Server) newPage(active string) pageData {
	return pageData{
		Active:        active,
		Tabs:          tabs,
		Init:          s.settings.Init,
		Tissue:        predictor.TissueType,
		LymphNodeOpts: predictor.LymphNodeOptions,
		MenopauseOpts: predictor.MenopauseOptions,
		GradeOpts:     predictor.GradeOptions,
		MinAge:        predictor.MinAge,
		MaxAge:        predictor.MaxAge,
		MinSize:       predictor.MinTumorSize,
		MaxSize:       predictor.MaxTumorSize,
	}
}

func (d *pageData) info(text string)    { d.Flashes = append(d.Flashes, flash{"info", text}) }
func (d *pageData) success(text string) { d.Flashes = append(d.Flashes, flash{"success", text}) }
func (d *pageData) warn(text string)    { d.Flashes = append(d.Flashes, flash{"warning", text}) }
func (d *pageData) fail(text string)    { d.Flashes = append(d.Flashes, flash{"error", text}) }

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(tabs))
	for _, t := range tabs {
		tmpl, err := template.ParseFS(embeddedTemplates, "templates/layout.html", "templates/"+t.ID+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", t.ID, err)
		}
		pages[t.ID] = tmpl
	}
	return pages, nil
}

// render executes into a buffer first so a template error never yields half a page.
func (s *Server) render(w http.ResponseWriter, status int, page string, data pageData) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Printf("[server] render %s: %v", page, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
