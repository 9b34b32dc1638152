// Package chart draws a surface.Scene, either as a standalone SVG document
// for reports or as a grid of styled terminal cells.
package chart

import (
	"fmt"
	"html"
	"strings"

	"github.com/jbonatakis/skinwell/internal/polar"
	"github.com/jbonatakis/skinwell/internal/surface"
)

// SVGConfig holds rendering parameters for the SVG chart.
type SVGConfig struct {
	Width      int    // rendered width in pixels; height keeps the view box aspect
	Title      string // optional title drawn above the chart
	BgColor    string
	TextColor  string
	PillColor  string
	FontFamily string
}

func DefaultSVGConfig() SVGConfig {
	return SVGConfig{
		Width:      720,
		BgColor:    "#ffffff",
		TextColor:  "#1f2937",
		PillColor:  "#f9fafb",
		FontFamily: "sans-serif",
	}
}

const backgroundOpacity = 0.18

// SVG renders the scene as a complete SVG document.
func SVG(sc surface.Scene, cfg SVGConfig) string {
	if cfg.Width <= 0 {
		cfg.Width = DefaultSVGConfig().Width
	}
	height := int(float64(cfg.Width) * polar.ViewHeight / polar.ViewWidth)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %.0f %.0f" font-family="%s">`,
		cfg.Width, height, polar.ViewWidth, polar.ViewHeight, html.EscapeString(cfg.FontFamily))
	fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`, cfg.BgColor)
	if cfg.Title != "" {
		fmt.Fprintf(&sb, `<text x="%.1f" y="24" text-anchor="middle" font-size="16" font-weight="600" fill="%s">%s</text>`,
			polar.CenterX, cfg.TextColor, html.EscapeString(cfg.Title))
	}

	for _, seg := range sc.Segments {
		fmt.Fprintf(&sb, `<path d="%s" fill="%s" fill-opacity="%.2f" data-category="%s"/>`,
			seg.Geometry.Background.SVG(), seg.Category.Color, backgroundOpacity, seg.Category.ID)
		stroke := ""
		if seg.Active {
			stroke = fmt.Sprintf(` stroke="%s" stroke-width="2"`, cfg.TextColor)
		}
		fmt.Fprintf(&sb, `<path d="%s" fill="%s"%s data-category="%s" data-level="%d"/>`,
			seg.Geometry.Foreground.SVG(), seg.Category.Color, stroke, seg.Category.ID, seg.Level)
	}

	if c := sc.Controls; c != nil {
		writeControls(&sb, *c, cfg)
	}

	for _, seg := range sc.Segments {
		writeLabel(&sb, seg, cfg)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeLabel(sb *strings.Builder, seg surface.SegmentView, cfg SVGConfig) {
	p := seg.Pill
	fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-opacity="0.25"/>`,
		p.X, p.Y, p.W, p.H, p.H/2, cfg.PillColor, seg.Category.Color)
	anchor := seg.Geometry.Label
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="%s" font-size="11" font-weight="600" fill="%s">%s</text>`,
		anchor.Point.X, anchor.Point.Y-2, anchor.Align, cfg.TextColor, html.EscapeString(seg.Title))
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="%s" font-size="10" fill="%s">%s</text>`,
		anchor.Point.X, anchor.Point.Y+10, anchor.Align, seg.Band.Color, html.EscapeString(seg.Subtitle))
}

func writeControls(sb *strings.Builder, c surface.ControlsView, cfg SVGConfig) {
	fmt.Fprintf(sb, `<path d="%s" fill="%s" fill-opacity="0.85" data-control="details"/>`,
		c.Geometry.Details.SVG(), cfg.TextColor)
	writeButton(sb, c.Geometry.Increment, "+", c.CanIncrement, "increment", cfg)
	writeButton(sb, c.Geometry.Decrement, "−", c.CanDecrement, "decrement", cfg)
}

func writeButton(sb *strings.Builder, circle polar.Circle, glyph string, enabled bool, name string, cfg SVGConfig) {
	opacity := 1.0
	if !enabled {
		opacity = 0.35
	}
	fmt.Fprintf(sb, `<g data-control="%s" opacity="%.2f"><circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`,
		name, opacity, circle.Center.X, circle.Center.Y, circle.Radius, cfg.BgColor, cfg.TextColor)
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" fill="%s">%s</text></g>`,
		circle.Center.X, circle.Center.Y+4, cfg.TextColor, glyph)
}
