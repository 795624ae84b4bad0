// Package web holds the drawer page templates and its static assets.
package web

import "embed"

// TemplatesFS embeds the page and the htmx partial templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets (css/js).
//
//go:embed static/*
var StaticFS embed.FS
