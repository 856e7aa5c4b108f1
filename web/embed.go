// Package web embeds the UI assets served by the HTTP layer.
package web

import "embed"

// TemplatesFS holds the server-rendered HTML templates.
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds static assets (css, icons).
//go:embed static/*
var StaticFS embed.FS
