package web

import "embed"

// TemplatesFS holds the HTML pages rendered by the server.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and any other static assets.
//
//go:embed static/*
var StaticFS embed.FS
