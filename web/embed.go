package web

import "embed"

// TemplatesFS embeds the page and HTMX partial templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the stylesheet and script served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
