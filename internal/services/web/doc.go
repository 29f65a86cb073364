// Package web hosts the browser-facing injury-risk form.
//
// Each browser session owns one prediction form controller. Pages and HTMX
// fragments only read controller state and forward edits and submit intent.
package web
