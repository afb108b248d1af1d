// Package view renders the dashboard's HTML pages with Handlebars templates.
//
// Page templates are embedded in the binary and compiled once per Engine.
// The helpers available to them are:
//   - dataURI - embed bytes or text as a base64 data URI
//   - join - join a list of strings with a separator
//   - pluralize - format a count with its noun
//
// Rendering a page:
//
//	pages := view.NewPages(view.NewEngine())
//	page := view.NewPage(def, catalog, req).WithView(v, "llm_prompt.txt")
//	err := pages.Dashboard(w, page)
package view
