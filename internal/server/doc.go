// Package server exposes the prompt dashboard over HTTP.
//
// Routes:
//   - GET  /               empty dashboard with the upload form
//   - POST /render         multipart upload; renders the full dashboard
//   - POST /download       form field "prompt"; returns it as a text file
//   - GET  /api/templates  template catalog as JSON
//   - POST /api/prompt     JSON {csv, template, custom, filter_value}; returns the prompt
//
// Every request is handled independently: the upload and selections are
// re-sent on each interaction and the whole view is derived from them.
//
// Health checks are served separately:
//
//	health := server.NewHealthServer(8082, checks, logger)
//	go health.Run(ctx)
package server
