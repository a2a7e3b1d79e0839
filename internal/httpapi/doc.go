// Package httpapi exposes the ledger over HTTP.
//
// Routes:
//
//	GET  /         landing page
//	POST /mutant   classify a grid: 200 mutant, 403 human, 400 invalid
//	GET  /stats    mutant and human counts with their ratio
//	GET  /healthz  liveness, pings the store
//
// Every response carries an X-Request-ID header. Request logging goes
// through log/slog.
package httpapi
