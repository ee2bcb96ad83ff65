package swagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/okian/standings/pkg/logger"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
)

// Register attaches the API docs and the OpenAPI spec routes to mux.
// Routes:
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> Embedded OpenAPI spec
//	GET /openapi.json  -> Embedded OpenAPI spec as JSON
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	mux.HandleFunc("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := openAPIJSON()
		if err != nil {
			logger.Get().Error(r.Context(), "openapi conversion failed", logger.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
}

var (
	jsonOnce sync.Once
	jsonDoc  []byte
	jsonErr  error
)

// openAPIJSON converts the embedded YAML document once.
func openAPIJSON() ([]byte, error) {
	jsonOnce.Do(func() {
		m, err := yaml.Parser().Unmarshal(OpenAPI)
		if err != nil {
			jsonErr = fmt.Errorf("%w: parse openapi.yaml: %w", ErrServe, err)
			return
		}
		jsonDoc, err = json.Marshal(m)
		if err != nil {
			jsonErr = fmt.Errorf("%w: encode openapi.json: %w", ErrServe, err)
		}
	})
	return jsonDoc, jsonErr
}

// Minimal HTML that loads ReDoc and renders /openapi.yaml.
const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Standings API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
