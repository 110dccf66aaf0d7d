package dashboard

import (
	_ "embed"
	"net/http"
)

// indexHTML is the wizard page: birth form, pillar table, unlock box and
// matrix view, all driven over /ws/wizard.
//
//go:embed index.html
var indexHTML []byte

// ServeIndex serves the wizard page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
