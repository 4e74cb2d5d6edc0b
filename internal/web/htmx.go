package web

import (
	"net/http"

	"github.com/desertthunder/stayx/internal/shared"
	"github.com/desertthunder/stayx/internal/ui"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// writeSignals turns collected toasts and refresh requests into HTMX response headers.
// It must run before the body is written.
func writeSignals(w http.ResponseWriter, c *ui.Collector) error {
	if toasts := c.Toasts(); len(toasts) > 0 {
		b, err := shared.MarshalJSON(map[string][]ui.Toast{"toast": toasts}, false)
		if err != nil {
			return err
		}
		w.Header().Set("HX-Trigger", string(b))
	}
	if c.Refreshes() > 0 {
		w.Header().Set("HX-Refresh", "true")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
