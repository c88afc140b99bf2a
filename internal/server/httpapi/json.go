package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readJSON decodes a single JSON value from the request body into dst.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return common.WithDetail(common.ErrorValidation, "Invalid request body: "+err.Error())
	}
	if dec.More() {
		return common.WithDetail(common.ErrorValidation, "Invalid request body: multiple JSON values")
	}
	return nil
}
