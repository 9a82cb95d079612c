package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes caps request bodies, uploads included.
const maxBodyBytes = 10 << 20

// Response is the envelope every JSON endpoint except /health answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Features []string `json:"features"`
}

// writeJSON encodes v with the given status. Encoding errors are dropped
// since the header is already sent.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData writes a successful envelope.
func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// writeError writes a failed envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Error: message})
}

// writePDF sends PDF bytes as a download.
func writePDF(w http.ResponseWriter, filename string, data []byte) (err error) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(data)
	return err
}

// readJSON decodes the request body into target.
func readJSON(r *http.Request, target interface{}) (err error) {
	defer r.Body.Close()
	err = json.NewDecoder(r.Body).Decode(target)
	return err
}
