package http

import (
	"encoding/json"
	"log"
	"net/http"
)

// The catalog layer does not distinguish not-found from timeout from
// server error; every load failure renders the same message.
const msgFetchFailed = "failed to load products"

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	return json.NewDecoder(r.Body).Decode(dst)
}
