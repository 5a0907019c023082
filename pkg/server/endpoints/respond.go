package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

func muxVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
