package handler

import (
	"encoding/json"
	"net/http"
)

// VersionResponse reports the deployed build for verification.
type VersionResponse struct {
	Version string `json:"version"`
}

// HandleVersion returns the running build version.
func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(VersionResponse{Version: version})
	}
}
