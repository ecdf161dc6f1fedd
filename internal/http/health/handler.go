// Package health serves the liveness endpoint. It sits outside the versioned
// API surface: no auth, no envelope, just enough for a load balancer probe.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the liveness payload.
type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Handler reports liveness. It checks nothing downstream: a Firestore or
// Groq outage must not make the load balancer restart the instance.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(Response{Status: "healthy", Service: "netwify-api"})
}
