package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type HttpResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, response HttpResponse) {
	data, _ := json.Marshal(response)

	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, HttpResponse{
		Success: false,
		Message: message,
	})
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HttpResponse{
		Success: true,
		Message: "Api app and running",
	})
}

func Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}
