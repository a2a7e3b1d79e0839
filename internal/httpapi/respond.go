package httpapi

import (
	"encoding/json"
	"net/http"
)

// Response bodies.
const (
	msgMutant   = "Es un mutante"
	msgHuman    = "No es un mutante"
	msgNullDNA  = "El ADN no puede ser nulo"
	msgTooShort = "El ADN debe tener al menos 4 secuencias"
	msgBadBody  = "Cuerpo de la solicitud inválido"
	msgTooLarge = "El cuerpo de la solicitud es demasiado grande"
	msgInternal = "Error interno del servidor"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}
