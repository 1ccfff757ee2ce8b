package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// GetContent returns the stored metadata of a QR, including the encoded text.
func GetContent(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		file, err := env.Store.Stat(ctx, vars["id"])

		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "QR not found")
			return
		}

		if err != nil {
			env.Logger.WithError(err).Error("Error finding file")
			writeError(w, http.StatusInternalServerError, "Error finding file")
			return
		}

		writeJSON(w, http.StatusOK, HttpResponse{
			Success: true,
			Data:    file,
		})
	}
}
