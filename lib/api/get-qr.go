package api

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/nicolasacquaviva/cuerre-gen/lib"
)

func GetQR(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["id"]

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		// read the actual file content
		var buf bytes.Buffer
		file, err := env.Store.Get(ctx, id, &buf)

		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "QR not found")
			return
		}

		if err != nil {
			env.Logger.WithError(err).Error("Error downloading file")
			writeError(w, http.StatusInternalServerError, "Error downloading file")
			return
		}

		contentType := "application/octet-stream"

		if format, err := lib.FormatFromPath(file.Filename); err == nil {
			contentType = format.ContentType()
		}

		w.Header().Set("content-type", contentType)
		w.Header().Set("content-length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}
