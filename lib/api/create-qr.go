package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nicolasacquaviva/cuerre-gen/lib"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	fileTypeQR     = "qr"
	maxRequestBody = 1 << 20
	storeTimeout   = 10 * time.Second
)

// CreateRequest is the JSON body of POST /create. Zero values take the
// configured defaults; Border is a pointer because zero is a valid border.
type CreateRequest struct {
	Content    string `json:"content"`
	ErrorLevel string `json:"errorLevel"`
	BoxSize    int    `json:"boxSize"`
	Border     *int   `json:"border"`
	Fill       string `json:"fill"`
	Back       string `json:"back"`
	Version    int    `json:"version"`
	Format     string `json:"format"`
}

func (c *CreateRequest) generationRequest(config *lib.Configuration, out string) lib.GenerationRequest {
	req := lib.GenerationRequest{
		Content: c.Content,
		Out:     out,
		ECLevel: lib.ECLevel(config.ERROR),
		BoxSize: config.BOX_SIZE,
		Border:  config.BORDER,
		Fill:    config.FILL,
		Back:    config.BACK,
		Version: c.Version,
	}

	if c.ErrorLevel != "" {
		req.ECLevel = lib.ECLevel(c.ErrorLevel)
	}

	if c.BoxSize != 0 {
		req.BoxSize = c.BoxSize
	}

	if c.Border != nil {
		req.Border = *c.Border
	}

	if c.Fill != "" {
		req.Fill = c.Fill
	}

	if c.Back != "" {
		req.Back = c.Back
	}

	return req
}

func statusFor(err error) int {
	switch lib.ExitCode(err) {
	case lib.ExitValidation:
		return http.StatusBadRequest
	case lib.ExitEncoding:
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func CreateQR(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := env.Logger
		var body CreateRequest

		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))

		if err := decoder.Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		format := lib.FormatPNG

		if body.Format != "" {
			f, err := lib.FormatFromPath("qr." + strings.ToLower(body.Format))

			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid format '"+body.Format+"'")
				return
			}

			format = f
		}

		// generate random name for the new file
		filename := primitive.NewObjectID().Hex() + format.Extension()
		tmpQRFile := filepath.Join(env.Config.TMP_DIR, filename)
		req := body.generationRequest(env.Config, tmpQRFile)

		path, err := env.Builder.Build(req)

		if err != nil {
			status := statusFor(err)
			message := err.Error()

			if status == http.StatusInternalServerError {
				log.WithError(err).Error("Error generating QR")
				message = "Error generating QR"
			} else {
				log.WithError(err).Warn("Error generating QR")
			}

			writeError(w, status, message)
			return
		}

		defer lib.RemoveFile(path, log)

		log.Debugf("QR temp file generated %s", path)

		qrFile, err := os.Open(path)

		if err != nil {
			log.WithError(err).Error("Error reading temp qr file")
			writeError(w, http.StatusInternalServerError, "Error reading generated QR")
			return
		}

		defer qrFile.Close()

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		fileId, err := env.Store.Put(ctx, filename, qrFile, FileMetadata{
			Extension: strings.TrimPrefix(format.Extension(), "."),
			Type:      fileTypeQR,
			Content:   strings.TrimSpace(req.Content),
			ECLevel:   string(req.ECLevel),
		})

		if err != nil {
			log.WithError(err).Error("Error uploading QR")
			writeError(w, http.StatusInternalServerError, "Error uploading file")
			return
		}

		log.Infof("QR file stored id %s", fileId)

		writeJSON(w, http.StatusOK, HttpResponse{
			Success: true,
			Message: "QR generated successfully",
			Data:    env.Config.APP_URL + "/qr/" + fileId,
		})
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
