package api

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nicolasacquaviva/cuerre-gen/lib"
	"github.com/sirupsen/logrus"
)

// Env carries what the handlers share.
type Env struct {
	Builder *lib.Builder
	Store   Store
	Config  *lib.Configuration
	Logger  logrus.FieldLogger
}

func (env *Env) NewRouter() *mux.Router {
	if env.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		env.Logger = logger
	}

	r := mux.NewRouter()
	r.HandleFunc("/create", CreateQR(env)).Methods("POST")
	r.HandleFunc("/health", Health).Methods("GET")
	r.HandleFunc("/ping", Ping).Methods("GET")
	r.HandleFunc("/qr/{id}", GetQR(env)).Methods("GET")
	r.HandleFunc("/qr/{id}/content", GetContent(env)).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}
