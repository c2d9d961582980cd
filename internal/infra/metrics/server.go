package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server expone /metrics y /healthz para scrapeo.
type Server struct {
	mux *http.ServeMux
}

func NewServer() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func (s *Server) Start(addr string) {
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("metrics http escuchando en %s", addr)
	if err := http.ListenAndServe(addr, s.mux); err != nil {
		log.Printf("metrics http: %v", err)
	}
}
