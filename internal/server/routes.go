package server

import "net/http"

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.healthz)
	mux.HandleFunc("GET /api/palette", s.palette)
	mux.HandleFunc("GET /api/extracted", s.extracted)
	mux.HandleFunc("GET /api/theme.css", s.themeCSS)

	return mux
}
