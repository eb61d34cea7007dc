package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /extract", handler.ExtractMatch)
	mux.HandleFunc("POST /save", handler.SaveMatch)
	mux.HandleFunc("GET /matches", handler.ListMatches)
	mux.HandleFunc("POST /reset", handler.ResetMatches)
	mux.HandleFunc("POST /draft/edit", handler.EditDraft)
}
