package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// NewRouter wires every API route. Tracker routes are registered once and
// dispatch on the {app} path segment, so adding a tracker instance is a
// map entry, not a route change.
func NewRouter(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Task registry
	mux.HandleFunc("GET /api/{app}/tasks", WithLogging(h.ListTasks))
	mux.HandleFunc("POST /api/{app}/tasks", WithLogging(h.AddTask))
	mux.HandleFunc("GET /api/{app}/upcoming", WithLogging(h.Upcoming))
	mux.HandleFunc("PATCH /api/{app}/tasks/{id}", WithLogging(h.UpdateTask))
	mux.HandleFunc("DELETE /api/{app}/tasks/{id}", WithLogging(h.RemoveTask))

	// Completions
	mux.HandleFunc("POST /api/{app}/tasks/{id}/complete", WithLogging(h.CompleteTask))
	mux.HandleFunc("POST /api/{app}/complete-next", WithLogging(h.CompleteNext))
	mux.HandleFunc("POST /api/{app}/quick-register", WithLogging(h.QuickRegister))

	// Leaderboard
	mux.HandleFunc("GET /api/{app}/leaderboard", WithLogging(h.Leaderboard))
	mux.HandleFunc("GET /api/{app}/events", WithLogging(h.Events))
	mux.HandleFunc("POST /api/{app}/points", WithLogging(h.AdjustPoints))
	mux.HandleFunc("POST /api/{app}/reset", WithLogging(h.ResetScores))

	// Feeding (walk tracker only; others return 404)
	mux.HandleFunc("GET /api/{app}/feeding", WithLogging(h.Feeding))
	mux.HandleFunc("POST /api/{app}/feeding/{slot}", WithLogging(h.ToggleFeeding))

	// Weather badge
	mux.HandleFunc("GET /api/weather", WithLogging(h.Weather))

	// Landing page
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	return mux
}
