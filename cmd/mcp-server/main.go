// Command mcp-server serves the xformgen tools over HTTP.
//
//	go run ./cmd/mcp-server -port 8080
//
// POST /tool executes a ToolRequest, GET /schema returns the tool schema and
// GET /health reports liveness.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/njchilds90/xformgen"
)

const maxBodyBytes = 1 << 20

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()
	log.SetPrefix("mcp-server: ")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           newMux(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Printf("listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /tool", recoverPanics(http.HandlerFunc(handleTool)))
	mux.HandleFunc("GET /schema", handleSchema)
	mux.HandleFunc("GET /health", handleHealth)
	return mux
}

// recoverPanics turns a panic in next into a 500 response.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("%s %s: panic: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func handleTool(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var req xformgen.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	start := time.Now()
	resp := xformgen.HandleToolCall(req)
	if resp.Error != "" {
		log.Printf("tool %s failed after %s: %s", req.Tool, time.Since(start), resp.Error)
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, xformgen.ToolSpec())
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
