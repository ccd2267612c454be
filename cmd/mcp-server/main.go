// cmd/mcp-server/main.go — MCP server for polycalc
//
// Exposes polycalc tools over HTTP for AI agent frameworks, or over stdio
// as a Model Context Protocol server.
//
// Usage:
//
//	go run ./cmd/mcp-server -port 8080
//	go run ./cmd/mcp-server -stdio
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	polycalc "github.com/mike006322/PolynomialCalculator-sub000"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var version = "v0.1.0"

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	stdio := flag.Bool("stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
	cacheBytes := flag.Int("cache-bytes", 32<<20, "Gröbner basis cache size in bytes (0 disables)")
	verbosity := flag.Int("verbosity", 3, "Log level 0-5 (0=silent, 5=trace)")
	flag.Parse()

	setupLogging(*verbosity)

	opts := polycalc.DefaultOptions()
	opts.CacheBytes = *cacheBytes
	engine, err := polycalc.New(opts)
	if err != nil {
		log.Crit("Invalid engine options", "err", err)
	}

	if *stdio {
		if err := serveStdio(engine); err != nil {
			log.Crit("MCP stdio server failed", "err", err)
		}
		return
	}

	reg := prometheus.NewRegistry()
	m := newMetrics(reg, engine)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           newMux(engine, m, reg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("polycalc MCP server listening", "addr", srv.Addr, "ring", engine.Ring().String())
	log.Info("  POST /tool    — execute a tool call")
	log.Info("  GET  /schema  — tool schema for agent registration")
	log.Info("  GET  /health  — health check")
	log.Info("  GET  /metrics — Prometheus metrics")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Crit("HTTP server failed", "err", err)
	}
}

func setupLogging(verbosity int) {
	var lvl slog.Level
	switch {
	case verbosity <= 1:
		lvl = slog.LevelError
	case verbosity == 2:
		lvl = slog.LevelWarn
	case verbosity == 3:
		lvl = slog.LevelInfo
	case verbosity == 4:
		lvl = slog.LevelDebug
	default:
		lvl = log.LevelTrace
	}
	// stdout carries the MCP stream in -stdio mode, so logs go to stderr.
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true)))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newMux(engine *polycalc.Engine, m *metrics, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /tool — handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Panic in /tool", "panic", rec, "stack", string(debug.Stack()))
				m.panics.Inc()
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req polycalc.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		writeJSON(w, http.StatusOK, m.observe(engine, req))
	})

	// GET /schema — return tool schema for agent registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, polycalc.ToolSchema())
	})

	// GET /health — liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "ok",
			"version": version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}
		if c := engine.Cache(); c != nil {
			health["cache"] = c.Stats()
		}
		writeJSON(w, http.StatusOK, health)
	})

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}
