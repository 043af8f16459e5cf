package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"forest-sim/internal/config"
	"forest-sim/internal/sims/forest"
	"forest-sim/internal/stream"
)

//go:embed static
var staticFiles embed.FS

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	addr := flag.String("addr", "", "listen address (empty = serve.addr from config)")
	var overrides config.Overrides
	flag.Var(&overrides, "set", "config override in key=value form (repeatable)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Apply(overrides); err != nil {
		logger.Error("invalid override", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Serve.Addr = *addr
	}

	f, err := forest.NewWithConfig(cfg.EngineConfig())
	if err != nil {
		logger.Error("creating forest", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hub := stream.NewHub(f, cfg.Run.TPS, logger)
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           newMux(hub, f.Palette()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving forest", "addr", cfg.Serve.Addr, "seed", f.Seed(), "width", f.Size().W, "height", f.Size().H)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newMux routes the websocket stream, the palette and the browser client.
func newMux(hub http.Handler, palette []color.RGBA) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/palette", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(paletteHex(palette))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	static, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// paletteHex renders colours as CSS #rrggbbaa strings indexed by state.
func paletteHex(palette []color.RGBA) []string {
	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return out
}
