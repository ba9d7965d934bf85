package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/latticebg/internal/app"
	"github.com/coreman2200/latticebg/internal/config"
	"github.com/coreman2200/latticebg/internal/driver/fake"
	"github.com/coreman2200/latticebg/internal/driver/ledwall"
	"github.com/coreman2200/latticebg/internal/driver/window"
	"github.com/coreman2200/latticebg/internal/ws"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		fps        = flag.Int("fps", 60, "target frames per second")
		drv        = flag.String("driver", "ws", "driver: ws | window | ledwall | sim")
		size       = flag.Int("size", 5, "cubes per lattice axis")
		seed       = flag.Int64("seed", 1, "lattice random seed")
		logoPath   = flag.String("logo", "", "path to the logo PNG")
		ledPixels  = flag.Int("led-pixels", 0, "LED strip length for the ledwall driver")
		configPath = flag.String("config", "latticebg.yaml", "path to config file")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config (optional; flags fill the gaps) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		cfg = config.Default()
		cfg.Addr = *addr
		cfg.FPS = *fps
		cfg.Driver = *drv
		cfg.Lattice.Size = *size
		cfg.Lattice.Seed = *seed
		cfg.Logo.Texture = *logoPath
		cfg.LEDPixels = *ledPixels
	}

	core, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	host := ws.NewHost(core, cfg.FPS)
	for _, d := range core.Diags {
		host.PushDiag(d)
	}

	switch cfg.Driver {
	case "ws", "window":
		core.AddSink(host)

	case "ledwall":
		wall, err := ledwall.New(cfg.LEDPixels)
		if err != nil {
			log.Warn().Err(err).Msg("ledwall init failed; falling back to SIM")
			core.AddSink(&fake.Driver{Quiet: true})
		} else {
			log.Info().Bool("spi", wall.SPI).Int("pixels", cfg.LEDPixels).Msg("ledwall attached")
			core.AddSink(wall)
		}
		core.AddSink(host)

	case "sim":
		core.AddSink(&fake.Driver{})

	default:
		log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using SIM")
		core.AddSink(&fake.Driver{Quiet: true})
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", host.HandleFramesWS)
	mux.HandleFunc("/diag", host.HandleDiagWS)
	mux.HandleFunc("/control", host.HandleControlWS)
	mux.HandleFunc("/health", host.HandleHealth)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("driver", cfg.Driver).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	if cfg.Driver == "window" {
		// ebiten owns the main goroutine; closing the window is the exit.
		if err := window.Run(core, "latticebg", cfg.Canvas.W, cfg.Canvas.H, cfg.FPS); err != nil {
			log.Error().Err(err).Msg("preview window exited")
		}
		_ = srv.Close()
		_ = core.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	go core.RunLoop(ctx)

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	_ = srv.Close()
	_ = core.Close()
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
