package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Sampler/config"
	"Sampler/core/audio"
	"Sampler/core/catalog"
	"Sampler/core/hub"
	"Sampler/core/playback"
	"Sampler/core/watch"
	"Sampler/logger"
	"Sampler/model"
	"Sampler/pubsub"
	"Sampler/storage"

	"github.com/gorilla/mux"
)

// corsMiddleware lets the UI be served from another origin during
// development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter wires the API, the websocket endpoint and the UI.
func NewRouter(h *APIHandler, webDir string) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/api/sounds", h.GetSoundsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/sounds", h.AddSoundHandler).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/sounds/{id}/toggle", h.ToggleHandler).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/playback", h.PlaybackHandler).Methods(http.MethodGet)
	router.HandleFunc("/ws", h.WebSocketHandler)

	router.PathPrefix("/").Handler(uiHandler(webDir))
	return router
}

// Start builds every component from cfg and serves until SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opener := &audio.Opener{HTTP: &http.Client{Timeout: cfg.FetchTimeout}}
	if cfg.MinioEndpoint != "" {
		client, err := storage.NewMinioClient(cfg)
		if err != nil {
			return err
		}
		opener.Minio = client
	}

	backend, err := audio.NewBackend(cfg.AudioBackend, cfg.AudioSampleRate, opener, cfg.FetchTimeout)
	if err != nil {
		return err
	}

	sounds := catalog.New(catalog.Seed())
	loop := playback.NewLoop(backend)
	stateHub := hub.New()

	loop.OnChange(func(s playback.Snapshot) { stateHub.Broadcast(hub.MsgTypePlayback, s) })
	sounds.OnAdded(func(s model.Sound) { stateHub.Broadcast(hub.MsgTypeSoundAdded, s) })

	if cfg.RedisAddr != "" {
		client, err := pubsub.ConnectRedis(cfg)
		if err != nil {
			return err
		}
		publisher := pubsub.NewPublisher(client, pubsub.PlaybackChannel)
		defer publisher.Close()
		loop.OnChange(publisher.PlaybackChanged)
		logger.Info("publishing playback to Redis",
			logger.String("addr", cfg.RedisAddr),
			logger.String("channel", pubsub.PlaybackChannel))
	}

	go stateHub.Run()
	defer stateHub.Stop()
	go loop.Run(ctx)

	if cfg.ClipsDir != "" {
		watcher, err := watch.NewClipDir(cfg.ClipsDir, sounds)
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("clips watcher stopped", logger.ErrorField(err))
			}
		}()
	}

	apiHandler := NewAPIHandler(sounds, loop, stateHub)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewRouter(apiHandler, cfg.WebDir),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			logger.String("addr", cfg.HTTPAddr),
			logger.String("audio", cfg.AudioBackend),
			logger.Int("sounds", sounds.Len()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-stop:
		logger.Info("shutting down server")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	// Stop playback before the hub goes away so clients see the final state.
	cancel()
	<-loop.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
