package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ancientlore/cachefs"
	"github.com/ancientlore/toybox/cache"
	"github.com/ancientlore/toybox/content"
	"github.com/ancientlore/toybox/site"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// main is where it all begins. 😀
func main() {
	// Setup flags
	var (
		fPort              = flag.Int("port", 8080, "Port to listen on.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
		fRoot              = flag.String("root", ".", "Root of web site.")
		fConfig            = flag.String("config", "", "Settings file; defaults to toybox.toml in the root.")
		fCacheSize         = flag.Int64("cachesize", 10, "Cache size in MB.")
		fCacheDuration     = flag.Duration("cacheduration", time.Minute, "Cache duration, 0 to cache until a change is seen.")
		fWatch             = flag.Bool("watch", false, "Watch the content folders and refresh the listings on change.")
		fLogLevel          = flag.String("loglevel", "info", "Log level.")
	)
	flag.Parse()
	flagenv.Prefix = "TOYBOX_"
	flagenv.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(*fLogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithError(err).Warn("Unknown log level")
	}

	// Load settings
	cfg, err := site.LoadConfig(*fRoot, *fConfig)
	if err != nil {
		log.WithError(err).Error("Cannot load settings")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{"root": *fRoot, "title": cfg.Title}).Info("Loaded settings")

	// Setup groupcache (with no peers)
	groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
	cacheBytes := *fCacheSize * 1024 * 1024

	// Files are cached only when nothing refreshes them on change.
	fsys := os.DirFS(*fRoot)
	if !*fWatch && *fCacheDuration > 0 {
		fsys = cachefs.New(fsys, &cachefs.Config{
			GroupName:   "content-" + uuid.NewString(),
			SizeInBytes: cacheBytes,
			Duration:    *fCacheDuration,
		})
	}
	s := site.New(cfg, content.Dir(filepath.Join(*fRoot, filepath.FromSlash(cfg.BlogDir))), fsys, log)
	srv := newServer(s, fsys, cacheBytes, *fCacheDuration, log)

	// Create HTTP server
	var httpSrv = http.Server{
		Addr:              fmt.Sprintf(":%d", *fPort),
		Handler:           srv.handler(),
		ReadTimeout:       *fReadTimeout,
		WriteTimeout:      *fWriteTimeout,
		ReadHeaderTimeout: *fReadHeaderTimeout,
	}
	log.Info("Created handlers")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *fWatch {
		go func() {
			if err := cache.Watch(ctx, s.Paths(*fRoot), srv.cache, log); err != nil {
				log.WithError(err).Error("Watcher stopped")
			}
		}()
		log.WithField("paths", s.Paths(*fRoot)).Info("Watching for changes")
	}

	// Create signal handler for graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)

		// interrupt signal sent from terminal
		signal.Notify(sigint, os.Interrupt)
		// sigterm signal sent from kubernetes
		signal.Notify(sigint, syscall.SIGTERM)

		<-sigint
		cancel()

		// We received an interrupt signal, shut down.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			// Error from closing listeners, or context timeout:
			log.WithError(err).Error("HTTP server Shutdown")
		}
	}()

	// Listen for requests
	log.WithField("addr", httpSrv.Addr).Info("Listening for requests")
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("HTTP server")
	} else {
		log.Info("Goodbye.")
	}
}
