package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-watchface/internal/config"
)

// cacheItem stores one rendered payload and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	mime         string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// snapshot is one tick's output. The image and its report are published
// together so both routes always describe the same frame.
type snapshot struct {
	seq    uint64
	image  *cacheItem
	report *cacheItem
}

// SnapshotServer serves the most recently rendered watchface over HTTP:
// the PNG on "/" and the frame geometry on "/frame.yaml".
type SnapshotServer struct {
	// Replaced once per tick and read by every request.
	current atomic.Pointer[snapshot]
	seq     atomic.Uint64
	token   atomic.Pointer[string]
	Port    string
}

// NewSnapshotServer creates a new instance of the server.
func NewSnapshotServer(port string) *SnapshotServer {
	return &SnapshotServer{
		Port: port,
	}
}

// SetToken requires "Authorization: Bearer <token>" on every request.
// An empty token disables authentication.
func (s *SnapshotServer) SetToken(token string) {
	s.token.Store(&token)
}

// Handler returns the routing table of the server.
func (s *SnapshotServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.serveCached(func(sn *snapshot) *cacheItem { return sn.image }))
	mux.HandleFunc(config.RouteFrameYAML, s.serveCached(func(sn *snapshot) *cacheItem { return sn.report }))
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *SnapshotServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return fmt.Errorf(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served PNG and frame report as one unit.
func (s *SnapshotServer) Update(png, report []byte) {
	now := time.Now().UTC().Format(http.TimeFormat)
	sn := &snapshot{
		seq:    s.seq.Add(1),
		image:  newCacheItem(png, config.MimePNG, now),
		report: newCacheItem(report, config.MimeYAML, now),
	}
	s.current.Store(sn)

	slog.Debug(config.MsgSnapshotUpdate,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySeq, sn.seq,
		config.LogKeySizeBytes, len(png),
		config.LogKeyETag, sn.image.etag,
	)
}

func newCacheItem(data []byte, mime, lastModified string) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		mime:         mime,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: lastModified,
	}
}

// authorized checks the bearer token in constant time.
func (s *SnapshotServer) authorized(r *http.Request) bool {
	want := s.token.Load()
	if want == nil || *want == "" {
		return true
	}
	got, ok := strings.CutPrefix(r.Header.Get(config.HeaderAuthorization), config.BearerPrefix)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(*want)) == 1
}

// serveCached serves one part of the current snapshot with HTTP caching
// support. The frame sequence header lets clients pair "/" with "/frame.yaml".
func (s *SnapshotServer) serveCached(part func(*snapshot) *cacheItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// 1. Method Validation
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}

		// 2. Authentication
		if !s.authorized(r) {
			w.Header().Set(config.HeaderWWWAuthenticate, config.AuthChallenge)
			http.Error(w, config.HTTPMsgUnauthorized, http.StatusUnauthorized)
			return
		}

		// 3. Readiness Check
		sn := s.current.Load()
		if sn == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}
		item := part(sn)

		// 4. Set Response Headers
		w.Header().Set(config.HeaderContentType, item.mime)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, item.lastModified)
		w.Header().Set(config.HeaderFrameSeq, strconv.FormatUint(sn.seq, 10))

		// 5. Check Conditional Headers
		if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
			if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
				if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
					if !serverTime.After(clientTime) {
						w.WriteHeader(http.StatusNotModified)
						return
					}
				}
			}
		}

		// 6. Serve Content
		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}
