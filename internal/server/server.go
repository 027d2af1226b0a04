package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"photosift/internal/fileutil"
	"photosift/internal/storage"
)

// Server exposes the catalog's duplicate sets over a local review UI.
type Server struct {
	storage     *storage.Storage
	port        int
	idleTimeout time.Duration
	httpServer  *http.Server

	// Idle timeout management
	mu           sync.Mutex
	lastActivity time.Time
	shutdownChan chan struct{}
}

// New creates a new Server
func New(dbPath string, port int, idleTimeout time.Duration) (*Server, error) {
	store, err := storage.NewStorage(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		storage:      store,
		port:         port,
		idleTimeout:  idleTimeout,
		lastActivity: time.Now(),
		shutdownChan: make(chan struct{}),
	}

	return s, nil
}

// Start starts the server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/sets", s.handleSets)
	mux.HandleFunc("/api/clean", s.handleClean)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/", s.handleIndex)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	// Start idle timeout checker
	if s.idleTimeout > 0 {
		go s.idleTimeoutChecker()
	}

	// Handle shutdown signals
	go s.handleShutdownSignals()

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleShutdownSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		fmt.Println("\nShutting down server...")
	case <-s.shutdownChan:
		fmt.Println("\nIdle timeout reached. Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.httpServer.Shutdown(ctx)
	s.storage.Close()
}

func (s *Server) idleTimeoutChecker() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			idle := time.Since(s.lastActivity)
			s.mu.Unlock()

			if idle >= s.idleTimeout {
				close(s.shutdownChan)
				return
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *Server) recordActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// API Handlers

func (s *Server) handleSets(w http.ResponseWriter, r *http.Request) {
	s.recordActivity()

	sets, err := s.storage.GetDuplicateSets()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sets)
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.recordActivity()

	var req struct {
		Paths  []string `json:"paths"`
		MoveTo string   `json:"move_to,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var results []map[string]interface{}

	for _, path := range req.Paths {
		result := map[string]interface{}{"path": path}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			// File is already gone, just drop it from the catalog
			s.storage.DeletePhoto(path)
			result["status"] = "not_found"
		} else if req.MoveTo != "" {
			err := fileutil.MoveFile(path, req.MoveTo)
			if err != nil {
				result["error"] = err.Error()
			} else {
				result["status"] = "moved"
				s.storage.DeletePhoto(path)
			}
		} else {
			err := fileutil.MoveToTrash(path)
			if err != nil {
				result["error"] = err.Error()
			} else {
				result["status"] = "trashed"
				s.storage.DeletePhoto(path)
			}
		}

		results = append(results, result)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"results": results,
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	s.recordActivity()

	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path required", http.StatusBadRequest)
		return
	}

	http.ServeFile(w, r, path)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.recordActivity()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}
