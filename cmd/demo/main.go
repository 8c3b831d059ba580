// Command demo is a small HTTP + WebSocket server exercising the ssr
// package end to end: it renders a hydratable template per request,
// tracks a per-client session id kept in a cookie, and pushes a "template changed,
// re-fetch" notification over WebSocket whenever an operator hits
// /touch — a full reload signal only, never a partial diff (out of scope
// per this system's Non-goals), grounded on the teacher's own cmd/demo
// reload-notification flow.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	ssr "github.com/go-lit/ssr"
)

var greetingHandle = ssr.NewHandle()

func greeting(name string, visits int) ssr.TemplateResult {
	return ssr.HTML(greetingHandle,
		[]string{"<section><h1>Hello, ", "!</h1><p>Visit #", "</p></section>"},
		name, visits,
	)
}

type server struct {
	cfg *config

	mu      sync.Mutex
	visits  map[string]int
	sockets map[*websocket.Conn]struct{}
}

func newServer(cfg *config) *server {
	return &server{
		cfg:     cfg,
		visits:  make(map[string]int),
		sockets: make(map[*websocket.Conn]struct{}),
	}
}

func (s *server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie("ssrdemo-session"); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: "ssrdemo-session", Value: id, Path: "/"})
	return id
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := s.sessionID(w, r)

	s.mu.Lock()
	s.visits[id]++
	visits := s.visits[id]
	s.mu.Unlock()

	tr := greeting(id, visits)
	opts := []ssr.RenderOption{}
	if s.cfg.DeferHydration {
		opts = append(opts, ssr.WithDeferHydration())
	}

	body, err := ssr.Collect(r.Context(), tr, opts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	n, _ := fmt.Fprint(w, body)
	log.Printf("rendered %s in %s for session %s", humanize.Bytes(uint64(n)), time.Since(start), id)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	s.mu.Lock()
	s.sockets[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.sockets, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// handleTouch simulates a template source change and pushes a full-reload
// notification to every connected client. A real deployment would wire
// this to a file watcher instead of an HTTP endpoint.
func (s *server) handleTouch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.sockets))
	for c := range s.sockets {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.WriteJSON(map[string]string{"type": "reload"})
	}
	fmt.Fprintf(w, "notified %d client(s)\n", len(conns))
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.CacheDB != "" {
		if err := ssr.EnablePersistentCache(cfg.CacheDB); err != nil {
			log.Fatalf("enable persistent cache: %v", err)
		}
	}

	s := newServer(cfg)
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/touch", s.handleTouch)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
