// Command voltserve is a small development server: it serves a
// fixture's page over HTTP, rebuilds its WASM binary on source
// changes, and pushes a reload to the browser over SSE — the same
// shape as the teacher's own spec/dev.go, generalized from one hardcoded
// example to any fixture package built with `go build`.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/voltgo/volt/examples/counter/page"
	"github.com/voltgo/volt/internal/devwatch"
)

type sseHub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
}

func newSSEHub() *sseHub { return &sseHub{clients: make(map[chan string]struct{})} }

func (h *sseHub) add(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[ch] = struct{}{}
}

func (h *sseHub) remove(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ch)
	close(ch)
}

func (h *sseHub) broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

func buildWASM(pkgDir, outPath string) error {
	log.Printf("==> building %s\n", pkgDir)
	cmd := exec.Command("go", "build", "-o", outPath, pkgDir)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		scanner := bufio.NewScanner(strings.NewReader(string(out)))
		for scanner.Scan() {
			log.Println(scanner.Text())
		}
	}
	return err
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", ":8080", "address to listen on")
	pkgDir := flag.String("pkg", "./examples/counter", "fixture package to build to WASM")
	wasmExec := flag.String("wasm-exec", "", "path to wasm_exec.js (defaults to $(go env GOROOT)/lib/wasm/wasm_exec.js)")
	flag.Parse()

	outPath := filepath.Join(os.TempDir(), "voltserve-main.wasm")
	if err := buildWASM(*pkgDir, outPath); err != nil {
		log.Println("initial build failed:", err)
	}

	execPath := *wasmExec
	if execPath == "" {
		if root, err := exec.Command("go", "env", "GOROOT").Output(); err == nil {
			execPath = filepath.Join(strings.TrimSpace(string(root)), "lib", "wasm", "wasm_exec.js")
		}
	}

	hub := newSSEHub()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.WriteTo(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("/main.wasm", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/wasm")
		http.ServeFile(w, r, outPath)
	})
	mux.HandleFunc("/wasm_exec.js", func(w http.ResponseWriter, r *http.Request) {
		if execPath == "" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/javascript")
		http.ServeFile(w, r, execPath)
	})
	mux.HandleFunc("/__livereload", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		ch := make(chan string, 8)
		hub.add(ch)
		defer hub.remove(ch)
		fmt.Fprint(w, "event: ping\ndata: ok\n\n")
		flusher.Flush()
		for {
			select {
			case <-r.Context().Done():
				return
			case msg := <-ch:
				fmt.Fprintf(w, "data: %s\n\n", msg)
				flusher.Flush()
			}
		}
	})

	server := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		log.Printf("==> serving http://localhost%s\n", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	watcher := devwatch.New(func() {
		if err := buildWASM(*pkgDir, outPath); err != nil {
			log.Println("rebuild failed:", err)
			return
		}
		hub.broadcast("reload")
		log.Println("reload signaled")
	}, *pkgDir)
	watcher.OnError = func(err error) { log.Println("watch error:", err) }
	go func() {
		if err := watcher.Run(ctx); err != nil {
			log.Println("watcher stopped:", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("shutting down...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}
