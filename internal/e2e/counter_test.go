// Package e2e is an opt-in browser smoke test, gated behind VOLT_E2E=1
// because it shells out to `go build` for a real WASM binary and drives
// a real Chrome, exactly like the teacher's own examples/*/main_test.go
// files gate themselves on a running chromedp browser.
package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/voltgo/volt/examples/counter/page"
)

func buildCounterWASM(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "main.wasm")
	cmd := exec.Command("go", "build", "-o", out, "github.com/voltgo/volt/examples/counter")
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build counter wasm: %v\n%s", err, out)
	}
	return out
}

func findWasmExec(t *testing.T) string {
	t.Helper()
	root, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		t.Fatalf("go env GOROOT: %v", err)
	}
	return filepath.Join(strings.TrimSpace(string(root)), "lib", "wasm", "wasm_exec.js")
}

func newServer(t *testing.T, wasmPath, execPath string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = page.WriteTo(w)
	})
	mux.HandleFunc("/main.wasm", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/wasm")
		http.ServeFile(w, r, wasmPath)
	})
	mux.HandleFunc("/wasm_exec.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		http.ServeFile(w, r, execPath)
	})
	return httptest.NewServer(mux)
}

// TestCounterScenario drives a real browser through spec §8's counter
// scenario (click the increment button three times, read the rendered
// text back) against a real WASM build of examples/counter, the one
// check in this module that exercises the full toolchain-compiled
// runtime rather than the domhtml test backend.
func TestCounterScenario(t *testing.T) {
	if os.Getenv("VOLT_E2E") != "1" {
		t.Skip("set VOLT_E2E=1 to run the browser smoke test")
	}

	wasmPath := buildCounterWASM(t)
	execPath := findWasmExec(t)
	if _, err := os.Stat(execPath); err != nil {
		t.Fatalf("wasm_exec.js not found at %s: %v", execPath, err)
	}

	server := newServer(t, wasmPath, execPath)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(server.URL),
		chromedp.WaitVisible(`#count-display`, chromedp.ByID),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.Click(`#increment-btn`, chromedp.ByID),
		chromedp.Click(`#increment-btn`, chromedp.ByID),
		chromedp.Click(`#increment-btn`, chromedp.ByID),
		chromedp.Text(`#count-display`, &text, chromedp.ByID),
	)
	if err != nil {
		t.Fatalf("browser automation failed: %v", err)
	}

	if !strings.Contains(text, "Count: 3") {
		t.Errorf("count display = %q, want to contain %q", text, "Count: 3")
	}
}
