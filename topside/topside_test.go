package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestProxyRewritesPath(t *testing.T) {
	var gotPath string
	bottom := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, "ok")
	}))
	defer bottom.Close()

	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "index.html"), []byte("driver"), 0o600); err != nil {
		t.Fatal(err)
	}
	burl, _ := url.Parse(bottom.URL)
	top := httptest.NewServer(proxyHandler(static, burl))
	defer top.Close()

	resp, err := http.Get(top.URL + "/bs/info.json")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if gotPath != "/info.json" {
		t.Fatalf("expected /info.json at bottom side, got %q", gotPath)
	}

	resp, err = http.Get(top.URL + "/index.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "driver" {
		t.Fatalf("expected static file, got %q", body)
	}
}

func TestFetchScreen(t *testing.T) {
	bottom := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/screen.txt" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "CLAW BOT\nBattery: 50%\n")
	}))
	defer bottom.Close()

	burl, _ := url.Parse(bottom.URL)
	scr, err := fetchScreen(http.DefaultClient, burl)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if scr != "CLAW BOT\nBattery: 50%\n" {
		t.Fatalf("unexpected screen %q", scr)
	}

	bad, _ := url.Parse(bottom.URL + "/nothing/")
	if _, err := fetchScreen(http.DefaultClient, bad); err == nil {
		t.Fatal("expected error for 404")
	}
}
