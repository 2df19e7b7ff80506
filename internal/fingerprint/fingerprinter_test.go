package fingerprint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
)

func TestAnalyze_WordPress(t *testing.T) {
	detected := DefaultSignatures().Analyze(`<link href="/wp-content/x.css">`, nil, nil)

	matches, ok := detected.Get("WordPress")
	if !ok {
		t.Fatalf("expected WordPress, got %+v", detected)
	}
	if !reflect.DeepEqual(matches, []string{"wp-content"}) {
		t.Errorf("expected [wp-content], got %v", matches)
	}
}

func TestAnalyze_ServerHeaderHint(t *testing.T) {
	headers := map[string]string{"server": "nginx"}
	detected := DefaultSignatures().Analyze("<html></html>", headers, nil)

	matches, ok := detected.Get("Nginx")
	if !ok {
		t.Fatalf("expected Nginx, got %+v", detected)
	}
	want := []string{"server: nginx", "nginx", "header:server:nginx"}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("expected %v, got %v", want, matches)
	}
}

func TestAnalyze_OrderFollowsTable(t *testing.T) {
	body := `<script src="/static/react.min.js"></script><script src="/jquery.js"></script>`
	headers := map[string]string{"x-powered-by": "PHP/8.2"}
	detected := DefaultSignatures().Analyze(body, headers, nil)

	var order []string
	for _, d := range detected {
		order = append(order, d.Technology)
	}
	if want := []string{"jQuery", "React", "PHP"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("expected %v, got %v", want, order)
	}

	data, err := json.Marshal(detected)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"jQuery":`) {
		t.Errorf("JSON must keep table order, got %s", data)
	}
}

func TestAnalyze_Nothing(t *testing.T) {
	if detected := DefaultSignatures().Analyze("<p>hello</p>", nil, nil); len(detected) != 0 {
		t.Fatalf("expected no detections, got %+v", detected)
	}
}

func TestFingerprinter_Check(t *testing.T) {
	var gotUA string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/home", http.StatusFound)
	})
	mux.HandleFunc("/home", func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Server", "nginx")
		http.SetCookie(w, &http.Cookie{Name: "laravel_session", Value: "abc"})
		_, _ = w.Write([]byte(`<html><head><link href="/wp-content/a.css"></head></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f, err := New(Options{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result := f.Check(context.Background(), server.URL)

	if result.Failed() {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if gotUA != constants.FingerprintUserAgent {
		t.Errorf("expected default user agent, got %q", gotUA)
	}
	if result.URL != server.URL || result.FinalURL != server.URL+"/home" {
		t.Errorf("unexpected urls: url=%s final=%s", result.URL, result.FinalURL)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", result.StatusCode)
	}
	if result.Headers["server"] != "nginx" {
		t.Errorf("expected lower-case server header, got %v", result.Headers)
	}
	if result.Cookies["laravel_session"] != "abc" {
		t.Errorf("expected cookie, got %v", result.Cookies)
	}
	for _, tech := range []string{"WordPress", "Laravel", "Nginx"} {
		if _, ok := result.Detected.Get(tech); !ok {
			t.Errorf("expected %s in %+v", tech, result.Detected)
		}
	}
	matches, _ := result.Detected.Get("Nginx")
	if matches[len(matches)-1] != "header:server:nginx" {
		t.Errorf("expected header hint last, got %v", matches)
	}
}

func TestFingerprinter_FetchFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	f, err := New(Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result := f.Check(context.Background(), target)
	if result.Error != "fetch_failed" {
		t.Fatalf("expected fetch_failed, got %q", result.Error)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded["url"] != target || decoded["error"] != "fetch_failed" {
		t.Fatalf("unexpected error form %s", data)
	}
}

func TestFingerprinter_ErrorStatusIsFingerprinted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "Apache/2.4")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<html><script src="/wp-includes/js/wp-emoji-release.min.js"></script></html>`))
	}))
	defer server.Close()

	f, err := New(Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result := f.Check(context.Background(), server.URL)
	if result.Failed() {
		t.Fatalf("an HTTP error page is still a response, got %q", result.Error)
	}
	if result.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", result.StatusCode)
	}
	for _, tech := range []string{"WordPress", "Apache"} {
		if _, ok := result.Detected.Get(tech); !ok {
			t.Errorf("expected %s on the error page, got %+v", tech, result.Detected)
		}
	}
}

func TestFingerprinter_Wappalyzer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "nginx")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	f, err := New(Options{Timeout: 2 * time.Second, Wappalyzer: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result := f.Check(context.Background(), server.URL)

	found := false
	for _, name := range result.Wappalyzer {
		if strings.HasPrefix(name, "Nginx") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected wappalyzer to report Nginx, got %v", result.Wappalyzer)
	}
	if _, ok := result.Detected.Get("Nginx"); !ok {
		t.Errorf("signature detections must still be present, got %+v", result.Detected)
	}
}

func TestFingerprintResult_MarshalOmitsSameFinalURL(t *testing.T) {
	data, err := json.Marshal(FingerprintResult{URL: "http://a.example", FinalURL: "http://a.example", StatusCode: 200})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "final_url") {
		t.Errorf("final_url should be omitted, got %s", data)
	}
	if !strings.Contains(string(data), `"detected":{}`) {
		t.Errorf("detected should be an empty object, got %s", data)
	}
}
