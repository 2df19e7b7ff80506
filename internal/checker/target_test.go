package checker

import "testing"

func TestParseTarget(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		wantScheme string
		wantHost   string
		wantPort   string
		wantURL    string
	}{
		{
			name:       "Simple domain",
			target:     "example.com",
			wantScheme: "http",
			wantHost:   "example.com",
			wantURL:    "http://example.com",
		},
		{
			name:       "HTTPS URL",
			target:     "https://example.com",
			wantScheme: "https",
			wantHost:   "example.com",
			wantURL:    "https://example.com",
		},
		{
			name:       "Domain with port",
			target:     "example.com:8080",
			wantScheme: "http",
			wantHost:   "example.com",
			wantPort:   "8080",
			wantURL:    "http://example.com:8080",
		},
		{
			name:       "URL with path and surrounding space",
			target:     "  https://example.com/login  ",
			wantScheme: "https",
			wantHost:   "example.com",
			wantURL:    "https://example.com/login",
		},
		{
			name:       "Uppercase scheme",
			target:     "HTTP://example.com",
			wantScheme: "http",
			wantHost:   "example.com",
			wantURL:    "http://example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info := ParseTarget(tc.target)
			if info.Scheme != tc.wantScheme {
				t.Errorf("Scheme: expected %q, got %q", tc.wantScheme, info.Scheme)
			}
			if info.Host != tc.wantHost {
				t.Errorf("Host: expected %q, got %q", tc.wantHost, info.Host)
			}
			if info.Port != tc.wantPort {
				t.Errorf("Port: expected %q, got %q", tc.wantPort, info.Port)
			}
			if info.URL != tc.wantURL {
				t.Errorf("URL: expected %q, got %q", tc.wantURL, info.URL)
			}
		})
	}
}

func TestParseTarget_Empty(t *testing.T) {
	info := ParseTarget("   ")
	if info.URL != "" || info.Host != "" {
		t.Fatalf("expected empty target info, got %+v", info)
	}
}

func TestTargetInfo_LogFields(t *testing.T) {
	fields := ParseTarget("https://api.example.com:8443/v1").LogFields()
	got := make(map[string]string, len(fields))
	for _, f := range fields {
		got[f.Key] = f.String
	}
	want := map[string]string{
		"target": "https://api.example.com:8443/v1",
		"url":    "https://api.example.com:8443/v1",
		"scheme": "https",
		"host":   "api.example.com",
		"port":   "8443",
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("%s: expected %q, got %q", key, value, got[key])
		}
	}

	for _, f := range ParseTarget("example.com").LogFields() {
		if f.Key == "port" {
			t.Fatalf("port field must be omitted when no port was given")
		}
	}
}
