package urlutil

import "testing"

func TestIsSameHost(t *testing.T) {
	tests := []struct {
		name      string
		targetURL string
		baseHost  string
		expected  bool
	}{
		{
			name:      "same host",
			targetURL: "https://example.com/page",
			baseHost:  "example.com",
			expected:  true,
		},
		{
			name:      "subdomain match",
			targetURL: "https://blog.example.com/post",
			baseHost:  "example.com",
			expected:  true,
		},
		{
			name:      "deep subdomain",
			targetURL: "https://a.b.example.com/",
			baseHost:  "example.com",
			expected:  true,
		},
		{
			name:      "different domain",
			targetURL: "https://other.com/page",
			baseHost:  "example.com",
			expected:  false,
		},
		{
			name:      "different TLD",
			targetURL: "https://example.org/",
			baseHost:  "example.com",
			expected:  false,
		},
		{
			name:      "scheme agnostic",
			targetURL: "http://example.com/page",
			baseHost:  "example.com",
			expected:  true,
		},
		{
			name:      "partial suffix mismatch",
			targetURL: "https://notexample.com",
			baseHost:  "example.com",
			expected:  false,
		},
		{
			name:      "case insensitive",
			targetURL: "https://WWW.Example.COM/",
			baseHost:  "EXAMPLE.com",
			expected:  true,
		},
		{
			name:      "port ignored",
			targetURL: "https://example.com:8443/",
			baseHost:  "example.com",
			expected:  true,
		},
		{
			name:      "unicode host matches punycode base",
			targetURL: "https://bücher.example/",
			baseHost:  "xn--bcher-kva.example",
			expected:  true,
		},
		{
			name:      "relative URL has no host",
			targetURL: "/path",
			baseHost:  "example.com",
			expected:  false,
		},
		{
			name:      "empty base host",
			targetURL: "https://example.com/",
			baseHost:  "",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSameHost(tt.targetURL, tt.baseHost)
			if got != tt.expected {
				t.Errorf("IsSameHost(%q, %q) = %v, want %v", tt.targetURL, tt.baseHost, got, tt.expected)
			}
		})
	}
}

func TestIsHTTPScheme(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "https scheme",
			input:    "https://example.com",
			expected: true,
		},
		{
			name:     "http scheme",
			input:    "http://example.com",
			expected: true,
		},
		{
			name:     "uppercase scheme",
			input:    "HTTP://example.com",
			expected: true,
		},
		{
			name:     "mailto scheme",
			input:    "mailto:user@example.com",
			expected: false,
		},
		{
			name:     "tel scheme",
			input:    "tel:+1234567890",
			expected: false,
		},
		{
			name:     "javascript scheme",
			input:    "javascript:void(0)",
			expected: false,
		},
		{
			name:     "ftp scheme",
			input:    "ftp://files.example.com",
			expected: false,
		},
		{
			name:     "empty string",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsHTTPScheme(tt.input)
			if got != tt.expected {
				t.Errorf("IsHTTPScheme(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsAbsolute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "absolute", input: "https://example.com/page", expected: true},
		{name: "root relative", input: "/about", expected: false},
		{name: "path relative", input: "post1", expected: false},
		{name: "protocol relative", input: "//cdn.example.com/file", expected: false},
		{name: "opaque", input: "mailto:user@example.com", expected: false},
		{name: "unparseable", input: "http://[::1", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAbsolute(tt.input)
			if got != tt.expected {
				t.Errorf("IsAbsolute(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
