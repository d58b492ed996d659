package patterns

import (
	"reflect"
	"testing"
)

func TestURLHost(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://bit.ly/x", "bit.ly"},
		{"https://User@Example.COM:8080/path?q=1", "example.com"},
		{"http://192.168.0.1/login", "192.168.0.1"},
		{"https://[::1]:443/", "::1"},
		{"http://host.test", "host.test"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := URLHost(tt.url); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsShortenerHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"bit.ly", true},
		{"www.bit.ly", true},
		{"t.co", true},
		{"notbit.ly", false},
		{"www.microsoft.com", false},
		{"bit.ly.evil.com", false},
		{"example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := IsShortenerHost(tt.host); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindURLs(t *testing.T) {
	got := FindURLs(`see http://a.test/x and "HTTPS://b.test" or ftp://c.test`)
	want := []string{"http://a.test/x", "HTTPS://b.test"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCapitalRatio(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"ABC", 1},
		{"Ab", 0.5},
		{"123 !!", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := CapitalRatio(tt.text); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
