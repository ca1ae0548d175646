package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	const id = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	tests := []struct {
		path string
		want string
	}{
		{"/v1/announcements/" + id, "/v1/announcements/:id"},
		{"/v1/announcements/" + id + "/", "/v1/announcements/:id"},
		{"/v1/announcements/" + id + "?x=1", "/v1/announcements/:id"},
		{"/v1/announcements/" + id + "/publish", "/v1/announcements/:id/publish"},
		{"/v1/announcements/" + id + "/schedule", "/v1/announcements/:id/schedule"},
		{"/v1/announcements/" + id + "/archive", "/v1/announcements/:id/archive"},
		{"/v1/announcements/not-a-uuid", "/v1/announcements/:invalid"},
		{"/v1/announcements/stats", "/v1/announcements/stats"},
		{"/v1/announcements", "/v1/announcements"},
		{"/v1/widget/announcements?userId=abc", "/v1/widget/announcements"},
		{"/health", "/health"},
		{"/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func BenchmarkNormalizePath(b *testing.B) {
	path := "/v1/announcements/3f2504e0-4f89-11d3-9a0c-0305e82c3301/publish"
	for b.Loop() {
		NormalizePath(path)
	}
}
