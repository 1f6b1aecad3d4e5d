package storage

import (
	"strings"
	"testing"
)

func TestCheckFileType(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		want        bool
	}{
		{"jpeg image", "beach.jpg", "image/jpeg", true},
		{"jpeg long ext", "beach.jpeg", "image/jpeg", true},
		{"png image", "flag.png", "image/png", true},
		{"gif image", "loop.gif", "image/gif", true},
		{"mp4 video", "tour.mp4", "video/mp4", true},
		{"webm video", "tour.webm", "video/webm", true},
		{"uppercase extension", "BEACH.JPG", "image/jpeg", true},
		{"executable", "malware.exe", "application/octet-stream", false},
		{"pdf", "itinerary.pdf", "application/pdf", false},
		{"extension ok but mime wrong", "beach.jpg", "text/html", false},
		{"mime ok but extension wrong", "beach.txt", "image/jpeg", false},
		{"no extension", "beach", "image/jpeg", false},
		{"svg is not allowed", "flag.svg", "image/svg+xml", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckFileType(tc.filename, tc.contentType); got != tc.want {
				t.Errorf("CheckFileType(%q, %q) = %v, want %v", tc.filename, tc.contentType, got, tc.want)
			}
		})
	}
}

func TestRandomFilename(t *testing.T) {
	name, err := RandomFilename("My Holiday.JPG")
	if err != nil {
		t.Fatalf("RandomFilename: %v", err)
	}

	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("expected lowercased original extension, got %q", name)
	}

	hexPart := strings.TrimSuffix(name, ".jpg")
	if len(hexPart) != 32 {
		t.Errorf("expected 32 hex chars (16 bytes), got %d in %q", len(hexPart), name)
	}
	for _, r := range hexPart {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("non-hex character %q in %q", r, name)
		}
	}

	other, err := RandomFilename("My Holiday.JPG")
	if err != nil {
		t.Fatalf("RandomFilename: %v", err)
	}
	if other == name {
		t.Error("two generated filenames collided")
	}
}
