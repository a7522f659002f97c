package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// tiny valid PNG header so content sniffing sees an image
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestDiskUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskAttachments(dir, "/uploads")
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}

	att, err := store.Upload(context.Background(), "shot.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if att.RemoteID == "" {
		t.Fatal("expected non-empty remote id")
	}
	if !strings.HasPrefix(att.URL, "/uploads/") {
		t.Errorf("URL %q not under /uploads/", att.URL)
	}
	if att.Kind != "image" {
		t.Errorf("kind = %q, want image", att.Kind)
	}
	if _, err := os.Stat(filepath.Join(dir, att.RemoteID)); err != nil {
		t.Errorf("uploaded file missing: %v", err)
	}

	if err := store.Delete(context.Background(), att.RemoteID, att.Kind); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, att.RemoteID)); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}
}

func TestDiskDeleteMissingIsNoError(t *testing.T) {
	store, err := NewDiskAttachments(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	if err := store.Delete(context.Background(), "never-existed.png", "image"); err != nil {
		t.Errorf("deleting a missing file should be a no-op, got %v", err)
	}
}

func TestDiskDeleteIgnoresPathTraversal(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "victim.txt")
	if err := os.WriteFile(outside, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewDiskAttachments(dir, "/uploads")
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	_ = store.Delete(context.Background(), "../"+outside, "raw")

	if _, err := os.Stat(outside); err != nil {
		t.Error("delete escaped the upload directory")
	}
}

func TestKindFromContentType(t *testing.T) {
	cases := map[string]string{
		"image/png":                "image",
		"image/jpeg":               "image",
		"video/mp4":                "video",
		"application/octet-stream": "raw",
		"text/plain; charset=utf-8": "raw",
	}
	for contentType, want := range cases {
		if got := KindFromContentType(contentType); got != want {
			t.Errorf("KindFromContentType(%q) = %q, want %q", contentType, got, want)
		}
	}
}
