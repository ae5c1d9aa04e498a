package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.50 KB", humanBytes(1536))
	assert.Equal(t, "2.00 MB", humanBytes(2<<20))
	assert.Equal(t, "1.00 GB", humanBytes(1<<30))
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cats"), 0o755))
	for _, name := range []string{"cats/a.jpg", "b.JPEG", "c.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := collectImages(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"No file uploaded."}`))
			return
		}
		file.Close()
		_, _ = w.Write([]byte(`{"result":"🐱: [测试]"}`))
	}))
	defer srv.Close()

	client := &http.Client{Timeout: time.Second}

	text, err := upload(context.Background(), client, srv.URL, "image", "cat.jpg", []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.Equal(t, "🐱: [测试]", text)

	_, err = upload(context.Background(), client, srv.URL, "photo", "cat.jpg", []byte{0xFF, 0xD8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No file uploaded.")
}

func TestUploadUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
			return
		}
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := &http.Client{Timeout: time.Second}

	_, err := upload(context.Background(), client, srv.URL, "image", "cat.jpg", []byte{0xFF, 0xD8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	assert.NotContains(t, err.Error(), "bad status")

	_, err = upload(context.Background(), client, srv.URL+"/down", "image", "cat.jpg", []byte{0xFF, 0xD8})
	require.Error(t, err)
	assert.Equal(t, "bad status 502: upstream down", err.Error())
}

func TestPrintMarkdown(t *testing.T) {
	results := []BenchResult{
		{File: "a.jpg", Format: "jpg", Duration: time.Second, Size: 2048},
		{File: "b.jpg", Format: "jpg", Duration: 3 * time.Second, Size: 2048},
		{File: "c.png", Format: "png", Duration: time.Second, Size: 100},
		{File: "d.png", Format: "png", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	printMarkdown(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "| jpg | 2 | 2s | 4s | 2.00 KB |")
	assert.Contains(t, out, "| png | 1 | 1s | 1s | 100 B |")
	assert.Contains(t, out, "| **ALL** | 3 |")
}
