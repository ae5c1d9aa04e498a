package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
)

var imageExts = map[string]bool{"jpg": true, "jpeg": true, "png": true}

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/api/upload", "upload endpoint")
	dataDir := flag.String("data", "./data", "directory with pet photos")
	field := flag.String("field", "image", "multipart field name")
	workers := flag.Int("c", 4, "concurrent uploads")
	timeout := flag.Duration("timeout", 2*time.Minute, "per-request timeout")
	flag.Parse()

	files, err := collectImages(*dataDir)
	if err != nil {
		log.Fatalf("collect images: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("no images under %s", *dataDir)
	}

	pool, err := ants.NewPool(*workers)
	if err != nil {
		log.Fatalf("create pool: %v", err)
	}
	defer pool.Release()

	client := &http.Client{Timeout: *timeout}
	ctx := context.Background()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]BenchResult, 0, len(files))
	)
	for _, filePath := range files {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			res := benchmarkImage(ctx, client, *endpoint, *field, filePath)
			if res.Err != nil {
				log.Println("ERR:", res.File, res.Err)
			} else {
				log.Printf("OK %s %v", res.File, res.Duration)
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			log.Printf("submit %s: %v", filePath, err)
		}
	}
	wg.Wait()

	printMarkdown(os.Stdout, results)
}

func collectImages(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if imageExts[fileFormat(path)] {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func fileFormat(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func benchmarkImage(ctx context.Context, client *http.Client, endpoint, field, filePath string) BenchResult {
	start := time.Now()

	fileRaw, err := os.ReadFile(filePath)
	if err != nil {
		return BenchResult{File: filePath, Err: err}
	}

	text, err := upload(ctx, client, endpoint, field, filepath.Base(filePath), fileRaw)
	return BenchResult{
		File:     filepath.Base(filePath),
		Format:   fileFormat(filePath),
		Duration: time.Since(start),
		Runes:    utf8.RuneCountInString(text),
		Err:      err,
		Size:     int64(len(fileRaw)),
	}
}

func upload(ctx context.Context, client *http.Client, endpoint, field, filename string, data []byte) (string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out UploadResponse
	decodeErr := sonic.Unmarshal(raw, &out)
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	return out.Result, nil
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Format]
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		m[r.Format] = a
	}
	return m
}

func printMarkdown(w io.Writer, results []BenchResult) {
	fmt.Fprint(w, "\n## Benchmark Results\n\n")
	fmt.Fprintln(w, "| Format | Requests | Avg Time | Total Time | Avg File Size |")
	fmt.Fprintln(w, "|--------|----------|----------|------------|---------------|")

	agg := aggregate(results)
	formats := make([]string, 0, len(agg))
	for format := range agg {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	var (
		totalCount    int
		totalDuration time.Duration
		totalBytes    int64
	)

	for _, format := range formats {
		a := agg[format]
		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Fprintf(w, "| %s | %d | %v | %v | %s |\n",
			format,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			humanBytes(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Fprintf(w, "| **ALL** | %d | %v | %v | %s |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			humanBytes(avgSize),
		)
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
