package main

import "time"

type UploadResponse struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

type BenchResult struct {
	File     string
	Format   string
	Duration time.Duration
	Runes    int
	Err      error
	Size     int64
}

type Agg struct {
	Count      int
	Total      time.Duration
	TotalBytes int64
}
