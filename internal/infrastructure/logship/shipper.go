// Package logship delivers structured log lines to a Loki-style HTTP
// endpoint in batches, off the request path. It plugs into zerolog as an
// extra writer.
package logship

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	channelBuffer = 256
	maxBatch      = 64
	flushInterval = 5 * time.Second
	pushTimeout   = 10 * time.Second
)

// Config points the shipper at its delivery endpoint.
type Config struct {
	URL    string
	APIKey string
	Source string
}

// Shipper buffers log lines on a channel and pushes them in batches from a
// single worker goroutine. Writes never block the caller: when the buffer is
// full the line is dropped, losing a log line beats stalling a request.
type Shipper struct {
	cfg    Config
	lines  chan entry
	client *http.Client
}

type entry struct {
	ts   time.Time
	line string
}

func New(cfg Config) *Shipper {
	return &Shipper{
		cfg:    cfg,
		lines:  make(chan entry, channelBuffer),
		client: &http.Client{Timeout: pushTimeout},
	}
}

// Write satisfies io.Writer so the shipper can sit behind a zerolog
// MultiLevelWriter. The byte slice is copied before enqueueing.
func (s *Shipper) Write(p []byte) (int, error) {
	select {
	case s.lines <- entry{ts: time.Now(), line: string(p)}:
	default:
	}
	return len(p), nil
}

// Start launches the delivery worker. It stops when ctx is cancelled,
// flushing whatever is buffered first.
func (s *Shipper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Shipper) run(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]entry, 0, maxBatch)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.push(batch)
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-ticker.C:
			flush()
		case e := <-s.lines:
			batch = append(batch, e)
			if len(batch) >= maxBatch {
				flush()
			}
		}
	}
}

// push sends one batch in the Loki push format. Delivery is best effort;
// failures are swallowed because the shipper cannot log about logging.
func (s *Shipper) push(batch []entry) {
	values := make([][2]string, 0, len(batch))
	for _, e := range batch {
		values = append(values, [2]string{strconv.FormatInt(e.ts.UnixNano(), 10), e.line})
	}

	payload, err := json.Marshal(map[string]any{
		"streams": []map[string]any{{
			"stream": map[string]string{"source": s.cfg.Source},
			"values": values,
		}},
	})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.cfg.APIKey))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return
	}
	_ = resp.Body.Close()
}
