// Package ocr implements the Recognizer interface on top of a single
// long-lived Tesseract client (via gosseract). The client is not safe
// for concurrent recognition, so every call is serialized here rather
// than by callers.
package ocr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// charWhitelist restricts recognition to what the water readings can
// contain: numbers and timestamps, nothing else.
const charWhitelist = "0123456789.,:- "

// Engine owns one Tesseract client for the lifetime of a pipeline run.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
	run    func(image []byte) (string, error)
}

// New creates an Engine with the restricted character whitelist applied.
func New() (*Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting OCR language: %w", err)
	}
	if err := client.SetWhitelist(charWhitelist); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting OCR whitelist: %w", err)
	}

	e := &Engine{client: client}
	e.run = e.recognizeBytes
	return e, nil
}

func (e *Engine) recognizeBytes(image []byte) (string, error) {
	if e.client == nil {
		return "", errors.New("engine is closed")
	}
	if err := e.client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	return e.client.Text()
}

// Recognize recovers text from an inline data: URI. Calls are strictly
// one-at-a-time against the shared client regardless of how many
// stations are processed concurrently. Any failure yields ok=false;
// the underlying error is logged, never propagated.
func (e *Engine) Recognize(dataURI string) (string, bool) {
	image, err := decodeDataURI(dataURI)
	if err != nil {
		slog.Debug("skipping unrecognizable inline image", "error", err)
		return "", false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	run := e.run
	if run == nil {
		run = e.recognizeBytes
	}
	text, err := run(image)
	if err != nil {
		slog.Debug("OCR failed", "error", err)
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// Close releases the Tesseract client. It blocks until any in-flight
// recognition has completed; Recognize after Close yields ok=false.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}

// decodeDataURI extracts and decodes the base64 payload of an inline
// image ("data:image/png;base64,....").
func decodeDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, "data:image") {
		return nil, fmt.Errorf("not an inline image: %.32q", dataURI)
	}
	_, payload, found := strings.Cut(dataURI, ";base64,")
	if !found {
		return nil, errors.New("inline image is not base64 encoded")
	}
	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding inline image: %w", err)
	}
	return image, nil
}
