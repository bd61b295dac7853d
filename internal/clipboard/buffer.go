package clipboard

import (
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"
)

// Buffer is a transfer buffer.
type Buffer interface {
	// Stage places text in the buffer for the platform to capture.
	Stage(text string) error
	// Read returns the current clipboard contents.
	Read() (string, error)
	// Reset clears the staging copy. The captured clipboard is kept.
	Reset()
}

var (
	_ Buffer = (*SystemBuffer)(nil)
	_ Buffer = (*MemoryBuffer)(nil)
)

// SystemBuffer uses the platform clipboard. The platform keeps the staged
// text, so there is no local staging copy.
type SystemBuffer struct{}

// NewSystemBuffer reports an error when no platform clipboard is available.
func NewSystemBuffer() (*SystemBuffer, error) {
	if sysclip.Unsupported {
		return nil, fmt.Errorf("system clipboard is not supported on this platform")
	}
	return &SystemBuffer{}, nil
}

func (b *SystemBuffer) Stage(text string) error {
	if err := sysclip.WriteAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

func (b *SystemBuffer) Read() (string, error) {
	text, err := sysclip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read system clipboard: %w", err)
	}
	return text, nil
}

// Reset does nothing. The captured clipboard is kept.
func (b *SystemBuffer) Reset() {}

// MemoryBuffer is a process-local clipboard.
type MemoryBuffer struct {
	mu       sync.Mutex
	staged   string
	captured string
}

func NewMemoryBuffer() *MemoryBuffer {
	return &MemoryBuffer{}
}

func (b *MemoryBuffer) Stage(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.staged = text
	b.captured = text
	return nil
}

func (b *MemoryBuffer) Read() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.captured, nil
}

func (b *MemoryBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.staged = ""
}

// Staged returns the staging copy.
func (b *MemoryBuffer) Staged() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.staged
}

// SetClipboard replaces the clipboard contents, as another application would.
func (b *MemoryBuffer) SetClipboard(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.captured = text
}
