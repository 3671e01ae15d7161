package panel

import (
	"fmt"
	"io"
	"sync"
)

// Region is the display area the panel writes into. Every call replaces the
// whole content; concurrent callers race and the last one wins.
type Region interface {
	Replace(content string)
}

// BufferRegion keeps the current content in memory.
type BufferRegion struct {
	mu      sync.Mutex
	content string
}

func (r *BufferRegion) Replace(content string) {
	r.mu.Lock()
	r.content = content
	r.mu.Unlock()
}

func (r *BufferRegion) Content() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}

// WriterRegion prints each replacement in full to w.
type WriterRegion struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterRegion(w io.Writer) *WriterRegion {
	return &WriterRegion{w: w}
}

func (r *WriterRegion) Replace(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.w, content)
}
