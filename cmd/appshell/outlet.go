package main

import (
	"strings"
	"sync"

	"github.com/filedrop-dev/appshell/pkg/router"
)

// bufferOutlet renders pages into an in-memory buffer the HTTP layer reads
// back. It is safe for concurrent use.
type bufferOutlet struct {
	mu   sync.RWMutex
	name string
	html string
}

func newBufferOutlet() *bufferOutlet {
	return &bufferOutlet{}
}

func (o *bufferOutlet) Render(p router.Page) error {
	var sb strings.Builder
	if err := p.Render(&sb); err != nil {
		return err
	}

	o.mu.Lock()
	o.name = p.Name()
	o.html = sb.String()
	o.mu.Unlock()
	return nil
}

// HTML returns the most recently rendered page body.
func (o *bufferOutlet) HTML() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.html
}

// PageName returns the name of the most recently rendered page.
func (o *bufferOutlet) PageName() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.name
}
