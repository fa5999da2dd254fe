package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

// previewCache memoizes rendered previews by document content, layout and
// format. Undo and redo revisit earlier snapshots, which then render from
// the cache. A cache of size zero renders every time.
type previewCache struct {
	pages *lru.Cache[string, string]
}

func newPreviewCache(size int) (*previewCache, error) {
	if size <= 0 {
		return &previewCache{}, nil
	}
	pages, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &previewCache{pages: pages}, nil
}

// previewKey hashes the document JSON together with the layout and format.
func previewKey(doc types.Document, id types.TemplateID, format rendering.Format) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(id))
	h.Write([]byte{0})
	h.Write([]byte(format))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// render returns the rendered page and whether it came from the cache.
func (c *previewCache) render(doc types.Document, id types.TemplateID, format rendering.Format) (string, bool, error) {
	if c.pages == nil {
		out, err := rendering.RenderFormat(doc, id, format)
		return out, false, err
	}

	key, err := previewKey(doc, id, format)
	if err != nil {
		return "", false, err
	}
	if out, ok := c.pages.Get(key); ok {
		return out, true, nil
	}

	out, err := rendering.RenderFormat(doc, id, format)
	if err != nil {
		return "", false, err
	}
	c.pages.Add(key, out)
	return out, false, nil
}

// Len returns the number of cached pages.
func (c *previewCache) Len() int {
	if c.pages == nil {
		return 0
	}
	return c.pages.Len()
}
