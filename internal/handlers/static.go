package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexDocument = "index.html"

// Static serves the front-end bundle for any request no route matched.
// Paths that name no file get the index document so client-side routing
// works. Unmatched /api/ paths are not served from disk, and the bundle is
// read-only: methods other than GET and HEAD get 405.
func (h *Handler) Static(c *gin.Context) {
	urlPath := path.Clean("/" + c.Request.URL.Path)
	if urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
		c.String(http.StatusNotFound, fmt.Sprintf("no route for %s %s", c.Request.Method, urlPath))
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Header("Allow", "GET, HEAD")
		h.MethodNotAllowed(c)
		return
	}

	if file, ok := h.lookupAsset(urlPath); ok {
		c.File(file)
		return
	}

	h.serveIndex(c)
}

// lookupAsset maps a cleaned URL path to a regular file inside the static
// directory. Directories resolve to their own index document.
func (h *Handler) lookupAsset(urlPath string) (string, bool) {
	name := filepath.Join(h.staticDir, filepath.FromSlash(urlPath))

	info, err := os.Stat(name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		name = filepath.Join(name, indexDocument)
		info, err = os.Stat(name)
		if err != nil {
			return "", false
		}
	}
	if !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}

func (h *Handler) serveIndex(c *gin.Context) {
	index := filepath.Join(h.staticDir, indexDocument)
	data, err := os.ReadFile(index)
	if errors.Is(err, fs.ErrNotExist) {
		c.String(http.StatusNotFound, fmt.Sprintf("%s not found in %s", indexDocument, h.staticDir))
		return
	}
	if err != nil {
		h.requestLogger(c).Error("read index document", "path", index, "err", err)
		c.String(http.StatusInternalServerError, fmt.Sprintf("read %s: %v", indexDocument, err))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
