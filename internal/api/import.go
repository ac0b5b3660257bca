package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/config"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/importer"
)

// Import accepts one workbook upload and starts importing it in the
// background. The uploaded file is kept under the data directory as the
// audit copy referenced by the import log. The response carries a
// session id whose progress streams at /api/import/:id/events.
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	uploaded := files[0]

	dataDir, err := config.EnsureDataDir(h.cfg)
	if err != nil {
		h.serverError(c, err)
		return
	}
	uploadPath := config.GetDataPath(dataDir, "uploads",
		fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(uploaded.Filename)))
	if err := c.SaveUploadedFile(uploaded, uploadPath); err != nil {
		h.serverError(c, err)
		return
	}

	session := newImportSession(uploaded.Filename)
	h.sessions.put(session)

	coordinator := importer.NewCoordinator(h.store, h.log)
	events := coordinator.Import(importer.ImportOptions{
		FilePath: uploadPath,
		Filename: uploaded.Filename,
	})
	go func() {
		for event := range events {
			session.append(event)
		}
		session.finish()
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"sessionId": session.ID,
		"filename":  uploaded.Filename,
	})
}

// ImportEvents streams one session's progress as server-sent events.
// The buffered history replays first, so a subscriber attaching after
// the import finished still sees every step.
// GET /api/import/:id/events
func (h *Handler) ImportEvents(c *gin.Context) {
	session, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown import session"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	next := 0
	for {
		events, done, changed := session.snapshot(next)
		for _, event := range events {
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		}
		if len(events) > 0 {
			next += len(events)
			flusher.Flush()
		}
		if done {
			return
		}
		select {
		case <-changed:
		case <-c.Request.Context().Done():
			return
		}
	}
}

// ImportLogs lists recent imports, newest first.
// GET /api/imports
func (h *Handler) ImportLogs(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	logs, err := h.store.ListImportLogs(limit)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
