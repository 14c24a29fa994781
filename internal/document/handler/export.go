package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/books-gateway/internal/document/service"
	"github.com/gogotex/books-gateway/pkg/logger"
	"github.com/gogotex/books-gateway/pkg/metrics"
)

// SnapshotStore receives exported collection snapshots.
// *storage.MinIOStorage satisfies it.
type SnapshotStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// RegisterExportRoute adds POST /export. With a nil store the route answers 503.
func RegisterExportRoute(r gin.IRoutes, svc service.Service, store SnapshotStore, prefix string, urlExpiry time.Duration) {
	r.POST("/export", func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot storage not configured"})
			return
		}
		ctx := c.Request.Context()
		data, err := svc.Read(ctx)
		if err != nil {
			fail(c, "export", err)
			return
		}
		key := fmt.Sprintf("%s/%s.json", prefix, time.Now().UTC().Format("20060102T150405.000000000Z"))
		if err := store.UploadFile(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
			fail(c, "export", fmt.Errorf("upload snapshot: %w", err))
			return
		}
		url, err := store.GetPresignedURL(ctx, key, urlExpiry)
		if err != nil {
			fail(c, "export", fmt.Errorf("presign snapshot: %w", err))
			return
		}
		logger.Infof("exported snapshot %s (%d bytes)", key, len(data))
		metrics.ObserveOperation("export", metrics.OutcomeOK)
		c.JSON(http.StatusOK, gin.H{"message": "Snapshot exported successfully", "key": key, "url": url})
	})
}
