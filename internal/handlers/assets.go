package handlers

import (
	"errors"
	"io"
	"net/http"

	"sanisip/internal/gateway"
	"sanisip/internal/service"

	"github.com/gin-gonic/gin"
)

const errAssetUnavailable = "asset unavailable"

// forwarded response headers for proxied assets.
var assetHeaders = []string{"Cache-Control", "ETag", "Last-Modified", gateway.HeaderCache}

// getAsset serves a dashboard static file through the cache-first gateway.
func (h *Handler) getAsset(c *gin.Context) {
	resp, err := h.services.Assets.Fetch(c.Request.Context(), c.Param("path"))
	if errors.Is(err, service.ErrAssetsDisabled) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errAssetUnavailable, "asset_fetch_failed", err, "path", c.Param("path"))
		return
	}
	defer resp.Body.Close()

	for _, k := range assetHeaders {
		if v := resp.Header.Get(k); v != "" {
			c.Header(k, v)
		}
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.Header("Content-Type", ct)
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil && h.log != nil {
		h.log.Infow("asset_copy_failed", "err", err, "path", c.Param("path"))
	}
}
