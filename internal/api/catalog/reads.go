package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /packages
func (h *Handler) ListPackages(c *gin.Context) {
	pkgs, err := h.store.ListPackages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load packages"})
		return
	}
	c.JSON(http.StatusOK, pkgs)
}

// GET /packages/:id
func (h *Handler) GetPackage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package id"})
		return
	}
	pkg, err := h.store.GetPackage(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load package"})
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// GET /packages/:id/videos, in playlist order.
func (h *Handler) ListPackageVideos(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package id"})
		return
	}
	vids, err := h.store.ListVideosByPackage(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load videos"})
		return
	}
	c.JSON(http.StatusOK, vids)
}
