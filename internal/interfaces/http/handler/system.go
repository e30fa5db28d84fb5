package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	backupapp "github.com/mls/backend/internal/application/backup"
	"github.com/mls/backend/internal/domain/shared"
)

// SystemHandler handles health checks and database snapshot endpoints
type SystemHandler struct {
	BaseHandler
	backupService *backupapp.Service
	version       string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(backupService *backupapp.Service, version string) *SystemHandler {
	return &SystemHandler{
		backupService: backupService,
		version:       version,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.POST("/backup", h.Backup)
	rg.POST("/restore", h.Restore)
	rg.GET("/last-backup", h.LastBackup)
	rg.GET("/available-backups", h.AvailableBackups)
	rg.GET("/backup-history", h.History)
}

// Health reports service liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Backup snapshots the database to the object store
func (h *SystemHandler) Backup(c *gin.Context) {
	result, err := h.backupService.Backup(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// RestoreRequest names the snapshot to restore
type RestoreRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
}

// Restore replaces the database with a stored snapshot
func (h *SystemHandler) Restore(c *gin.Context) {
	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), req.ObjectKey); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"restored": req.ObjectKey})
}

// LastBackup returns the most recent successful backup
func (h *SystemHandler) LastBackup(c *gin.Context) {
	entry, err := h.backupService.LastBackup(c.Request.Context())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.Success(c, nil)
			return
		}
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entry)
}

// AvailableBackups lists stored snapshot keys, newest first
func (h *SystemHandler) AvailableBackups(c *gin.Context) {
	keys, err := h.backupService.AvailableBackups(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"backups": keys})
}

// History returns recent backup log entries
func (h *SystemHandler) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.backupService.History(c.Request.Context(), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entries)
}
