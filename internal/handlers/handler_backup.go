package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/dto"
	"github.com/spendtrail/spendtrail_app/internal/middleware"
)

// backupHandler handles snapshot upload and download for the authenticated
// user.
type backupHandler struct {
	backupService portssvc.BackupSvc
}

func newBackupHandler(bs portssvc.BackupSvc) *backupHandler {
	return &backupHandler{backupService: bs}
}

// backup godoc
// @Summary Store a ledger snapshot
// @Description Replaces the stored snapshot for the authenticated user.
// @Tags backup
// @Accept json
// @Produce json
// @Param snapshot body dto.BackupRequest true "Full local ledger"
// @Success 200 {object} dto.BackupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /backup [post]
func (h *backupHandler) backup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.BackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind backup request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format"})
		return
	}

	if _, err := h.backupService.StoreSnapshot(c.Request.Context(), userID, req.Expenses, req.Accounts); err != nil {
		logger.Error("Failed to store snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to store backup"})
		return
	}

	c.JSON(http.StatusOK, dto.BackupResponse{Success: true, Message: "Backup stored"})
}

// restore godoc
// @Summary Fetch the stored ledger snapshot
// @Description Returns the snapshot for the authenticated user, 404 if none exists.
// @Tags backup
// @Produce json
// @Success 200 {object} dto.RestoreResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restore [get]
func (h *backupHandler) restore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	snapshot, err := h.backupService.FetchSnapshot(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: "No backup found"})
			return
		}
		logger.Error("Failed to fetch snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch backup"})
		return
	}

	c.JSON(http.StatusOK, dto.RestoreResponse{
		Success:   true,
		Expenses:  snapshot.Expenses,
		Accounts:  snapshot.Accounts,
		UpdatedAt: snapshot.UpdatedAt,
	})
}
