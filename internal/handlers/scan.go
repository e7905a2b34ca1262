package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/siba18k/adbeam-rewards-backend/internal/services"
	"github.com/siba18k/adbeam-rewards-backend/internal/worker"
	apperrors "github.com/siba18k/adbeam-rewards-backend/pkg/errors"
)

type scanRequest struct {
	Barcode      string  `json:"barcode" binding:"required"`
	MaterialType string  `json:"materialType" binding:"required"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"locationName"`
	// LocationValid is set by the client-side location validator before the
	// scan reaches us. The payload is stored for audit only.
	LocationValid *bool `json:"locationValid"`
	// ScannedAt is the capture time, relevant for offline batches. Zero means
	// "now".
	ScannedAt time.Time `json:"scannedAt"`
}

func (r scanRequest) toPayload(userID string) services.ScanPayload {
	return services.ScanPayload{
		Barcode:      r.Barcode,
		UserID:       userID,
		MaterialType: r.MaterialType,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		LocationName: r.LocationName,
		ScannedAt:    r.ScannedAt,
	}
}

// SubmitScan POST /scans
func SubmitScan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scan payload: " + err.Error()})
		return
	}
	if req.LocationValid != nil && !*req.LocationValid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scan location failed validation"})
		return
	}

	result, err := services.RecordScan(c.Request.Context(), req.toPayload(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"pointsAwarded":   result.PointsAwarded,
		"points":          result.Snapshot.Points,
		"level":           result.Snapshot.Level,
		"totalScans":      result.Snapshot.TotalScans,
		"streak":          result.Streak,
		"newAchievements": result.NewAchievements,
	})
}

type syncRequest struct {
	DeviceID string        `json:"deviceId"`
	Scans    []scanRequest `json:"scans" binding:"required"`
}

type syncOutcome struct {
	Barcode string               `json:"barcode"`
	Status  string               `json:"status"` // accepted | rejected | queued
	Reason  apperrors.Reason     `json:"reason,omitempty"`
	Result  *services.ScanResult `json:"result,omitempty"`
}

// SyncScans POST /scans/sync replays a device's offline queue in FIFO
// order. Items the idempotency guard has already seen come back as plain
// rejections, not errors. On a transient backend failure the remainder is
// parked on the replay queue so order is preserved.
func SyncScans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sync payload: " + err.Error()})
		return
	}

	outcomes := make([]syncOutcome, 0, len(req.Scans))
	queued := false

	for i, scan := range req.Scans {
		payload := scan.toPayload(userID)

		if queued {
			// Preserve FIFO: once one item is parked, everything after it
			// queues behind it.
			if err := worker.EnqueueScan(c.Request.Context(), payload); err == nil {
				outcomes = append(outcomes, syncOutcome{Barcode: scan.Barcode, Status: "queued"})
			} else {
				outcomes = append(outcomes, syncOutcome{Barcode: scan.Barcode, Status: "rejected", Reason: apperrors.ReasonInternal})
			}
			continue
		}

		result, err := services.RecordScan(c.Request.Context(), payload)
		if err != nil {
			if appErr, isApp := err.(*apperrors.AppError); isApp && apperrors.IsRejection(err) {
				outcomes = append(outcomes, syncOutcome{Barcode: scan.Barcode, Status: "rejected", Reason: appErr.Reason})
				continue
			}
			// Transient failure: park this and the rest for the worker.
			if qErr := worker.EnqueueScan(c.Request.Context(), payload); qErr == nil {
				outcomes = append(outcomes, syncOutcome{Barcode: scan.Barcode, Status: "queued"})
				queued = true
				continue
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":    "Sync interrupted, retry remaining scans",
				"outcomes": outcomes,
				"failedAt": i,
			})
			return
		}
		outcomes = append(outcomes, syncOutcome{Barcode: scan.Barcode, Status: "accepted", Result: result})
	}

	status := http.StatusOK
	if queued {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"outcomes": outcomes})
}

// GetScanHistory GET /users/me/scans
func GetScanHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var scans []models.ScanRecord
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(100).Find(&scans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scan history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": scans})
}
