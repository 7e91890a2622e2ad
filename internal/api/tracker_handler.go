package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitplanner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackerHandler serves the day view and completion toggles.
type TrackerHandler struct {
	trackerService service.TrackerService
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// --- Request/Response Structs ---

type CompletionRequest struct {
	Date       string `json:"date" binding:"required"`
	ExerciseID string `json:"exerciseId" binding:"required"`
	Completed  bool   `json:"completed"`
}

// --- Handler Methods ---

// GetDay composes the full plan for one day: groups, exercises in stored
// order, and completion marks.
func (h *TrackerHandler) GetDay(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	plan, err := h.trackerService.ComposeDay(c.Request.Context(), ownerID, c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compose day plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// SetCompletion marks an exercise done or not done for a day. Both
// directions are idempotent.
func (h *TrackerHandler) SetCompletion(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "exercise not found")
		return
	}

	if req.Completed {
		err = h.trackerService.MarkCompleted(c.Request.Context(), ownerID, req.Date, exerciseID)
	} else {
		err = h.trackerService.MarkIncomplete(c.Request.Context(), ownerID, req.Date, exerciseID)
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update completion")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "completed": req.Completed})
}
