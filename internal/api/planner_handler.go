package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitplanner/internal/domain"
	"fitplanner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannerHandler exposes the calendar assignment engine over HTTP.
type PlannerHandler struct {
	plannerService service.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

// --- Request/Response Structs ---

// AssignRequest is the single well-typed value handed to the engine: the
// repeat selector and rest/selection shape are validated here, once, at the
// boundary.
type AssignRequest struct {
	Date      string   `json:"date" binding:"required"`
	GroupIDs  []string `json:"groupIds"`
	IsRestDay bool     `json:"isRestDay"`
	Repeat    string   `json:"repeat"` // none | weekly_4 | weekly_12
}

type AssignResponse struct {
	AssignedDates []string `json:"assignedDates"`
}

type AssignmentResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Kind      string `json:"kind"`
	GroupID   string `json:"groupId,omitempty"`
	GroupName string `json:"groupName,omitempty"`
	SeriesID  string `json:"seriesId,omitempty"`
}

type DietAssignRequest struct {
	Date   string `json:"date" binding:"required"`
	PlanID string `json:"planId" binding:"required"`
}

type DietAssignmentResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	PlanID   string `json:"planId"`
	PlanName string `json:"planName,omitempty"`
}

// --- Handler Methods ---

// Assign applies a (possibly recurring) edit to the calendar.
func (h *PlannerHandler) Assign(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	repeat, err := domain.ParseRepeat(req.Repeat)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	selection := make([]primitive.ObjectID, 0, len(req.GroupIDs))
	for _, idStr := range req.GroupIDs {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			abortWithError(c, http.StatusNotFound, "exercise group not found")
			return
		}
		selection = append(selection, id)
	}

	dates, err := h.plannerService.AssignWithRecurrence(c.Request.Context(), ownerID, req.Date, selection, req.IsRestDay, repeat)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGroupNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create assignments")
		}
		return
	}

	c.JSON(http.StatusCreated, AssignResponse{AssignedDates: dates})
}

// ListAssignments returns assignments in an inclusive date range.
func (h *PlannerHandler) ListAssignments(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		abortWithError(c, http.StatusBadRequest, "start and end query parameters are required")
		return
	}

	assignments, err := h.plannerService.FindByDateRange(c.Request.Context(), ownerID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch assignments")
		}
		return
	}

	c.JSON(http.StatusOK, mapAssignmentsToResponse(assignments))
}

// ListAssignmentsForDay returns assignments for a single day.
func (h *PlannerHandler) ListAssignmentsForDay(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	assignments, err := h.plannerService.FindByDate(c.Request.Context(), ownerID, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch assignments")
		return
	}

	c.JSON(http.StatusOK, mapAssignmentsToResponse(assignments))
}

// DeleteAssignment removes one assignment, or the rest of its series when
// mode=future.
func (h *PlannerHandler) DeleteAssignment(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	assignmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "assignment not found")
		return
	}

	mode := service.DeleteSingle
	if c.Query("mode") == string(service.DeleteFuture) {
		mode = service.DeleteFuture
	}

	if err := h.plannerService.DeleteAssignment(c.Request.Context(), ownerID, assignmentID, mode); err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete assignment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearAssignments wipes the user's whole calendar.
func (h *PlannerHandler) ClearAssignments(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	if err := h.plannerService.ClearAllAssignments(c.Request.Context(), ownerID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to clear assignments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AssignDiet attaches a meal plan to a day.
func (h *PlannerHandler) AssignDiet(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	var req DietAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "meal plan not found")
		return
	}

	assignment, err := h.plannerService.AssignDiet(c.Request.Context(), ownerID, req.Date, planID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create diet assignment")
		}
		return
	}

	c.JSON(http.StatusCreated, mapDietAssignmentToResponse(*assignment))
}

// ListDietAssignments returns diet assignments in an inclusive date range.
func (h *PlannerHandler) ListDietAssignments(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		abortWithError(c, http.StatusBadRequest, "start and end query parameters are required")
		return
	}

	assignments, err := h.plannerService.FindDietByDateRange(c.Request.Context(), ownerID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch diet assignments")
		}
		return
	}

	responses := make([]DietAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, mapDietAssignmentToResponse(a))
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteDietAssignment removes one diet assignment.
func (h *PlannerHandler) DeleteDietAssignment(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	assignmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "diet assignment not found")
		return
	}

	if err := h.plannerService.DeleteDietAssignment(c.Request.Context(), ownerID, assignmentID); err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete diet assignment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- DTO mapping ---

func mapAssignmentsToResponse(assignments []domain.CalendarAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		resp := AssignmentResponse{
			ID:        a.ID.Hex(),
			Date:      a.Date,
			Kind:      string(a.Kind),
			GroupName: a.GroupName,
			SeriesID:  a.SeriesID,
		}
		if a.GroupID != nil {
			resp.GroupID = a.GroupID.Hex()
		}
		responses = append(responses, resp)
	}
	return responses
}

func mapDietAssignmentToResponse(a domain.DietAssignment) DietAssignmentResponse {
	return DietAssignmentResponse{
		ID:       a.ID.Hex(),
		Date:     a.Date,
		PlanID:   a.MealPlanID.Hex(),
		PlanName: a.PlanName,
	}
}
