package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitplanner/internal/domain"
	"fitplanner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupHandler serves exercise group and meal plan CRUD. The two catalogs
// share one handler because their shapes and rules are identical.
type GroupHandler struct {
	groupService    service.GroupService
	mealPlanService service.MealPlanService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService service.GroupService, mealPlanService service.MealPlanService) *GroupHandler {
	return &GroupHandler{groupService: groupService, mealPlanService: mealPlanService}
}

// --- Request/Response Structs ---

type CreateGroupRequest struct {
	Name      string   `json:"name" binding:"required"`
	MemberIDs []string `json:"memberIds" binding:"required"`
}

type UpdateGroupRequest struct {
	Name      *string  `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

type GroupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
	CreatedAt string   `json:"createdAt"`
}

// --- Exercise Groups ---

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	memberIDs, err := parseObjectIDs(req.MemberIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid member id")
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), ownerID, req.Name, memberIDs)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create group")
		}
		return
	}

	c.JSON(http.StatusCreated, mapGroupToResponse(group))
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	groups, err := h.groupService.GetGroupsByUser(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch groups")
		return
	}

	responses := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		responses = append(responses, mapGroupToResponse(&groups[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "exercise group not found")
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch group")
		}
		return
	}

	c.JSON(http.StatusOK, mapGroupToResponse(group))
}

func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "exercise group not found")
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var memberIDs []primitive.ObjectID
	if req.MemberIDs != nil {
		memberIDs, err = parseObjectIDs(req.MemberIDs)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid member id")
			return
		}
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), ownerID, groupID, req.Name, memberIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update group")
		}
		return
	}

	c.JSON(http.StatusOK, mapGroupToResponse(group))
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "exercise group not found")
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), ownerID, groupID); err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete group")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Meal Plans ---

func (h *GroupHandler) CreateMealPlan(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	mealIDs, err := parseObjectIDs(req.MemberIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid member id")
		return
	}

	plan, err := h.mealPlanService.CreatePlan(c.Request.Context(), ownerID, req.Name, mealIDs)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create meal plan")
		}
		return
	}

	c.JSON(http.StatusCreated, mapMealPlanToResponse(plan))
}

func (h *GroupHandler) ListMealPlans(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	plans, err := h.mealPlanService.GetPlansByUser(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch meal plans")
		return
	}

	responses := make([]GroupResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, mapMealPlanToResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *GroupHandler) GetMealPlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "meal plan not found")
		return
	}

	plan, err := h.mealPlanService.GetPlanByID(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch meal plan")
		}
		return
	}

	c.JSON(http.StatusOK, mapMealPlanToResponse(plan))
}

func (h *GroupHandler) UpdateMealPlan(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "meal plan not found")
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var mealIDs []primitive.ObjectID
	if req.MemberIDs != nil {
		mealIDs, err = parseObjectIDs(req.MemberIDs)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid member id")
			return
		}
	}

	plan, err := h.mealPlanService.UpdatePlan(c.Request.Context(), ownerID, planID, req.Name, mealIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update meal plan")
		}
		return
	}

	c.JSON(http.StatusOK, mapMealPlanToResponse(plan))
}

func (h *GroupHandler) DeleteMealPlan(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "meal plan not found")
		return
	}

	if err := h.mealPlanService.DeletePlan(c.Request.Context(), ownerID, planID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete meal plan")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- DTO mapping ---

func parseObjectIDs(idStrs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(idStrs))
	for _, s := range idStrs {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func mapGroupToResponse(g *domain.ExerciseGroup) GroupResponse {
	return GroupResponse{
		ID:        g.ID.Hex(),
		Name:      g.Name,
		MemberIDs: hexIDs(g.ExerciseIDs),
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}

func mapMealPlanToResponse(p *domain.MealPlan) GroupResponse {
	return GroupResponse{
		ID:        p.ID.Hex(),
		Name:      p.Name,
		MemberIDs: hexIDs(p.MealIDs),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
