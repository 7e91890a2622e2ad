package api

import (
	"net/http"

	"fitplanner/internal/domain"
	"fitplanner/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	groupService service.GroupService,
	mealPlanService service.MealPlanService,
	plannerService service.PlannerService,
	trackerService service.TrackerService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	groupHandler := NewGroupHandler(groupService, mealPlanService)
	plannerHandler := NewPlannerHandler(plannerService)
	trackerHandler := NewTrackerHandler(trackerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := currentUserID(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := c.Get(ContextUserRoleKey)
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": role})
		})

		// --- Exercise Catalog Routes ---
		// Reads are open to all users; the catalog itself is curated by admins.
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.GET("/:id", exerciseHandler.Get)
			exerciseGroup.GET("/:id/media-url", exerciseHandler.GetMediaURL)

			exerciseGroup.POST("", RoleMiddleware(domain.RoleAdmin), exerciseHandler.Create)
			exerciseGroup.PUT("/:id", RoleMiddleware(domain.RoleAdmin), exerciseHandler.Update)
			exerciseGroup.DELETE("/:id", RoleMiddleware(domain.RoleAdmin), exerciseHandler.Delete)
			exerciseGroup.POST("/:id/media-upload", RoleMiddleware(domain.RoleAdmin), exerciseHandler.RequestMediaUpload)
			exerciseGroup.POST("/:id/media-confirm", RoleMiddleware(domain.RoleAdmin), exerciseHandler.ConfirmMediaUpload)
		}

		// --- Exercise Group Routes ---
		groupGroup := protected.Group("/groups")
		{
			groupGroup.POST("", groupHandler.CreateGroup)
			groupGroup.GET("", groupHandler.ListGroups)
			groupGroup.GET("/:id", groupHandler.GetGroup)
			groupGroup.PUT("/:id", groupHandler.UpdateGroup)
			groupGroup.DELETE("/:id", groupHandler.DeleteGroup)
		}

		// --- Meal Plan Routes ---
		mealPlanGroup := protected.Group("/meal-plans")
		{
			mealPlanGroup.POST("", groupHandler.CreateMealPlan)
			mealPlanGroup.GET("", groupHandler.ListMealPlans)
			mealPlanGroup.GET("/:id", groupHandler.GetMealPlan)
			mealPlanGroup.PUT("/:id", groupHandler.UpdateMealPlan)
			mealPlanGroup.DELETE("/:id", groupHandler.DeleteMealPlan)
		}

		// --- Planner Routes ---
		plannerGroup := protected.Group("/planner")
		{
			plannerGroup.POST("/assignments", plannerHandler.Assign)
			plannerGroup.GET("/assignments", plannerHandler.ListAssignments)
			plannerGroup.GET("/assignments/day/:date", plannerHandler.ListAssignmentsForDay)
			plannerGroup.DELETE("/assignments/:id", plannerHandler.DeleteAssignment)
			plannerGroup.DELETE("/assignments", plannerHandler.ClearAssignments)

			plannerGroup.POST("/diet", plannerHandler.AssignDiet)
			plannerGroup.GET("/diet", plannerHandler.ListDietAssignments)
			plannerGroup.DELETE("/diet/:id", plannerHandler.DeleteDietAssignment)
		}

		// --- Tracker Routes ---
		trackerGroup := protected.Group("/tracker")
		{
			trackerGroup.GET("/day/:date", trackerHandler.GetDay)
			trackerGroup.POST("/completion", trackerHandler.SetCompletion)
		}
	}
}
