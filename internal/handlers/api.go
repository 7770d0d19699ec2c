// Package handlers exposes the recommendation engine over HTTP.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/database"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/models"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/scoring"
)

// UserRegistrar creates user nodes.
type UserRegistrar interface {
	CreateUser(ctx context.Context, userID string) error
}

// InteractionRecorder applies interaction events.
type InteractionRecorder interface {
	Record(ctx context.Context, kind scoring.InteractionKind, userID string, foodIDs []string) error
}

// RecommendationProvider serves ranked output from current graph state.
type RecommendationProvider interface {
	TopK(ctx context.Context, userID string, k int) ([]models.Recommendation, error)
	Preferences(ctx context.Context, userID string, topFoods, topTags int) (models.PreferenceSummary, error)
	SimilarForSet(ctx context.Context, foodIDs []string, limit int) ([]models.SimilarFood, error)
	RecentActivity(ctx context.Context, userID string, limit int) ([]models.RecentActivity, error)
}

// HealthChecker probes store connectivity.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// APIHandler handles all API requests.
type APIHandler struct {
	users           UserRegistrar
	interactions    InteractionRecorder
	recommendations RecommendationProvider
	health          HealthChecker
	log             *zap.SugaredLogger
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(users UserRegistrar, interactions InteractionRecorder, recommendations RecommendationProvider, health HealthChecker, log *zap.SugaredLogger) *APIHandler {
	return &APIHandler{
		users:           users,
		interactions:    interactions,
		recommendations: recommendations,
		health:          health,
		log:             log,
	}
}

// SetupRoutes configures all API routes.
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", h.GetHealth)
		api.POST("/users", h.CreateUser)
		api.POST("/interactions", h.RecordInteraction)
		api.GET("/recommendations/:userId", h.GetRecommendations)
		api.GET("/users/:userId/preferences", h.GetPreferences)
		api.GET("/users/:userId/activity", h.GetRecentActivity)
		api.POST("/foods/similar", h.GetSimilarFoods)
	}
}

type createUserRequest struct {
	ID string `json:"id"`
}

// CreateUser registers a user node, assigning an id when none is supplied.
func (h *APIHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	userID := req.ID
	if userID == "" {
		userID = uuid.NewString()
	}

	if err := h.users.CreateUser(c.Request.Context(), userID); err != nil {
		if database.IsConstraintViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		h.respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": userID})
}

type interactionRequest struct {
	Kind    string   `json:"kind" binding:"required"`
	UserID  string   `json:"user_id" binding:"required"`
	FoodID  string   `json:"food_id"`
	FoodIDs []string `json:"food_ids"`
}

// RecordInteraction applies a viewed / cart_add / purchased event.
func (h *APIHandler) RecordInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	kind, err := scoring.ParseInteractionKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interaction kind"})
		return
	}

	foodIDs := req.FoodIDs
	if req.FoodID != "" {
		foodIDs = append(foodIDs, req.FoodID)
	}
	if len(foodIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No food ids provided"})
		return
	}
	if kind != scoring.KindPurchased && len(foodIDs) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Interaction takes exactly one food id"})
		return
	}

	if err := h.interactions.Record(c.Request.Context(), kind, req.UserID, foodIDs); err != nil {
		h.respondError(c, err, "Failed to record interaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "recorded",
		"kind":    kind.String(),
		"user_id": req.UserID,
	})
}

// GetRecommendations returns the user's top-k recommended foods.
func (h *APIHandler) GetRecommendations(c *gin.Context) {
	userID := c.Param("userId")
	k := intQuery(c, "k", 10)

	recommendations, err := h.recommendations.TopK(c.Request.Context(), userID, k)
	if err != nil {
		h.respondError(c, err, "Failed to get recommendations")
		return
	}
	if recommendations == nil {
		recommendations = []models.Recommendation{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":         userID,
		"k":               k,
		"recommendations": recommendations,
	})
}

// GetPreferences returns the user's top foods and top tags.
func (h *APIHandler) GetPreferences(c *gin.Context) {
	userID := c.Param("userId")
	topFoods := intQuery(c, "foods", 20)
	topTags := intQuery(c, "tags", 10)

	summary, err := h.recommendations.Preferences(c.Request.Context(), userID, topFoods, topTags)
	if err != nil {
		h.respondError(c, err, "Failed to get preferences")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":     userID,
		"preferences": summary,
	})
}

// GetRecentActivity returns the user's most recent direct interactions.
func (h *APIHandler) GetRecentActivity(c *gin.Context) {
	userID := c.Param("userId")
	limit := intQuery(c, "limit", 15)

	activity, err := h.recommendations.RecentActivity(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondError(c, err, "Failed to get recent activity")
		return
	}
	if activity == nil {
		activity = []models.RecentActivity{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"activity": activity,
	})
}

type similarFoodsRequest struct {
	FoodIDs []string `json:"food_ids" binding:"required,min=1"`
	Limit   int      `json:"limit"`
}

// GetSimilarFoods returns foods similar to any member of the given set,
// excluding the set itself.
func (h *APIHandler) GetSimilarFoods(c *gin.Context) {
	var req similarFoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 6
	}

	similar, err := h.recommendations.SimilarForSet(c.Request.Context(), req.FoodIDs, req.Limit)
	if err != nil {
		h.respondError(c, err, "Failed to get similar foods")
		return
	}
	if similar == nil {
		similar = []models.SimilarFood{}
	}

	c.JSON(http.StatusOK, gin.H{"foods": similar})
}

// GetHealth probes the store.
func (h *APIHandler) GetHealth(c *gin.Context) {
	if h.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := h.health.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) respondError(c *gin.Context, err error, message string) {
	h.log.Errorw(message, "error", err, "path", c.Request.URL.Path)
	if database.IsUnavailable(err) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
