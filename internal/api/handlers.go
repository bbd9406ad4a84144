package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rapidstack/rapid-insight/internal/models"
	"github.com/rapidstack/rapid-insight/internal/policy"
	"github.com/rapidstack/rapid-insight/internal/reliability"
	"github.com/rapidstack/rapid-insight/internal/services"
)

// defaultUserID keys role preferences for single-operator deployments that
// never send a user parameter.
const defaultUserID = "default"

// Reporter is the slice of the report service the handlers need.
type Reporter interface {
	Evaluate(ctx context.Context, req models.EvaluateRequest) (models.AnalysisResult, error)
	LatestResult(assetID string) (models.AnalysisResult, bool)
	Report(assetID string, cfg policy.RoleConfig) (models.NarrativeReport, bool)
	Patterns(ctx context.Context, assetID string, limit int) ([]models.FaultPattern, error)
	Health(ctx context.Context) error
}

// RoleStore persists per-user role selections.
type RoleStore interface {
	LoadRole(ctx context.Context, userID string) (policy.Role, error)
	SaveRole(ctx context.Context, userID string, role policy.Role) error
}

// Handlers bundles the HTTP endpoints and their dependencies.
type Handlers struct {
	logger  *slog.Logger
	reports Reporter
	roles   RoleStore
}

// NewHandlers constructs the endpoint set.
func NewHandlers(logger *slog.Logger, reports Reporter, roles RoleStore) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{logger: logger, reports: reports, roles: roles}
}

// NewRouter wires all routes onto a fresh gin engine.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", h.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/evaluate", h.Evaluate)

		assets := v1.Group("/assets")
		{
			assets.GET("/:asset/result", h.GetResult)
			assets.GET("/:asset/report", h.GetReport)
			assets.GET("/:asset/patterns", h.GetPatterns)
		}

		charts := v1.Group("/charts")
		{
			charts.GET("/bathtub", h.GetBathtubChart)
			charts.GET("/weibull", h.GetWeibullChart)
		}

		session := v1.Group("/session")
		{
			session.GET("/role", h.GetRole)
			session.PUT("/role", h.PutRole)
		}
	}

	return router
}

// HealthCheck reports service and engine liveness.
func (h *Handlers) HealthCheck(c *gin.Context) {
	if err := h.reports.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Evaluate submits a signal window to the engine and returns the full result.
func (h *Handlers) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.AssetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset_id is required"})
		return
	}
	if len(req.Signal.Values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signal.values cannot be empty"})
		return
	}

	result, err := h.reports.Evaluate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrStaleEvaluation) {
			c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer evaluation"})
			return
		}
		h.logger.Error("evaluation failed", slog.String("asset_id", req.AssetID), slog.Any("error", err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "evaluation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetResult returns the latest raw engine result for an asset.
func (h *Handlers) GetResult(c *gin.Context) {
	assetID := c.Param("asset")
	result, ok := h.reports.LatestResult(assetID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no evaluation for asset " + assetID})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetReport returns the narrative report shaped for the caller's role.
func (h *Handlers) GetReport(c *gin.Context) {
	assetID := c.Param("asset")
	cfg := h.resolveRole(c)

	report, ok := h.reports.Report(assetID, cfg)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no evaluation for asset " + assetID})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id":   assetID,
		"role":       cfg.Role,
		"label_mode": cfg.LabelMode,
		"report":     report,
	})
}

// GetPatterns returns recurring fault patterns mined from the asset's history.
func (h *Handlers) GetPatterns(c *gin.Context) {
	assetID := c.Param("asset")
	limit := queryInt(c, "limit", 100)

	patterns, err := h.reports.Patterns(c.Request.Context(), assetID, limit)
	if err != nil {
		h.logger.Error("pattern mining failed", slog.String("asset_id", assetID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pattern mining failed"})
		return
	}
	if patterns == nil {
		patterns = []models.FaultPattern{}
	}
	c.JSON(http.StatusOK, gin.H{"asset_id": assetID, "patterns": patterns})
}

// GetBathtubChart returns the composite bathtub hazard series.
func (h *Handlers) GetBathtubChart(c *gin.Context) {
	points := queryInt(c, "points", 101)
	c.JSON(http.StatusOK, gin.H{"series": reliability.BathtubCurve(points)})
}

// GetWeibullChart returns a Weibull overlay series. Shape and scale come from
// explicit query parameters or from an asset's latest adjusted model.
func (h *Handlers) GetWeibullChart(c *gin.Context) {
	beta := queryFloat(c, "beta", 0)
	eta := queryFloat(c, "eta", 0)

	if assetID := c.Query("asset"); assetID != "" {
		result, ok := h.reports.LatestResult(assetID)
		if !ok || result.Reliability == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no reliability model for asset " + assetID})
			return
		}
		beta = result.Reliability.BetaAdj
		eta = result.Reliability.EtaAdjHours
	}

	if beta <= 0 || eta <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "beta and eta must be positive"})
		return
	}

	maxHours := queryFloat(c, "max_hours", 0)
	points := queryInt(c, "points", 128)
	c.JSON(http.StatusOK, gin.H{
		"beta":   beta,
		"eta":    eta,
		"series": reliability.WeibullCurve(beta, eta, maxHours, points),
	})
}

// GetRole returns the caller's stored role and its display configuration.
func (h *Handlers) GetRole(c *gin.Context) {
	userID := c.DefaultQuery("user", defaultUserID)
	role, err := h.roles.LoadRole(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("role lookup failed", slog.String("user_id", userID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "role lookup failed"})
		return
	}
	writeRoleConfig(c, userID, policy.ConfigFor(role))
}

type putRoleRequest struct {
	UserID string      `json:"user_id"`
	Role   policy.Role `json:"role"`
}

// PutRole stores a new role selection for the caller.
func (h *Handlers) PutRole(c *gin.Context) {
	var req putRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}
	if !policy.KnownRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role: " + string(req.Role)})
		return
	}
	if err := h.roles.SaveRole(c.Request.Context(), req.UserID, req.Role); err != nil {
		h.logger.Error("role save failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "role save failed"})
		return
	}
	writeRoleConfig(c, req.UserID, policy.ConfigFor(req.Role))
}

// resolveRole picks the role for the request: explicit query first, then the
// stored selection, then the default.
func (h *Handlers) resolveRole(c *gin.Context) policy.RoleConfig {
	if role := policy.Role(c.Query("role")); role != "" {
		return policy.ConfigFor(role)
	}
	userID := c.DefaultQuery("user", defaultUserID)
	role, err := h.roles.LoadRole(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warn("role lookup failed, using default", slog.String("user_id", userID), slog.Any("error", err))
		return policy.ConfigFor(policy.DefaultRole)
	}
	return policy.ConfigFor(role)
}

func writeRoleConfig(c *gin.Context, userID string, cfg policy.RoleConfig) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":          userID,
		"role":             cfg.Role,
		"label_mode":       cfg.LabelMode,
		"views":            cfg.Views,
		"features":         cfg.Features,
		"max_action_items": cfg.MaxActionItems,
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryFloat(c *gin.Context, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
