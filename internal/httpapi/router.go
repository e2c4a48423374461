package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every endpoint from spec §6 onto engine, following
// services/orchestrator/routes.SetupRoutes's flat grouping style:
// health at the root, the question-generation and summary endpoints
// under their literal §6 paths, and metricsHandler (when non-nil) at
// /metrics.
func NewRouter(engine *gin.Engine, h *Handler, metricsHandler http.Handler) {
	engine.GET("/health", Health)

	if metricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(metricsHandler))
	}

	questions := engine.Group("/questions/generate")
	{
		questions.POST("/personal", h.GeneratePersonal)
		questions.POST("/family", h.GenerateFamily)
		questions.POST("/family-recent", h.GenerateFamilyRecent)
	}

	engine.GET("/summary", h.Summary)

	members := engine.Group("/members")
	{
		members.POST("/delete", h.DeleteMember)
	}

	analysis := engine.Group("/analysis")
	{
		analysis.POST("/answer", h.AnalyzeAnswer)
	}
}
