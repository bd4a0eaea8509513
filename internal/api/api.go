package api

import (
	"net/http"

	"statsync-server/internal/auth"
	"statsync-server/internal/observability"
	reportingHandler "statsync-server/internal/reporting/handler"
	statsyncHandler "statsync-server/internal/statsync/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	syncHandler      statsyncHandler.Handler
	reportingHandler reportingHandler.Handler
	sharedSecret     string
	logger           *observability.Logger
}

func New(router *gin.RouterGroup, syncHandler statsyncHandler.Handler, reportingHandler reportingHandler.Handler, sharedSecret string, logger *observability.Logger) API {
	return API{
		router:           router,
		syncHandler:      syncHandler,
		reportingHandler: reportingHandler,
		sharedSecret:     sharedSecret,
		logger:           logger,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api", auth.RequireSharedSecret(a.sharedSecret, a.logger))
	{
		syncGroup := apiGroup.Group("/sync")
		syncGroup.POST("/accounts", a.syncHandler.HandleSyncAccounts)
		syncGroup.POST("/accounts/:account_id", a.syncHandler.HandleSyncAccount)
		syncGroup.GET("/accounts/:account_id/status", a.syncHandler.HandleGetSyncStatus)

		statsGroup := apiGroup.Group("/stats")
		statsGroup.GET("/campaigns", a.reportingHandler.HandleSearchCampaignStats)
		statsGroup.GET("/flows", a.reportingHandler.HandleSearchFlowStats)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
