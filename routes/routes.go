package routes

import (
	"net/http"
	"time"

	"huddle/handlers"
	"huddle/middleware"
	"huddle/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterMemberRoutes registers account endpoints.
func RegisterMemberRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/members")
	{
		api.POST("/register", hb.RegisterMemberHandler)
	}
}

// RegisterTeamRoutes registers team membership and coordination
// endpoints. The sync callback stays outside the auth group: relay
// agents authenticate with a one-time token, not a bearer token.
func RegisterTeamRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/teams")
	{
		api.POST("/join", hb.PreviewTeamHandler)
		api.POST("/availability/sync", hb.SyncCalendarHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.MemberRepo))
		protected.POST("", hb.CreateTeamHandler)
		protected.POST("/join-with-auth", hb.JoinTeamHandler)
		protected.GET("/me", hb.MyTeamsHandler)
		protected.GET("/:teamID", hb.TeamDetailHandler)
		protected.GET("/:teamID/members", hb.ListMembersHandler)
		protected.PUT("/:teamID/members/me/relay-key", hb.UpdateRelayKeyHandler)
		protected.POST("/:teamID/availability/find", hb.FindAvailabilityHandler)
		protected.POST("/:teamID/book", hb.BookMeetingHandler)
	}
}

// RegisterBrainRoutes registers the team brain endpoints.
func RegisterBrainRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/brain")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.MemberRepo))
		api.POST("/dump", hb.DumpHandler)
		api.POST("/query", hb.QueryHandler)
		api.GET("/entries", hb.EntriesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint. When the
// dependency monitor is running its latest snapshot is included; in
// memory mode there are no external dependencies to probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		resp := gin.H{"status": "ok", "message": "Hi, I'm Huddle"}
		if hs, known := utils.GetHealthStatus(); known {
			resp["dependencies"] = hs
			if !hs.Healthy() {
				resp["status"] = "degraded"
				c.JSON(http.StatusServiceUnavailable, resp)
				return
			}
		}
		c.JSON(http.StatusOK, resp)
	})
}

// RegisterRoutes centralizes registration of all endpoints and
// global middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterMemberRoutes(r, hb)
	RegisterTeamRoutes(r, hb)
	RegisterBrainRoutes(r, hb)
	RegisterHealthRoute(r)
}
