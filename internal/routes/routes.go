package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partnerleads/internal/authz"
	"partnerleads/internal/handlers"
	"partnerleads/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	leadHandler *handlers.LeadHandler,
	referralHandler *handlers.ReferralHandler,
	dashboardHandler *handlers.DashboardHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	// USERS
	r.POST("/users", userHandler.Create)

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("", leadHandler.Create)
		leads.GET("", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.PUT("/:id", leadHandler.Update)
		leads.PUT("/:id/status", leadHandler.UpdateStatus)
		leads.POST("/:id/activities", leadHandler.LogActivity)
		leads.POST("/:id/payments", leadHandler.RecordPayment)
		leads.POST("/:id/referral-code", leadHandler.AttachReferralCode)
		leads.GET("/:id/export", leadHandler.Export)
	}

	// REFERRALS
	referrals := r.Group("/referrals", middleware.RequireRoles(authz.RoleStaff, authz.RoleAdmin))
	{
		referrals.POST("", referralHandler.Create)
		referrals.GET("", referralHandler.List)
	}

	// DASHBOARD
	r.GET("/dashboard/metrics", dashboardHandler.Metrics)

	return r
}
