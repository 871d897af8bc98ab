package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"arthavidhi-backend/internal/auth"
	handler "arthavidhi-backend/internal/handlers"
	"arthavidhi-backend/internal/middleware"
	"arthavidhi-backend/internal/repository"
	accountsvc "arthavidhi-backend/internal/services/account"
	billsvc "arthavidhi-backend/internal/services/bills"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.JWTManager, logg *logrus.Logger) {
	billRepo := repository.NewBillRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)

	billService := billsvc.NewService(billRepo, companyRepo, logg)
	accountService := accountsvc.NewService(userRepo, companyRepo, tokens, logg)

	billHandler := handler.NewBillHandler(billService)
	accountHandler := handler.NewAccountHandler(accountService)

	r.Use(middleware.RequestLogger(logg))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.POST("/register", accountHandler.Register)
	authGroup.POST("/login", accountHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(tokens))

	bills := protected.Group("/bills")
	bills.POST("", billHandler.Create)
	bills.GET("", billHandler.List)
	bills.GET("/:billId", billHandler.Get)
	bills.PUT("/:billId", billHandler.Update)
	bills.PUT("/:billId/status", billHandler.UpdateStatus)
	bills.DELETE("/:billId", billHandler.Delete)

	protected.GET("/dashboard", billHandler.Dashboard)

	company := protected.Group("/company")
	company.GET("", accountHandler.GetCompany)
	company.PUT("", accountHandler.UpsertCompany)

	accountGroup := protected.Group("/account")
	accountGroup.GET("", accountHandler.GetAccount)
	accountGroup.PUT("/profile", accountHandler.UpdateProfile)
	accountGroup.PUT("/password", accountHandler.UpdatePassword)
}
