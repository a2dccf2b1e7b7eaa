// Package v1 implements the v1 API.
package v1

import (
	"time"

	"github.com/centsible/backend/internal/config"
	"github.com/centsible/backend/internal/middleware"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/services"
	"github.com/gin-gonic/gin"
)

// spendCacheTTL bounds how long a computed spend snapshot may be served
// without recomputation. Mutations invalidate eagerly, the TTL only
// catches writes that bypass the API.
const spendCacheTTL = 15 * time.Minute

var (
	auth         *middleware.Auth
	budgets      services.BudgetServicer
	users        services.UserServicer
	households   services.HouseholdServicer
	categories   services.CategoryServicer
	transactions services.TransactionServicer
)

// AuthMiddleware returns the middleware that protects the
// authenticated routes. It uses the same token configuration that the
// session handlers sign with.
func AuthMiddleware() func(c *gin.Context) {
	return auth.RequireAuth()
}

// Wire initializes the services behind the handlers. It must be called
// after models.Connect and before any route is served.
func Wire(cfg config.Config) {
	auth = middleware.NewAuth(cfg)

	spendCache := services.NewSpendCache(spendCacheTTL)
	budgets = services.NewBudgetService(models.DB, spendCache, spendCache)
	users = services.NewUserService(models.DB)
	households = services.NewHouseholdService(models.DB)
	categories = services.NewCategoryService(models.DB)
	transactions = services.NewTransactionService(models.DB, spendCache)
}
