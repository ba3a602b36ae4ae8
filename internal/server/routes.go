package server

import (
	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	expenseHandler *handlers.ExpenseHandler,
	incomeHandler *handlers.IncomeHandler,
	overviewHandler *handlers.OverviewHandler,
	healthHandler *handlers.HealthHandler,
	apiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/", handlers.Root)
	e.GET("/health", healthHandler.Health)

	api := e.Group("/api", apiRateLimiter)

	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("/summary", expenseHandler.Summary)
	expenses.GET("/export", expenseHandler.Export)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	income := api.Group("/income")
	income.GET("", incomeHandler.List)
	income.POST("", incomeHandler.Create)
	income.GET("/summary", incomeHandler.Summary)
	income.GET("/export", incomeHandler.Export)
	income.PUT("/:id", incomeHandler.Update)
	income.DELETE("/:id", incomeHandler.Delete)

	api.GET("/overview", overviewHandler.Overview)
}
