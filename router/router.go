package router

import (
	"github.com/labstack/echo/v4"
)

type crudCtrl interface {
	List(echo.Context) error
	Get(echo.Context) error
	Create(echo.Context) error
	Update(echo.Context) error
	Delete(echo.Context) error
}

func New(
	e *echo.Echo,
	ghCtrl crudCtrl,
	cycleCtrl crudCtrl,
	manualCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
		Create(echo.Context) error
		Patch(echo.Context) error
		Delete(echo.Context) error
	},
	recordCtrl interface {
		crudCtrl
		Export(echo.Context) error
	},
	schedCtrl interface {
		List(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Replace(echo.Context) error
	},
	pestCtrl interface {
		Overview(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Replace(echo.Context) error
	},
	suggestCtrl interface {
		Dashboard(echo.Context) error
		Today(echo.Context) error
		RiskAlerts(echo.Context) error
	},
	aiCtrl interface{ Advice(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api")

	api.GET("/dashboard", suggestCtrl.Dashboard)
	api.GET("/suggestions/today", suggestCtrl.Today)
	api.GET("/suggestions/risks", suggestCtrl.RiskAlerts)

	api.GET("/greenhouses", ghCtrl.List)
	api.POST("/greenhouses", ghCtrl.Create)
	api.GET("/greenhouses/:id", ghCtrl.Get)
	api.PUT("/greenhouses/:id", ghCtrl.Update)
	api.DELETE("/greenhouses/:id", ghCtrl.Delete)
	api.GET("/greenhouses/:id/schedules", schedCtrl.List)
	api.PUT("/greenhouses/:id/schedules", schedCtrl.Replace)

	api.GET("/cycles", cycleCtrl.List)
	api.POST("/cycles", cycleCtrl.Create)
	api.GET("/cycles/:id", cycleCtrl.Get)
	api.PUT("/cycles/:id", cycleCtrl.Update)
	api.DELETE("/cycles/:id", cycleCtrl.Delete)

	api.GET("/manuals", manualCtrl.List)
	api.POST("/manuals", manualCtrl.Create)
	api.GET("/manuals/:id", manualCtrl.Get)
	api.PATCH("/manuals/:id", manualCtrl.Patch)
	api.DELETE("/manuals/:id", manualCtrl.Delete)

	api.GET("/records", recordCtrl.List)
	api.POST("/records", recordCtrl.Create)
	api.GET("/records/export", recordCtrl.Export)
	api.GET("/records/:id", recordCtrl.Get)
	api.PUT("/records/:id", recordCtrl.Update)
	api.DELETE("/records/:id", recordCtrl.Delete)

	api.GET("/schedules", schedCtrl.List)
	api.POST("/schedules", schedCtrl.Create)
	api.PUT("/schedules/:id", schedCtrl.Update)
	api.DELETE("/schedules/:id", schedCtrl.Delete)

	api.GET("/pesticides", pestCtrl.Overview)
	api.PUT("/pesticides", pestCtrl.Replace)
	api.POST("/pesticides", pestCtrl.Create)
	api.PUT("/pesticides/:id", pestCtrl.Update)
	api.DELETE("/pesticides/:id", pestCtrl.Delete)

	api.POST("/ai/advice", aiCtrl.Advice)
	return e
}
