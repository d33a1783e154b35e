package route

import (
	"net/http"

	"pos/controller"
	"pos/utils"

	"github.com/gin-gonic/gin"
)

const (
	RoleManager  = "manager"
	RoleCashier  = "cashier"
	RoleCustomer = "customer"
	RoleKitchen  = "kitchen"
)

type Controllers struct {
	Catalog   *controller.CatalogController
	Inventory *controller.InventoryController
	Order     *controller.OrderController
	Report    *controller.ReportController
	Kitchen   *controller.KitchenController
}

// RegisterRoutes mounts the API under /api. An empty jwtSecret disables role checks.
func RegisterRoutes(router *gin.Engine, ctl Controllers, jwtSecret string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/menu", ctl.Catalog.GetMenu)

	catalog := api.Group("")
	{
		catalog.GET("/sizes", ctl.Catalog.ListSizes)
		catalog.GET("/foods", ctl.Catalog.ListFoods)
		catalog.GET("/appetizers-drinks", ctl.Catalog.ListAppetizersDrinks)
	}

	manager := api.Group("")
	manager.Use(utils.RoleMiddleware(jwtSecret, RoleManager))
	{
		manager.POST("/sizes", ctl.Catalog.AddSize)
		manager.PUT("/sizes/:id", ctl.Catalog.UpdateSize)
		manager.DELETE("/sizes/:id", ctl.Catalog.DeleteSize)
		manager.POST("/sizes/link", ctl.Inventory.LinkSize)
		manager.POST("/foods", ctl.Catalog.AddFood)
		manager.PUT("/foods/:id", ctl.Catalog.UpdateFood)
		manager.DELETE("/foods/:id", ctl.Catalog.DeleteFood)
		manager.POST("/appetizers-drinks", ctl.Catalog.AddAppetizerDrink)
		manager.PUT("/appetizers-drinks/:id", ctl.Catalog.UpdateAppetizerDrink)
		manager.DELETE("/appetizers-drinks/:id", ctl.Catalog.DeleteAppetizerDrink)

		manager.GET("/inventory", ctl.Inventory.List)
		manager.POST("/inventory", ctl.Inventory.Add)
		manager.PUT("/inventory/:id", ctl.Inventory.Update)
		manager.POST("/inventory/:id/restock", ctl.Inventory.Restock)
		manager.DELETE("/inventory/:id", ctl.Inventory.Delete)
		manager.POST("/inventory/link", ctl.Inventory.Link)
		manager.POST("/inventory/link/bulk", ctl.Inventory.BulkLink)
		manager.POST("/inventory/link/excel", ctl.Inventory.BulkLinkExcel)
		manager.GET("/inventory/links", ctl.Inventory.Links)

		manager.GET("/reports/x", ctl.Report.X)
		manager.GET("/reports/z/status", ctl.Report.ZStatus)
		manager.POST("/reports/z/run", ctl.Report.RunZ)
		manager.DELETE("/reports/z", ctl.Report.ClearZ)
		manager.GET("/reports/sales", ctl.Report.Sales)
		manager.GET("/reports/sales/export", ctl.Report.ExportSales)
		manager.GET("/reports/product-usage", ctl.Report.ProductUsage)
		manager.GET("/reports/daily", ctl.Report.Daily)
	}

	orders := api.Group("/orders")
	orders.Use(utils.RoleMiddleware(jwtSecret, RoleCashier, RoleCustomer, RoleManager))
	{
		orders.POST("", ctl.Order.Submit)
		orders.POST("/quote", ctl.Order.Quote)
		orders.GET("/:id", ctl.Order.Get)
	}

	kitchen := api.Group("/kitchen")
	kitchen.Use(utils.RoleMiddleware(jwtSecret, RoleKitchen, RoleManager))
	{
		kitchen.POST("/init", ctl.Kitchen.Init)
		kitchen.GET("/orders", ctl.Kitchen.List)
		kitchen.POST("/orders/:id/complete", ctl.Kitchen.Complete)
		kitchen.POST("/orders/:id/incomplete", ctl.Kitchen.Incomplete)
		kitchen.POST("/orders/:id/remake", ctl.Kitchen.Remake)
	}
}
