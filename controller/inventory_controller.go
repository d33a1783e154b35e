package controller

import (
	"pos/service"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	svc *service.InventoryService
}

func NewInventoryController(svc *service.InventoryService) *InventoryController {
	return &InventoryController{svc: svc}
}

func (ctl *InventoryController) List(c *gin.Context) {
	items, err := ctl.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, "ListInventory", err)
		return
	}
	respondOK(c, "Inventory retrieved successfully", items)
}

// Add is get-or-create by name; quantity only applies when the item is new.
func (ctl *InventoryController) Add(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Quantity *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid inventory payload")
		return
	}
	item, existed, err := ctl.svc.GetOrCreate(c.Request.Context(), req.Name, req.Quantity)
	if err != nil {
		respondError(c, "AddInventory", err)
		return
	}
	if existed {
		respondOK(c, "Inventory item already exists", gin.H{"item": item, "existed": true})
		return
	}
	respondCreated(c, "Inventory item added successfully", gin.H{"item": item, "existed": false})
}

func (ctl *InventoryController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondBadRequest(c, "quantity is required")
		return
	}
	item, err := ctl.svc.SetQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		respondError(c, "UpdateInventory", err)
		return
	}
	respondOK(c, "Inventory updated successfully", item)
}

func (ctl *InventoryController) Restock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Amount *int `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		respondBadRequest(c, "amount is required")
		return
	}
	item, err := ctl.svc.Restock(c.Request.Context(), id, *req.Amount)
	if err != nil {
		respondError(c, "RestockInventory", err)
		return
	}
	respondOK(c, "Inventory restocked successfully", item)
}

func (ctl *InventoryController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteInventory", err)
		return
	}
	respondOK(c, "Inventory item deleted successfully", gin.H{"inventory_id": id})
}

func (ctl *InventoryController) Link(c *gin.Context) {
	var req service.LinkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid link payload")
		return
	}
	res, err := ctl.svc.Link(c.Request.Context(), req.Food, req.Inventory, req.ServingSize)
	if err != nil {
		respondError(c, "LinkInventory", err)
		return
	}
	if res.Status == service.LinkExists {
		respondOK(c, "Link already exists", res)
		return
	}
	respondCreated(c, "Food linked to inventory", res)
}

func (ctl *InventoryController) BulkLink(c *gin.Context) {
	var req struct {
		Links []service.LinkInput `json:"links"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid bulk link payload")
		return
	}
	results, err := ctl.svc.BulkLink(c.Request.Context(), req.Links)
	if err != nil {
		respondError(c, "BulkLinkInventory", err)
		return
	}
	respondOK(c, "Bulk link processed", summarize(results))
}

// BulkLinkExcel accepts a multipart "file" workbook with food, inventory and serving
// size columns.
func (ctl *InventoryController) BulkLinkExcel(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "No file uploaded")
		return
	}
	f, err := file.Open()
	if err != nil {
		respondBadRequest(c, "Failed to open uploaded file")
		return
	}
	defer f.Close()

	links, err := service.ParseLinkSheet(f)
	if err != nil {
		respondError(c, "BulkLinkExcel", err)
		return
	}
	results, err := ctl.svc.BulkLink(c.Request.Context(), links)
	if err != nil {
		respondError(c, "BulkLinkExcel", err)
		return
	}
	respondOK(c, "Excel import processed", summarize(results))
}

func summarize(results []service.LinkResult) gin.H {
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	return gin.H{
		"linked":  counts[service.LinkCreated],
		"exists":  counts[service.LinkExists],
		"skipped": counts[service.LinkSkippedNotFound] + counts[service.LinkInvalid],
		"results": results,
	}
}

func (ctl *InventoryController) Links(c *gin.Context) {
	links, err := ctl.svc.Links(c.Request.Context(), c.Query("food"))
	if err != nil {
		respondError(c, "ListInventoryLinks", err)
		return
	}
	respondOK(c, "Links retrieved successfully", links)
}

func (ctl *InventoryController) LinkSize(c *gin.Context) {
	var req struct {
		Size string `json:"size"`
		Food string `json:"food"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid size link payload")
		return
	}
	res, err := ctl.svc.LinkSizeToFood(c.Request.Context(), req.Size, req.Food)
	if err != nil {
		respondError(c, "LinkSizeToFood", err)
		return
	}
	if res.Status == service.LinkExists {
		respondOK(c, "Link already exists", res)
		return
	}
	respondCreated(c, "Size linked to food", res)
}
