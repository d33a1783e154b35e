package controller

import (
	"pos/model"
	"pos/service"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	svc *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{svc: svc}
}

type sizeRequest struct {
	Name            string `json:"name"`
	Price           any    `json:"price"`
	NumberOfEntrees int    `json:"number_of_entrees"`
	NumberOfSides   int    `json:"number_of_sides"`
	Enabled         *bool  `json:"enabled"`
}

func (r sizeRequest) input() service.SizeInput {
	return service.SizeInput{
		Name:            r.Name,
		Price:           service.ParsePrice(r.Price),
		NumberOfEntrees: r.NumberOfEntrees,
		NumberOfSides:   r.NumberOfSides,
		Enabled:         r.Enabled,
	}
}

type foodRequest struct {
	Name    string `json:"name"`
	Premium bool   `json:"premium"`
	IsSide  bool   `json:"is_side"`
	Enabled *bool  `json:"enabled"`
}

func (r foodRequest) input() service.FoodInput {
	return service.FoodInput{Name: r.Name, Premium: r.Premium, IsSide: r.IsSide, Enabled: r.Enabled}
}

type appetizerDrinkRequest struct {
	Name    string         `json:"name"`
	Price   any            `json:"price"`
	Kind    model.ItemKind `json:"kind"`
	Enabled *bool          `json:"enabled"`
}

func (r appetizerDrinkRequest) input() service.AppetizerDrinkInput {
	return service.AppetizerDrinkInput{Name: r.Name, Price: service.ParsePrice(r.Price), Kind: r.Kind, Enabled: r.Enabled}
}

// GetMenu serves the customer-facing, enabled-only catalog.
func (ctl *CatalogController) GetMenu(c *gin.Context) {
	menu, err := ctl.svc.Menu(c.Request.Context())
	if err != nil {
		respondError(c, "GetMenu", err)
		return
	}
	respondOK(c, "Menu retrieved successfully", menu)
}

func (ctl *CatalogController) ListSizes(c *gin.Context) {
	sizes, err := ctl.svc.ListSizes(c.Request.Context(), enabledOnly(c))
	if err != nil {
		respondError(c, "ListSizes", err)
		return
	}
	respondOK(c, "Sizes retrieved successfully", sizes)
}

func (ctl *CatalogController) AddSize(c *gin.Context) {
	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid size payload")
		return
	}
	size, err := ctl.svc.CreateSize(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, "AddSize", err)
		return
	}
	respondCreated(c, "Size added successfully", size)
}

func (ctl *CatalogController) UpdateSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid size payload")
		return
	}
	size, err := ctl.svc.UpdateSize(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, "UpdateSize", err)
		return
	}
	respondOK(c, "Size updated successfully", size)
}

func (ctl *CatalogController) DeleteSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.svc.DeleteSize(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteSize", err)
		return
	}
	respondOK(c, "Size deleted successfully", gin.H{"size_id": id})
}

func (ctl *CatalogController) ListFoods(c *gin.Context) {
	foods, err := ctl.svc.ListFoods(c.Request.Context(), enabledOnly(c))
	if err != nil {
		respondError(c, "ListFoods", err)
		return
	}
	respondOK(c, "Foods retrieved successfully", foods)
}

// AddFood is get-or-create: posting a name that already exists returns the existing row.
func (ctl *CatalogController) AddFood(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid food payload")
		return
	}
	food, existed, err := ctl.svc.GetOrCreateFood(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, "AddFood", err)
		return
	}
	if existed {
		respondOK(c, "Food already exists", gin.H{"food": food, "existed": true})
		return
	}
	respondCreated(c, "Food added successfully", gin.H{"food": food, "existed": false})
}

func (ctl *CatalogController) UpdateFood(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid food payload")
		return
	}
	food, err := ctl.svc.UpdateFood(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, "UpdateFood", err)
		return
	}
	respondOK(c, "Food updated successfully", food)
}

func (ctl *CatalogController) DeleteFood(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.svc.DeleteFood(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteFood", err)
		return
	}
	respondOK(c, "Food deleted successfully", gin.H{"food_id": id})
}

func (ctl *CatalogController) ListAppetizersDrinks(c *gin.Context) {
	items, err := ctl.svc.ListAppetizersDrinks(c.Request.Context(), enabledOnly(c))
	if err != nil {
		respondError(c, "ListAppetizersDrinks", err)
		return
	}
	respondOK(c, "Appetizers and drinks retrieved successfully", items)
}

func (ctl *CatalogController) AddAppetizerDrink(c *gin.Context) {
	var req appetizerDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid appetizer or drink payload")
		return
	}
	item, err := ctl.svc.CreateAppetizerDrink(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, "AddAppetizerDrink", err)
		return
	}
	respondCreated(c, "Item added successfully", item)
}

func (ctl *CatalogController) UpdateAppetizerDrink(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appetizerDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid appetizer or drink payload")
		return
	}
	item, err := ctl.svc.UpdateAppetizerDrink(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, "UpdateAppetizerDrink", err)
		return
	}
	respondOK(c, "Item updated successfully", item)
}

func (ctl *CatalogController) DeleteAppetizerDrink(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.svc.DeleteAppetizerDrink(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteAppetizerDrink", err)
		return
	}
	respondOK(c, "Item deleted successfully", gin.H{"item_id": id})
}
