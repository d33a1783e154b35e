package controller

import (
	"pos/service"

	"github.com/gin-gonic/gin"
)

type KitchenController struct {
	svc *service.KitchenService
}

func NewKitchenController(svc *service.KitchenService) *KitchenController {
	return &KitchenController{svc: svc}
}

func (ctl *KitchenController) Init(c *gin.Context) {
	n, err := ctl.svc.EnsureInitialized(c.Request.Context())
	if err != nil {
		respondError(c, "InitKitchen", err)
		return
	}
	respondOK(c, "Kitchen statuses initialized", gin.H{"initialized": n})
}

func (ctl *KitchenController) List(c *gin.Context) {
	board, err := ctl.svc.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, "ListKitchenOrders", err)
		return
	}
	respondOK(c, "Kitchen orders retrieved successfully", board)
}

func (ctl *KitchenController) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	st, err := ctl.svc.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "CompleteOrder", err)
		return
	}
	respondOK(c, "Order marked completed", st)
}

func (ctl *KitchenController) Incomplete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	st, err := ctl.svc.MarkIncomplete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "MarkOrderIncomplete", err)
		return
	}
	respondOK(c, "Order marked in progress", st)
}

func (ctl *KitchenController) Remake(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := ctl.svc.Remake(c.Request.Context(), id)
	if err != nil {
		respondError(c, "RemakeOrder", err)
		return
	}
	respondCreated(c, "Order remade", gin.H{"orderId": order.ID, "original_id": id})
}
