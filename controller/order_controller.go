package controller

import (
	"pos/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	svc *service.OrderService
}

func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

func (ctl *OrderController) Submit(c *gin.Context) {
	var req service.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid order payload")
		return
	}
	res, err := ctl.svc.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, "SubmitOrder", err)
		return
	}
	respondCreated(c, "Order submitted successfully", res)
}

func (ctl *OrderController) Quote(c *gin.Context) {
	var req service.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid order payload")
		return
	}
	q, err := ctl.svc.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, "QuoteOrder", err)
		return
	}
	respondOK(c, "Order priced successfully", q)
}

func (ctl *OrderController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := ctl.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetOrder", err)
		return
	}
	respondOK(c, "Order retrieved successfully", t)
}
