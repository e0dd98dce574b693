package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutoberny/BernyFlow/internal/apierror"
	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/middleware"
	"github.com/gutoberny/BernyFlow/internal/service"
)

type FinancialHandler struct{ svc service.FinancialService }

func NewFinancialHandler(svc service.FinancialService) *FinancialHandler {
	return &FinancialHandler{svc: svc}
}

// Create inserts one manual entry, or N monthly entries when installments
// are requested. Always returns the created records as a list.
func (h *FinancialHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ts, err := h.svc.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ts)
}

func (h *FinancialHandler) List(c *gin.Context) {
	var filter dto.TransactionListQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	ts, err := h.svc.List(c.Request.Context(), middleware.CompanyID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (h *FinancialHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *FinancialHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.svc.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *FinancialHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FinancialHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
