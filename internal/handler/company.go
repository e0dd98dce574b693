package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/middleware"
	"github.com/gutoberny/BernyFlow/internal/service"
)

type CompanyHandler struct{ svc service.CompanyService }

func NewCompanyHandler(svc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.svc.Get(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	company, err := h.svc.Update(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
