package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/apierror"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Register godoc
// @Summary      Enregistrer une vente
// @Description  Enregistre un ticket : cumule le CA de la vendeuse, décrémente le stock et alimente les statistiques. Idempotent par identifiant client.
// @Tags         ventes
// @Accept       json
// @Produce      json
// @Param        body body dto.RegisterSaleRequest true "Détail de la vente"
// @Success      201  {object} model.Sale
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) Register(c *gin.Context) {
	var req dto.RegisterSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// Cancel godoc
// @Summary      Annuler une vente
// @Description  Annule un ticket et recrédite le stock par des mouvements inverses.
// @Tags         ventes
// @Produce      json
// @Param        id path string true "Identifiant de la vente"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales/{id} [delete]
func (h *SalesHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Identifiant manquant"))
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// List godoc
// @Summary      Lister les ventes de la session
// @Tags         ventes
// @Produce      json
// @Success      200  {array} model.Sale
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	sales, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la lecture des ventes"))
		return
	}
	c.JSON(http.StatusOK, sales)
}

// Restock godoc
// @Summary      Réapprovisionner une référence
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body body dto.RestockRequest true "Référence et quantité"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/stock/restock [post]
func (h *SalesHandler) Restock(c *gin.Context) {
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Restock(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Corriger un niveau de stock
// @Description  Applique une correction signée après comptage physique.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body body dto.AdjustStockRequest true "Référence, delta et motif"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/stock/adjust [post]
func (h *SalesHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AdjustStock(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
