package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/apierror"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/store"
)

// SettingsHandler exposes the dual-tier key-value layer over HTTP so the
// iPad front-end reads and writes its persisted state through one contract.
type SettingsHandler struct{ st *store.Store }

func NewSettingsHandler(st *store.Store) *SettingsHandler { return &SettingsHandler{st: st} }

// Get godoc
// @Summary      Lire une clé persistée
// @Description  Résout la clé sur les deux niveaux de stockage (cache rapide puis table settings) et retourne la valeur gagnante.
// @Tags         settings
// @Produce      json
// @Param        key path string true "Clé logique"
// @Success      200  {object} dto.SettingResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/settings/{key} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	value, ok := h.st.Get(c.Request.Context(), key)
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Clé introuvable"))
		return
	}
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// Put godoc
// @Summary      Écrire une clé persistée
// @Description  Écrit la valeur avec un horodatage frais sur les deux niveaux. L'écriture réussit toujours côté client, même si un niveau est indisponible.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        key  path string                 true "Clé logique"
// @Param        body body dto.PutSettingRequest true "Valeur JSON"
// @Success      200  {object} dto.SettingResponse
// @Router       /v1/settings/{key} [put]
func (h *SettingsHandler) Put(c *gin.Context) {
	key := c.Param("key")
	var req dto.PutSettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.st.Put(c.Request.Context(), key, req.Value)
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: req.Value})
}

// Delete godoc
// @Summary      Supprimer une clé persistée
// @Tags         settings
// @Param        key path string true "Clé logique"
// @Success      204
// @Router       /v1/settings/{key} [delete]
func (h *SettingsHandler) Delete(c *gin.Context) {
	h.st.Delete(c.Request.Context(), c.Param("key"))
	c.Status(http.StatusNoContent)
}

// Reconcile godoc
// @Summary      Resynchroniser une clé
// @Description  Force l'arbitrage entre les deux niveaux pour la clé : la valeur la plus récente gagne et est recopiée sur le niveau en retard.
// @Tags         settings
// @Produce      json
// @Param        key path string true "Clé logique"
// @Success      200  {object} dto.SettingResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/settings/{key}/reconcile [post]
func (h *SettingsHandler) Reconcile(c *gin.Context) {
	key := c.Param("key")
	h.st.Forget(key)
	env, ok := h.st.Reconcile(c.Request.Context(), key)
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Clé introuvable"))
		return
	}
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: env.Data})
}
