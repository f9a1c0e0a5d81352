package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/apierror"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
)

type ArchivesHandler struct{ svc service.ArchiveService }

func NewArchivesHandler(svc service.ArchiveService) *ArchivesHandler {
	return &ArchivesHandler{svc: svc}
}

// List godoc
// @Summary      Lister les archives de commissions
// @Tags         commissions
// @Produce      json
// @Success      200  {array} model.CommissionArchive
// @Router       /v1/commission-archives [get]
func (h *ArchivesHandler) List(c *gin.Context) {
	entries, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la lecture des archives"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Get godoc
// @Summary      Consulter une archive de commissions
// @Tags         commissions
// @Produce      json
// @Param        id path string true "Identifiant de l'archive"
// @Success      200  {object} model.CommissionArchive
// @Failure      404  {object} apierror.APIError
// @Router       /v1/commission-archives/{id} [get]
func (h *ArchivesHandler) Get(c *gin.Context) {
	entry, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Archive introuvable"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary      Supprimer une archive de commissions
// @Tags         commissions
// @Param        id path string true "Identifiant de l'archive"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/commission-archives/{id} [delete]
func (h *ArchivesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Archive introuvable"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear godoc
// @Summary      Vider toutes les archives de commissions
// @Tags         commissions
// @Success      204
// @Router       /v1/commission-archives [delete]
func (h *ArchivesHandler) Clear(c *gin.Context) {
	if err := h.svc.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la suppression des archives"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportCSV godoc
// @Summary      Exporter une archive en CSV
// @Description  Produit le fichier CSV (séparateur virgule, champs entre guillemets, BOM UTF-8) prêt pour Excel.
// @Tags         commissions
// @Produce      text/csv
// @Param        id path string true "Identifiant de l'archive"
// @Success      200 {string} string
// @Failure      404 {object} apierror.APIError
// @Router       /v1/commission-archives/{id}/csv [get]
func (h *ArchivesHandler) ExportCSV(c *gin.Context) {
	entry, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Archive introuvable"))
		return
	}
	csv, err := h.svc.ExportCSV(entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la génération du CSV"))
		return
	}
	filename := fmt.Sprintf("commissions_%s.csv", entry.ID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
