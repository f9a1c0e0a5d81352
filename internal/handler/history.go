package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/apierror"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/worker"
)

type HistoryHandler struct {
	svc        service.HistoryService
	dispatcher *worker.Dispatcher
	reportTo   string
}

func NewHistoryHandler(svc service.HistoryService, dispatcher *worker.Dispatcher, reportTo string) *HistoryHandler {
	return &HistoryHandler{svc: svc, dispatcher: dispatcher, reportTo: reportTo}
}

// Save godoc
// @Summary      Archiver une RAZ dans l'historique
// @Description  Fige les résultats de la session (ventes, factures, stats vendeuses) avant la remise à zéro, puis déclenche l'envoi du rapport par email. L'archivage n'échoue jamais côté client : en cas de problème la réponse est vide.
// @Tags         historique
// @Accept       json
// @Produce      json
// @Param        body body dto.RAZSnapshotRequest true "Résultats de la session"
// @Success      201  {object} model.RAZHistoryEntry
// @Success      204
// @Router       /v1/raz/history [post]
func (h *HistoryHandler) Save(c *gin.Context) {
	var req dto.RAZSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalide : "+err.Error()))
		return
	}
	entry := h.svc.SaveRAZToHistory(c.Request.Context(), req)
	if entry == nil {
		// Snapshot failed but the RAZ must go on — the client treats 204 as
		// "nothing archived" and proceeds.
		c.Status(http.StatusNoContent)
		return
	}
	if h.dispatcher != nil {
		job := worker.RAZReportJob{HistoryID: entry.ID, To: h.reportTo}
		if err := h.dispatcher.EnqueueRAZReport(c.Request.Context(), job); err != nil {
			log.Warn().Err(err).Str("history_id", entry.ID).Msg("report enqueue failed")
		}
	}
	c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary      Lister l'historique des RAZ
// @Tags         historique
// @Produce      json
// @Success      200  {array} model.RAZHistoryEntry
// @Router       /v1/raz/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	entries, err := h.svc.GetHistory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la lecture de l'historique"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Get godoc
// @Summary      Consulter une RAZ archivée
// @Tags         historique
// @Produce      json
// @Param        id path string true "Identifiant de l'archive"
// @Success      200  {object} model.RAZHistoryEntry
// @Failure      404  {object} apierror.APIError
// @Router       /v1/raz/history/{id} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	entry, err := h.svc.GetRAZByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Archive introuvable"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary      Supprimer une RAZ archivée
// @Tags         historique
// @Param        id path string true "Identifiant de l'archive"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/raz/history/{id} [delete]
func (h *HistoryHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteRAZ(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Archive introuvable"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Export godoc
// @Summary      Exporter l'historique complet en JSON
// @Description  Retourne l'historique sérialisé pour sauvegarde externe. Retourne un tableau vide en cas d'erreur, jamais de 500.
// @Tags         historique
// @Produce      json
// @Success      200 {array} model.RAZHistoryEntry
// @Router       /v1/raz/history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	payload := h.svc.ExportHistoryAsJSON(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="raz_history.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
}

// Cleanup godoc
// @Summary      Purger les anciennes RAZ
// @Description  Ne conserve que les N archives les plus récentes (paramètre keep, défaut 50).
// @Tags         historique
// @Produce      json
// @Param        keep query int false "Nombre d'archives à conserver"
// @Success      200  {object} map[string]int64
// @Router       /v1/raz/history/cleanup [post]
func (h *HistoryHandler) Cleanup(c *gin.Context) {
	keep, err := strconv.Atoi(c.DefaultQuery("keep", "50"))
	if err != nil || keep < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Paramètre keep invalide"))
		return
	}
	deleted, err := h.svc.CleanOldHistory(c.Request.Context(), keep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la purge de l'historique"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
