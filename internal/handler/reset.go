package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/apierror"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
)

type ResetHandler struct{ svc service.ResetService }

func NewResetHandler(svc service.ResetService) *ResetHandler { return &ResetHandler{svc: svc} }

// Preview godoc
// @Summary      Aperçu de la remise à zéro
// @Description  Compte ce que la RAZ supprimerait et ce qu'elle conserverait, sans rien modifier.
// @Tags         raz
// @Produce      json
// @Success      200  {object} dto.ResetPreview
// @Failure      500  {object} apierror.APIError
// @Router       /v1/raz/preview [get]
func (h *ResetHandler) Preview(c *gin.Context) {
	preview, err := h.svc.PreviewSessionReset(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du calcul de l'aperçu"))
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Execute godoc
// @Summary      Remise à zéro de fin de session
// @Description  Exécute la RAZ complète : ventes, panier, compteurs vendeuses, chèques à venir. Le stock physique et l'historique sont conservés. La réponse détaille chaque étape.
// @Tags         raz
// @Produce      json
// @Success      200  {object} dto.ResetResult
// @Router       /v1/raz [post]
func (h *ResetHandler) Execute(c *gin.Context) {
	result := h.svc.ExecuteSessionReset(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

// ClearPendingChecks godoc
// @Summary      Effacer uniquement les chèques à venir
// @Description  Remise à zéro partielle : seuls les chèques à venir sont effacés, tout le reste est conservé.
// @Tags         raz
// @Produce      json
// @Success      200  {object} dto.ResetResult
// @Router       /v1/raz/pending-checks [post]
func (h *ResetHandler) ClearPendingChecks(c *gin.Context) {
	result := h.svc.ClearPendingChecksOnly(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}
