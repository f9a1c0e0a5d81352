package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/apierror"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
)

type SessionsHandler struct{ svc service.SessionService }

func NewSessionsHandler(svc service.SessionService) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

// Open godoc
// @Summary      Ouvrir une session de vente
// @Description  Ouvre la session (foire ou événement) et génère les tableaux de commissions vierges pour les vendeuses actives.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body body dto.OpenSessionRequest true "Nom et dates de l'événement"
// @Success      201  {object} dto.SessionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sessions [post]
func (h *SessionsHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary      Fermer la session courante
// @Tags         sessions
// @Produce      json
// @Success      200  {object} dto.SessionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/sessions/current [delete]
func (h *SessionsHandler) Close(c *gin.Context) {
	resp, err := h.svc.Close(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoOpenSession) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la fermeture de la session"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Current godoc
// @Summary      Session courante
// @Produce      json
// @Tags         sessions
// @Success      200  {object} dto.SessionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/sessions/current [get]
func (h *SessionsHandler) Current(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoOpenSession) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la lecture de la session"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
