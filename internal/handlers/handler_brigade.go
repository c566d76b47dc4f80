package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type brigadeHandler struct {
	brigadeService portssvc.BrigadeSvcFacade
}

func registerBrigadeRoutes(rg *gin.RouterGroup, brigadeService portssvc.BrigadeSvcFacade) {
	h := &brigadeHandler{brigadeService: brigadeService}

	brigades := rg.Group("/brigades")
	{
		brigades.POST("", h.createBrigade)
		brigades.GET("", h.listBrigades)
		brigades.GET("/mine", h.getMyBrigade)
		brigades.GET("/:id", h.getBrigade)
	}
}

// createBrigade godoc
// @Summary Onboard a brigade
// @Description Creates a brigade together with its crew account
// @Tags brigades
// @Accept  json
// @Produce  json
// @Param   brigade body dto.CreateBrigadeRequest true "Brigade details"
// @Success 201 {object} dto.BrigadeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Brigadier already leads an active brigade"
// @Security BearerAuth
// @Router /brigades [post]
func (h *brigadeHandler) createBrigade(c *gin.Context) {
	var req dto.CreateBrigadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	brigade, err := h.brigadeService.CreateBrigade(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create brigade")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBrigadeResponse(brigade))
}

// listBrigades godoc
// @Summary List brigades
// @Tags brigades
// @Produce  json
// @Success 200 {array} dto.BrigadeResponse
// @Security BearerAuth
// @Router /brigades [get]
func (h *brigadeHandler) listBrigades(c *gin.Context) {
	brigades, err := h.brigadeService.ListBrigades(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list brigades")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBrigadesResponse(brigades))
}

// getBrigade godoc
// @Summary Get a brigade
// @Tags brigades
// @Produce  json
// @Param   id path string true "Brigade ID"
// @Success 200 {object} dto.BrigadeResponse
// @Failure 404 {object} map[string]string "Brigade not found"
// @Security BearerAuth
// @Router /brigades/{id} [get]
func (h *brigadeHandler) getBrigade(c *gin.Context) {
	brigade, err := h.brigadeService.GetBrigade(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve brigade")
		return
	}
	c.JSON(http.StatusOK, dto.ToBrigadeResponse(brigade))
}

// getMyBrigade godoc
// @Summary Get the caller's brigade
// @Description Returns the active brigade led by the authenticated user
// @Tags brigades
// @Produce  json
// @Success 200 {object} dto.BrigadeResponse
// @Failure 404 {object} map[string]string "User does not lead a brigade"
// @Security BearerAuth
// @Router /brigades/mine [get]
func (h *brigadeHandler) getMyBrigade(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	brigade, err := h.brigadeService.GetBrigadeForBrigadier(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve brigade")
		return
	}
	c.JSON(http.StatusOK, dto.ToBrigadeResponse(brigade))
}
