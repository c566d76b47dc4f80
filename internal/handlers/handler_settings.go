package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: settingsService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.GET("/:key", h.getSetting)
		settings.PUT("/:key", h.setSetting)
	}
}

// listSettings godoc
// @Summary List settings
// @Tags settings
// @Produce  json
// @Success 200 {array} dto.SettingResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) listSettings(c *gin.Context) {
	settings, err := h.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSettingsResponse(settings))
}

// getSetting godoc
// @Summary Get a setting
// @Tags settings
// @Produce  json
// @Param   key path string true "Setting key"
// @Success 200 {object} dto.SettingResponse
// @Failure 404 {object} map[string]string "Setting not found"
// @Security BearerAuth
// @Router /settings/{key} [get]
func (h *settingsHandler) getSetting(c *gin.Context) {
	setting, err := h.settingsService.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve setting")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingResponse(setting))
}

// setSetting godoc
// @Summary Set a setting
// @Description Creates or replaces a setting; subscribers of settings_updates are notified
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   key path string true "Setting key"
// @Param   setting body dto.SetSettingRequest true "New value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /settings/{key} [put]
func (h *settingsHandler) setSetting(c *gin.Context) {
	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	setting, err := h.settingsService.SetSetting(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		respondWithError(c, err, "Failed to save setting")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingResponse(setting))
}
