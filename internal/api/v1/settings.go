package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/netbill/netbill/internal/api/dto"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(service service.SettingsService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, log: log}
}

// @Summary Get a setting
// @Description Get a setting by key, falling back to its default value
// @Tags Settings
// @Produce json
// @Security ApiKeyAuth
// @Param key path string true "Setting key"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /settings/{key} [get]
func (h *SettingsHandler) GetSetting(c *gin.Context) {
	resp, err := h.service.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a setting
// @Description Validate and persist a setting value
// @Tags Settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param key path string true "Setting key"
// @Param request body dto.UpdateSettingRequest true "Setting value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /settings/{key} [put]
func (h *SettingsHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSetting(c.Request.Context(), c.Param("key"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List settings
// @Description List all settings for the tenant, including unsaved defaults
// @Tags Settings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.SettingResponse
// @Router /settings [get]
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	resp, err := h.service.ListSettings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
