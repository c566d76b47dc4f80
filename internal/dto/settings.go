package dto

import (
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
)

type SetSettingRequest struct {
	Value string `json:"value" binding:"max=4000"`
}

type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToSettingResponse(s *domain.Setting) SettingResponse {
	return SettingResponse{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}
}

func ToListSettingsResponse(settings []domain.Setting) []SettingResponse {
	resp := make([]SettingResponse, len(settings))
	for i := range settings {
		resp[i] = ToSettingResponse(&settings[i])
	}
	return resp
}
