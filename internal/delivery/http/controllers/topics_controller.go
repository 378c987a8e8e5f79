package controllers

import (
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// VocabularyResponse lists the values accepted for event fields, interests and filters.
type VocabularyResponse struct {
	Topics         []string             `json:"topics"`
	Levels         []domain.Level       `json:"levels"`
	Fees           []domain.FeeCategory `json:"fees"`
	ActivityPoints []domain.PointsTier  `json:"activity_points"`
}

// ListTopics godoc
// @Summary List vocabularies
// @Description Topics, levels, fee categories and activity-point tiers. Filters additionally accept "All".
// @Tags catalog
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the vocabularies"
// @Router /topics [get]
func ListTopics(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, VocabularyResponse{
		Topics:         domain.Topics,
		Levels:         domain.Levels,
		Fees:           domain.FeeCategories,
		ActivityPoints: domain.PointsTiers,
	})
}
