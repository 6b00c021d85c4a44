package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/service"
)

type PathsHandler struct {
	challengeService *service.ChallengeService
}

func NewPathsHandler(challengeService *service.ChallengeService) *PathsHandler {
	return &PathsHandler{
		challengeService: challengeService,
	}
}

// ListPathsResponse lists every page that can be pre-generated
type ListPathsResponse struct {
	Paths []domain.StaticPath `json:"paths"`
	// Fallback is "blocking": unknown slugs are generated on first request
	Fallback string `json:"fallback" example:"blocking"`
}

// ListPaths godoc
// @Summary List static paths
// @Description Enumerate the slug of every challenge page
// @Tags pages
// @Produce json
// @Success 200 {object} StandardResponse{data=ListPathsResponse}
// @Failure 502 {object} StandardResponse
// @Router /paths [get]
func (h *PathsHandler) ListPaths(c *gin.Context) {
	paths, err := h.challengeService.ListPaths(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithSuccess(c, ListPathsResponse{
		Paths:    paths,
		Fallback: "blocking",
	})
}
