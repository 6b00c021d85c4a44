package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/service"
	"github.com/rs/zerolog"
)

type PageHandler struct {
	pageService *service.PageService
	renderer    *service.Renderer
}

func NewPageHandler(pageService *service.PageService, renderer *service.Renderer) *PageHandler {
	return &PageHandler{
		pageService: pageService,
		renderer:    renderer,
	}
}

func (h *PageHandler) logger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx).With().Str("handler", "page").Logger()
	return &l
}

// PageURI is the route parameter of a challenge page
type PageURI struct {
	Slug string `uri:"slug" binding:"required,slug"`
}

var cacheHeaderByStatus = map[service.PageStatus]string{
	service.PageStatusFresh:     "HIT",
	service.PageStatusGenerated: "MISS",
	service.PageStatusStale:     "STALE",
}

// GetPage handles GET /:slug and serves the redirecting landing page
func (h *PageHandler) GetPage(c *gin.Context) {
	ctx := c.Request.Context()
	logger := h.logger(ctx).With().Str("func", "GetPage").Logger()

	var uri PageURI
	if err := c.ShouldBindUri(&uri); err != nil {
		logger.Debug().Err(err).Str("slug", c.Param("slug")).Msg("invalid slug")
		h.respondNotFound(c)
		return
	}

	result, err := h.pageService.GetPage(ctx, uri.Slug)
	if err != nil {
		if domain.IsNotFound(err) {
			h.respondNotFound(c)
			return
		}
		logger.Error().Err(err).Str("slug", uri.Slug).Msg("failed to get page")
		h.respondUnavailable(c, parseDomainError(err).HTTPStatus())
		return
	}

	if result.Status == service.PageStatusStale {
		c.Header("Cache-Control", "no-cache")
	} else {
		maxAge := int(h.pageService.RevalidateInterval().Seconds())
		c.Header("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", maxAge))
	}
	c.Header("X-Cache", cacheHeaderByStatus[result.Status])

	respondWithHTML(c, http.StatusOK, result.Page.HTML)
}

func (h *PageHandler) respondNotFound(c *gin.Context) {
	body, err := h.renderer.RenderNotFound()
	if err != nil {
		h.logger(c.Request.Context()).Error().Err(err).Msg("failed to render not found page")
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	c.Header("Cache-Control", "no-store")
	respondWithHTML(c, http.StatusNotFound, body)
}

func (h *PageHandler) respondUnavailable(c *gin.Context, status int) {
	body, err := h.renderer.RenderUnavailable()
	if err != nil {
		h.logger(c.Request.Context()).Error().Err(err).Msg("failed to render unavailable page")
		c.String(status, http.StatusText(status))
		return
	}
	c.Header("Cache-Control", "no-store")
	respondWithHTML(c, status, body)
}
