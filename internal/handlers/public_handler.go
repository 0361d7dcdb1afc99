package handlers

import (
	"net/http"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/dto"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/services"
	"github.com/tsuiketsu/tsuika-api-sub000/pkg/responses"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves anonymous visitors resolving share links. It sits
// outside the auth middleware; the token is the only credential, plus the
// link password when one is set.
type PublicHandler struct {
	shareLinks *services.ShareLinkService
}

func NewPublicHandler(shareLinks *services.ShareLinkService) *PublicHandler {
	return &PublicHandler{shareLinks: shareLinks}
}

// ResolveShareLink returns the public projection of a shared folder. The
// password travels in the request body so it stays out of URLs and logs.
func (h *PublicHandler) ResolveShareLink(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Share token required"))
		return
	}

	var req dto.VisitShareLinkReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
			return
		}
	}

	view, err := h.shareLinks.ResolveForVisitor(c.Request.Context(), token, req.Password)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Shared folder retrieved successfully", view))
}
