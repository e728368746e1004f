package handlers

import (
	"net/http"

	"go-foodmarket/internal/auth"

	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type AuthHandler struct {
	tokens       TokenIssuer
	secureCookie bool
}

func NewAuthHandler(tokens TokenIssuer, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		tokens:       tokens,
		secureCookie: secureCookie,
	}
}

type issueTokenRequest struct {
	Email string `json:"email" binding:"required"`
}

// POST /jwt
// Sets the session cookie for the posted identity.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, token, 0)
	c.Status(http.StatusOK)
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.secureCookie {
		c.SetSameSite(http.SameSiteNoneMode)
	}
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.secureCookie, true)
}
