package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// One-shot notices carried across a redirect in a cookie. Set writes
// the notice; Take reads it and clears the cookie, so a notice is
// consumed on first read.

const cookieName = "flash"

type Notice struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

func Set(c *gin.Context, kind, message string) {
	data, err := json.Marshal(Notice{Kind: kind, Message: message})
	if err != nil {
		return
	}
	c.SetCookie(cookieName, base64.URLEncoding.EncodeToString(data), 60, "/", "", false, true)
}

func Success(c *gin.Context, message string) { Set(c, "success", message) }
func Error(c *gin.Context, message string)   { Set(c, "error", message) }

func Take(c *gin.Context) (Notice, bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil {
		return Notice{}, false
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	data, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(data, &n); err != nil {
		return Notice{}, false
	}
	return n, true
}

// Redirect sets a notice and issues a 303 to the given location.
func Redirect(c *gin.Context, kind, message, location string) {
	Set(c, kind, message)
	c.Redirect(http.StatusSeeOther, location)
}
