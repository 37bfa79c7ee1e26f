package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe-directory/internal/service"
	"cafe-directory/internal/transport/http/form"
)

// ContactForm GET /contact
func (h *Web) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.tmpl", gin.H{"title": "Contact", "form": form.ContactForm{}, "message_sent": false})
}

// Contact POST /contact：中继重试用尽后回 502，页面上 message_sent=false
func (h *Web) Contact(c *gin.Context) {
	var f form.ContactForm
	if err := c.ShouldBind(&f); err != nil {
		h.render(c, http.StatusBadRequest, "contact.tmpl", gin.H{
			"title": "Contact", "form": f, "errors": form.ErrorsOf(err), "message_sent": false,
		})
		return
	}
	err := h.contact.Send(c.Request.Context(), service.ContactMessage{
		Name: f.Name, Email: f.Email, Phone: f.Phone, Message: f.Message,
	})
	if err != nil {
		_ = c.Error(err)
		h.log.Error("contact message not sent", zap.Error(err))
		h.render(c, http.StatusBadGateway, "contact.tmpl", gin.H{
			"title": "Contact", "form": f, "message_sent": false, "send_failed": true,
		})
		return
	}
	h.render(c, http.StatusOK, "contact.tmpl", gin.H{"title": "Contact", "form": form.ContactForm{}, "message_sent": true})
}
