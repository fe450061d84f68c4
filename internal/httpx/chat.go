package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/chatbot"
)

type chatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func startChatHandler(svc *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svc.StartSession(c.Request.Context(), c.Query("customer_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"session": sess, "topics": svc.Topics()})
	}
}

func chatMessageHandler(svc *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "message is required")
			return
		}
		reply, err := svc.Chat(c.Request.Context(), c.Param("session_id"), req.Message)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, reply)
	}
}

func chatHistoryHandler(svc *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := svc.History(c.Request.Context(), c.Param("session_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	}
}

func chatWaitingHandler(svc *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := svc.Waiting(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}

func chatStaffReplyHandler(svc *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "message is required")
			return
		}
		if err := svc.StaffReply(c.Request.Context(), c.Param("session_id"), req.Message); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sent": true})
	}
}

func chatResolveHandler(svc *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Resolve(c.Request.Context(), c.Param("session_id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"resolved": true})
	}
}
