package channel

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/speedyfix/auto-garage/internal/bot/dialog"
	"github.com/speedyfix/auto-garage/internal/bot/session"
	"github.com/speedyfix/auto-garage/internal/httperr"
)

type messageRequest struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text" binding:"required"`
}

type messageResponse struct {
	ConversationID string         `json:"conversation_id"`
	Replies        []dialog.Reply `json:"replies"`
}

// Handler is the bot's wire surface: one POST per user turn, replies in the
// response body. A missing or unknown conversation_id starts a fresh
// conversation.
type Handler struct {
	dialog   *dialog.Dialog
	sessions session.Store
	log      *zap.Logger
}

func NewHandler(d *dialog.Dialog, sessions session.Store, log *zap.Logger) *Handler {
	return &Handler{dialog: d, sessions: sessions, log: log}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/api/messages", h.Messages)
}

func (h *Handler) Messages(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_body", "text is required")
		return
	}

	ctx := c.Request.Context()

	sess, err := h.resolveSession(c, req.ConversationID)
	if err != nil {
		httperr.Internal(c, "session_load_failed", "could not load conversation state")
		return
	}

	replies := h.dialog.Handle(ctx, sess, req.Text)

	if err := h.sessions.Save(ctx, sess); err != nil {
		h.log.Error("save session", zap.String("conversation_id", sess.ID), zap.Error(err))
		httperr.Internal(c, "session_save_failed", "could not save conversation state")
		return
	}

	h.log.Info("turn",
		zap.String("conversation_id", sess.ID),
		zap.Int("replies", len(replies)),
	)

	c.JSON(http.StatusOK, messageResponse{
		ConversationID: sess.ID,
		Replies:        replies,
	})
}

func (h *Handler) resolveSession(c *gin.Context, id string) (*dialog.Session, error) {
	if id != "" {
		sess, err := h.sessions.Get(c.Request.Context(), id)
		if err == nil {
			return sess, nil
		}
		if err != session.ErrNotFound {
			h.log.Error("load session", zap.String("conversation_id", id), zap.Error(err))
			return nil, err
		}
		// Expired or bogus id: fall through and mint a new conversation.
	}

	return &dialog.Session{ID: uuid.NewString()}, nil
}
