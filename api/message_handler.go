package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
}

func newMessageHandler(messageRepo *database.MessageRepo) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
	}
}

// contactRequest is what the public contact form submits.
type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
}

// unreadCountResponse reports how many messages are still unread.
type unreadCountResponse struct {
	Unread int `json:"unread"`
}

// createMessage stores a contact form submission
// @Summary Submit contact message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body contactRequest true "Contact form"
// @Success 201 {object} models.Message
// @Failure 400 {object} ErrorResponse
// @Router /message [post]
func (h messageHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.messageRepo.Add(r.Context(), models.Message{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "message", err))
			return
		}

		h.logger.Info().Str("messageID", msg.ID).Msg("contact message received")
		h.responder.WriteStatusJSON(w, http.StatusCreated, msg)
	}
}

// @Summary List messages
// @Tags Messages
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Text search"
// @Param read query bool false "Read filter"
// @Success 200 {object} models.Page[models.Message]
// @Router /messages [get]
func (h messageHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, err := pageParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		read, err := queryBool(r, "read")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		messages, err := h.messageRepo.List(r.Context(), models.MessageFilter{
			Page:     page,
			PageSize: pageSize,
			Search:   r.URL.Query().Get("search"),
			Read:     read,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "messages", err))
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

// @Summary Count unread messages
// @Tags Messages
// @Produce json
// @Success 200 {object} unreadCountResponse
// @Router /messages/unread-count [get]
func (h messageHandler) getUnreadCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.messageRepo.UnreadCount(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "messages", err))
			return
		}
		h.responder.WriteJSON(w, unreadCountResponse{Unread: count})
	}
}

// @Summary Get message
// @Tags Messages
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} models.Message
// @Router /message/{messageID} [get]
func (h messageHandler) getMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := pathID(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.messageRepo.FindByID(r.Context(), messageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "message", err))
			return
		}

		h.responder.WriteJSON(w, msg)
	}
}

// updateMessage marks a message read or unread
// @Summary Update message
// @Tags Messages
// @Accept json
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Param message body models.MessagePatch true "Read flag"
// @Success 200 {object} models.Message
// @Router /message/{messageID} [put]
func (h messageHandler) updateMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := pathID(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.MessagePatch
		if err := decodeBody(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.messageRepo.Update(r.Context(), messageID, patch)
		if errs.IsNoChanges(err) {
			msg, err = h.messageRepo.FindByID(r.Context(), messageID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "message", err))
			return
		}

		h.responder.WriteJSON(w, msg)
	}
}

// @Summary Delete message
// @Tags Messages
// @Param messageID path string true "Message ID" format(uuid)
// @Success 204
// @Router /message/{messageID} [delete]
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := pathID(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.messageRepo.Delete(r.Context(), messageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "message", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("message"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
