package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/internal/infrastructure/ratelimit"
	ws "github.com/ShreyasChakki/Servon-sub001/internal/infrastructure/websocket"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

// ConversationUseCase owns everything about messaging: deriving and
// authorizing conversations, the message log, read state, the inbox
// directory, and realtime fan-out.
type ConversationUseCase struct {
	messageRepo    repository.MessageRepository
	userRepo       repository.UserRepository
	quotationRepo  repository.QuotationRepository
	connectionRepo repository.ConnectionRepository
	adRepo         repository.AdvertisementRepository
	wsManager      *ws.Manager
	rateLimiter    *ratelimit.RateLimiter
}

func NewConversationUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	quotationRepo repository.QuotationRepository,
	connectionRepo repository.ConnectionRepository,
	adRepo repository.AdvertisementRepository,
	wsManager *ws.Manager,
) *ConversationUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ConversationUseCase{
		messageRepo:    messageRepo,
		userRepo:       userRepo,
		quotationRepo:  quotationRepo,
		connectionRepo: connectionRepo,
		adRepo:         adRepo,
		wsManager:      wsManager,
		rateLimiter:    rateLimiter,
	}
}

// ConversationSummary is one inbox entry. ReferenceStatus carries the
// backing record's status for the relationship kinds so clients can show
// whether a thread is still open without refetching the record.
type ConversationSummary struct {
	ConversationID  string             `json:"conversation_id"`
	Kind            entity.ContextKind `json:"kind"`
	ReferenceID     string             `json:"reference_id,omitempty"`
	ReferenceStatus string             `json:"reference_status,omitempty"`
	OtherUser       *entity.User       `json:"other_user,omitempty"`
	LastMessage     *entity.Message    `json:"last_message,omitempty"`
	UnreadCount     int                `json:"unread_count"`
}

// ConversationInfo describes a single conversation for its viewer.
type ConversationInfo struct {
	ConversationID string             `json:"conversation_id"`
	Kind           entity.ContextKind `json:"kind"`
	ReferenceID    string             `json:"reference_id,omitempty"`
	Participants   []*entity.User     `json:"participants"`
	UnreadCount    int                `json:"unread_count"`
	CanSend        bool               `json:"can_send"`
}

// ListConversations assembles the user's inbox. Quotation and
// connection conversations come from their relationship records, so
// they appear even before the first message. Direct and ad-inquiry
// conversations have no relationship record and are recovered from the
// message log itself.
func (uc *ConversationUseCase) ListConversations(ctx context.Context, userID string) ([]*ConversationSummary, error) {
	byID := make(map[string]*ConversationSummary)

	quotations, err := uc.quotationRepo.ListByParticipant(ctx, userID, []string{entity.QuotationSent, entity.QuotationAccepted})
	if err != nil {
		return nil, err
	}
	for _, quotation := range quotations {
		conversationID := entity.ConversationID(quotation.VendorID, quotation.CustomerID, entity.QuotationContext(quotation.ID))
		byID[conversationID] = &ConversationSummary{
			ConversationID:  conversationID,
			Kind:            entity.KindQuotation,
			ReferenceID:     quotation.ID,
			ReferenceStatus: quotation.Status,
		}
	}

	connections, err := uc.connectionRepo.ListByParticipant(ctx, userID, entity.ConnectionConnected)
	if err != nil {
		return nil, err
	}
	for _, connection := range connections {
		conversationID := entity.ConversationID(connection.RequesterID, connection.ReceiverID, entity.ConnectionContext(connection.ID))
		byID[conversationID] = &ConversationSummary{
			ConversationID:  conversationID,
			Kind:            entity.KindConnection,
			ReferenceID:     connection.ID,
			ReferenceStatus: connection.Status,
		}
	}

	loggedIDs, err := uc.messageRepo.DistinctConversationIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, conversationID := range loggedIDs {
		if _, exists := byID[conversationID]; exists {
			continue
		}
		parsed, err := entity.ParseConversationID(conversationID)
		if err != nil || !parsed.HasParticipant(userID) {
			continue
		}
		// Quotation and connection conversations are directory-driven;
		// the log fallback only recovers the record-less kinds.
		switch parsed.Context.Kind {
		case entity.KindDirect, entity.KindAdInquiry, entity.KindNone:
			byID[conversationID] = &ConversationSummary{
				ConversationID: conversationID,
				Kind:           parsed.Context.Kind,
				ReferenceID:    parsed.Context.RefID,
			}
		}
	}

	summaries := make([]*ConversationSummary, 0, len(byID))
	for conversationID, summary := range byID {
		parsed, err := entity.ParseConversationID(conversationID)
		if err != nil {
			continue
		}

		latest, err := uc.messageRepo.Latest(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		summary.LastMessage = latest

		unread, err := uc.messageRepo.CountUnread(ctx, conversationID, userID)
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = unread

		if other, err := uc.userRepo.GetByID(ctx, parsed.OtherParticipant(userID)); err == nil {
			summary.OtherUser = other
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch {
		case a.LastMessage == nil && b.LastMessage == nil:
			return a.ConversationID < b.ConversationID
		case a.LastMessage == nil:
			return false
		case b.LastMessage == nil:
			return true
		default:
			return a.LastMessage.CreatedAt.After(b.LastMessage.CreatedAt)
		}
	})

	return summaries, nil
}

// GetMessages returns one page of a conversation's history in ascending
// time order, and whether an older page may exist. Fetching a page
// marks the viewer's unread messages as read; a failure there is logged
// but does not fail the fetch.
func (uc *ConversationUseCase) GetMessages(ctx context.Context, userID, conversationID string, page, pageSize int) ([]*entity.Message, bool, error) {
	parsed, err := entity.ParseConversationID(conversationID)
	if err != nil {
		return nil, false, errors.BadRequest("Invalid conversation ID", err)
	}
	if err := uc.authorize(ctx, userID, parsed, false); err != nil {
		return nil, false, err
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	messages, err := uc.messageRepo.ListByConversation(ctx, conversationID, pageSize, offset)
	if err != nil {
		return nil, false, err
	}
	hasMore := len(messages) == pageSize

	// Repo returns newest first; clients render oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	if count, err := uc.messageRepo.MarkAllRead(ctx, conversationID, userID); err != nil {
		logger.Warn("Failed to mark conversation %s read for %s: %v", conversationID, userID, err)
	} else if count > 0 {
		uc.notifyRead(conversationID, userID, parsed.OtherParticipant(userID), count)
	}

	return messages, hasMore, nil
}

// GetConversationInfo describes the conversation without fetching its
// history.
func (uc *ConversationUseCase) GetConversationInfo(ctx context.Context, userID, conversationID string) (*ConversationInfo, error) {
	parsed, err := entity.ParseConversationID(conversationID)
	if err != nil {
		return nil, errors.BadRequest("Invalid conversation ID", err)
	}
	if err := uc.authorize(ctx, userID, parsed, false); err != nil {
		return nil, err
	}

	info := &ConversationInfo{
		ConversationID: conversationID,
		Kind:           parsed.Context.Kind,
		ReferenceID:    parsed.Context.RefID,
		CanSend:        uc.authorize(ctx, userID, parsed, true) == nil,
	}

	for _, participantID := range []string{parsed.UserA, parsed.UserB} {
		if user, err := uc.userRepo.GetByID(ctx, participantID); err == nil {
			info.Participants = append(info.Participants, user)
		}
	}

	unread, err := uc.messageRepo.CountUnread(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	info.UnreadCount = unread

	return info, nil
}

// MarkConversationRead marks every unread message addressed to the user
// and returns how many were updated. Idempotent.
func (uc *ConversationUseCase) MarkConversationRead(ctx context.Context, userID, conversationID string) (int, error) {
	parsed, err := entity.ParseConversationID(conversationID)
	if err != nil {
		return 0, errors.BadRequest("Invalid conversation ID", err)
	}
	if err := uc.authorize(ctx, userID, parsed, false); err != nil {
		return 0, err
	}

	count, err := uc.messageRepo.MarkAllRead(ctx, conversationID, userID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		uc.notifyRead(conversationID, userID, parsed.OtherParticipant(userID), count)
	}

	return count, nil
}

// SendQuotationMessage sends a message on a quotation conversation. The
// quotation record is authoritative: the sender must be a party to it
// and its status must still allow chat.
func (uc *ConversationUseCase) SendQuotationMessage(ctx context.Context, senderID, quotationID, content, messageType string) (*entity.Message, error) {
	if err := uc.checkSendAllowed(senderID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	quotation, err := uc.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if !quotation.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this quotation", nil)
	}
	if !quotation.ChatEnabled() {
		return nil, errors.Forbidden("This quotation no longer accepts messages", nil)
	}

	receiverID := quotation.CustomerID
	if senderID == quotation.CustomerID {
		receiverID = quotation.VendorID
	}

	message := &entity.Message{
		ConversationID: entity.ConversationID(quotation.VendorID, quotation.CustomerID, entity.QuotationContext(quotation.ID)),
		QuotationID:    quotation.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Type:           normalizeMessageType(messageType),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifyNewMessage(message)
	return message, nil
}

// SendConnectionMessage sends a message on a vendor connection
// conversation. Writing requires the connection to be in the connected
// state.
func (uc *ConversationUseCase) SendConnectionMessage(ctx context.Context, senderID, connectionID, content, messageType string) (*entity.Message, error) {
	if err := uc.checkSendAllowed(senderID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	connection, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !connection.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this connection", nil)
	}
	if !connection.ChatEnabled() {
		return nil, errors.Forbidden("This connection is not active", nil)
	}

	receiverID := connection.RequesterID
	if senderID == connection.RequesterID {
		receiverID = connection.ReceiverID
	}

	message := &entity.Message{
		ConversationID: entity.ConversationID(connection.RequesterID, connection.ReceiverID, entity.ConnectionContext(connection.ID)),
		ConnectionID:   connection.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Type:           normalizeMessageType(messageType),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifyNewMessage(message)
	return message, nil
}

// SendDirectMessage starts or continues a free-form conversation with
// another user. The only requirement is that the recipient exists.
func (uc *ConversationUseCase) SendDirectMessage(ctx context.Context, senderID, recipientID, content, messageType string) (*entity.Message, error) {
	if err := uc.checkSendAllowed(senderID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if senderID == recipientID {
		return nil, errors.BadRequest("Cannot message yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: entity.ConversationID(senderID, recipientID, entity.DirectContext()),
		SenderID:       senderID,
		ReceiverID:     recipientID,
		Content:        content,
		Type:           normalizeMessageType(messageType),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifyNewMessage(message)
	return message, nil
}

// SendAdInquiryMessage opens an ad-inquiry conversation with the
// advertisement's vendor. The message itself is what makes the
// conversation discoverable later; there is no separate record.
func (uc *ConversationUseCase) SendAdInquiryMessage(ctx context.Context, senderID, advertisementID, content string) (*entity.Message, error) {
	if err := uc.checkSendAllowed(senderID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	ad, err := uc.adRepo.GetByID(ctx, advertisementID)
	if err != nil {
		return nil, err
	}
	if senderID == ad.VendorID {
		return nil, errors.BadRequest("Cannot inquire on your own advertisement", nil)
	}

	message := &entity.Message{
		ConversationID: entity.ConversationID(senderID, ad.VendorID, entity.AdInquiryContext(ad.ID)),
		SenderID:       senderID,
		ReceiverID:     ad.VendorID,
		Content:        content,
		Type:           entity.MessageTypeText,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifyNewMessage(message)
	return message, nil
}

// SendToConversation sends into an existing conversation addressed by
// its ID. This is the realtime path; the access gate still applies in
// full.
func (uc *ConversationUseCase) SendToConversation(ctx context.Context, senderID, conversationID, content, messageType string) (*entity.Message, error) {
	if err := uc.checkSendAllowed(senderID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	parsed, err := entity.ParseConversationID(conversationID)
	if err != nil {
		return nil, errors.BadRequest("Invalid conversation ID", err)
	}
	if !parsed.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}
	if err := uc.authorize(ctx, senderID, parsed, true); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     parsed.OtherParticipant(senderID),
		Content:        content,
		Type:           normalizeMessageType(messageType),
	}
	switch parsed.Context.Kind {
	case entity.KindQuotation:
		message.QuotationID = parsed.Context.RefID
	case entity.KindConnection:
		message.ConnectionID = parsed.Context.RefID
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifyNewMessage(message)
	return message, nil
}

// PostSystemMessage appends a system notice to a conversation. It is
// called by other use cases on lifecycle transitions and bypasses the
// sender gate and rate limits.
func (uc *ConversationUseCase) PostSystemMessage(ctx context.Context, conversationID, receiverID, content string) (*entity.Message, error) {
	parsed, err := entity.ParseConversationID(conversationID)
	if err != nil {
		return nil, errors.BadRequest("Invalid conversation ID", err)
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       parsed.OtherParticipant(receiverID),
		ReceiverID:     receiverID,
		Content:        content,
		Type:           entity.MessageTypeSystem,
	}
	switch parsed.Context.Kind {
	case entity.KindQuotation:
		message.QuotationID = parsed.Context.RefID
	case entity.KindConnection:
		message.ConnectionID = parsed.Context.RefID
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifyNewMessage(message)
	return message, nil
}

// Typing broadcasts a typing indicator to the other viewers of the
// conversation. Nothing is persisted.
func (uc *ConversationUseCase) Typing(ctx context.Context, userID, conversationID string, isTyping bool) error {
	allowed, _ := uc.rateLimiter.Allow(userID, "typing")
	if !allowed {
		return nil
	}

	parsed, err := entity.ParseConversationID(conversationID)
	if err != nil {
		return errors.BadRequest("Invalid conversation ID", err)
	}
	if err := uc.authorize(ctx, userID, parsed, false); err != nil {
		return err
	}

	if uc.wsManager != nil {
		payload := ws.Encode(ws.EventTyping, ws.TypingPayload{
			ConversationID: conversationID,
			UserID:         userID,
			IsTyping:       isTyping,
		})
		uc.wsManager.SendToConversation(conversationID, payload, userID)
	}

	return nil
}

// authorize is the access gate. Quotation and connection conversations
// defer to their relationship records; a missing record surfaces as
// NotFound before any Forbidden. Ad-inquiry, direct, and bare
// conversations are guarded by possession of the identifier.
func (uc *ConversationUseCase) authorize(ctx context.Context, userID string, parsed *entity.ParsedConversation, forWrite bool) error {
	switch parsed.Context.Kind {
	case entity.KindQuotation:
		quotation, err := uc.quotationRepo.GetByID(ctx, parsed.Context.RefID)
		if err != nil {
			return err
		}
		if !quotation.HasParticipant(userID) {
			if !forWrite && uc.isAdmin(ctx, userID) {
				return nil
			}
			return errors.Forbidden("You are not a participant in this conversation", nil)
		}
		if forWrite && !quotation.ChatEnabled() {
			return errors.Forbidden("This quotation no longer accepts messages", nil)
		}
		return nil

	case entity.KindConnection:
		connection, err := uc.connectionRepo.GetByID(ctx, parsed.Context.RefID)
		if err != nil {
			return err
		}
		if !connection.HasParticipant(userID) {
			if !forWrite && uc.isAdmin(ctx, userID) {
				return nil
			}
			return errors.Forbidden("You are not a participant in this conversation", nil)
		}
		// History stays readable after the connection ends; only new
		// messages require the connected state.
		if forWrite && !connection.ChatEnabled() {
			return errors.Forbidden("This connection is not active", nil)
		}
		return nil

	default:
		if parsed.HasParticipant(userID) {
			return nil
		}
		if !forWrite && uc.isAdmin(ctx, userID) {
			return nil
		}
		return errors.Forbidden("You are not a participant in this conversation", nil)
	}
}

func (uc *ConversationUseCase) isAdmin(ctx context.Context, userID string) bool {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsAdmin()
}

func (uc *ConversationUseCase) checkSendAllowed(senderID string) error {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Warn("Rate limited send_message for %s, retry in %v", senderID, waitTime)
		return errors.TooManyRequests("Too many messages, please slow down")
	}
	return nil
}

// notifyNewMessage pushes the stored message to the receiver's live
// sessions. Delivery is best effort; the log already holds the message.
func (uc *ConversationUseCase) notifyNewMessage(message *entity.Message) {
	if uc.wsManager == nil {
		return
	}
	payload := ws.Encode(ws.EventNewMessage, message)
	// Two targets: the receiver's personal channel for inbox badges, and
	// the conversation room so open viewers append without a refetch.
	uc.wsManager.SendToUser(message.ReceiverID, payload)
	uc.wsManager.SendToConversation(message.ConversationID, payload, "")
}

func (uc *ConversationUseCase) notifyRead(conversationID, readerID, otherID string, count int) {
	if uc.wsManager == nil {
		return
	}
	payload := ws.Encode(ws.EventMessagesRead, ws.MessagesReadPayload{
		ConversationID: conversationID,
		ReaderID:       readerID,
		Count:          count,
	})
	uc.wsManager.SendToUser(otherID, payload)
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.BadRequest("Message content is required", nil)
	}
	if len(content) > entity.MaxMessageLength {
		return errors.BadRequest("Message content exceeds maximum length", nil)
	}
	return nil
}

func normalizeMessageType(messageType string) string {
	if messageType == entity.MessageTypeImage {
		return entity.MessageTypeImage
	}
	return entity.MessageTypeText
}
