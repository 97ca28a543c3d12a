package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

type conversationFixture struct {
	uc          *ConversationUseCase
	messages    *fakeMessageRepo
	users       *fakeUserRepo
	quotations  *fakeQuotationRepo
	connections *fakeConnectionRepo
	ads         *fakeAdvertisementRepo
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()

	f := &conversationFixture{
		messages: &fakeMessageRepo{},
		users: newFakeUserRepo(
			&entity.User{ID: "cust1", FullName: "Customer One", Role: entity.RoleCustomer},
			&entity.User{ID: "cust2", FullName: "Customer Two", Role: entity.RoleCustomer},
			&entity.User{ID: "vend1", BusinessName: "Vendor One", Role: entity.RoleVendor},
			&entity.User{ID: "vend2", BusinessName: "Vendor Two", Role: entity.RoleVendor},
			&entity.User{ID: "boss", FullName: "Admin", Role: entity.RoleAdmin},
		),
		quotations:  newFakeQuotationRepo(),
		connections: newFakeConnectionRepo(),
		ads:         newFakeAdvertisementRepo(),
	}
	f.uc = NewConversationUseCase(f.messages, f.users, f.quotations, f.connections, f.ads, nil)
	return f
}

func (f *conversationFixture) seedMessage(t *testing.T, conversationID, senderID, receiverID, content string) *entity.Message {
	t.Helper()
	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Type:           entity.MessageTypeText,
	}
	require.NoError(t, f.messages.Create(context.Background(), message))
	return message
}

func TestListConversationsDirectoryAndOrdering(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	// A sent quotation conversation with one message.
	f.quotations.quotations["q1"] = &entity.Quotation{
		ID: "q1", ServiceRequestID: "sr1", VendorID: "vend1", CustomerID: "cust1",
		Status: entity.QuotationSent,
	}
	quotationConv := entity.ConversationID("vend1", "cust1", entity.QuotationContext("q1"))
	f.seedMessage(t, quotationConv, "vend1", "cust1", "quote sent")

	// A connected connection with no messages yet.
	f.connections.connections["c1"] = &entity.Connection{
		ID: "c1", RequesterID: "vend1", ReceiverID: "vend2",
		Status: entity.ConnectionConnected,
	}
	connectionConv := entity.ConversationID("vend1", "vend2", entity.ConnectionContext("c1"))

	// A direct conversation, recovered from the message log alone.
	directConv := entity.ConversationID("vend1", "cust2", entity.DirectContext())
	f.seedMessage(t, directConv, "cust2", "vend1", "hello")

	// A rejected quotation: its conversation drops out of the inbox.
	f.quotations.quotations["q2"] = &entity.Quotation{
		ID: "q2", ServiceRequestID: "sr2", VendorID: "vend1", CustomerID: "cust2",
		Status: entity.QuotationRejected,
	}
	rejectedConv := entity.ConversationID("vend1", "cust2", entity.QuotationContext("q2"))
	f.seedMessage(t, rejectedConv, "vend1", "cust2", "old quote")

	summaries, err := f.uc.ListConversations(ctx, "vend1")
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Newest message first; the message-less connection sorts last.
	assert.Equal(t, directConv, summaries[0].ConversationID)
	assert.Equal(t, quotationConv, summaries[1].ConversationID)
	assert.Equal(t, connectionConv, summaries[2].ConversationID)

	assert.Equal(t, entity.KindDirect, summaries[0].Kind)
	assert.Equal(t, 1, summaries[0].UnreadCount)
	require.NotNil(t, summaries[0].OtherUser)
	assert.Equal(t, "cust2", summaries[0].OtherUser.ID)

	assert.Nil(t, summaries[2].LastMessage)
	assert.Equal(t, 0, summaries[2].UnreadCount)

	// Relationship entries carry their record's status; record-less
	// kinds have none.
	assert.Empty(t, summaries[0].ReferenceStatus)
	assert.Equal(t, entity.QuotationSent, summaries[1].ReferenceStatus)
	assert.Equal(t, entity.ConnectionConnected, summaries[2].ReferenceStatus)
}

func TestGetMessagesPaginatesAscendingAndMarksRead(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	conv := entity.ConversationID("cust1", "vend1", entity.DirectContext())
	for i := 0; i < 5; i++ {
		f.seedMessage(t, conv, "cust1", "vend1", "msg")
	}

	messages, hasMore, err := f.uc.GetMessages(ctx, "vend1", conv, 1, 3)
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, messages, 3)

	// Newest page, oldest first within it.
	assert.Equal(t, "m3", messages[0].ID)
	assert.Equal(t, "m4", messages[1].ID)
	assert.Equal(t, "m5", messages[2].ID)

	// Viewing marked everything addressed to the viewer as read.
	unread, err := f.messages.CountUnread(ctx, conv, "vend1")
	require.NoError(t, err)
	assert.Zero(t, unread)

	count, err := f.uc.MarkConversationRead(ctx, "vend1", conv)
	require.NoError(t, err)
	assert.Zero(t, count)

	messages, hasMore, err = f.uc.GetMessages(ctx, "vend1", conv, 2, 3)
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "m2", messages[1].ID)
}

func TestQuotationGate(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	f.quotations.quotations["q1"] = &entity.Quotation{
		ID: "q1", VendorID: "vend1", CustomerID: "cust1",
		Status: entity.QuotationSent,
	}
	conv := entity.ConversationID("vend1", "cust1", entity.QuotationContext("q1"))
	f.seedMessage(t, conv, "vend1", "cust1", "quote")

	// Participants read, outsiders do not.
	_, _, err := f.uc.GetMessages(ctx, "cust1", conv, 1, 20)
	require.NoError(t, err)
	_, _, err = f.uc.GetMessages(ctx, "vend2", conv, 1, 20)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Admins read but cannot write.
	_, _, err = f.uc.GetMessages(ctx, "boss", conv, 1, 20)
	require.NoError(t, err)
	_, err = f.uc.SendToConversation(ctx, "boss", conv, "hi", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// A conversation whose quotation is gone is NotFound, not Forbidden.
	ghost := entity.ConversationID("vend1", "cust1", entity.QuotationContext("missing"))
	_, _, err = f.uc.GetMessages(ctx, "vend2", ghost, 1, 20)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	// Rejection keeps history readable but closes the conversation.
	f.quotations.quotations["q1"].Status = entity.QuotationRejected
	_, _, err = f.uc.GetMessages(ctx, "cust1", conv, 1, 20)
	require.NoError(t, err)
	_, err = f.uc.SendToConversation(ctx, "cust1", conv, "one more thing", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestConnectionGateAfterRemoval(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	f.connections.connections["c1"] = &entity.Connection{
		ID: "c1", RequesterID: "vend1", ReceiverID: "vend2",
		Status: entity.ConnectionConnected,
	}
	conv := entity.ConversationID("vend1", "vend2", entity.ConnectionContext("c1"))

	_, err := f.uc.SendConnectionMessage(ctx, "vend1", "c1", "hey", "")
	require.NoError(t, err)

	f.connections.connections["c1"].Status = entity.ConnectionRemoved

	// History stays readable for both sides.
	messages, _, err := f.uc.GetMessages(ctx, "vend2", conv, 1, 20)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	// New messages are rejected on every path.
	_, err = f.uc.SendConnectionMessage(ctx, "vend1", "c1", "still there?", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = f.uc.SendToConversation(ctx, "vend2", conv, "still there?", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDirectConversationGate(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	conv := entity.ConversationID("cust1", "vend1", entity.DirectContext())
	f.seedMessage(t, conv, "cust1", "vend1", "hello")

	// Only the two named users read and write.
	_, _, err := f.uc.GetMessages(ctx, "cust1", conv, 1, 20)
	require.NoError(t, err)
	_, _, err = f.uc.GetMessages(ctx, "cust2", conv, 1, 20)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = f.uc.GetConversationInfo(ctx, "cust2", conv)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = f.uc.SendToConversation(ctx, "cust2", conv, "let me in", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Admins read but cannot write.
	info, err := f.uc.GetConversationInfo(ctx, "boss", conv)
	require.NoError(t, err)
	assert.False(t, info.CanSend)
	_, err = f.uc.SendToConversation(ctx, "boss", conv, "hi", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// A self-pair identifier never resolves to a conversation.
	_, err = f.uc.SendToConversation(ctx, "cust1", "cust1_cust1_direct", "hi me", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	_, _, err = f.uc.GetMessages(ctx, "cust1", "cust1_cust1_direct", 1, 20)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendQuotationMessageResolvesReceiver(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	f.quotations.quotations["q1"] = &entity.Quotation{
		ID: "q1", VendorID: "vend1", CustomerID: "cust1",
		Status: entity.QuotationAccepted,
	}

	message, err := f.uc.SendQuotationMessage(ctx, "cust1", "q1", "when can you start?", "")
	require.NoError(t, err)

	assert.Equal(t, entity.ConversationID("vend1", "cust1", entity.QuotationContext("q1")), message.ConversationID)
	assert.Equal(t, "q1", message.QuotationID)
	assert.Equal(t, "vend1", message.ReceiverID)
	assert.Equal(t, entity.MessageTypeText, message.Type)

	_, err = f.uc.SendQuotationMessage(ctx, "vend2", "q1", "let me in", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendDirectMessageValidation(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	_, err := f.uc.SendDirectMessage(ctx, "cust1", "nobody", "hi", "")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = f.uc.SendDirectMessage(ctx, "cust1", "cust1", "hi me", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.uc.SendDirectMessage(ctx, "cust1", "vend1", "   ", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	long := make([]byte, entity.MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = f.uc.SendDirectMessage(ctx, "cust1", "vend1", string(long), "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	message, err := f.uc.SendDirectMessage(ctx, "cust1", "vend1", "hello vendor", "")
	require.NoError(t, err)
	assert.Equal(t, "cust1_vend1_direct", message.ConversationID)
	assert.Equal(t, "vend1", message.ReceiverID)
}

func TestSendAdInquiryMessage(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	f.ads.ads["a1"] = &entity.Advertisement{
		ID: "a1", VendorID: "vend1", Title: "Plumbing promo",
		Status: entity.AdvertisementActive,
	}

	message, err := f.uc.SendAdInquiryMessage(ctx, "cust1", "a1", "is this available?")
	require.NoError(t, err)
	assert.Equal(t, entity.ConversationID("cust1", "vend1", entity.AdInquiryContext("a1")), message.ConversationID)
	assert.Equal(t, "vend1", message.ReceiverID)

	// The inquiry alone makes the conversation discoverable.
	summaries, err := f.uc.ListConversations(ctx, "vend1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, entity.KindAdInquiry, summaries[0].Kind)
	assert.Equal(t, "a1", summaries[0].ReferenceID)

	_, err = f.uc.SendAdInquiryMessage(ctx, "vend1", "a1", "inquiring on my own ad")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetConversationInfo(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	f.quotations.quotations["q1"] = &entity.Quotation{
		ID: "q1", VendorID: "vend1", CustomerID: "cust1",
		Status: entity.QuotationRejected,
	}
	conv := entity.ConversationID("vend1", "cust1", entity.QuotationContext("q1"))
	f.seedMessage(t, conv, "vend1", "cust1", "quote")

	info, err := f.uc.GetConversationInfo(ctx, "cust1", conv)
	require.NoError(t, err)

	assert.Equal(t, entity.KindQuotation, info.Kind)
	assert.Equal(t, "q1", info.ReferenceID)
	assert.Len(t, info.Participants, 2)
	assert.Equal(t, 1, info.UnreadCount)
	assert.False(t, info.CanSend)
}
