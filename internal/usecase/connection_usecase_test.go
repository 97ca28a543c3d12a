package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

func newConnectionFixture(t *testing.T) (*ConnectionUseCase, *fakeConnectionRepo, *fakeMessageRepo) {
	t.Helper()

	users := newFakeUserRepo(
		&entity.User{ID: "cust1", FullName: "Customer", Role: entity.RoleCustomer},
		&entity.User{ID: "vend1", BusinessName: "Vendor One", Role: entity.RoleVendor},
		&entity.User{ID: "vend2", BusinessName: "Vendor Two", Role: entity.RoleVendor},
	)
	connections := newFakeConnectionRepo()
	messages := &fakeMessageRepo{}

	convUC := NewConversationUseCase(messages, users, newFakeQuotationRepo(), connections, newFakeAdvertisementRepo(), nil)
	return NewConnectionUseCase(connections, users, convUC), connections, messages
}

func TestRequestConnectionVendorsOnly(t *testing.T) {
	uc, _, _ := newConnectionFixture(t)
	ctx := context.Background()

	_, err := uc.RequestConnection(ctx, "vend1", "vend1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.RequestConnection(ctx, "vend1", "cust1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.RequestConnection(ctx, "vend1", "ghost")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	connection, err := uc.RequestConnection(ctx, "vend1", "vend2")
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionPending, connection.Status)
}

func TestRequestConnectionConflictsWithLivePair(t *testing.T) {
	uc, connections, _ := newConnectionFixture(t)
	ctx := context.Background()

	first, err := uc.RequestConnection(ctx, "vend1", "vend2")
	require.NoError(t, err)

	// Pending blocks a new request from either side.
	_, err = uc.RequestConnection(ctx, "vend2", "vend1")
	assert.True(t, errors.Is(err, "CONFLICT"))

	// A dead connection does not.
	connections.connections[first.ID].Status = entity.ConnectionRejected
	_, err = uc.RequestConnection(ctx, "vend2", "vend1")
	require.NoError(t, err)
}

func TestAcceptConnectionSeedsConversation(t *testing.T) {
	uc, _, messages := newConnectionFixture(t)
	ctx := context.Background()

	connection, err := uc.RequestConnection(ctx, "vend1", "vend2")
	require.NoError(t, err)

	// Only the receiver accepts.
	_, err = uc.AcceptConnection(ctx, "vend1", connection.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	accepted, err := uc.AcceptConnection(ctx, "vend2", connection.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionConnected, accepted.Status)

	conv := entity.ConversationID("vend1", "vend2", entity.ConnectionContext(connection.ID))
	latest, err := messages.Latest(ctx, conv)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, entity.MessageTypeSystem, latest.Type)
	assert.Equal(t, "vend1", latest.ReceiverID)
}

func TestRemoveConnection(t *testing.T) {
	uc, _, _ := newConnectionFixture(t)
	ctx := context.Background()

	connection, err := uc.RequestConnection(ctx, "vend1", "vend2")
	require.NoError(t, err)

	// Removing a pending connection is a conflict; it must be rejected instead.
	_, err = uc.RemoveConnection(ctx, "vend1", connection.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = uc.AcceptConnection(ctx, "vend2", connection.ID)
	require.NoError(t, err)

	removed, err := uc.RemoveConnection(ctx, "vend1", connection.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionRemoved, removed.Status)
}
