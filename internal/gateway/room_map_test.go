package gateway

import (
	"context"
	"testing"

	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(userId int64, connId string) *Client {
	return &Client{UserId: userId, Role: constant.RolePetOwner, ConnId: connId}
}

func TestRoomMap_RegisterUnregister(t *testing.T) {
	ctx := context.Background()
	m := NewRoomMap(nil)

	c1 := testClient(1, "conn-a")
	c2 := testClient(1, "conn-b")

	m.Register(ctx, c1)
	m.Register(ctx, c2)

	assert.True(t, m.HasConnection(1))
	assert.Len(t, m.UserClients(1), 2)

	offline := m.Unregister(ctx, c1)
	assert.False(t, offline, "user still has conn-b")
	assert.Len(t, m.UserClients(1), 1)

	offline = m.Unregister(ctx, c2)
	assert.True(t, offline, "last connection gone")
	assert.False(t, m.HasConnection(1))
	assert.False(t, m.IsOnline(ctx, 1))
}

func TestRoomMap_JoinAndRoomClients(t *testing.T) {
	ctx := context.Background()
	m := NewRoomMap(nil)

	owner := testClient(1, "owner-conn")
	admin := testClient(99, "admin-conn")
	m.Register(ctx, owner)
	m.Register(ctx, admin)

	m.Join(7, owner)
	m.Join(7, admin)
	m.Join(8, admin)

	require.Len(t, m.RoomClients(7), 2)
	require.Len(t, m.RoomClients(8), 1)
	assert.Nil(t, m.RoomClients(999), "unknown room is empty")

	// Joining the same room twice is a no-op
	m.Join(7, owner)
	assert.Len(t, m.RoomClients(7), 2)
}

func TestRoomMap_UnregisterSweepsRooms(t *testing.T) {
	ctx := context.Background()
	m := NewRoomMap(nil)

	admin := testClient(99, "admin-conn")
	m.Register(ctx, admin)
	m.Join(7, admin)
	m.Join(8, admin)

	m.Unregister(ctx, admin)

	assert.Empty(t, m.RoomClients(7))
	assert.Empty(t, m.RoomClients(8))
}
