package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/redis/go-redis/v9"
)

// RoomMap tracks which clients belong to which user, and which clients have
// joined each conversation's room
type RoomMap struct {
	mu    sync.RWMutex
	users map[int64][]*Client          // userId -> connections
	rooms map[int64]map[string]*Client // conversationId -> connId -> client
	rdb   *redis.Client
}

// NewRoomMap creates a new RoomMap
func NewRoomMap(rdb *redis.Client) *RoomMap {
	return &RoomMap{
		users: make(map[int64][]*Client),
		rooms: make(map[int64]map[string]*Client),
		rdb:   rdb,
	}
}

// Register registers a client under its user
func (m *RoomMap) Register(ctx context.Context, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[client.UserId] = append(m.users[client.UserId], client)

	m.setOnline(ctx, client.UserId)
}

// Unregister removes a client from its user and from every room it joined.
// Returns true if the user has no connections left.
func (m *RoomMap) Unregister(ctx context.Context, client *Client) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns := m.users[client.UserId]
	newConns := make([]*Client, 0, len(conns))
	for _, c := range conns {
		if c.ConnId != client.ConnId {
			newConns = append(newConns, c)
		}
	}

	for convId, room := range m.rooms {
		delete(room, client.ConnId)
		if len(room) == 0 {
			delete(m.rooms, convId)
		}
	}

	if len(newConns) == 0 {
		delete(m.users, client.UserId)
		m.setOffline(ctx, client.UserId)
		return true
	}

	m.users[client.UserId] = newConns
	return false
}

// Join adds a client to a conversation's room
func (m *RoomMap) Join(conversationId int64, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[conversationId]
	if !ok {
		room = make(map[string]*Client)
		m.rooms[conversationId] = room
	}
	room[client.ConnId] = client
}

// RoomClients returns the clients joined to a conversation's room
func (m *RoomMap) RoomClients(conversationId int64) []*Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	room, ok := m.rooms[conversationId]
	if !ok {
		return nil
	}
	clients := make([]*Client, 0, len(room))
	for _, c := range room {
		clients = append(clients, c)
	}
	return clients
}

// UserClients returns all connections for a user
func (m *RoomMap) UserClients(userId int64) []*Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conns := m.users[userId]
	clients := make([]*Client, len(conns))
	copy(clients, conns)
	return clients
}

// HasConnection checks if user has any connection
func (m *RoomMap) HasConnection(userId int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users[userId]) > 0
}

// IsOnline checks if user is online (checks Redis for distributed support)
func (m *RoomMap) IsOnline(ctx context.Context, userId int64) bool {
	if m.HasConnection(userId) {
		return true
	}

	if m.rdb != nil {
		key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
		exists, _ := m.rdb.Exists(ctx, key).Result()
		return exists > 0
	}

	return false
}

// setOnline marks user as online in Redis
func (m *RoomMap) setOnline(ctx context.Context, userId int64) {
	if m.rdb == nil {
		return
	}

	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	m.rdb.Set(ctx, key, "1", 60*time.Second)
}

// setOffline marks user as offline in Redis
func (m *RoomMap) setOffline(ctx context.Context, userId int64) {
	if m.rdb == nil {
		return
	}

	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	m.rdb.Del(ctx, key)
}
