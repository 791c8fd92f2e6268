package gateway

import (
	"context"
	"sync/atomic"

	"github.com/lmxriel/petcare/internal/config"
	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/service"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/mbeoliero/kit/log"
	"github.com/redis/go-redis/v9"
)

// WsServer is the WebSocket server
type WsServer struct {
	cfg            *config.Config
	roomMap        *RoomMap
	registerChan   chan *Client
	unregisterChan chan *Client
	pushChan       chan *PushTask
	convService    *service.ConversationService
	onlineUserNum  atomic.Int64
	onlineConnNum  atomic.Int64
	maxConnNum     int64
}

// PushTask carries one event bound for a conversation's room
type PushTask struct {
	ConversationId int64
	Event          string
	Payload        interface{}
	ExcludeConnId  string
}

// NewWsServer creates a new WebSocket server
func NewWsServer(cfg *config.Config, rdb *redis.Client, convService *service.ConversationService) *WsServer {
	return &WsServer{
		cfg:            cfg,
		roomMap:        NewRoomMap(rdb),
		registerChan:   make(chan *Client, 1000),
		unregisterChan: make(chan *Client, 1000),
		pushChan:       make(chan *PushTask, cfg.WebSocket.PushChannelSize),
		convService:    convService,
		maxConnNum:     cfg.WebSocket.MaxConnNum,
	}
}

// Run starts the WebSocket server
func (s *WsServer) Run(ctx context.Context) {
	go s.eventLoop(ctx)

	workerNum := s.cfg.WebSocket.PushWorkerNum
	if workerNum <= 0 {
		workerNum = 10
	}
	for i := 0; i < workerNum; i++ {
		go s.pushLoop(ctx)
	}
	log.Info("started %d push workers", workerNum)
}

// eventLoop handles client registration and unregistration
func (s *WsServer) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-s.registerChan:
			s.registerClient(ctx, client)
		case client := <-s.unregisterChan:
			s.unregisterClient(ctx, client)
		}
	}
}

// pushLoop handles async event pushing
func (s *WsServer) pushLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-s.pushChan:
			s.processPushTask(ctx, task)
		}
	}
}

// processPushTask delivers one event to everyone in the room
func (s *WsServer) processPushTask(ctx context.Context, task *PushTask) {
	for _, client := range s.roomMap.RoomClients(task.ConversationId) {
		if task.ExcludeConnId != "" && client.ConnId == task.ExcludeConnId {
			continue
		}

		if err := client.Send(task.Event, task.Payload); err != nil {
			log.CtxDebug(ctx, "push to client failed: user_id=%d, conn_id=%s, event=%s, error=%v",
				client.UserId, client.ConnId, task.Event, err)
		}
	}
}

// registerClient registers a client
func (s *WsServer) registerClient(ctx context.Context, client *Client) {
	wasOnline := s.roomMap.HasConnection(client.UserId)
	if !wasOnline {
		s.onlineUserNum.Add(1)
	}

	s.roomMap.Register(ctx, client)
	s.onlineConnNum.Add(1)

	log.CtxInfo(ctx, "client registered: user_id=%d, role=%s, conn_id=%s, online_users=%d, online_conns=%d",
		client.UserId, client.Role, client.ConnId, s.onlineUserNum.Load(), s.onlineConnNum.Load())
}

// unregisterClient unregisters a client
func (s *WsServer) unregisterClient(ctx context.Context, client *Client) {
	isUserOffline := s.roomMap.Unregister(ctx, client)
	s.onlineConnNum.Add(-1)

	if isUserOffline {
		s.onlineUserNum.Add(-1)
	}

	log.CtxInfo(ctx, "client unregistered: user_id=%d, conn_id=%s, user_offline=%v, online_users=%d, online_conns=%d",
		client.UserId, client.ConnId, isUserOffline, s.onlineUserNum.Load(), s.onlineConnNum.Load())
}

// UnregisterClient queues client for unregistration
func (s *WsServer) UnregisterClient(client *Client) {
	select {
	case s.unregisterChan <- client:
	default:
		log.Warn("unregister channel full: user_id=%d", client.UserId)
	}
}

// JoinRoom subscribes a client to a conversation after an ownership check.
// Staff may join any room; a pet owner only their own conversation.
func (s *WsServer) JoinRoom(ctx context.Context, client *Client, conversationId int64) error {
	if err := s.convService.CanAccess(ctx, client.UserId, client.Role, conversationId); err != nil {
		log.CtxWarn(ctx, "join rejected: user_id=%d, conversation_id=%d, error=%v",
			client.UserId, conversationId, err)
		return err
	}

	s.roomMap.Join(conversationId, client)
	log.CtxInfo(ctx, "client joined room: user_id=%d, conversation_id=%d, conn_id=%s",
		client.UserId, conversationId, client.ConnId)
	return nil
}

// RelayTyping forwards a typing indicator to the rest of the room. The sender
// must have joined the room first.
func (s *WsServer) RelayTyping(ctx context.Context, sender *Client, event string, data *TypingData) {
	joined := false
	for _, c := range s.roomMap.RoomClients(data.ConversationId) {
		if c.ConnId == sender.ConnId {
			joined = true
			break
		}
	}
	if !joined {
		log.CtxDebug(ctx, "typing from non-member dropped: user_id=%d, conversation_id=%d",
			sender.UserId, data.ConversationId)
		return
	}

	s.enqueue(&PushTask{
		ConversationId: data.ConversationId,
		Event:          event,
		Payload:        data,
		ExcludeConnId:  sender.ConnId,
	})
}

// PushNewMessage fans a stored message out to its conversation's room
func (s *WsServer) PushNewMessage(ctx context.Context, msg *entity.Message) {
	s.enqueue(&PushTask{
		ConversationId: msg.ConversationId,
		Event:          constant.EventNewMessage,
		Payload: &NewMessageData{
			MessageId:      msg.Id,
			ConversationId: msg.ConversationId,
			SenderId:       msg.SenderId,
			SenderRole:     string(msg.SenderRole),
			Content:        msg.Content,
			IsRead:         msg.IsRead,
			CreatedAt:      msg.CreatedAt,
		},
	})
}

// PushMessagesRead announces a read receipt to the conversation's room
func (s *WsServer) PushMessagesRead(ctx context.Context, conversationId int64, readerRole constant.Role, messageIds []int64) {
	s.enqueue(&PushTask{
		ConversationId: conversationId,
		Event:          constant.EventMessagesRead,
		Payload: &MessagesReadData{
			ConversationId: conversationId,
			ReaderRole:     string(readerRole),
			MessageIds:     messageIds,
		},
	})
}

// enqueue queues a push task, dropping it if the channel is full
func (s *WsServer) enqueue(task *PushTask) {
	select {
	case s.pushChan <- task:
	default:
		log.Warn("push channel full, event dropped: event=%s, conversation_id=%d", task.Event, task.ConversationId)
	}
}

// GetOnlineUserCount returns online user count
func (s *WsServer) GetOnlineUserCount() int64 {
	return s.onlineUserNum.Load()
}

// GetOnlineConnCount returns online connection count
func (s *WsServer) GetOnlineConnCount() int64 {
	return s.onlineConnNum.Load()
}
