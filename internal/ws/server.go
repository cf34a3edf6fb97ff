package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/naiplawan/kaichid-sub001/internal/services/session"
)

type WsServer struct {
	hub             *Hub
	router          *Router
	sessions        session.Service
	dispatchTimeout time.Duration
}

func NewWsServer(h *Hub, sessions session.Service, dispatchTimeout time.Duration) *WsServer {
	srv := &WsServer{
		hub:             h,
		router:          NewRouter(),
		sessions:        sessions,
		dispatchTimeout: dispatchTimeout,
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true }, // dev-only
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	sock, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	// The connection is anonymous until a join_room event binds it.
	conn := newClientConn(uuid.NewString(), sock)
	s.hub.Register(conn)

	go conn.writePump()
	go s.reader(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	Register(s.router, EventJoinRoom,
		func(ctx context.Context, cc *ConnContext, req JoinRoomRequest) (AckBody, error) {
			return AckBody{}, s.sessions.JoinRoom(ctx, cc.ConnID, req.RoomCode, req.UserID)
		})

	Register(s.router, EventStartGame,
		func(ctx context.Context, cc *ConnContext, req StartGameRequest) (AckBody, error) {
			return AckBody{}, s.sessions.StartGame(ctx, req.RoomCode)
		})

	Register(s.router, EventAssignTurn,
		func(ctx context.Context, cc *ConnContext, req AssignTurnRequest) (AckBody, error) {
			return AckBody{}, s.sessions.AssignTurn(ctx, req.RoomCode, req.PlayerID)
		})

	Register(s.router, EventTurnEnded,
		func(ctx context.Context, cc *ConnContext, req TurnEndedRequest) (AckBody, error) {
			return AckBody{}, s.sessions.AdvanceTurn(ctx, req.RoomCode, req.NextPlayerID)
		})

	Register(s.router, EventSendResponse,
		func(ctx context.Context, cc *ConnContext, req SendResponseRequest) (AckBody, error) {
			return AckBody{}, s.sessions.SendResponse(ctx, req.RoomCode, req.Player, req.Message)
		})

	Register(s.router, EventGameOver,
		func(ctx context.Context, cc *ConnContext, req GameOverRequest) (AckBody, error) {
			return AckBody{}, s.sessions.EndGame(ctx, req.RoomCode)
		})
}

func (s *WsServer) reader(conn *clientConn) {
	defer func() {
		s.hub.Unregister(conn.id)
		s.sessions.Disconnect(conn.id)
	}()

	conn.sock.SetReadLimit(maxMessageSize)
	_ = conn.sock.SetReadDeadline(time.Now().Add(pongWait))
	conn.sock.SetPongHandler(func(string) error {
		return conn.sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: conn.id}

	for {
		_, data, err := conn.sock.ReadMessage()
		if err != nil {
			return // client closed or errored
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.reply(conn, outEnvelope{Event: "error", Body: ErrorBody{Error: "malformed frame"}})
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
		res, err := s.router.dispatch(ctx, cc, env)
		cancel()

		// ---- error -> {"event":"error", "body":{...}} ---------------
		if err != nil {
			if errors.Is(err, session.ErrRoomNotFound) {
				// Room already torn down; benign, the event is dropped.
				zap.L().Debug("ws.event_dropped",
					zap.String("event", env.Event), zap.String("conn", conn.id))
			}
			s.reply(conn, outEnvelope{Event: "error", Body: ErrorBody{Error: err.Error()}})
			continue
		}

		// ---- success -> {"event":"<evt>-ack", "body":{...}} --------
		s.reply(conn, outEnvelope{Event: env.Event + "-ack", Body: res})
	}
}

func (s *WsServer) reply(conn *clientConn, env outEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		zap.L().Error("ws.reply_marshal", zap.String("event", env.Event), zap.Error(err))
		return
	}
	_ = conn.Send(data)
}
