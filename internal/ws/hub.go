package ws

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// ErrAlreadyConnected is returned by Register when the player already has a live connection.
var ErrAlreadyConnected = errors.New("connection already exists")

// lockedConn serializes writes; a websocket allows one writer at a time.
type lockedConn struct {
	mu   sync.Mutex
	conn Conn
}

// Lock wraps conn so concurrent writers take turns.
func Lock(conn Conn) Conn {
	if lc, ok := conn.(*lockedConn); ok {
		return lc
	}
	return &lockedConn{conn: conn}
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) WriteMessage(messageType int, data []byte) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteMessage(messageType, data)
}

func (lc *lockedConn) Close() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.Close()
}

// GameConnections holds the sockets watching one game, keyed by player ID.
type GameConnections struct {
	connections map[string]*lockedConn
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*lockedConn),
	}
}

// Register adds conn for playerID and returns the wrapper every later write to conn must go through.
// A player keeps their first healthy connection; a duplicate is closed and ErrAlreadyConnected returned.
func (gc *GameConnections) Register(playerID string, conn Conn) (Conn, error) {
	gc.mu.Lock()
	if _, exists := gc.connections[playerID]; exists {
		gc.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil, ErrAlreadyConnected
	}
	lc := &lockedConn{conn: conn}
	gc.connections[playerID] = lc
	gc.mu.Unlock()

	log.Debugw("registered connection", "player", playerID)
	return lc, nil
}

// Unregister drops playerID's connection if it is still conn. Either the raw
// connection or the wrapper returned by Register may be passed.
func (gc *GameConnections) Unregister(playerID string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	current, exists := gc.connections[playerID]
	if exists && (Conn(current) == conn || current.conn == conn) {
		delete(gc.connections, playerID)
		log.Debugw("unregistered connection", "player", playerID)
	}
}

// Broadcast sends msg to every connection; connections that fail to write are dropped.
func (gc *GameConnections) Broadcast(msg Message) {
	gc.mu.RLock()
	active := make(map[string]*lockedConn, len(gc.connections))
	for playerID, conn := range gc.connections {
		active[playerID] = conn
	}
	gc.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send message", "player", playerID, "type", msg.Type, "error", err)
			gc.Unregister(playerID, conn)
		}
	}
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

// Hub maps game IDs to their connections.
type Hub struct {
	games map[string]*GameConnections
	mu    sync.Mutex
}

func NewHub() *Hub {
	return &Hub{games: make(map[string]*GameConnections)}
}

// For returns the connection set of gameID, creating it on first use.
func (h *Hub) For(gameID string) *GameConnections {
	h.mu.Lock()
	defer h.mu.Unlock()

	gc, ok := h.games[gameID]
	if !ok {
		gc = NewGameConnections()
		h.games[gameID] = gc
	}
	return gc
}

// Broadcast sends msg to everyone watching gameID.
func (h *Hub) Broadcast(gameID string, msg Message) {
	h.For(gameID).Broadcast(msg)
}
