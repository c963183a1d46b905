package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ClientConn 负责发送（写）数据到观战客户端的轻量包装
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 4),
	}
}

// Enqueue 将要发送的帧压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
		// 观战者太慢：丢帧，不能阻塞模拟
	}
}

// Close 关闭发送队列，写协程随后关闭底层连接
func (c *ClientConn) Close() {
	c.once.Do(func() { close(c.send) })
}

// writePump 独立协程，负责从 send 队列写出到 WS
func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump 观战者不发送数据，只用来感知断开
func (c *ClientConn) readPump(hub *FrameHub) {
	defer hub.Unregister(c)
	c.ws.SetReadLimit(512)
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// FrameHub 把每一帧原始 RGBA 像素推送给所有观战连接
type FrameHub struct {
	mu      sync.RWMutex
	clients map[*ClientConn]struct{}
}

func NewFrameHub() *FrameHub {
	return &FrameHub{clients: make(map[*ClientConn]struct{})}
}

func (h *FrameHub) Register(c *ClientConn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister 移除并关闭观战连接，可重复调用
func (h *FrameHub) Unregister(c *ClientConn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.Close()
}

// Len 当前观战连接数
func (h *FrameHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast 拷贝一次像素后分发给所有观战者
func (h *FrameHub) Broadcast(pixels []byte) {
	frame := append([]byte(nil), pixels...)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.Enqueue(frame)
	}
}

// CloseAll 关闭全部观战连接（进程退出时）
func (h *FrameHub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*ClientConn]struct{})
	h.mu.Unlock()
	for c := range clients {
		c.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 管理端口仅供本地调试：允许所有来源
		return true
	},
}

// HandleWS 观战接入：GET /ws/frames
func (h *FrameHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	client := NewClientConn(ws)
	h.Register(client)
	Log.Infof("spectator joined from %s (%d watching)", r.RemoteAddr, h.Len())

	go client.writePump()
	go client.readPump(h)
}
