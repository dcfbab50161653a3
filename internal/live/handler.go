package live

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"altaviva-site/internal/prefstore"
	"altaviva-site/pkg/logger"
	"altaviva-site/pkg/navigation"
	"altaviva-site/pkg/utils"
	"altaviva-site/pkg/validator"
)

const (
	maxMessageSize = 1024
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	writeWait      = 10 * time.Second
)

type Options struct {
	Entries        []navigation.Item
	CookieMaxAge   int
	AllowedOrigins []string
}

// Handler upgrades requests to live sessions.
type Handler struct {
	provider prefstore.Provider
	entries  []navigation.Item
	maxAge   int
	origins  map[string]struct{}
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*websocket.Conn]*Session
}

func NewHandler(provider prefstore.Provider, opts Options) *Handler {
	entries := opts.Entries
	if entries == nil {
		entries = navigation.Entries()
	}

	h := &Handler{
		provider: provider,
		entries:  entries,
		maxAge:   opts.CookieMaxAge,
		origins:  make(map[string]struct{}),
		sessions: make(map[*websocket.Conn]*Session),
	}
	for _, origin := range opts.AllowedOrigins {
		h.origins[strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")] = struct{}{}
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  maxMessageSize,
		WriteBufferSize: maxMessageSize,
		CheckOrigin:     h.checkOrigin,
	}

	initMetrics()
	return h
}

// checkOrigin accepts same-host requests and the configured CORS origins.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(parsed.Host, r.Host) {
		return true
	}
	_, ok := h.origins[strings.TrimSuffix(strings.ToLower(origin), "/")]
	return ok
}

// Serve handles GET /live.
func (h *Handler) Serve(c *gin.Context) {
	activePath := utils.NormalizePath(c.Query("path"))
	if !validator.IsPagePath(activePath) {
		activePath = ""
	}

	storage := h.provider.ForRequest(c)
	fields := map[string]interface{}{"store": h.provider.Name(), "path": activePath}
	if visitor, err := prefstore.VisitorID(c); err == nil {
		fields["visitor_id"] = visitor
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Live upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}

	session := NewSession(storage, h.provider.ClientSide(), h.maxAge, h.entries, activePath)
	h.track(conn, session)
	defer h.untrack(conn)

	logger.Debug("Live session opened", fields)
	h.run(conn, session)
	logger.Debug("Live session closed", fields)
}

func (h *Handler) run(conn *websocket.Conn, session *Session) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.ping(conn, done)

	if err := h.write(conn, session.Snapshot()); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Live connection dropped", map[string]interface{}{"error": err.Error()})
			}
			return
		}

		var ev Event
		var snapshot Snapshot
		if err := json.Unmarshal(data, &ev); err != nil {
			snapshot = session.errorSnapshot(err)
			recordEvent("", err)
		} else {
			snapshot, err = session.Handle(ev)
			recordEvent(ev.Type, err)
		}

		if err := h.write(conn, snapshot); err != nil {
			return
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, snapshot Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snapshot)
}

func (h *Handler) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) track(conn *websocket.Conn, session *Session) {
	h.mu.Lock()
	h.sessions[conn] = session
	h.mu.Unlock()
	activeSessions.Inc()
}

func (h *Handler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	session, ok := h.sessions[conn]
	delete(h.sessions, conn)
	h.mu.Unlock()

	if ok {
		session.Close()
		activeSessions.Dec()
	}
	conn.Close()
}

// SessionCount returns the number of connected sessions.
func (h *Handler) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close disconnects every session.
func (h *Handler) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.sessions))
	for conn := range h.sessions {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
	}
}
