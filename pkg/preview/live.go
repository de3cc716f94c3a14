package preview

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/element"
)

// Op is a live session operation.
type Op string

const (
	OpSetAttribute    Op = "setAttribute"
	OpRemoveAttribute Op = "removeAttribute"
	OpSetProperty     Op = "setProperty"
)

// Request is sent by live session clients. Value is a JSON string for
// setAttribute and any JSON value for setProperty; null unsets a prop.
type Request struct {
	Op    Op              `json:"op"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MessageType is the type of a server message.
type MessageType string

const (
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// Message is sent to live session clients after the element mounts and
// after every request.
type Message struct {
	Type       MessageType       `json:"type"`
	HTML       string            `json:"html,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Error      string            `json:"error,omitempty"`
	Code       string            `json:"code,omitempty"`
}

// session is one websocket connection driving one connected element.
type session struct {
	conn *websocket.Conn
	el   *element.Element
}

// handleLive connects an element for the lifetime of the websocket.
// Closing the socket disconnects the element, which unmounts it.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if _, ok := s.registry.Get(tag); !ok {
		writeError(w, http.StatusNotFound, notFound(tag))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "tag", tag, "error", err)
		return
	}

	doc := element.NewDocument(s.registry)
	el, err := doc.CreateElement(tag)
	if err != nil {
		conn.Close()
		return
	}
	sess := &session{conn: conn, el: el}

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	s.logger.Info("live session opened", "tag", tag, "remote", r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
		if err := doc.Close(); err != nil {
			s.logger.Error("live session unmount failed", "tag", tag, "error", err)
		}
		conn.Close()
		s.logger.Info("live session closed", "tag", tag)
	}()

	var setupErr error
	for _, a := range queryAttrs(r) {
		if err := el.SetAttribute(a[0], a[1]); err != nil && setupErr == nil {
			setupErr = err
		}
	}
	if err := doc.Append(el); err != nil && setupErr == nil {
		setupErr = err
	}
	if !s.reply(sess, setupErr) {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			if !s.reply(sess, fmt.Errorf("invalid request: %w", err)) {
				return
			}
			continue
		}
		if !s.reply(sess, sess.apply(req)) {
			return
		}
	}
}

func (sess *session) apply(req Request) error {
	if req.Name == "" {
		return fmt.Errorf("%s: name is required", req.Op)
	}

	switch req.Op {
	case OpSetAttribute:
		var value string
		if err := json.Unmarshal(req.Value, &value); err != nil {
			return fmt.Errorf("setAttribute: value must be a string: %w", err)
		}
		return sess.el.SetAttribute(req.Name, value)
	case OpRemoveAttribute:
		return sess.el.RemoveAttribute(req.Name)
	case OpSetProperty:
		var value any
		if len(req.Value) > 0 {
			if err := json.Unmarshal(req.Value, &value); err != nil {
				return fmt.Errorf("setProperty: %w", err)
			}
		}
		return sess.el.Set(req.Name, value)
	}
	return fmt.Errorf("unknown op %q", req.Op)
}

// reply sends an error message when err is set and a render message
// otherwise. It reports whether the connection is still usable.
func (s *Server) reply(sess *session, err error) bool {
	msg := Message{Type: MessageRender}
	if err != nil {
		msg = Message{Type: MessageError, Error: err.Error(), Code: errors.Code(err)}
	} else {
		html, rerr := s.html.ElementToString(sess.el)
		if rerr != nil {
			msg = Message{Type: MessageError, Error: rerr.Error()}
		} else {
			msg.HTML = html
			msg.Attributes = make(map[string]string)
			for _, a := range sess.el.Attributes() {
				msg.Attributes[a[0]] = a[1]
			}
		}
	}

	data, merr := json.Marshal(msg)
	if merr != nil {
		return false
	}
	if werr := sess.conn.WriteMessage(websocket.TextMessage, data); werr != nil {
		s.logger.Debug("live session write failed", "tag", sess.el.TagName(), "error", werr)
		return false
	}
	return true
}
