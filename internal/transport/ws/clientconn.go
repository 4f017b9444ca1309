package ws

import (
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/kiryu-dev/network-game/internal/domain"
)

type client struct {
	conn *websocket.Conn
	uuid string
}

func newClient(conn *websocket.Conn, uuid string) client {
	return client{
		conn: conn,
		uuid: uuid,
	}
}

func (c client) Uuid() string {
	return c.uuid
}

func (c client) WriteMessage(msg domain.Message) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.WithMessage(err, "marshal message")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessage(err, "websocket conn write message")
	}
	return nil
}

// ReadMessage reports any transport failure as domain.ErrConnectionClosed and
// an undecodable or payload-less move as domain.ErrEmptyMessage.
func (c client) ReadMessage() (domain.Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return domain.Message{}, errors.WithMessage(domain.ErrConnectionClosed, err.Error())
	}
	var msg domain.Message
	if err := jsoniter.Unmarshal(data, &msg); err != nil {
		return domain.Message{}, errors.WithMessage(domain.ErrEmptyMessage, err.Error())
	}
	if msg.Type == domain.PlayerMove && msg.Payload == nil {
		return domain.Message{}, domain.ErrEmptyMessage
	}
	return msg, nil
}

func (c client) Close() {
	_ = c.conn.Close()
}
