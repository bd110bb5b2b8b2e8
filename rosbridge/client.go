// Package rosbridge talks to a rosbridge websocket server, so the navigator
// can run against a robot whose ROS master is not reachable directly.
package rosbridge

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/buger/jsonparser"
	modular "github.com/edwinhayes/logrus-modular"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// ErrClosed is returned by operations on a closed connection.
var ErrClosed = errors.New("rosbridge connection closed")

// MessageHandler receives the raw JSON "msg" of a publish frame.
type MessageHandler func(msg []byte)

type operation struct {
	Op    string      `json:"op"`
	ID    string      `json:"id,omitempty"`
	Topic string      `json:"topic"`
	Type  string      `json:"type,omitempty"`
	Msg   interface{} `json:"msg,omitempty"`
}

// Client is one rosbridge connection. Handlers run on the read goroutine.
type Client struct {
	conn       *websocket.Conn
	logger     modular.Logger
	writeMutex sync.Mutex
	mutex      sync.Mutex
	handlers   map[string]MessageHandler
	advertised map[string]string
	nextID     uint64
	done       chan struct{}
	closeOnce  sync.Once
	err        error
}

// LogModule is the child logger a Client writes to when Dial is given none.
const LogModule = "rosbridge"

func Dial(ctx context.Context, url string, logger modular.Logger) (*Client, error) {
	if logger == nil {
		logger = modular.NewRootLogger(logrus.New()).GetOrCreateChild(LogModule, logrus.InfoLevel)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}

	c := &Client{
		conn:       conn,
		logger:     logger.WithField("rosbridge", url),
		handlers:   make(map[string]MessageHandler),
		advertised: make(map[string]string),
		done:       make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) id(op string) string {
	return op + ":" + strconv.FormatUint(atomic.AddUint64(&c.nextID, 1), 10)
}

func (c *Client) send(op operation) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(op); err != nil {
		return errors.Wrapf(err, "%s %s", op.Op, op.Topic)
	}
	return nil
}

// Advertise announces a topic before publishing. Repeated calls for the same
// topic are ignored.
func (c *Client) Advertise(topic, msgType string) error {
	c.mutex.Lock()
	done := c.advertised[topic] == msgType
	c.mutex.Unlock()
	if done {
		return nil
	}

	if err := c.send(operation{Op: "advertise", ID: c.id("advertise"), Topic: topic, Type: msgType}); err != nil {
		return err
	}

	c.mutex.Lock()
	c.advertised[topic] = msgType
	c.mutex.Unlock()
	return nil
}

// Publish sends msg, which must encode to the JSON form of the topic type.
func (c *Client) Publish(topic string, msg interface{}) error {
	return c.send(operation{Op: "publish", Topic: topic, Msg: msg})
}

// Subscribe routes publish frames for topic to handler, replacing any
// previous handler.
func (c *Client) Subscribe(topic, msgType string, handler MessageHandler) error {
	c.mutex.Lock()
	c.handlers[topic] = handler
	c.mutex.Unlock()

	return c.send(operation{Op: "subscribe", ID: c.id("subscribe"), Topic: topic, Type: msgType})
}

func (c *Client) Unsubscribe(topic string) error {
	c.mutex.Lock()
	delete(c.handlers, topic)
	c.mutex.Unlock()

	return c.send(operation{Op: "unsubscribe", ID: c.id("unsubscribe"), Topic: topic})
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err reports why the connection ended, once Done is closed.
func (c *Client) Err() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.err
}

func (c *Client) Close() error {
	c.writeMutex.Lock()
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMutex.Unlock()

	select {
	case <-c.done:
	case <-time.After(time.Second):
	}
	c.finish(ErrClosed)
	c.conn.Close()
	return err
}

func (c *Client) finish(err error) {
	c.closeOnce.Do(func() {
		c.mutex.Lock()
		c.err = err
		c.mutex.Unlock()
		close(c.done)
	})
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				err = ErrClosed
			}
			c.finish(err)
			return
		}
		c.dispatch(data)
	}
}

func (c *Client) dispatch(data []byte) {
	op, err := jsonparser.GetString(data, "op")
	if err != nil {
		c.logger.WithError(err).Warn("Frame without op")
		return
	}

	switch op {
	case "publish":
		topic, err := jsonparser.GetString(data, "topic")
		if err != nil {
			c.logger.WithError(err).Warn("Publish frame without topic")
			return
		}
		msg, _, _, err := jsonparser.Get(data, "msg")
		if err != nil {
			c.logger.WithError(err).WithField("topic", topic).Warn("Publish frame without msg")
			return
		}

		c.mutex.Lock()
		handler := c.handlers[topic]
		c.mutex.Unlock()
		if handler != nil {
			handler(msg)
		}
	case "status":
		level, _ := jsonparser.GetString(data, "level")
		text, _ := jsonparser.GetString(data, "msg")
		c.logger.WithField("level", level).Info(text)
	default:
		c.logger.WithField("op", op).Debug("Ignoring frame")
	}
}
