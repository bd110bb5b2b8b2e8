// Package ros is a ROS1 node client: master registration over XML-RPC, TCPROS
// publishers and subscribers, parameters, and ROS time.
package ros

import (
	"bytes"
	"time"
)

// MessageType describes a ROS message: its full name, md5 sum and definition
// text, and how to allocate a value of it.
type MessageType interface {
	Text() string
	MD5Sum() string
	Name() string
	NewMessage() Message
}

// Message is a value serialized in the TCPROS little-endian layout.
type Message interface {
	Type() MessageType
	Serialize(buf *bytes.Buffer) error
	Deserialize(buf *bytes.Reader) error
}

type Node interface {
	NewPublisher(topic string, msgType MessageType) (Publisher, error)
	NewPublisherWithQueueSize(topic string, msgType MessageType, queueSize int) (Publisher, error)
	// callback should be a function which takes 0, 1, or 2 arguments.
	// If it takes 0 arguments, it will simply be called without the
	// message.  1-argument functions are the normal case, and the
	// argument should be of the generated message type.  If the
	// function takes 2 arguments, the first argument should be of the
	// generated message type and the second argument should be of
	// type MessageEvent.
	NewSubscriber(topic string, msgType MessageType, callback interface{}) (Subscriber, error)

	OK() bool
	SpinOnce()
	Spin()
	Shutdown()

	GetParam(name string) (interface{}, error)
	SetParam(name string, value interface{}) error
	HasParam(name string) (bool, error)
	SearchParam(name string) (string, error)
	DeleteParam(name string) error

	Name() string
	Logger() Logger

	NonRosArgs() []string
}

func NewNode(name string, args []string) (Node, error) {
	return newDefaultNode(name, args, NewDefaultLogger())
}

// NewNodeWithLogger is NewNode with a caller supplied logger, so the
// severity is already in effect while the node registers.
func NewNodeWithLogger(name string, args []string, logger Logger) (Node, error) {
	return newDefaultNode(name, args, logger)
}

type Publisher interface {
	Publish(msg Message)
	GetNumSubscribers() int
	Shutdown()
}

type Subscriber interface {
	GetNumPublishers() int
	Shutdown()
}

// Optional second argument to a Subscriber callback.
type MessageEvent struct {
	PublisherName    string
	ReceiptTime      time.Time
	ConnectionHeader map[string]string
}
