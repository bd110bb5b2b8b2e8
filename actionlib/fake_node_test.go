package actionlib_test

import (
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/ros"
)

type fakePublisher struct {
	mu             sync.Mutex
	published      []ros.Message
	numSubscribers int
}

func (p *fakePublisher) Publish(msg ros.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, msg)
}

func (p *fakePublisher) GetNumSubscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numSubscribers
}

func (p *fakePublisher) Shutdown() {}

func (p *fakePublisher) messages() []ros.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ros.Message(nil), p.published...)
}

type fakeSubscriber struct {
	mu            sync.Mutex
	callback      interface{}
	numPublishers int
}

func (s *fakeSubscriber) GetNumPublishers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numPublishers
}

func (s *fakeSubscriber) Shutdown() {}

// fakeNode records publishers and subscribers by topic; deliver runs a
// subscriber callback the way the node's Spin would.
type fakeNode struct {
	mu          sync.Mutex
	publishers  map[string]*fakePublisher
	subscribers map[string]*fakeSubscriber
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		publishers:  make(map[string]*fakePublisher),
		subscribers: make(map[string]*fakeSubscriber),
	}
}

func (n *fakeNode) NewPublisher(topic string, msgType ros.MessageType) (ros.Publisher, error) {
	return n.NewPublisherWithQueueSize(topic, msgType, ros.DefaultQueueSize)
}

func (n *fakeNode) NewPublisherWithQueueSize(topic string, msgType ros.MessageType, queueSize int) (ros.Publisher, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	pub := &fakePublisher{}
	n.publishers[topic] = pub
	return pub, nil
}

func (n *fakeNode) NewSubscriber(topic string, msgType ros.MessageType, callback interface{}) (ros.Subscriber, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sub := &fakeSubscriber{callback: callback}
	n.subscribers[topic] = sub
	return sub, nil
}

func (n *fakeNode) publisher(topic string) *fakePublisher {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.publishers[topic]
}

// connectPeers makes every action topic look connected to a server that
// has not published a status yet.
func (n *fakeNode) connectPeers() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, pub := range n.publishers {
		pub.mu.Lock()
		pub.numSubscribers = 1
		pub.mu.Unlock()
	}
	for _, sub := range n.subscribers {
		sub.mu.Lock()
		sub.numPublishers = 1
		sub.mu.Unlock()
	}
}

// connectServer connects the topics and delivers the server's first status.
func (n *fakeNode) connectServer() {
	n.connectPeers()
	n.deliver("move_base/status", &actionlib_msgs.GoalStatusArray{})
}

func (n *fakeNode) deliver(topic string, msg ros.Message) {
	n.mu.Lock()
	sub := n.subscribers[topic]
	n.mu.Unlock()

	event := ros.MessageEvent{PublisherName: "/move_base", ReceiptTime: time.Now()}
	fun := reflect.ValueOf(sub.callback)
	args := []reflect.Value{reflect.ValueOf(msg), reflect.ValueOf(event)}
	fun.Call(args[:fun.Type().NumIn()])
}

func (n *fakeNode) OK() bool     { return true }
func (n *fakeNode) SpinOnce()    {}
func (n *fakeNode) Spin()        {}
func (n *fakeNode) Shutdown()    {}
func (n *fakeNode) Name() string { return "/auto_navigation" }

func (n *fakeNode) Logger() ros.Logger {
	logger := ros.NewDefaultLogger()
	logger.SetSeverity(ros.LogLevelError)
	return logger
}

func (n *fakeNode) GetParam(name string) (interface{}, error) {
	return nil, errors.Errorf("no param %s", name)
}
func (n *fakeNode) SetParam(name string, value interface{}) error { return nil }
func (n *fakeNode) HasParam(name string) (bool, error)            { return false, nil }
func (n *fakeNode) SearchParam(name string) (string, error)       { return "", nil }
func (n *fakeNode) DeleteParam(name string) error                 { return nil }
func (n *fakeNode) NonRosArgs() []string                          { return nil }
