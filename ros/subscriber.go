package ros

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/xmlrpc"
)

// Upper bound on a single TCPROS message.
const maxMessageSize = 64 << 20

type messageEvent struct {
	bytes []byte
	event MessageEvent
}

// The subscription state is owned by its goroutine (start); other
// goroutines talk to it through channels.
type defaultSubscriber struct {
	node             *defaultNode
	logger           modular.Logger
	topic            string
	msgType          MessageType
	pubList          []string
	pubListChan      chan []string
	msgChan          chan messageEvent
	callbacks        []interface{}
	addCallbackChan  chan interface{}
	shutdownChan     chan struct{}
	done             chan struct{}
	shutdownOnce     sync.Once
	connections      map[string]chan struct{}
	disconnectedChan chan string
	numPublishers    int32
}

func newDefaultSubscriber(node *defaultNode, topic string, msgType MessageType, callback interface{}) *defaultSubscriber {
	return &defaultSubscriber{
		node:             node,
		logger:           node.log.WithField("topic", topic),
		topic:            topic,
		msgType:          msgType,
		pubListChan:      make(chan []string, 10),
		msgChan:          make(chan messageEvent, 10),
		callbacks:        []interface{}{callback},
		addCallbackChan:  make(chan interface{}, 10),
		shutdownChan:     make(chan struct{}),
		done:             make(chan struct{}),
		connections:      make(map[string]chan struct{}),
		disconnectedChan: make(chan string, 10),
	}
}

func (sub *defaultSubscriber) updatePublishers(pubURIs []string) {
	select {
	case sub.pubListChan <- pubURIs:
	case <-sub.done:
	}
}

func (sub *defaultSubscriber) addCallback(callback interface{}) {
	select {
	case sub.addCallbackChan <- callback:
	case <-sub.done:
	}
}

func (sub *defaultSubscriber) start(wg *sync.WaitGroup) {
	logger := sub.logger
	node := sub.node
	logger.Debug("Subscriber goroutine started")
	defer func() {
		node.removeSubscriber(sub.topic)
		close(sub.done)
		logger.Debug("Subscriber goroutine exit")
		wg.Done()
	}()

	for {
		select {
		case list := <-sub.pubListChan:
			deadPubs := setDifference(sub.pubList, list)
			newPubs := setDifference(list, sub.pubList)
			sub.pubList = list

			for _, pub := range deadPubs {
				if quitChan, ok := sub.connections[pub]; ok {
					close(quitChan)
					delete(sub.connections, pub)
				}
			}
			for _, pub := range newPubs {
				addr, err := sub.requestTopic(pub)
				if err != nil {
					logger.Warnf("requestTopic to %s failed: %v", pub, err)
					continue
				}
				quitChan := make(chan struct{})
				sub.connections[pub] = quitChan
				go sub.connectRemotePublisher(pub, addr, quitChan)
			}
			sub.countPublishers()
		case callback := <-sub.addCallbackChan:
			sub.callbacks = append(sub.callbacks, callback)
		case msgEvent := <-sub.msgChan:
			job := sub.bindCallbacks(msgEvent)
			select {
			case node.jobChan <- job:
			case <-sub.shutdownChan:
			}
		case pubURI := <-sub.disconnectedChan:
			logger.Debugf("Disconnected from %s", pubURI)
			delete(sub.connections, pubURI)
			sub.countPublishers()
		case <-sub.shutdownChan:
			for _, quitChan := range sub.connections {
				close(quitChan)
			}
			sub.connections = map[string]chan struct{}{}
			sub.countPublishers()
			ctx, cancel := context.WithTimeout(context.Background(), xmlrpc.DefaultTimeout)
			_, err := callRosAPI(ctx, node.masterURI, "unregisterSubscriber", node.qualifiedName, sub.topic, node.xmlrpcURI)
			cancel()
			if err != nil {
				logger.Warn(err)
			}
			return
		}
	}
}

func (sub *defaultSubscriber) countPublishers() {
	atomic.StoreInt32(&sub.numPublishers, int32(len(sub.connections)))
}

// requestTopic negotiates TCPROS with the publisher node at pubURI and
// returns the host:port to connect to.
func (sub *defaultSubscriber) requestTopic(pubURI string) (string, error) {
	protocols := []interface{}{[]interface{}{"TCPROS"}}
	result, err := callRosAPI(sub.node.ctx, pubURI, "requestTopic", sub.node.qualifiedName, sub.topic, protocols)
	if err != nil {
		return "", err
	}
	protocolParams, ok := result.([]interface{})
	if !ok || len(protocolParams) < 3 {
		return "", errors.Errorf("malformed protocol parameters %v", result)
	}
	if name, _ := protocolParams[0].(string); name != "TCPROS" {
		return "", errors.Errorf("unsupported protocol %v", protocolParams[0])
	}
	host, ok := protocolParams[1].(string)
	if !ok {
		return "", errors.Errorf("malformed publisher host %v", protocolParams[1])
	}
	port, ok := protocolParams[2].(int32)
	if !ok {
		return "", errors.Errorf("malformed publisher port %v", protocolParams[2])
	}
	return net.JoinHostPort(host, fmt.Sprint(port)), nil
}

// bindCallbacks returns the job that deserializes the message and runs
// the callbacks registered so far on the spinning goroutine.
func (sub *defaultSubscriber) bindCallbacks(msgEvent messageEvent) func() {
	callbacks := make([]interface{}, len(sub.callbacks))
	copy(callbacks, sub.callbacks)
	logger := sub.logger
	msgType := sub.msgType
	return func() {
		m := msgType.NewMessage()
		if err := m.Deserialize(bytes.NewReader(msgEvent.bytes)); err != nil {
			logger.Errorf("Failed to deserialize %s: %v", msgType.Name(), err)
			return
		}
		args := []reflect.Value{reflect.ValueOf(m), reflect.ValueOf(msgEvent.event)}
		for _, callback := range callbacks {
			fun := reflect.ValueOf(callback)
			fun.Call(args[0:fun.Type().NumIn()])
		}
	}
}

func (sub *defaultSubscriber) connectRemotePublisher(pubURI string, addr string, quitChan chan struct{}) {
	err := sub.readRemotePublisher(addr, quitChan)
	select {
	case <-quitChan:
		return
	default:
	}
	if err != nil {
		sub.logger.Warnf("Connection to %s: %v", pubURI, err)
	}
	select {
	case sub.disconnectedChan <- pubURI:
	case <-sub.done:
	}
}

func (sub *defaultSubscriber) readRemotePublisher(addr string, quitChan chan struct{}) error {
	conn, err := net.DialTimeout("tcp", addr, handshakeTimeout)
	if err != nil {
		return err
	}
	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-quitChan:
		case <-closed:
		}
		conn.Close()
	}()

	typeName, md5sum := sub.msgType.Name(), sub.msgType.MD5Sum()
	headers := []header{
		{"topic", sub.topic},
		{"md5sum", md5sum},
		{"type", typeName},
		{"callerid", sub.node.qualifiedName},
	}
	conn.SetDeadline(time.Now().Add(handshakeTimeout))
	if err := writeConnectionHeader(headers, conn); err != nil {
		return errors.Wrap(err, "writing connection header")
	}
	resHeaders, err := readConnectionHeader(conn)
	if err != nil {
		return errors.Wrap(err, "reading response header")
	}
	resHeaderMap := headerMap(resHeaders)
	if errMsg, ok := resHeaderMap["error"]; ok {
		return errors.Errorf("publisher refused connection: %s", errMsg)
	}
	if resHeaderMap["type"] != typeName || resHeaderMap["md5sum"] != md5sum {
		return errors.Errorf("incompatible message type %s/%s, expected %s/%s",
			resHeaderMap["type"], resHeaderMap["md5sum"], typeName, md5sum)
	}
	conn.SetDeadline(time.Time{})

	event := MessageEvent{
		PublisherName:    resHeaderMap["callerid"],
		ConnectionHeader: resHeaderMap,
	}
	for {
		var msgSize uint32
		if err := binary.Read(conn, binary.LittleEndian, &msgSize); err != nil {
			return errors.Wrap(err, "reading message size")
		}
		if msgSize > maxMessageSize {
			return errors.Errorf("message of %d bytes exceeds limit", msgSize)
		}
		buffer := make([]byte, int(msgSize))
		if _, err := io.ReadFull(conn, buffer); err != nil {
			return errors.Wrap(err, "reading message body")
		}
		event.ReceiptTime = time.Now()
		select {
		case sub.msgChan <- messageEvent{bytes: buffer, event: event}:
		case <-quitChan:
			return nil
		}
	}
}

// GetNumPublishers returns the number of publishers currently connected.
func (sub *defaultSubscriber) GetNumPublishers() int {
	return int(atomic.LoadInt32(&sub.numPublishers))
}

func (sub *defaultSubscriber) Shutdown() {
	sub.shutdownOnce.Do(func() { close(sub.shutdownChan) })
	<-sub.done
}
