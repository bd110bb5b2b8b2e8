package ros

import (
	"bytes"
	"container/list"
	"context"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/xmlrpc"
)

const (
	handshakeTimeout = 5 * time.Second
	writeTimeout     = time.Second
)

type remoteSubscriberSessionError struct {
	session *remoteSubscriberSession
	err     error
}

func (e *remoteSubscriberSessionError) Error() string {
	return "subscriber session " + e.session.callerID + ": " + e.err.Error()
}

type defaultPublisher struct {
	node              *defaultNode
	logger            modular.Logger
	topic             string
	msgType           MessageType
	queueSize         int
	msgChan           chan []byte
	shutdownChan      chan struct{}
	done              chan struct{}
	shutdownOnce      sync.Once
	sessions          *list.List
	sessionChan       chan *remoteSubscriberSession
	sessionErrorChan  chan *remoteSubscriberSessionError
	listenerErrorChan chan error
	listener          net.Listener
	numSubscribers    int32
}

func newDefaultPublisher(node *defaultNode, topic string, msgType MessageType, queueSize int) (*defaultPublisher, error) {
	listener, err := listenRandomPort(node.listenIP)
	if err != nil {
		return nil, err
	}
	pub := &defaultPublisher{
		node:              node,
		logger:            node.log.WithField("topic", topic),
		topic:             topic,
		msgType:           msgType,
		queueSize:         queueSize,
		msgChan:           make(chan []byte, queueSize),
		shutdownChan:      make(chan struct{}),
		done:              make(chan struct{}),
		sessions:          list.New(),
		sessionChan:       make(chan *remoteSubscriberSession, 10),
		sessionErrorChan:  make(chan *remoteSubscriberSessionError, 10),
		listenerErrorChan: make(chan error, 1),
		listener:          listener,
	}
	return pub, nil
}

func (pub *defaultPublisher) start(wg *sync.WaitGroup) {
	logger := pub.logger
	logger.Debug("Publisher goroutine started")
	defer func() {
		pub.node.publishers.Delete(pub.topic)
		close(pub.done)
		logger.Debug("Publisher goroutine exit")
		wg.Done()
	}()

	go pub.listenRemoteSubscriber()

	for {
		select {
		case msg := <-pub.msgChan:
			for e := pub.sessions.Front(); e != nil; e = e.Next() {
				e.Value.(*remoteSubscriberSession).enqueue(msg)
			}
		case err := <-pub.listenerErrorChan:
			logger.Warnf("Listener closed unexpectedly: %v", err)
			pub.closeSessions()
			return
		case s := <-pub.sessionChan:
			pub.sessions.PushBack(s)
			atomic.StoreInt32(&pub.numSubscribers, int32(pub.sessions.Len()))
			go s.start()
		case sessionError := <-pub.sessionErrorChan:
			logger.Debug(sessionError)
			for e := pub.sessions.Front(); e != nil; e = e.Next() {
				if e.Value == sessionError.session {
					pub.sessions.Remove(e)
					break
				}
			}
			atomic.StoreInt32(&pub.numSubscribers, int32(pub.sessions.Len()))
		case <-pub.shutdownChan:
			pub.listener.Close()
			ctx, cancel := context.WithTimeout(context.Background(), xmlrpc.DefaultTimeout)
			_, err := callRosAPI(ctx, pub.node.masterURI, "unregisterPublisher", pub.node.qualifiedName, pub.topic, pub.node.xmlrpcURI)
			cancel()
			if err != nil {
				logger.Warn(err)
			}
			pub.closeSessions()
			return
		}
	}
}

func (pub *defaultPublisher) closeSessions() {
	for e := pub.sessions.Front(); e != nil; e = e.Next() {
		close(e.Value.(*remoteSubscriberSession).quitChan)
	}
	pub.sessions.Init()
	atomic.StoreInt32(&pub.numSubscribers, 0)
}

func (pub *defaultPublisher) listenRemoteSubscriber() {
	for {
		conn, err := pub.listener.Accept()
		if err != nil {
			select {
			case <-pub.shutdownChan:
			default:
				pub.listenerErrorChan <- err
			}
			return
		}
		pub.logger.Debugf("Connected %s", conn.RemoteAddr())
		select {
		case pub.sessionChan <- newRemoteSubscriberSession(pub, conn):
		case <-pub.done:
			conn.Close()
			return
		}
	}
}

func (pub *defaultPublisher) Publish(msg Message) {
	var buf bytes.Buffer
	if err := msg.Serialize(&buf); err != nil {
		pub.logger.Errorf("Failed to serialize %s: %v", pub.msgType.Name(), err)
		return
	}
	select {
	case pub.msgChan <- buf.Bytes():
	case <-pub.done:
	}
}

// GetNumSubscribers returns the number of connected subscriber sessions.
func (pub *defaultPublisher) GetNumSubscribers() int {
	return int(atomic.LoadInt32(&pub.numSubscribers))
}

func (pub *defaultPublisher) Shutdown() {
	pub.shutdownOnce.Do(func() { close(pub.shutdownChan) })
	<-pub.done
}

func (pub *defaultPublisher) hostAndPort() (string, string) {
	_, port, _ := net.SplitHostPort(pub.listener.Addr().String())
	return pub.node.hostname, port
}

type remoteSubscriberSession struct {
	pub      *defaultPublisher
	conn     net.Conn
	callerID string
	quitChan chan struct{}
	msgChan  chan []byte
	logger   modular.Logger
}

func newRemoteSubscriberSession(pub *defaultPublisher, conn net.Conn) *remoteSubscriberSession {
	return &remoteSubscriberSession{
		pub:      pub,
		conn:     conn,
		callerID: conn.RemoteAddr().String(),
		quitChan: make(chan struct{}),
		msgChan:  make(chan []byte, pub.queueSize),
		logger:   pub.logger,
	}
}

// enqueue drops the oldest queued message when the session queue is full.
// Only the publisher goroutine calls it.
func (session *remoteSubscriberSession) enqueue(msg []byte) {
	for {
		select {
		case session.msgChan <- msg:
			return
		default:
		}
		select {
		case <-session.msgChan:
		default:
		}
	}
}

func (session *remoteSubscriberSession) start() {
	err := session.run()
	session.conn.Close()
	if err == nil {
		err = errors.New("closed")
	}
	select {
	case session.pub.sessionErrorChan <- &remoteSubscriberSessionError{session, err}:
	case <-session.pub.done:
	}
}

func (session *remoteSubscriberSession) run() error {
	pub := session.pub
	conn := session.conn

	conn.SetDeadline(time.Now().Add(handshakeTimeout))
	headers, err := readConnectionHeader(conn)
	if err != nil {
		return errors.Wrap(err, "reading connection header")
	}
	reqHeader := headerMap(headers)
	if callerID, ok := reqHeader["callerid"]; ok {
		session.callerID = callerID
	}
	session.logger.Debugf("TCPROS connection header: %v", reqHeader)

	typeName, md5sum := pub.msgType.Name(), pub.msgType.MD5Sum()
	if reqHeader["type"] != typeName && reqHeader["type"] != "*" {
		return errors.Errorf("incompatible message type for %s: %s vs %s", pub.topic, typeName, reqHeader["type"])
	}
	if reqHeader["md5sum"] != md5sum && reqHeader["md5sum"] != "*" {
		return errors.Errorf("incompatible message md5 for %s: %s vs %s", pub.topic, md5sum, reqHeader["md5sum"])
	}

	resHeaders := []header{
		{"message_definition", pub.msgType.Text()},
		{"callerid", pub.node.qualifiedName},
		{"latching", "0"},
		{"md5sum", md5sum},
		{"topic", pub.topic},
		{"type", typeName},
	}
	if err := writeConnectionHeader(resHeaders, conn); err != nil {
		return errors.Wrap(err, "writing response header")
	}
	conn.SetDeadline(time.Time{})

	// Subscribers send nothing after the header, so a read returning
	// means the peer went away.
	peerClosed := make(chan struct{})
	go func() {
		io.Copy(io.Discard, conn)
		close(peerClosed)
	}()

	var frame bytes.Buffer
	for {
		select {
		case msg := <-session.msgChan:
			frame.Reset()
			binary.Write(&frame, binary.LittleEndian, uint32(len(msg)))
			frame.Write(msg)
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if _, err := conn.Write(frame.Bytes()); err != nil {
				return errors.Wrap(err, "writing message")
			}
		case <-peerClosed:
			return nil
		case <-session.quitChan:
			return nil
		}
	}
}
