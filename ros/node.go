package ros

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/xmlrpc"
	"gopkg.in/yaml.v3"
)

// DefaultQueueSize is the outgoing queue length of publishers created with NewPublisher.
const DefaultQueueSize = 10

// *defaultNode implements Node interface
// a defaultNode instance must be accessed in user goroutine.
type defaultNode struct {
	name           string
	namespace      string
	qualifiedName  string
	masterURI      string
	xmlrpcURI      string
	xmlrpcListener net.Listener
	xmlrpcHandler  *xmlrpc.Handler
	subscribers    map[string]*defaultSubscriber
	subMutex       sync.Mutex
	publishers     sync.Map
	jobChan        chan func()
	interruptChan  chan os.Signal
	logger         Logger
	log            modular.Logger
	ok             bool
	okMutex        sync.RWMutex
	waitGroup      sync.WaitGroup
	hostname       string
	listenIP       string
	nameResolver   *NameResolver
	nonRosArgs     []string
	ctx            context.Context
	cancel         context.CancelFunc
	shutdownOnce   sync.Once
}

func listenRandomPort(address string) (net.Listener, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort(address, "0"))
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", address)
	}
	return listener, nil
}

func newDefaultNode(name string, args []string, logger Logger) (*defaultNode, error) {
	node := new(defaultNode)

	remapping, params, specials, rest := processArguments(args)
	if value, ok := specials["__name"]; ok {
		name = value
	}

	namespace, nodeName, err := qualifyNodeName(name)
	if err != nil {
		return nil, err
	}
	node.name = nodeName
	node.namespace = namespace
	if ns := os.Getenv("ROS_NAMESPACE"); len(ns) > 0 {
		node.namespace = ns
	}
	if value, ok := specials["__ns"]; ok {
		node.namespace = value
	}
	node.namespace = canonicalizeName(GlobalNS + node.namespace)
	if !strings.HasSuffix(node.namespace, Sep) {
		node.namespace += Sep
	}

	var onlyLocalhost bool
	node.hostname, onlyLocalhost = determineHost()
	if value, ok := specials["__hostname"]; ok {
		node.hostname = value
		onlyLocalhost = (value == "localhost")
	} else if value, ok := specials["__ip"]; ok {
		node.hostname = value
		onlyLocalhost = (value == "::1" || strings.HasPrefix(value, "127."))
	}
	if onlyLocalhost {
		node.listenIP = "127.0.0.1"
	} else {
		node.listenIP = "0.0.0.0"
	}

	node.masterURI = os.Getenv("ROS_MASTER_URI")
	if value, ok := specials["__master"]; ok {
		node.masterURI = value
	}
	if node.masterURI == "" {
		return nil, errors.New("ROS_MASTER_URI is not set")
	}

	node.qualifiedName = node.namespace + node.name
	node.nameResolver = newNameResolver(node.namespace, node.qualifiedName, remapping)
	node.nonRosArgs = rest
	node.subscribers = make(map[string]*defaultSubscriber)
	node.jobChan = make(chan func(), 100)
	node.ok = true
	node.ctx, node.cancel = context.WithCancel(context.Background())
	node.logger = logger
	node.log = logger.Module(LogModule).WithField("node", node.qualifiedName)
	node.log.Debugf("Master URI = %s", node.masterURI)

	for k, v := range params {
		key := node.nameResolver.resolve(PrivateNS + k)
		if _, err := callRosAPI(node.ctx, node.masterURI, "setParam", node.qualifiedName, key, loadParamFromString(v)); err != nil {
			node.cancel()
			return nil, errors.Wrapf(err, "setting %s", key)
		}
	}

	listener, err := listenRandomPort(node.listenIP)
	if err != nil {
		node.cancel()
		return nil, err
	}
	_, port, _ := net.SplitHostPort(listener.Addr().String())
	node.xmlrpcURI = fmt.Sprintf("http://%s/", net.JoinHostPort(node.hostname, port))
	node.xmlrpcListener = listener
	node.log.Debugf("Slave API listening on %s", listener.Addr())

	m := map[string]xmlrpc.Method{
		"getBusStats":      func(callerID string) (interface{}, error) { return node.getBusStats(callerID) },
		"getBusInfo":       func(callerID string) (interface{}, error) { return node.getBusInfo(callerID) },
		"getMasterUri":     func(callerID string) (interface{}, error) { return node.getMasterURI(callerID) },
		"shutdown":         func(callerID string, msg string) (interface{}, error) { return node.shutdown(callerID, msg) },
		"getPid":           func(callerID string) (interface{}, error) { return node.getPid(callerID) },
		"getSubscriptions": func(callerID string) (interface{}, error) { return node.getSubscriptions(callerID) },
		"getPublications":  func(callerID string) (interface{}, error) { return node.getPublications(callerID) },
		"paramUpdate": func(callerID string, key string, value interface{}) (interface{}, error) {
			return node.paramUpdate(callerID, key, value)
		},
		"publisherUpdate": func(callerID string, topic string, publishers []interface{}) (interface{}, error) {
			return node.publisherUpdate(callerID, topic, publishers)
		},
		"requestTopic": func(callerID string, topic string, protocols []interface{}) (interface{}, error) {
			return node.requestTopic(callerID, topic, protocols)
		},
	}
	node.xmlrpcHandler = xmlrpc.NewHandler(m)
	go http.Serve(node.xmlrpcListener, node.xmlrpcHandler)

	node.interruptChan = make(chan os.Signal, 1)
	signal.Notify(node.interruptChan, os.Interrupt)
	go func() {
		select {
		case <-node.interruptChan:
			node.log.Info("Interrupted")
			node.setOK(false)
		case <-node.ctx.Done():
		}
	}()

	node.log.Debug("Started")
	return node, nil
}

func (node *defaultNode) setOK(ok bool) {
	node.okMutex.Lock()
	node.ok = ok
	node.okMutex.Unlock()
}

func (node *defaultNode) OK() bool {
	node.okMutex.RLock()
	defer node.okMutex.RUnlock()
	return node.ok
}

func (node *defaultNode) Name() string {
	return node.qualifiedName
}

func (node *defaultNode) getBusStats(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusError, "Not implemented", 0), nil
}

func (node *defaultNode) getBusInfo(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusError, "Not implemented", 0), nil
}

func (node *defaultNode) getMasterURI(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusSuccess, "Success", node.masterURI), nil
}

func (node *defaultNode) shutdown(callerID string, msg string) (interface{}, error) {
	node.log.Infof("Shutdown requested by %s: %s", callerID, msg)
	node.setOK(false)
	return buildRosAPIResult(APIStatusSuccess, "Success", 0), nil
}

func (node *defaultNode) getPid(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusSuccess, "Success", os.Getpid()), nil
}

func (node *defaultNode) getSubscriptions(callerID string) (interface{}, error) {
	result := []interface{}{}
	node.subMutex.Lock()
	for t, s := range node.subscribers {
		result = append(result, []interface{}{t, s.msgType.Name()})
	}
	node.subMutex.Unlock()
	return buildRosAPIResult(APIStatusSuccess, "Success", result), nil
}

func (node *defaultNode) getPublications(callerID string) (interface{}, error) {
	result := []interface{}{}
	node.publishers.Range(func(t interface{}, p interface{}) bool {
		result = append(result, []interface{}{t.(string), p.(*defaultPublisher).msgType.Name()})
		return true
	})
	return buildRosAPIResult(APIStatusSuccess, "Success", result), nil
}

func (node *defaultNode) paramUpdate(callerID string, key string, value interface{}) (interface{}, error) {
	return buildRosAPIResult(APIStatusError, "Not implemented", 0), nil
}

func (node *defaultNode) publisherUpdate(callerID string, topic string, publishers []interface{}) (interface{}, error) {
	node.log.Debugf("Slave API publisherUpdate(%s, %s) called.", callerID, topic)
	node.subMutex.Lock()
	sub, ok := node.subscribers[topic]
	node.subMutex.Unlock()
	if !ok {
		return buildRosAPIResult(APIStatusFailure, "No such topic", 0), nil
	}
	pubURIs := make([]string, 0, len(publishers))
	for _, uri := range publishers {
		if s, ok := uri.(string); ok {
			pubURIs = append(pubURIs, s)
		}
	}
	sub.updatePublishers(pubURIs)
	return buildRosAPIResult(APIStatusSuccess, "Success", 0), nil
}

func (node *defaultNode) requestTopic(callerID string, topic string, protocols []interface{}) (interface{}, error) {
	node.log.Debugf("Slave API requestTopic(%s, %s) called.", callerID, topic)
	pub, ok := node.publishers.Load(topic)
	if !ok {
		return buildRosAPIResult(APIStatusFailure, "No such topic", nil), nil
	}
	for _, v := range protocols {
		protocolParams, ok := v.([]interface{})
		if !ok || len(protocolParams) == 0 {
			continue
		}
		if name, _ := protocolParams[0].(string); name != "TCPROS" {
			continue
		}
		host, portStr := pub.(*defaultPublisher).hostAndPort()
		port, err := strconv.ParseInt(portStr, 10, 32)
		if err != nil {
			return nil, err
		}
		return buildRosAPIResult(APIStatusSuccess, "Success", []interface{}{"TCPROS", host, int32(port)}), nil
	}
	return buildRosAPIResult(APIStatusFailure, "No supported protocol", []interface{}{}), nil
}

func (node *defaultNode) NewPublisher(topic string, msgType MessageType) (Publisher, error) {
	return node.NewPublisherWithQueueSize(topic, msgType, DefaultQueueSize)
}

// NewPublisherWithQueueSize is NewPublisher with an explicit per-subscriber
// queue length; the oldest queued message is dropped when it overflows.
func (node *defaultNode) NewPublisherWithQueueSize(topic string, msgType MessageType, queueSize int) (Publisher, error) {
	name := node.nameResolver.remap(topic)
	if !isValidName(name) {
		return nil, errors.Errorf("invalid topic name %q", topic)
	}
	if pub, ok := node.publishers.Load(name); ok {
		return pub.(*defaultPublisher), nil
	}
	if queueSize < 1 {
		queueSize = 1
	}

	pub, err := newDefaultPublisher(node, name, msgType, queueSize)
	if err != nil {
		return nil, err
	}
	node.publishers.Store(name, pub)
	node.waitGroup.Add(1)
	go pub.start(&node.waitGroup)

	_, err = callRosAPI(node.ctx, node.masterURI, "registerPublisher",
		node.qualifiedName, name, msgType.Name(), node.xmlrpcURI)
	if err != nil {
		pub.Shutdown()
		return nil, errors.Wrapf(err, "registering publisher for %s", name)
	}
	node.log.Debugf("Publishing %s [%s]", name, msgType.Name())
	return pub, nil
}

func (node *defaultNode) NewSubscriber(topic string, msgType MessageType, callback interface{}) (Subscriber, error) {
	name := node.nameResolver.remap(topic)
	if !isValidName(name) {
		return nil, errors.Errorf("invalid topic name %q", topic)
	}
	if fun := reflect.ValueOf(callback); fun.Kind() != reflect.Func || fun.Type().NumIn() > 2 {
		return nil, errors.Errorf("subscriber callback for %s must be a func of at most 2 arguments", name)
	}

	node.subMutex.Lock()
	sub, ok := node.subscribers[name]
	node.subMutex.Unlock()
	if ok {
		sub.addCallback(callback)
		return sub, nil
	}

	result, err := callRosAPI(node.ctx, node.masterURI, "registerSubscriber",
		node.qualifiedName, name, msgType.Name(), node.xmlrpcURI)
	if err != nil {
		return nil, errors.Wrapf(err, "registering subscriber for %s", name)
	}
	list, ok := result.([]interface{})
	if !ok {
		return nil, errors.Errorf("registerSubscriber returned %T, not a publisher list", result)
	}
	var publishers []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			publishers = append(publishers, s)
		}
	}
	node.log.Debugf("Subscribing %s [%s], publishers: %v", name, msgType.Name(), publishers)

	sub = newDefaultSubscriber(node, name, msgType, callback)
	node.subMutex.Lock()
	node.subscribers[name] = sub
	node.subMutex.Unlock()

	node.waitGroup.Add(1)
	go sub.start(&node.waitGroup)
	sub.updatePublishers(publishers)
	return sub, nil
}

func (node *defaultNode) removeSubscriber(topic string) {
	node.subMutex.Lock()
	delete(node.subscribers, topic)
	node.subMutex.Unlock()
}

func (node *defaultNode) SpinOnce() {
	select {
	case job := <-node.jobChan:
		job()
	case <-time.After(10 * time.Millisecond):
	}
}

func (node *defaultNode) Spin() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for node.OK() {
		select {
		case job := <-node.jobChan:
			job()
		case <-ticker.C:
		}
	}
}

func (node *defaultNode) Shutdown() {
	node.shutdownOnce.Do(func() {
		node.log.Debug("Shutting node down")
		node.setOK(false)
		signal.Stop(node.interruptChan)

		node.subMutex.Lock()
		subs := make([]*defaultSubscriber, 0, len(node.subscribers))
		for _, s := range node.subscribers {
			subs = append(subs, s)
		}
		node.subMutex.Unlock()
		for _, s := range subs {
			s.Shutdown()
		}
		node.publishers.Range(func(key interface{}, value interface{}) bool {
			value.(*defaultPublisher).Shutdown()
			return true
		})
		node.waitGroup.Wait()

		node.cancel()
		node.xmlrpcListener.Close()
		node.xmlrpcHandler.WaitForShutdown()
		node.log.Debug("Shutting node down completed")
	})
}

func (node *defaultNode) GetParam(key string) (interface{}, error) {
	name := node.nameResolver.remap(key)
	return callRosAPI(node.ctx, node.masterURI, "getParam", node.qualifiedName, name)
}

func (node *defaultNode) SetParam(key string, value interface{}) error {
	name := node.nameResolver.remap(key)
	_, err := callRosAPI(node.ctx, node.masterURI, "setParam", node.qualifiedName, name, value)
	return err
}

func (node *defaultNode) HasParam(key string) (bool, error) {
	name := node.nameResolver.remap(key)
	result, err := callRosAPI(node.ctx, node.masterURI, "hasParam", node.qualifiedName, name)
	if err != nil {
		return false, err
	}
	hasParam, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("hasParam returned %T", result)
	}
	return hasParam, nil
}

func (node *defaultNode) SearchParam(key string) (string, error) {
	result, err := callRosAPI(node.ctx, node.masterURI, "searchParam", node.qualifiedName, key)
	if err != nil {
		return "", err
	}
	foundKey, ok := result.(string)
	if !ok {
		return "", errors.Errorf("searchParam returned %T", result)
	}
	return foundKey, nil
}

func (node *defaultNode) DeleteParam(key string) error {
	name := node.nameResolver.remap(key)
	_, err := callRosAPI(node.ctx, node.masterURI, "deleteParam", node.qualifiedName, name)
	return err
}

func (node *defaultNode) Logger() Logger {
	return node.logger
}

func (node *defaultNode) NonRosArgs() []string {
	return node.nonRosArgs
}

// loadParamFromString parses a _param:=value argument as YAML, the way
// rosparam does; unparseable values stay strings.
func loadParamFromString(s string) interface{} {
	var value interface{}
	if err := yaml.Unmarshal([]byte(s), &value); err != nil || value == nil {
		return s
	}
	return value
}
