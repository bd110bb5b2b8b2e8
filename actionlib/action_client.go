package actionlib

import (
	"context"
	"sync"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/msgs/std_msgs"
	"github.com/rosenbergj/autonav/ros"
)

// LogModule is the child logger actionlib writes to.
const LogModule = "actionlib"

type defaultActionClient struct {
	node           ros.Node
	action         string
	actionType     ActionType
	goalPub        ros.Publisher
	cancelPub      ros.Publisher
	resultSub      ros.Subscriber
	feedbackSub    ros.Subscriber
	statusSub      ros.Subscriber
	logger         modular.Logger
	handlers       []*clientGoalHandler
	handlersMutex  sync.RWMutex
	goalIDGen      *goalIDGenerator
	mutex          sync.Mutex
	started        bool
	statusReceived bool
	callerID       string
}

func newDefaultActionClient(node ros.Node, action string, actType ActionType) (*defaultActionClient, error) {
	ac := &defaultActionClient{
		node:       node,
		action:     action,
		actionType: actType,
		logger:     node.Logger().Module(LogModule).WithField("action", action),
		goalIDGen:  newGoalIDGenerator(node.Name()),
	}

	var err error
	if ac.goalPub, err = node.NewPublisher(action+"/goal", actType.GoalType()); err != nil {
		return nil, errors.Wrap(err, "goal publisher")
	}
	if ac.cancelPub, err = node.NewPublisher(action+"/cancel", actionlib_msgs.MsgGoalID); err != nil {
		ac.Shutdown()
		return nil, errors.Wrap(err, "cancel publisher")
	}
	if ac.resultSub, err = node.NewSubscriber(action+"/result", actType.ResultType(), ac.internalResultCallback); err != nil {
		ac.Shutdown()
		return nil, errors.Wrap(err, "result subscriber")
	}
	if ac.feedbackSub, err = node.NewSubscriber(action+"/feedback", actType.FeedbackType(), ac.internalFeedbackCallback); err != nil {
		ac.Shutdown()
		return nil, errors.Wrap(err, "feedback subscriber")
	}
	if ac.statusSub, err = node.NewSubscriber(action+"/status", actionlib_msgs.MsgGoalStatusArray, ac.internalStatusCallback); err != nil {
		ac.Shutdown()
		return nil, errors.Wrap(err, "status subscriber")
	}

	return ac, nil
}

func (ac *defaultActionClient) SendGoal(goal ros.Message, transitionCb, feedbackCb interface{}) (ClientGoalHandler, error) {
	if !ac.isStarted() {
		ac.logger.Warn("[ActionClient] Sending a goal before the action server was seen")
	}

	ag, ok := ac.actionType.GoalType().NewMessage().(ActionGoal)
	if !ok {
		return nil, errors.Errorf("%s is not an action goal", ac.actionType.GoalType().Name())
	}
	if goal.Type().MD5Sum() != ag.GetGoal().Type().MD5Sum() {
		return nil, errors.Errorf("goal of type %s sent to action %s", goal.Type().Name(), ac.actionType.Name())
	}

	now := ros.Now()
	ag.SetGoal(goal)
	ag.SetGoalId(actionlib_msgs.GoalID{Id: ac.goalIDGen.generateID(now), Stamp: now})
	ag.SetHeader(std_msgs.Header{Stamp: now})

	handler := newClientGoalHandler(ac, ag, transitionCb, feedbackCb)

	ac.handlersMutex.Lock()
	ac.handlers = append(ac.handlers, handler)
	ac.handlersMutex.Unlock()

	ac.goalPub.Publish(ag)
	ac.logger.WithField("goal_id", ag.GetGoalId().Id).Debug("[ActionClient] Goal sent")
	return handler, nil
}

func (ac *defaultActionClient) CancelAllGoals() {
	ac.cancelPub.Publish(&actionlib_msgs.GoalID{})
}

func (ac *defaultActionClient) CancelAllGoalsBeforeTime(stamp ros.Time) {
	ac.cancelPub.Publish(&actionlib_msgs.GoalID{Stamp: stamp})
}

// Shutdown expires every goal handler and closes the action topics. The
// node itself is left running.
func (ac *defaultActionClient) Shutdown() {
	ac.handlersMutex.Lock()
	handlers := ac.handlers
	ac.handlers = nil
	ac.handlersMutex.Unlock()

	for _, h := range handlers {
		h.Shutdown(false)
	}

	ac.mutex.Lock()
	ac.started = false
	ac.mutex.Unlock()

	for _, pub := range []ros.Publisher{ac.goalPub, ac.cancelPub} {
		if pub != nil {
			pub.Shutdown()
		}
	}
	for _, sub := range []ros.Subscriber{ac.resultSub, ac.feedbackSub, ac.statusSub} {
		if sub != nil {
			sub.Shutdown()
		}
	}
}

func (ac *defaultActionClient) isStarted() bool {
	ac.mutex.Lock()
	defer ac.mutex.Unlock()
	return ac.started
}

// serverConnected requires a peer on every action topic and at least one
// status message, so a server that is still starting up does not count.
func (ac *defaultActionClient) serverConnected() bool {
	ac.mutex.Lock()
	statusReceived := ac.statusReceived
	ac.mutex.Unlock()

	return statusReceived &&
		ac.goalPub.GetNumSubscribers() > 0 &&
		ac.cancelPub.GetNumSubscribers() > 0 &&
		ac.feedbackSub.GetNumPublishers() > 0 &&
		ac.resultSub.GetNumPublishers() > 0 &&
		ac.statusSub.GetNumPublishers() > 0
}

func (ac *defaultActionClient) WaitForServer(ctx context.Context, timeout ros.Duration) bool {
	ac.logger.Info("[ActionClient] Waiting for action server to start")
	rate := ros.CycleTime(ros.NewDuration(0, 10000000))
	waitStart := ros.Now()

	started := ac.serverConnected()
	for !started {
		now := ros.Now()
		diff := now.Diff(waitStart)
		if !timeout.IsZero() && diff.Cmp(timeout) >= 0 {
			break
		}
		if err := rate.SleepContext(ctx); err != nil {
			break
		}
		started = ac.serverConnected()
	}

	if started {
		ac.mutex.Lock()
		ac.started = true
		ac.mutex.Unlock()
	}
	return started
}

func (ac *defaultActionClient) DeleteGoalHandler(gh *clientGoalHandler) {
	ac.handlersMutex.Lock()
	defer ac.handlersMutex.Unlock()

	for i, h := range ac.handlers {
		if h == gh {
			ac.handlers[i] = ac.handlers[len(ac.handlers)-1]
			ac.handlers[len(ac.handlers)-1] = nil
			ac.handlers = ac.handlers[:len(ac.handlers)-1]
			return
		}
	}
}

// goalHandlers snapshots the tracked goals so callbacks run without the
// handlers lock held.
func (ac *defaultActionClient) goalHandlers() []*clientGoalHandler {
	ac.handlersMutex.RLock()
	defer ac.handlersMutex.RUnlock()

	return append([]*clientGoalHandler(nil), ac.handlers...)
}

func (ac *defaultActionClient) internalResultCallback(result ActionResult, event ros.MessageEvent) {
	for _, h := range ac.goalHandlers() {
		if err := h.updateResult(result); err != nil {
			ac.logger.Error(err)
		}
	}
}

func (ac *defaultActionClient) internalFeedbackCallback(feedback ActionFeedback, event ros.MessageEvent) {
	for _, h := range ac.goalHandlers() {
		h.updateFeedback(feedback)
	}
}

func (ac *defaultActionClient) internalStatusCallback(statusArr *actionlib_msgs.GoalStatusArray, event ros.MessageEvent) {
	ac.mutex.Lock()
	if !ac.statusReceived {
		ac.statusReceived = true
		ac.logger.Debug("[ActionClient] Received first status message from action server")
	} else if ac.callerID != event.PublisherName {
		ac.logger.Debugf("[ActionClient] Previously received status from %s, now from %s. Did the action server change?",
			ac.callerID, event.PublisherName)
	}
	ac.callerID = event.PublisherName
	ac.mutex.Unlock()

	for _, h := range ac.goalHandlers() {
		if err := h.updateStatus(statusArr); err != nil {
			ac.logger.Error(err)
		}
	}
}
