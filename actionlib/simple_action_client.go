package actionlib

import (
	"context"
	"reflect"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/ros"
)

const (
	SimpleStatePending uint8 = 0
	SimpleStateActive  uint8 = 1
	SimpleStateDone    uint8 = 2
)

var errNoGoal = errors.New("no goal is being tracked")

type simpleActionClient struct {
	ac          *defaultActionClient
	mutex       sync.Mutex
	simpleState uint8
	gh          ClientGoalHandler
	doneCb      interface{}
	activeCb    interface{}
	feedbackCb  interface{}
	doneChan    chan struct{}
	logger      modular.Logger
}

func newSimpleActionClient(node ros.Node, action string, actionType ActionType) (*simpleActionClient, error) {
	ac, err := newDefaultActionClient(node, action, actionType)
	if err != nil {
		return nil, err
	}
	return &simpleActionClient{
		ac:          ac,
		simpleState: SimpleStateDone,
		doneChan:    make(chan struct{}, 1),
		logger:      ac.logger,
	}, nil
}

func (sc *simpleActionClient) SendGoal(goal ros.Message, doneCb, activeCb, feedbackCb interface{}) error {
	sc.StopTrackingGoal()

	sc.mutex.Lock()
	sc.doneCb = doneCb
	sc.activeCb = activeCb
	sc.feedbackCb = feedbackCb
	sc.mutex.Unlock()

	// Drop a done notification left over from the previous goal.
	select {
	case <-sc.doneChan:
	default:
	}

	sc.setSimpleState(SimpleStatePending)
	gh, err := sc.ac.SendGoal(goal, sc.transitionHandler, sc.feedbackHandler)
	if err != nil {
		sc.setSimpleState(SimpleStateDone)
		return err
	}

	sc.mutex.Lock()
	sc.gh = gh
	sc.mutex.Unlock()
	return nil
}

func (sc *simpleActionClient) SendGoalAndWait(ctx context.Context, goal ros.Message, executeTimeout, preemptTimeout ros.Duration) (uint8, error) {
	if err := sc.SendGoal(goal, nil, nil, nil); err != nil {
		return actionlib_msgs.LOST, err
	}

	if !sc.WaitForResult(ctx, executeTimeout) {
		sc.logger.Debug("Cancelling goal")
		if err := sc.CancelGoal(); err != nil {
			return actionlib_msgs.LOST, err
		}
		if sc.WaitForResult(ctx, preemptTimeout) {
			sc.logger.Debug("Preempt finished within specified timeout")
		} else {
			sc.logger.Debug("Preempt did not finish within specified timeout")
		}
	}

	return sc.GetState()
}

func (sc *simpleActionClient) WaitForServer(ctx context.Context, timeout ros.Duration) bool {
	return sc.ac.WaitForServer(ctx, timeout)
}

// WaitForResult reports whether the goal finished before the timeout
// elapsed or ctx was done. A zero timeout waits on ctx alone.
func (sc *simpleActionClient) WaitForResult(ctx context.Context, timeout ros.Duration) bool {
	if sc.goalHandler() == nil {
		sc.logger.Error("[SimpleActionClient] Called WaitForResult when no goal exists")
		return false
	}

	deadline := ros.Now()
	deadline = deadline.Add(timeout)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for sc.getSimpleState() != SimpleStateDone {
		select {
		case <-sc.doneChan:
		case <-ticker.C:
		case <-ctx.Done():
			return sc.getSimpleState() == SimpleStateDone
		}

		if !timeout.IsZero() && deadline.Cmp(ros.Now()) <= 0 {
			break
		}
	}

	return sc.getSimpleState() == SimpleStateDone
}

func (sc *simpleActionClient) GetResult() (ros.Message, error) {
	gh := sc.goalHandler()
	if gh == nil {
		return nil, errors.Wrap(errNoGoal, "get result")
	}

	return gh.GetResult()
}

func (sc *simpleActionClient) GetState() (uint8, error) {
	gh := sc.goalHandler()
	if gh == nil {
		return actionlib_msgs.LOST, errors.Wrap(errNoGoal, "get state")
	}

	status, err := gh.GetGoalStatus()
	if err != nil {
		return actionlib_msgs.LOST, err
	}

	switch status {
	case actionlib_msgs.RECALLING:
		status = actionlib_msgs.PENDING
	case actionlib_msgs.PREEMPTING:
		status = actionlib_msgs.ACTIVE
	}

	return status, nil
}

func (sc *simpleActionClient) GetGoalStatusText() (string, error) {
	gh := sc.goalHandler()
	if gh == nil {
		return "", errors.Wrap(errNoGoal, "get goal status text")
	}

	return gh.GetGoalStatusText()
}

func (sc *simpleActionClient) CancelAllGoals() {
	sc.ac.CancelAllGoals()
}

func (sc *simpleActionClient) CancelAllGoalsBeforeTime(stamp ros.Time) {
	sc.ac.CancelAllGoalsBeforeTime(stamp)
}

func (sc *simpleActionClient) CancelGoal() error {
	gh := sc.goalHandler()
	if gh == nil {
		return nil
	}

	return gh.Cancel()
}

func (sc *simpleActionClient) StopTrackingGoal() {
	sc.mutex.Lock()
	gh := sc.gh
	sc.gh = nil
	sc.mutex.Unlock()

	if h, ok := gh.(*clientGoalHandler); ok {
		h.Shutdown(true)
	}
}

func (sc *simpleActionClient) Shutdown() {
	sc.StopTrackingGoal()
	sc.ac.Shutdown()
}

func (sc *simpleActionClient) goalHandler() ClientGoalHandler {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	return sc.gh
}

// transitionHandler runs for every comm state change of the tracked goal.
// The goal handler is not yet stored in sc.gh while SendGoal publishes, so
// it is matched by identity only where the simple state needs it.
func (sc *simpleActionClient) transitionHandler(gh ClientGoalHandler) {
	commState, err := gh.GetCommState()
	if err != nil {
		sc.logger.Errorf("Error getting CommState: %v", err)
		return
	}

	if current := sc.goalHandler(); current != nil && current != gh {
		return
	}

	simpleState := sc.getSimpleState()
	logUnexpected := func() {
		sc.logger.Errorf("[SimpleActionClient] Received comm state %s when in simple state %d", commState, simpleState)
	}

	var callbackType string
	var args []reflect.Value
	switch commState {
	case Active:
		switch simpleState {
		case SimpleStatePending:
			sc.setSimpleState(SimpleStateActive)
			callbackType = "active"
		case SimpleStateDone:
			logUnexpected()
		}

	case Recalling:
		switch simpleState {
		case SimpleStateActive, SimpleStateDone:
			logUnexpected()
		}

	case Preempting:
		switch simpleState {
		case SimpleStatePending:
			sc.setSimpleState(SimpleStateActive)
			callbackType = "active"
		case SimpleStateDone:
			logUnexpected()
		}

	case Done:
		switch simpleState {
		case SimpleStatePending, SimpleStateActive:
			sc.setSimpleState(SimpleStateDone)
			sc.sendDone()

			if sc.callback("done") == nil {
				break
			}

			status, err := gh.GetGoalStatus()
			if err != nil {
				sc.logger.Errorf("[SimpleActionClient] Error getting status: %v", err)
				break
			}

			result, err := gh.GetResult()
			if err != nil {
				sc.logger.Errorf("[SimpleActionClient] Error getting result: %v", err)
				break
			}

			callbackType = "done"
			args = append(args, reflect.ValueOf(status), reflect.ValueOf(result))

		case SimpleStateDone:
			sc.logger.Error("[SimpleActionClient] Received DONE twice")
		}
	}

	if len(callbackType) > 0 {
		sc.runCallback(callbackType, args)
	}
}

func (sc *simpleActionClient) sendDone() {
	select {
	case sc.doneChan <- struct{}{}:
	default:
	}
}

func (sc *simpleActionClient) feedbackHandler(gh ClientGoalHandler, msg ros.Message) {
	if current := sc.goalHandler(); current != gh {
		return
	}

	sc.runCallback("feedback", []reflect.Value{reflect.ValueOf(msg)})
}

func (sc *simpleActionClient) getSimpleState() uint8 {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	return sc.simpleState
}

func (sc *simpleActionClient) setSimpleState(state uint8) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	sc.logger.Debugf("[SimpleActionClient] Transitioning from %d to %d", sc.simpleState, state)
	sc.simpleState = state
}

func (sc *simpleActionClient) callback(cbType string) interface{} {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	switch cbType {
	case "active":
		return sc.activeCb
	case "feedback":
		return sc.feedbackCb
	case "done":
		return sc.doneCb
	}
	return nil
}

func (sc *simpleActionClient) runCallback(cbType string, args []reflect.Value) {
	callback := sc.callback(cbType)
	if callback == nil {
		return
	}

	fun := reflect.ValueOf(callback)
	numArgsNeeded := fun.Type().NumIn()

	if numArgsNeeded > len(args) {
		sc.logger.Errorf("[SimpleActionClient] Unexpected arguments: "+
			"callback %s expects %d arguments but %d arguments provided", cbType, numArgsNeeded, len(args))
		return
	}

	sc.logger.Debugf("[SimpleActionClient] Calling %s callback with %d arguments", cbType, len(args))
	fun.Call(args[0:numArgsNeeded])
}
