package actionlib

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/ros"
)

var errInactiveGoalHandler = errors.New("inactive ClientGoalHandler")

type clientGoalHandler struct {
	actionClient *defaultActionClient
	mutex        sync.RWMutex
	stateMachine *clientStateMachine
	actionGoal   ActionGoal
	actionGoalID string
	transitionCb interface{}
	feedbackCb   interface{}
}

func newClientGoalHandler(ac *defaultActionClient, ag ActionGoal, transitionCb, feedbackCb interface{}) *clientGoalHandler {
	return &clientGoalHandler{
		actionClient: ac,
		stateMachine: newClientStateMachine(),
		actionGoal:   ag,
		actionGoalID: ag.GetGoalId().Id,
		transitionCb: transitionCb,
		feedbackCb:   feedbackCb,
	}
}

func findGoalStatus(statusArr *actionlib_msgs.GoalStatusArray, id string) *actionlib_msgs.GoalStatus {
	for i := range statusArr.StatusList {
		if statusArr.StatusList[i].GoalId.Id == id {
			return &statusArr.StatusList[i]
		}
	}
	return nil
}

// machine returns nil once the handler has been shut down.
func (gh *clientGoalHandler) machine() *clientStateMachine {
	gh.mutex.RLock()
	defer gh.mutex.RUnlock()
	return gh.stateMachine
}

func (gh *clientGoalHandler) GetCommState() (CommState, error) {
	sm := gh.machine()
	if sm == nil {
		return Lost, errors.Wrap(errInactiveGoalHandler, "get comm state")
	}

	return sm.getState(), nil
}

func (gh *clientGoalHandler) GetGoalStatus() (uint8, error) {
	sm := gh.machine()
	if sm == nil {
		return actionlib_msgs.LOST, errors.Wrap(errInactiveGoalHandler, "get goal status")
	}

	return sm.getGoalStatus().Status, nil
}

func (gh *clientGoalHandler) GetGoalStatusText() (string, error) {
	sm := gh.machine()
	if sm == nil {
		return "", errors.Wrap(errInactiveGoalHandler, "get goal status text")
	}

	return sm.getGoalStatus().Text, nil
}

func (gh *clientGoalHandler) GetTerminalState() (uint8, error) {
	sm := gh.machine()
	if sm == nil {
		return actionlib_msgs.LOST, errors.Wrap(errInactiveGoalHandler, "get terminal state")
	}

	if state := sm.getState(); state != Done {
		gh.actionClient.logger.Warnf("Asking for terminal state when we are in state %v", state)
	}

	goalStatus := sm.getGoalStatus().Status
	switch goalStatus {
	case actionlib_msgs.PREEMPTED, actionlib_msgs.SUCCEEDED, actionlib_msgs.ABORTED,
		actionlib_msgs.REJECTED, actionlib_msgs.RECALLED, actionlib_msgs.LOST:
		return goalStatus, nil
	}

	gh.actionClient.logger.Warnf("Asking for terminal state when latest goal is in %s",
		actionlib_msgs.StatusString(goalStatus))
	return actionlib_msgs.LOST, nil
}

func (gh *clientGoalHandler) GetResult() (ros.Message, error) {
	sm := gh.machine()
	if sm == nil {
		return nil, errors.Wrap(errInactiveGoalHandler, "get result")
	}

	result := sm.getGoalResult()
	if result == nil {
		return nil, errors.New("no result has been received")
	}

	return result.GetResult(), nil
}

func (gh *clientGoalHandler) Resend() error {
	if gh.machine() == nil {
		return errors.Wrap(errInactiveGoalHandler, "resend")
	}

	gh.actionClient.goalPub.Publish(gh.actionGoal)
	return nil
}

func (gh *clientGoalHandler) IsExpired() bool {
	return gh.machine() == nil
}

func (gh *clientGoalHandler) Cancel() error {
	sm := gh.machine()
	if sm == nil {
		return errors.Wrap(errInactiveGoalHandler, "cancel")
	}

	cancelMsg := &actionlib_msgs.GoalID{
		Stamp: ros.Now(),
		Id:    gh.actionGoalID,
	}

	gh.actionClient.cancelPub.Publish(cancelMsg)
	sm.transitionTo(WaitingForCancelAck, gh, gh.transitionCb)
	return nil
}

func (gh *clientGoalHandler) Shutdown(deleteFromManager bool) {
	gh.mutex.Lock()
	gh.stateMachine = nil
	gh.mutex.Unlock()

	if deleteFromManager {
		gh.actionClient.DeleteGoalHandler(gh)
	}
}

func (gh *clientGoalHandler) updateFeedback(af ActionFeedback) {
	if gh.actionGoalID != af.GetStatus().GoalId.Id {
		return
	}

	sm := gh.machine()
	if sm == nil || gh.feedbackCb == nil || sm.getState() == Done {
		return
	}

	fun := reflect.ValueOf(gh.feedbackCb)
	args := []reflect.Value{reflect.ValueOf(gh), reflect.ValueOf(af.GetFeedback())}
	if fun.Type().NumIn() == 2 {
		fun.Call(args)
	}
}

func (gh *clientGoalHandler) updateResult(result ActionResult) error {
	if gh.actionGoalID != result.GetStatus().GoalId.Id {
		return nil
	}

	sm := gh.machine()
	if sm == nil {
		return nil
	}

	status := result.GetStatus()
	state := sm.getState()
	switch state {
	case WaitingForGoalAck, WaitingForCancelAck, Pending, Active, WaitingForResult, Recalling, Preempting:
		sm.setGoalResult(result)

		statusArr := &actionlib_msgs.GoalStatusArray{StatusList: []actionlib_msgs.GoalStatus{status}}
		if err := gh.updateStatus(statusArr); err != nil {
			return err
		}

		sm.transitionTo(Done, gh, gh.transitionCb)
		return nil
	case Done:
		return errors.Errorf("goal %s got a result when already DONE", gh.actionGoalID)
	}
	return errors.Errorf("goal %s in unknown state %v", gh.actionGoalID, state)
}

func (gh *clientGoalHandler) updateStatus(statusArr *actionlib_msgs.GoalStatusArray) error {
	sm := gh.machine()
	if sm == nil {
		return nil
	}

	state := sm.getState()
	if state == Done {
		return nil
	}

	status := findGoalStatus(statusArr, gh.actionGoalID)
	if status == nil {
		if state != WaitingForGoalAck && state != WaitingForResult {
			gh.actionClient.logger.WithField("goal_id", gh.actionGoalID).Warn("Transitioning goal to LOST")
			sm.setAsLost()
			sm.transitionTo(Done, gh, gh.transitionCb)
		}
		return nil
	}

	sm.setGoalStatus(status.GoalId, status.Status, status.Text)
	nextStates, err := sm.getTransitions(*status)
	if err != nil {
		return errors.Wrapf(err, "goal %s", gh.actionGoalID)
	}

	for _, next := range nextStates {
		sm.transitionTo(next, gh, gh.transitionCb)
	}

	return nil
}
