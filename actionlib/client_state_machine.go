package actionlib

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
)

type CommState uint8

const (
	WaitingForGoalAck CommState = iota
	Pending
	Active
	WaitingForResult
	WaitingForCancelAck
	Recalling
	Preempting
	Done
	Lost
)

func (cs CommState) String() string {
	switch cs {
	case WaitingForGoalAck:
		return "WAITING_FOR_GOAL_ACK"
	case Pending:
		return "PENDING"
	case Active:
		return "ACTIVE"
	case WaitingForResult:
		return "WAITING_FOR_RESULT"
	case WaitingForCancelAck:
		return "WAITING_FOR_CANCEL_ACK"
	case Recalling:
		return "RECALLING"
	case Preempting:
		return "PREEMPTING"
	case Done:
		return "DONE"
	case Lost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// clientTransitions lists, for each comm state, the states to pass through
// when the server reports a goal status. A status missing from a row is an
// invalid transition; an empty list leaves the state unchanged.
var clientTransitions = map[CommState]map[uint8][]CommState{
	WaitingForGoalAck: {
		actionlib_msgs.PENDING:    {Pending},
		actionlib_msgs.ACTIVE:     {Active},
		actionlib_msgs.REJECTED:   {Pending, WaitingForResult},
		actionlib_msgs.RECALLING:  {Pending, Recalling},
		actionlib_msgs.RECALLED:   {Pending, WaitingForResult},
		actionlib_msgs.PREEMPTED:  {Active, Preempting, WaitingForResult},
		actionlib_msgs.SUCCEEDED:  {Active, WaitingForResult},
		actionlib_msgs.ABORTED:    {Active, WaitingForResult},
		actionlib_msgs.PREEMPTING: {Active, Preempting},
	},
	Pending: {
		actionlib_msgs.PENDING:    {},
		actionlib_msgs.ACTIVE:     {Active},
		actionlib_msgs.REJECTED:   {WaitingForResult},
		actionlib_msgs.RECALLING:  {Recalling},
		actionlib_msgs.RECALLED:   {Recalling, WaitingForResult},
		actionlib_msgs.PREEMPTED:  {Active, Preempting, WaitingForResult},
		actionlib_msgs.SUCCEEDED:  {Active, WaitingForResult},
		actionlib_msgs.ABORTED:    {Active, WaitingForResult},
		actionlib_msgs.PREEMPTING: {Active, Preempting},
	},
	Active: {
		actionlib_msgs.ACTIVE:     {},
		actionlib_msgs.PREEMPTED:  {Preempting, WaitingForResult},
		actionlib_msgs.SUCCEEDED:  {WaitingForResult},
		actionlib_msgs.ABORTED:    {WaitingForResult},
		actionlib_msgs.PREEMPTING: {Preempting},
	},
	WaitingForResult: {
		actionlib_msgs.ACTIVE:    {},
		actionlib_msgs.REJECTED:  {},
		actionlib_msgs.RECALLED:  {},
		actionlib_msgs.PREEMPTED: {},
		actionlib_msgs.SUCCEEDED: {},
		actionlib_msgs.ABORTED:   {},
	},
	WaitingForCancelAck: {
		actionlib_msgs.PENDING:    {},
		actionlib_msgs.ACTIVE:     {},
		actionlib_msgs.REJECTED:   {WaitingForResult},
		actionlib_msgs.RECALLING:  {Recalling},
		actionlib_msgs.RECALLED:   {Recalling, WaitingForResult},
		actionlib_msgs.PREEMPTED:  {Preempting, WaitingForResult},
		actionlib_msgs.SUCCEEDED:  {Preempting, WaitingForResult},
		actionlib_msgs.ABORTED:    {Preempting, WaitingForResult},
		actionlib_msgs.PREEMPTING: {Preempting},
	},
	Recalling: {
		actionlib_msgs.REJECTED:   {WaitingForResult},
		actionlib_msgs.RECALLING:  {},
		actionlib_msgs.RECALLED:   {WaitingForResult},
		actionlib_msgs.PREEMPTED:  {Preempting, WaitingForResult},
		actionlib_msgs.SUCCEEDED:  {Preempting, WaitingForResult},
		actionlib_msgs.ABORTED:    {Preempting, WaitingForResult},
		actionlib_msgs.PREEMPTING: {Preempting},
	},
	Preempting: {
		actionlib_msgs.PREEMPTED:  {WaitingForResult},
		actionlib_msgs.SUCCEEDED:  {WaitingForResult},
		actionlib_msgs.ABORTED:    {WaitingForResult},
		actionlib_msgs.PREEMPTING: {},
	},
	Done: {
		actionlib_msgs.REJECTED:  {},
		actionlib_msgs.RECALLED:  {},
		actionlib_msgs.PREEMPTED: {},
		actionlib_msgs.SUCCEEDED: {},
		actionlib_msgs.ABORTED:   {},
	},
}

type clientStateMachine struct {
	state      CommState
	goalStatus actionlib_msgs.GoalStatus
	goalResult ActionResult
	mutex      sync.RWMutex
}

func newClientStateMachine() *clientStateMachine {
	return &clientStateMachine{
		state:      WaitingForGoalAck,
		goalStatus: actionlib_msgs.GoalStatus{Status: actionlib_msgs.PENDING},
	}
}

func (sm *clientStateMachine) getState() CommState {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	return sm.state
}

func (sm *clientStateMachine) getGoalStatus() actionlib_msgs.GoalStatus {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	return sm.goalStatus
}

func (sm *clientStateMachine) getGoalResult() ActionResult {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	return sm.goalResult
}

func (sm *clientStateMachine) setState(state CommState) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.state = state
}

func (sm *clientStateMachine) setGoalStatus(id actionlib_msgs.GoalID, status uint8, text string) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.goalStatus.GoalId = id
	sm.goalStatus.Status = status
	sm.goalStatus.Text = text
}

func (sm *clientStateMachine) setGoalResult(result ActionResult) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.goalResult = result
}

func (sm *clientStateMachine) setAsLost() {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.goalStatus.Status = actionlib_msgs.LOST
}

// transitionTo moves to state and then runs callback, which takes no
// arguments or the goal handler.
func (sm *clientStateMachine) transitionTo(state CommState, gh ClientGoalHandler, callback interface{}) {
	sm.setState(state)
	if callback != nil {
		fun := reflect.ValueOf(callback)
		args := []reflect.Value{reflect.ValueOf(gh)}
		numArgsNeeded := fun.Type().NumIn()

		if numArgsNeeded <= 1 {
			fun.Call(args[:numArgsNeeded])
		}
	}
}

func (sm *clientStateMachine) getTransitions(goalStatus actionlib_msgs.GoalStatus) ([]CommState, error) {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	row, ok := clientTransitions[sm.state]
	if !ok {
		return nil, errors.Errorf("no transitions out of %v", sm.state)
	}
	next, ok := row[goalStatus.Status]
	if !ok {
		return nil, errors.Errorf("invalid transition from %v to %s",
			sm.state, actionlib_msgs.StatusString(goalStatus.Status))
	}
	return next, nil
}
