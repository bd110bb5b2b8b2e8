// Package actionlib is the client side of the ROS action protocol: goals are
// published on <action>/goal and tracked through <action>/status,
// <action>/feedback and <action>/result.
package actionlib

import (
	"context"

	"github.com/rosenbergj/autonav/ros"
)

func NewActionClient(node ros.Node, action string, actionType ActionType) (ActionClient, error) {
	return newDefaultActionClient(node, action, actionType)
}

func NewSimpleActionClient(node ros.Node, action string, actionType ActionType) (SimpleActionClient, error) {
	return newSimpleActionClient(node, action, actionType)
}

type ActionClient interface {
	// WaitForServer blocks until the goal and cancel topics have a
	// subscriber and the status, feedback and result topics have a
	// publisher. A zero timeout waits until ctx is done.
	WaitForServer(ctx context.Context, timeout ros.Duration) bool
	SendGoal(goal ros.Message, transitionCallback interface{}, feedbackCallback interface{}) (ClientGoalHandler, error)
	CancelAllGoals()
	CancelAllGoalsBeforeTime(stamp ros.Time)
	Shutdown()
}

type SimpleActionClient interface {
	SendGoal(goal ros.Message, doneCb, activeCb, feedbackCb interface{}) error
	SendGoalAndWait(ctx context.Context, goal ros.Message, executeTimeout, preemptTimeout ros.Duration) (uint8, error)
	WaitForServer(ctx context.Context, timeout ros.Duration) bool
	WaitForResult(ctx context.Context, timeout ros.Duration) bool
	GetResult() (ros.Message, error)
	GetState() (uint8, error)
	GetGoalStatusText() (string, error)
	CancelAllGoals()
	CancelAllGoalsBeforeTime(stamp ros.Time)
	CancelGoal() error
	StopTrackingGoal()
	Shutdown()
}

type ClientGoalHandler interface {
	IsExpired() bool
	GetCommState() (CommState, error)
	GetGoalStatus() (uint8, error)
	GetGoalStatusText() (string, error)
	GetTerminalState() (uint8, error)
	GetResult() (ros.Message, error)
	Resend() error
	Cancel() error
}
