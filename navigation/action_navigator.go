package navigation

import (
	"context"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/msgs/move_base_msgs"
	"github.com/rosenbergj/autonav/ros"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServerTimeout = 5 * time.Second
	DefaultResultTimeout = 60 * time.Second
)

// ErrRecoveryNotImplemented is returned when move_base does not report
// success for a waypoint. Nothing tries to get the robot unstuck.
var ErrRecoveryNotImplemented = errors.New("recovery not implemented")

// GoalClient is the move_base action as seen by the navigator.
type GoalClient interface {
	WaitForServer(ctx context.Context, timeout time.Duration) bool
	SendGoal(ctx context.Context, goal *move_base_msgs.MoveBaseGoal) error
	// WaitForResult reports whether the goal finished within timeout.
	WaitForResult(ctx context.Context, timeout time.Duration) bool
	GetState() (uint8, error)
	GetGoalStatusText() (string, error)
	CancelGoal() error
}

// ActionNavigator sends each waypoint to move_base and waits for the result.
type ActionNavigator struct {
	Client GoalClient
	// ServerTimeout bounds the initial wait for move_base. Navigation
	// starts even when the server was not seen.
	ServerTimeout time.Duration
	// ResultTimeout bounds the wait for each waypoint; zero waits forever.
	ResultTimeout time.Duration
	Observer      Observer
	Logger        modular.Logger
}

func NewActionNavigator(client GoalClient, logger modular.Logger) *ActionNavigator {
	return &ActionNavigator{
		Client:        client,
		ServerTimeout: DefaultServerTimeout,
		ResultTimeout: DefaultResultTimeout,
		Logger:        logger,
	}
}

func (n *ActionNavigator) Run(ctx context.Context, route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	logger := loggerOrStandard(n.Logger).WithField("mode", "action")
	observer := observerOrNop(n.Observer)

	if !n.Client.WaitForServer(ctx, n.ServerTimeout) {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.WithField("timeout", n.ServerTimeout).Warn("move_base not available, sending goals anyway")
	}

	for i, wp := range route.Waypoints {
		if err := ctx.Err(); err != nil {
			return err
		}
		wpLogger := logger.WithFields(logrus.Fields{"waypoint": i, "x": wp.X, "y": wp.Y})

		observer.WaypointStarted(i, wp)
		wpLogger.Info("Sending goal")
		if err := n.Client.SendGoal(ctx, route.MoveBaseGoal(wp, ros.Now())); err != nil {
			return errors.Wrapf(err, "waypoint %d", i)
		}

		finished := n.Client.WaitForResult(ctx, n.ResultTimeout)
		if err := ctx.Err(); err != nil {
			n.cancel(wpLogger)
			return err
		}
		if !finished {
			wpLogger.WithField("timeout", n.ResultTimeout).Warn("No result before timeout")
		}

		state, err := n.Client.GetState()
		if err != nil {
			return errors.Wrapf(err, "waypoint %d", i)
		}
		if state != actionlib_msgs.SUCCEEDED {
			text, _ := n.Client.GetGoalStatusText()
			n.cancel(wpLogger)
			wpLogger.WithFields(logrus.Fields{
				"state": actionlib_msgs.StatusString(state),
				"text":  text,
			}).Error("Goal did not succeed")
			return errors.Wrapf(ErrRecoveryNotImplemented, "waypoint %d ended %s %q",
				i, actionlib_msgs.StatusString(state), text)
		}

		observer.WaypointReached(i, wp)
		wpLogger.Info("Waypoint reached")
	}

	logger.WithField("waypoints", len(route.Waypoints)).Info("Route complete")
	return nil
}

func (n *ActionNavigator) cancel(logger modular.Logger) {
	if err := n.Client.CancelGoal(); err != nil {
		logger.WithError(err).Warn("Cancelling goal failed")
	}
}

// LogModule is the child logger the navigators are given by the binary.
const LogModule = "navigation"

// loggerOrStandard falls back to a module logger on a fresh logrus logger at
// info level.
func loggerOrStandard(logger modular.Logger) modular.Logger {
	if logger == nil {
		return modular.NewRootLogger(logrus.New()).GetOrCreateChild(LogModule, logrus.InfoLevel)
	}
	return logger
}
