package navigation

import (
	"context"
	"testing"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/msgs/move_base_msgs"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeGoalClient struct {
	serverUp bool
	// states holds the terminal state reported for each goal in order;
	// goals past the end succeed.
	states    []uint8
	goals     []*move_base_msgs.MoveBaseGoal
	cancelled int
	onSend    func(n int)
}

func (c *fakeGoalClient) WaitForServer(ctx context.Context, timeout time.Duration) bool {
	return c.serverUp
}

func (c *fakeGoalClient) SendGoal(ctx context.Context, goal *move_base_msgs.MoveBaseGoal) error {
	c.goals = append(c.goals, goal)
	if c.onSend != nil {
		c.onSend(len(c.goals))
	}
	return nil
}

func (c *fakeGoalClient) WaitForResult(ctx context.Context, timeout time.Duration) bool {
	return ctx.Err() == nil
}

func (c *fakeGoalClient) GetState() (uint8, error) {
	if i := len(c.goals) - 1; i < len(c.states) {
		return c.states[i], nil
	}
	return actionlib_msgs.SUCCEEDED, nil
}

func (c *fakeGoalClient) GetGoalStatusText() (string, error) {
	return "Failed to find a valid plan.", nil
}

func (c *fakeGoalClient) CancelGoal() error {
	c.cancelled++
	return nil
}

type recordingObserver struct {
	started []int
	reached []int
}

func (o *recordingObserver) WaypointStarted(index int, wp Waypoint) {
	o.started = append(o.started, index)
}

func (o *recordingObserver) WaypointReached(index int, wp Waypoint) {
	o.reached = append(o.reached, index)
}

func moduleLogger(l *logrus.Logger) modular.Logger {
	return modular.NewRootLogger(l).GetOrCreateChild(LogModule, logrus.InfoLevel)
}

func quietLogger() modular.Logger {
	logger, _ := test.NewNullLogger()
	return moduleLogger(logger)
}

func TestActionNavigatorVisitsInOrder(t *testing.T) {
	client := &fakeGoalClient{serverUp: true}
	observer := &recordingObserver{}
	nav := NewActionNavigator(client, quietLogger())
	nav.Observer = observer

	route := DefaultRoute()
	if err := nav.Run(context.Background(), route); err != nil {
		t.Fatal(err)
	}

	if len(client.goals) != len(route.Waypoints) {
		t.Fatalf("expected %d goals but %d", len(route.Waypoints), len(client.goals))
	}
	for i, goal := range client.goals {
		pos := goal.TargetPose.Pose.Position
		if pos.X != route.Waypoints[i].X || pos.Y != route.Waypoints[i].Y {
			t.Errorf("goal %d: expected %+v but %+v", i, route.Waypoints[i], pos)
		}
		if goal.TargetPose.Header.FrameId != "map" || goal.TargetPose.Pose.Orientation.W != 1 {
			t.Errorf("goal %d: unexpected pose %+v", i, goal.TargetPose)
		}
	}
	if len(observer.reached) != len(route.Waypoints) || observer.reached[4] != 4 {
		t.Errorf("unexpected reached %v", observer.reached)
	}
	if client.cancelled != 0 {
		t.Errorf("unexpected cancel")
	}
}

func TestActionNavigatorFailure(t *testing.T) {
	client := &fakeGoalClient{
		serverUp: true,
		states:   []uint8{actionlib_msgs.SUCCEEDED, actionlib_msgs.ABORTED},
	}
	observer := &recordingObserver{}
	nav := NewActionNavigator(client, quietLogger())
	nav.Observer = observer

	err := nav.Run(context.Background(), DefaultRoute())
	if errors.Cause(err) != ErrRecoveryNotImplemented {
		t.Fatalf("expected ErrRecoveryNotImplemented but %v", err)
	}
	if len(client.goals) != 2 {
		t.Errorf("expected navigation to stop after 2 goals, sent %d", len(client.goals))
	}
	if client.cancelled != 1 {
		t.Errorf("expected the failed goal to be cancelled")
	}
	if len(observer.started) != 2 || len(observer.reached) != 1 {
		t.Errorf("unexpected progress started %v reached %v", observer.started, observer.reached)
	}
}

func TestActionNavigatorWithoutServer(t *testing.T) {
	client := &fakeGoalClient{serverUp: false}
	logger, hook := test.NewNullLogger()
	nav := NewActionNavigator(client, moduleLogger(logger))

	if err := nav.Run(context.Background(), DefaultRoute()); err != nil {
		t.Fatal(err)
	}
	if len(client.goals) != 5 {
		t.Errorf("expected goals to be sent anyway, sent %d", len(client.goals))
	}
	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["module"] == LogModule {
			warned = true
		}
	}
	if !warned {
		t.Error("missing server warning")
	}
}

func TestActionNavigatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeGoalClient{serverUp: true}
	client.onSend = func(n int) {
		if n == 3 {
			cancel()
		}
	}
	nav := NewActionNavigator(client, quietLogger())

	err := nav.Run(ctx, DefaultRoute())
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled but %v", err)
	}
	if len(client.goals) != 3 || client.cancelled != 1 {
		t.Errorf("sent %d goals, cancelled %d", len(client.goals), client.cancelled)
	}
}

func TestActionNavigatorEmptyRoute(t *testing.T) {
	nav := NewActionNavigator(&fakeGoalClient{}, quietLogger())
	if err := nav.Run(context.Background(), Route{FrameID: "map"}); err != ErrEmptyRoute {
		t.Errorf("expected ErrEmptyRoute but %v", err)
	}
}
