package rosbridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/msgs/geometry_msgs"
	"github.com/rosenbergj/autonav/msgs/move_base_msgs"
	"github.com/rosenbergj/autonav/msgs/nav_msgs"
	"github.com/rosenbergj/autonav/navigation"
	"github.com/rosenbergj/autonav/ros"
)

// PosePublisher publishes goal poses through rosbridge.
type PosePublisher struct {
	client *Client
	topic  string
}

func NewPosePublisher(client *Client, topic string) (*PosePublisher, error) {
	if err := client.Advertise(topic, geometry_msgs.MsgPoseStamped.Name()); err != nil {
		return nil, err
	}
	return &PosePublisher{client: client, topic: topic}, nil
}

func (p *PosePublisher) PublishPose(ctx context.Context, pose *geometry_msgs.PoseStamped) error {
	return p.client.Publish(p.topic, toPoseStampedJSON(pose))
}

// SubscribeOdometry stores every position received on topic in cell.
func SubscribeOdometry(client *Client, topic string, cell *navigation.PositionCell) error {
	logger := client.logger.WithField("topic", topic)
	return client.Subscribe(topic, nav_msgs.MsgOdometry.Name(), func(msg []byte) {
		x, y, err := parsePosition(msg)
		if err != nil {
			logger.WithError(err).Warn("Malformed odometry")
			return
		}
		cell.Store(navigation.Position{X: x, Y: y})
	})
}

// GoalClient drives a move_base action server over rosbridge topics. It
// tracks one goal at a time.
type GoalClient struct {
	client   *Client
	action   string
	nodeName string
	logger   modular.Logger

	mutex      sync.Mutex
	serverSeen chan struct{}
	seenOnce   sync.Once
	goals      int
	goalID     actionlib_msgs.GoalID
	status     actionlib_msgs.GoalStatus
	done       chan struct{}
}

func NewGoalClient(client *Client, action, nodeName string) (*GoalClient, error) {
	gc := &GoalClient{
		client:     client,
		action:     action,
		nodeName:   nodeName,
		logger:     client.logger.WithField("action", action),
		serverSeen: make(chan struct{}),
	}

	if err := client.Advertise(action+"/goal", move_base_msgs.MsgMoveBaseActionGoal.Name()); err != nil {
		return nil, err
	}
	if err := client.Advertise(action+"/cancel", actionlib_msgs.MsgGoalID.Name()); err != nil {
		return nil, err
	}
	if err := client.Subscribe(action+"/status", actionlib_msgs.MsgGoalStatusArray.Name(), gc.onStatus); err != nil {
		return nil, err
	}
	if err := client.Subscribe(action+"/result", move_base_msgs.MsgMoveBaseActionResult.Name(), gc.onResult); err != nil {
		return nil, err
	}
	return gc, nil
}

// WaitForServer waits for the first status message from the action server.
func (gc *GoalClient) WaitForServer(ctx context.Context, timeout time.Duration) bool {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-gc.serverSeen:
		return true
	case <-expired:
	case <-ctx.Done():
	case <-gc.client.Done():
	}
	return false
}

func (gc *GoalClient) SendGoal(ctx context.Context, goal *move_base_msgs.MoveBaseGoal) error {
	now := ros.Now()

	gc.mutex.Lock()
	gc.goals++
	gc.goalID = actionlib_msgs.GoalID{
		Stamp: now,
		Id:    fmt.Sprintf("%s-%d-%d-%d", gc.nodeName, gc.goals, now.Sec, now.NSec),
	}
	gc.status = actionlib_msgs.GoalStatus{GoalId: gc.goalID, Status: actionlib_msgs.PENDING}
	gc.done = make(chan struct{})
	id := gc.goalID
	gc.mutex.Unlock()

	if err := gc.client.Publish(gc.action+"/goal", toActionGoalJSON(id, goal)); err != nil {
		return errors.Wrap(err, "send goal")
	}
	gc.logger.WithField("goal_id", id.Id).Debug("Goal sent")
	return nil
}

// WaitForResult reports whether a result for the current goal arrived. A
// zero timeout waits until ctx is done.
func (gc *GoalClient) WaitForResult(ctx context.Context, timeout time.Duration) bool {
	gc.mutex.Lock()
	done := gc.done
	gc.mutex.Unlock()
	if done == nil {
		return false
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-done:
		return true
	case <-expired:
	case <-ctx.Done():
	case <-gc.client.Done():
	}
	return false
}

func (gc *GoalClient) GetState() (uint8, error) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()

	if gc.done == nil {
		return actionlib_msgs.LOST, errors.New("no goal sent")
	}
	switch gc.status.Status {
	case actionlib_msgs.RECALLING:
		return actionlib_msgs.PENDING, nil
	case actionlib_msgs.PREEMPTING:
		return actionlib_msgs.ACTIVE, nil
	}
	return gc.status.Status, nil
}

func (gc *GoalClient) GetGoalStatusText() (string, error) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()

	if gc.done == nil {
		return "", errors.New("no goal sent")
	}
	return gc.status.Text, nil
}

func (gc *GoalClient) CancelGoal() error {
	gc.mutex.Lock()
	id := gc.goalID
	gc.mutex.Unlock()
	if id.Id == "" {
		return nil
	}

	return gc.client.Publish(gc.action+"/cancel", goalIDJSON{Stamp: toTimeJSON(ros.Now()), ID: id.Id})
}

func (gc *GoalClient) onStatus(msg []byte) {
	gc.seenOnce.Do(func() { close(gc.serverSeen) })

	list, err := parseStatusList(msg)
	if err != nil {
		gc.logger.WithError(err).Warn("Malformed goal status")
		return
	}

	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	if gc.done == nil || isClosed(gc.done) {
		return
	}
	for _, status := range list {
		if status.GoalId.Id == gc.goalID.Id {
			gc.status = status
			return
		}
	}
}

func (gc *GoalClient) onResult(msg []byte) {
	status, err := parseGoalStatus(statusField(msg))
	if err != nil {
		gc.logger.WithError(err).Warn("Malformed result")
		return
	}

	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	if gc.done == nil || status.GoalId.Id != gc.goalID.Id || isClosed(gc.done) {
		return
	}
	gc.status = status
	close(gc.done)
}

func isClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
