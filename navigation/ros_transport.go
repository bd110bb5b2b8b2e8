package navigation

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/actionlib"
	"github.com/rosenbergj/autonav/msgs/geometry_msgs"
	"github.com/rosenbergj/autonav/msgs/move_base_msgs"
	"github.com/rosenbergj/autonav/msgs/nav_msgs"
	"github.com/rosenbergj/autonav/ros"
)

// MoveBaseClient is a GoalClient over a ROS move_base action server.
type MoveBaseClient struct {
	client actionlib.SimpleActionClient
}

func NewMoveBaseClient(node ros.Node, action string) (*MoveBaseClient, error) {
	client, err := actionlib.NewSimpleActionClient(node, action, move_base_msgs.ActionMoveBase)
	if err != nil {
		return nil, errors.Wrapf(err, "action client %s", action)
	}
	return &MoveBaseClient{client: client}, nil
}

func (c *MoveBaseClient) WaitForServer(ctx context.Context, timeout time.Duration) bool {
	return c.client.WaitForServer(ctx, ros.FromDuration(timeout))
}

func (c *MoveBaseClient) SendGoal(ctx context.Context, goal *move_base_msgs.MoveBaseGoal) error {
	return c.client.SendGoal(goal, nil, nil, nil)
}

func (c *MoveBaseClient) WaitForResult(ctx context.Context, timeout time.Duration) bool {
	return c.client.WaitForResult(ctx, ros.FromDuration(timeout))
}

func (c *MoveBaseClient) GetState() (uint8, error) {
	return c.client.GetState()
}

func (c *MoveBaseClient) GetGoalStatusText() (string, error) {
	return c.client.GetGoalStatusText()
}

func (c *MoveBaseClient) CancelGoal() error {
	return c.client.CancelGoal()
}

func (c *MoveBaseClient) Shutdown() {
	c.client.Shutdown()
}

// TopicPosePublisher publishes goal poses on a ROS topic.
type TopicPosePublisher struct {
	pub ros.Publisher
}

func NewTopicPosePublisher(node ros.Node, topic string, queueSize int) (*TopicPosePublisher, error) {
	pub, err := node.NewPublisherWithQueueSize(topic, geometry_msgs.MsgPoseStamped, queueSize)
	if err != nil {
		return nil, errors.Wrapf(err, "publisher %s", topic)
	}
	return &TopicPosePublisher{pub: pub}, nil
}

func (p *TopicPosePublisher) PublishPose(ctx context.Context, pose *geometry_msgs.PoseStamped) error {
	p.pub.Publish(pose)
	return nil
}

func (p *TopicPosePublisher) Shutdown() {
	p.pub.Shutdown()
}

// SubscribeOdometry feeds cell from a nav_msgs/Odometry topic. Updates
// arrive while the node spins.
func SubscribeOdometry(node ros.Node, topic string, cell *PositionCell) (ros.Subscriber, error) {
	sub, err := node.NewSubscriber(topic, nav_msgs.MsgOdometry, cell.OnOdometry)
	if err != nil {
		return nil, errors.Wrapf(err, "subscriber %s", topic)
	}
	return sub, nil
}
