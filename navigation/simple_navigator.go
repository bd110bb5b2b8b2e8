package navigation

import (
	"context"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/msgs/geometry_msgs"
	"github.com/rosenbergj/autonav/ros"
	"github.com/sirupsen/logrus"
)

const (
	DefaultThreshold   = 0.05
	DefaultPublishRate = 0.2
)

// ErrWaypointTimeout is returned when a waypoint is not reached within
// SimpleNavigator.WaypointTimeout.
var ErrWaypointTimeout = errors.New("waypoint not reached in time")

// PosePublisher sends a goal pose to the navigation stack.
type PosePublisher interface {
	PublishPose(ctx context.Context, pose *geometry_msgs.PoseStamped) error
}

// SimpleNavigator republishes each waypoint until odometry places the robot
// within Threshold of it.
type SimpleNavigator struct {
	Publisher PosePublisher
	Odometry  OdometrySource
	Threshold float64
	// Rate is the publish frequency in Hz.
	Rate float64
	// WaypointTimeout of zero lets a waypoint take forever.
	WaypointTimeout time.Duration
	Observer        Observer
	Logger          modular.Logger
}

func NewSimpleNavigator(publisher PosePublisher, odometry OdometrySource, logger modular.Logger) *SimpleNavigator {
	return &SimpleNavigator{
		Publisher: publisher,
		Odometry:  odometry,
		Threshold: DefaultThreshold,
		Rate:      DefaultPublishRate,
		Logger:    logger,
	}
}

func (n *SimpleNavigator) Run(ctx context.Context, route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	if !finite(n.Threshold) || !finite(n.Rate) || n.Threshold <= 0 || n.Rate <= 0 {
		return errors.Errorf("invalid threshold %v or rate %v", n.Threshold, n.Rate)
	}
	logger := loggerOrStandard(n.Logger).WithField("mode", "simple")
	observer := observerOrNop(n.Observer)

	for i, wp := range route.Waypoints {
		wpLogger := logger.WithFields(logrus.Fields{"waypoint": i, "x": wp.X, "y": wp.Y})
		observer.WaypointStarted(i, wp)
		wpLogger.Info("Publishing goal")

		if err := n.reach(ctx, route.PoseStamped(wp, ros.Now()), wp, wpLogger); err != nil {
			return errors.Wrapf(err, "waypoint %d", i)
		}

		observer.WaypointReached(i, wp)
		wpLogger.Info("Waypoint reached")
	}

	logger.WithField("waypoints", len(route.Waypoints)).Info("Route complete")
	return nil
}

func (n *SimpleNavigator) reach(ctx context.Context, pose *geometry_msgs.PoseStamped, wp Waypoint, logger modular.Logger) error {
	if n.WaypointTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.WaypointTimeout)
		defer cancel()
	}

	rate := ros.NewRate(n.Rate)
	for !Reached(n.Odometry.Load(), wp, n.Threshold) {
		if err := n.Publisher.PublishPose(ctx, pose); err != nil {
			return errors.Wrap(err, "publish goal")
		}
		logger.WithField("distance", Distance(n.Odometry.Load(), wp.Position())).Debug("Goal published")

		if err := n.sleep(ctx, &rate, wp); err != nil {
			if errors.Cause(err) == context.DeadlineExceeded && n.WaypointTimeout > 0 {
				return ErrWaypointTimeout
			}
			return err
		}
	}
	return nil
}

// sleep waits out one publish cycle, returning early once an odometry
// update shows the robot has arrived.
func (n *SimpleNavigator) sleep(ctx context.Context, rate *ros.Rate, wp Waypoint) error {
	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			select {
			case <-cycleCtx.Done():
				return
			case <-n.Odometry.Updates():
				if Reached(n.Odometry.Load(), wp, n.Threshold) {
					cancel()
					return
				}
			}
		}
	}()

	err := rate.SleepContext(cycleCtx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil && errors.Cause(err) != context.Canceled {
		return err
	}
	return nil
}
