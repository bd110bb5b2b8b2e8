// Command autonav drives a robot through a list of waypoints using the ROS
// navigation stack.
//
//	autonav [-config file] [-mode action|simple] [-transport ros|rosbridge]
//	        [-log-level level] [name:=value ...]
//
// ROS remapping arguments are passed to the node untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/config"
	"github.com/rosenbergj/autonav/navigation"
	"github.com/rosenbergj/autonav/ros"
	"github.com/rosenbergj/autonav/rosbridge"
	"github.com/sirupsen/logrus"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// newLogger builds the root logger at cfg.LogLevel and applies the per
// module overrides.
func newLogger(cfg config.Config, out io.Writer) (ros.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(level)

	logger := ros.NewLogger(l)
	for module, name := range cfg.LogLevels {
		moduleLevel, err := logrus.ParseLevel(name)
		if err != nil {
			return nil, errors.Wrapf(err, "log level for %s", module)
		}
		logger.Module(module).SetLevel(moduleLevel)
	}
	return logger, nil
}

// splitRosArgs separates name:=value remappings from ordinary flags.
func splitRosArgs(args []string) (rosArgs, flagArgs []string) {
	for _, arg := range args {
		if strings.Contains(arg, ros.Remap) {
			rosArgs = append(rosArgs, arg)
		} else {
			flagArgs = append(flagArgs, arg)
		}
	}
	return rosArgs, flagArgs
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	rosArgs, flagArgs := splitRosArgs(args)

	fs := flag.NewFlagSet("autonav", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML or TOML config file")
	mode := fs.String("mode", "", "navigation mode: action or simple")
	transport := fs.String("transport", "", "transport: ros or rosbridge")
	logLevel := fs.String("log-level", "", "log level")
	if err := fs.Parse(flagArgs); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *transport != "" {
		cfg.Transport = *transport
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	err = navigate(ctx, cfg, logger, rosArgs)
	switch {
	case err == nil:
		return exitOK
	case errors.Cause(err) == context.Canceled:
		logger.Info("Interrupted")
		return exitOK
	}
	logger.WithError(err).Error("Navigation failed")
	return exitFailure
}

func navigate(ctx context.Context, cfg config.Config, logger ros.Logger, rosArgs []string) error {
	switch cfg.Transport {
	case config.TransportRosbridge:
		return navigateRosbridge(ctx, cfg, logger)
	default:
		return navigateROS(ctx, cfg, logger, rosArgs)
	}
}

func navigationLogger(cfg config.Config, logger ros.Logger) modular.Logger {
	return logger.Module(navigation.LogModule).WithField("transport", cfg.Transport)
}

func navigateROS(ctx context.Context, cfg config.Config, logger ros.Logger, rosArgs []string) error {
	node, err := ros.NewNodeWithLogger(cfg.NodeName, rosArgs, logger)
	if err != nil {
		return errors.Wrap(err, "create node")
	}
	defer node.Shutdown()

	// The node stops on SIGINT or a shutdown request from the master.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		node.Spin()
		cancel()
	}()

	entry := navigationLogger(cfg, logger).WithField("node", node.Name())
	if cfg.Mode == config.ModeSimple {
		pub, err := navigation.NewTopicPosePublisher(node, cfg.GoalTopic, cfg.GoalQueueSize)
		if err != nil {
			return err
		}
		defer pub.Shutdown()

		cell := navigation.NewPositionCell()
		sub, err := navigation.SubscribeOdometry(node, cfg.OdomTopic, cell)
		if err != nil {
			return err
		}
		defer sub.Shutdown()

		return simpleNavigator(cfg, pub, cell, entry).Run(ctx, cfg.Route)
	}

	client, err := navigation.NewMoveBaseClient(node, cfg.Action)
	if err != nil {
		return err
	}
	defer client.Shutdown()

	return actionNavigator(cfg, client, entry).Run(ctx, cfg.Route)
}

func navigateRosbridge(ctx context.Context, cfg config.Config, logger ros.Logger) error {
	client, err := rosbridge.Dial(ctx, cfg.RosbridgeURL, logger.Module(rosbridge.LogModule))
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-client.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.Mode == config.ModeSimple {
		pub, err := rosbridge.NewPosePublisher(client, cfg.GoalTopic)
		if err != nil {
			return err
		}
		cell := navigation.NewPositionCell()
		if err := rosbridge.SubscribeOdometry(client, cfg.OdomTopic, cell); err != nil {
			return err
		}
		return connectionError(client, simpleNavigator(cfg, pub, cell, navigationLogger(cfg, logger)).Run(ctx, cfg.Route))
	}

	goals, err := rosbridge.NewGoalClient(client, cfg.Action, "/"+cfg.NodeName)
	if err != nil {
		return err
	}
	return connectionError(client, actionNavigator(cfg, goals, navigationLogger(cfg, logger)).Run(ctx, cfg.Route))
}

// connectionError reports a dropped rosbridge connection instead of the
// cancellation it caused.
func connectionError(client *rosbridge.Client, err error) error {
	select {
	case <-client.Done():
		if errors.Cause(err) == context.Canceled {
			return errors.Wrap(client.Err(), "rosbridge")
		}
	default:
	}
	return err
}

func actionNavigator(cfg config.Config, client navigation.GoalClient, logger modular.Logger) *navigation.ActionNavigator {
	nav := navigation.NewActionNavigator(client, logger)
	nav.ServerTimeout = cfg.ServerTimeout
	nav.ResultTimeout = cfg.ResultTimeout
	return nav
}

func simpleNavigator(cfg config.Config, pub navigation.PosePublisher, odom navigation.OdometrySource, logger modular.Logger) *navigation.SimpleNavigator {
	nav := navigation.NewSimpleNavigator(pub, odom, logger)
	nav.Threshold = cfg.Threshold
	nav.Rate = cfg.PublishRate
	nav.WaypointTimeout = cfg.WaypointTimeout
	return nav
}
