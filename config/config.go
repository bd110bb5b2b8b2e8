// Package config loads navigator settings from YAML or TOML files layered
// over built-in defaults.
package config

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rosenbergj/autonav/navigation"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ModeAction = "action"
	ModeSimple = "simple"

	TransportROS       = "ros"
	TransportRosbridge = "rosbridge"
)

type Config struct {
	Mode            string
	Transport       string
	NodeName        string
	Action          string
	GoalTopic       string
	GoalQueueSize   int
	OdomTopic       string
	RosbridgeURL    string
	ServerTimeout   time.Duration
	ResultTimeout   time.Duration
	WaypointTimeout time.Duration
	Threshold       float64
	PublishRate     float64
	LogLevel        string
	// LogLevels overrides LogLevel per module, keyed by module name
	// (ros, actionlib, navigation, rosbridge).
	LogLevels map[string]string
	Route     navigation.Route
}

func Default() Config {
	return Config{
		Mode:            ModeAction,
		Transport:       TransportROS,
		NodeName:        "auto_navigation",
		Action:          "move_base",
		GoalTopic:       "/move_base_simple/goal",
		GoalQueueSize:   10,
		OdomTopic:       "/odom",
		RosbridgeURL:    "ws://localhost:9090",
		ServerTimeout:   navigation.DefaultServerTimeout,
		ResultTimeout:   navigation.DefaultResultTimeout,
		WaypointTimeout: 0,
		Threshold:       navigation.DefaultThreshold,
		PublishRate:     navigation.DefaultPublishRate,
		LogLevel:        "info",
		Route:           navigation.DefaultRoute(),
	}
}

// fileConfig is the on-disk layout. Absent keys stay nil and keep the
// default.
type fileConfig struct {
	Mode            *string                 `yaml:"mode" toml:"mode"`
	Transport       *string                 `yaml:"transport" toml:"transport"`
	NodeName        *string                 `yaml:"node_name" toml:"node_name"`
	Action          *string                 `yaml:"action" toml:"action"`
	GoalTopic       *string                 `yaml:"goal_topic" toml:"goal_topic"`
	GoalQueueSize   *int                    `yaml:"goal_queue_size" toml:"goal_queue_size"`
	OdomTopic       *string                 `yaml:"odom_topic" toml:"odom_topic"`
	RosbridgeURL    *string                 `yaml:"rosbridge_url" toml:"rosbridge_url"`
	ServerTimeout   *string                 `yaml:"server_timeout" toml:"server_timeout"`
	ResultTimeout   *string                 `yaml:"result_timeout" toml:"result_timeout"`
	WaypointTimeout *string                 `yaml:"waypoint_timeout" toml:"waypoint_timeout"`
	Threshold       *float64                `yaml:"threshold" toml:"threshold"`
	PublishRate     *float64                `yaml:"publish_rate" toml:"publish_rate"`
	LogLevel        *string                 `yaml:"log_level" toml:"log_level"`
	LogLevels       map[string]string       `yaml:"log_levels" toml:"log_levels"`
	FrameID         *string                 `yaml:"frame_id" toml:"frame_id"`
	Orientation     *navigation.Orientation `yaml:"orientation" toml:"orientation"`
	Waypoints       []navigation.Waypoint   `yaml:"waypoints" toml:"waypoints"`
}

// Load reads path over the defaults. The format follows the extension:
// .yaml, .yml or .toml. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && err != io.EOF {
			return Config{}, errors.Wrapf(err, "parse %s", path)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &raw)
		if err != nil {
			return Config{}, errors.Wrapf(err, "parse %s", path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.Errorf("parse %s: unknown key %s", path, undecoded[0])
		}
	default:
		return Config{}, errors.Errorf("unsupported config format %q", ext)
	}

	if err := raw.apply(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

func (raw *fileConfig) apply(cfg *Config) error {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&cfg.Mode, raw.Mode)
	setString(&cfg.Transport, raw.Transport)
	setString(&cfg.NodeName, raw.NodeName)
	setString(&cfg.Action, raw.Action)
	setString(&cfg.GoalTopic, raw.GoalTopic)
	setString(&cfg.OdomTopic, raw.OdomTopic)
	setString(&cfg.RosbridgeURL, raw.RosbridgeURL)
	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.Route.FrameID, raw.FrameID)

	if raw.GoalQueueSize != nil {
		cfg.GoalQueueSize = *raw.GoalQueueSize
	}
	if raw.Threshold != nil {
		cfg.Threshold = *raw.Threshold
	}
	if raw.PublishRate != nil {
		cfg.PublishRate = *raw.PublishRate
	}
	if raw.LogLevels != nil {
		cfg.LogLevels = raw.LogLevels
	}
	if raw.Orientation != nil {
		cfg.Route.Orientation = *raw.Orientation
	}
	if raw.Waypoints != nil {
		cfg.Route.Waypoints = raw.Waypoints
	}

	durations := []struct {
		key string
		src *string
		dst *time.Duration
	}{
		{"server_timeout", raw.ServerTimeout, &cfg.ServerTimeout},
		{"result_timeout", raw.ResultTimeout, &cfg.ResultTimeout},
		{"waypoint_timeout", raw.WaypointTimeout, &cfg.WaypointTimeout},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(*d.src))
		if err != nil {
			return errors.Wrapf(err, "parse %s", d.key)
		}
		*d.dst = v
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeAction, ModeSimple:
	default:
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Transport {
	case TransportROS, TransportRosbridge:
	default:
		return errors.Errorf("unknown transport %q", c.Transport)
	}
	if c.NodeName == "" {
		return errors.New("node_name is empty")
	}
	if err := c.Route.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) || c.Threshold <= 0 {
		return errors.Errorf("threshold must be positive, got %v", c.Threshold)
	}
	if math.IsNaN(c.PublishRate) || math.IsInf(c.PublishRate, 0) || c.PublishRate <= 0 {
		return errors.Errorf("publish_rate must be positive, got %v", c.PublishRate)
	}
	if c.GoalQueueSize < 1 {
		return errors.Errorf("goal_queue_size must be at least 1, got %d", c.GoalQueueSize)
	}
	if c.ServerTimeout < 0 || c.ResultTimeout < 0 || c.WaypointTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for module, level := range c.LogLevels {
		if _, err := logrus.ParseLevel(level); err != nil {
			return errors.Wrapf(err, "log_levels.%s", module)
		}
	}
	return nil
}
