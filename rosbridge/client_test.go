package rosbridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/buger/jsonparser"
	modular "github.com/edwinhayes/logrus-modular"
	"github.com/gorilla/websocket"
	"github.com/rosenbergj/autonav/msgs/actionlib_msgs"
	"github.com/rosenbergj/autonav/navigation"
	"github.com/rosenbergj/autonav/ros"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeBridge is a rosbridge server that records incoming frames and lets
// the test push frames back. onFrame, when set, runs for every frame.
type fakeBridge struct {
	server  *httptest.Server
	mutex   sync.Mutex
	conn    *websocket.Conn
	frames  [][]byte
	arrived chan []byte
	onFrame func(b *fakeBridge, frame []byte)
}

func newFakeBridge(t *testing.T) *fakeBridge {
	t.Helper()
	b := &fakeBridge{arrived: make(chan []byte, 100)}
	upgrader := websocket.Upgrader{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		b.mutex.Lock()
		b.conn = conn
		b.mutex.Unlock()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			b.mutex.Lock()
			b.frames = append(b.frames, data)
			onFrame := b.onFrame
			b.mutex.Unlock()
			b.arrived <- data
			if onFrame != nil {
				onFrame(b, data)
			}
		}
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBridge) url() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http")
}

func (b *fakeBridge) push(t *testing.T, frame string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if err := b.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Errorf("push: %v", err)
	}
}

func (b *fakeBridge) received() [][]byte {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return append([][]byte(nil), b.frames...)
}

// next waits for the next frame with the given op.
func (b *fakeBridge) next(t *testing.T, op string) []byte {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case frame := <-b.arrived:
			if got, _ := jsonparser.GetString(frame, "op"); got == op {
				return frame
			}
		case <-timeout:
			t.Fatalf("no %s frame", op)
			return nil
		}
	}
}

func quietLogger(module string) modular.Logger {
	logger, _ := test.NewNullLogger()
	return modular.NewRootLogger(logger).GetOrCreateChild(module, logrus.InfoLevel)
}

func dialTest(t *testing.T, b *fakeBridge) *Client {
	t.Helper()
	client, err := Dial(context.Background(), b.url(), quietLogger(LogModule))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestOdometrySubscription(t *testing.T) {
	bridge := newFakeBridge(t)
	client := dialTest(t, bridge)

	cell := navigation.NewPositionCell()
	if err := SubscribeOdometry(client, "/odom", cell); err != nil {
		t.Fatal(err)
	}
	frame := bridge.next(t, "subscribe")
	if topic, _ := jsonparser.GetString(frame, "topic"); topic != "/odom" {
		t.Errorf("subscribed to %q", topic)
	}
	if typ, _ := jsonparser.GetString(frame, "type"); typ != "nav_msgs/Odometry" {
		t.Errorf("subscribed with type %q", typ)
	}

	bridge.push(t, `{"op":"publish","topic":"/odom","msg":{"header":{"frame_id":"odom"},`+
		`"pose":{"pose":{"position":{"x":1.25,"y":-0.5,"z":0},"orientation":{"x":0,"y":0,"z":0,"w":1}}}}}`)

	select {
	case <-cell.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no odometry update")
	}
	if pos := cell.Load(); pos != (navigation.Position{X: 1.25, Y: -0.5}) {
		t.Errorf("unexpected position %+v", pos)
	}
}

func TestPosePublisher(t *testing.T) {
	bridge := newFakeBridge(t)
	client := dialTest(t, bridge)

	pub, err := NewPosePublisher(client, "/move_base_simple/goal")
	if err != nil {
		t.Fatal(err)
	}
	frame := bridge.next(t, "advertise")
	if typ, _ := jsonparser.GetString(frame, "type"); typ != "geometry_msgs/PoseStamped" {
		t.Errorf("advertised type %q", typ)
	}

	route := navigation.DefaultRoute()
	if err := pub.PublishPose(context.Background(), route.PoseStamped(route.Waypoints[2], ros.NewTime(7, 9))); err != nil {
		t.Fatal(err)
	}
	frame = bridge.next(t, "publish")
	if x, _ := jsonparser.GetFloat(frame, "msg", "pose", "position", "x"); x != 5.75 {
		t.Errorf("unexpected x %v", x)
	}
	if w, _ := jsonparser.GetFloat(frame, "msg", "pose", "orientation", "w"); w != 1 {
		t.Errorf("unexpected w %v", w)
	}
	if frameID, _ := jsonparser.GetString(frame, "msg", "header", "frame_id"); frameID != "map" {
		t.Errorf("unexpected frame %q", frameID)
	}
	if secs, _ := jsonparser.GetInt(frame, "msg", "header", "stamp", "secs"); secs != 7 {
		t.Errorf("unexpected stamp %v", secs)
	}
}

func TestGoalClient(t *testing.T) {
	bridge := newFakeBridge(t)
	bridge.onFrame = func(b *fakeBridge, frame []byte) {
		op, _ := jsonparser.GetString(frame, "op")
		topic, _ := jsonparser.GetString(frame, "topic")
		if op != "publish" || topic != "move_base/goal" {
			return
		}
		id, _ := jsonparser.GetString(frame, "msg", "goal_id", "id")
		x, _ := jsonparser.GetFloat(frame, "msg", "goal", "target_pose", "pose", "position", "x")
		status := actionlib_msgs.SUCCEEDED
		if x > 9 {
			status = actionlib_msgs.ABORTED
		}
		b.push(t, `{"op":"publish","topic":"move_base/status","msg":{"status_list":[`+
			`{"goal_id":{"id":"`+id+`"},"status":1,"text":""}]}}`)
		b.push(t, `{"op":"publish","topic":"move_base/result","msg":{"status":`+
			`{"goal_id":{"id":"`+id+`"},"status":`+strconv.Itoa(int(status))+`,"text":"done"}}}`)
	}
	client := dialTest(t, bridge)

	gc, err := NewGoalClient(client, "move_base", "/auto_navigation")
	if err != nil {
		t.Fatal(err)
	}
	if gc.WaitForServer(context.Background(), 100*time.Millisecond) {
		t.Error("server reported before any status")
	}

	nav := navigation.NewActionNavigator(gc, quietLogger(navigation.LogModule))
	nav.ServerTimeout = 100 * time.Millisecond
	nav.ResultTimeout = 2 * time.Second
	route := navigation.Route{
		Waypoints:   []navigation.Waypoint{{X: 1, Y: 1}, {X: 9.71, Y: 2.44}, {X: 0, Y: 0}},
		Orientation: navigation.IdentityOrientation,
		FrameID:     "map",
	}
	err = nav.Run(context.Background(), route)
	if err == nil || !strings.Contains(err.Error(), "waypoint 1") {
		t.Fatalf("expected failure at waypoint 1 but %v", err)
	}

	var cancel []byte
	for cancel == nil {
		frame := bridge.next(t, "publish")
		if topic, _ := jsonparser.GetString(frame, "topic"); topic == "move_base/cancel" {
			cancel = frame
		}
	}
	if id, _ := jsonparser.GetString(cancel, "msg", "id"); !strings.HasPrefix(id, "/auto_navigation-2-") {
		t.Errorf("cancelled %q", id)
	}
	if !gc.WaitForServer(context.Background(), 0) {
		t.Error("server not seen after status")
	}
}

func TestStatusListParsing(t *testing.T) {
	list, err := parseStatusList([]byte(`{"header":{},"status_list":[` +
		`{"goal_id":{"stamp":{"secs":1,"nsecs":2},"id":"a"},"status":3,"text":"ok"},` +
		`{"goal_id":{"id":"b"},"status":4,"text":""}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].GoalId.Id != "a" || list[0].Status != actionlib_msgs.SUCCEEDED || list[1].Status != actionlib_msgs.ABORTED {
		t.Errorf("unexpected list %+v", list)
	}

	if list, err := parseStatusList([]byte(`{"status_list":[]}`)); err != nil || len(list) != 0 {
		t.Errorf("empty list: %v %v", list, err)
	}
	if _, err := parseStatusList([]byte(`{"status_list":[{"status":1}]}`)); err == nil {
		t.Error("expected error for a status without goal id")
	}
}

func TestClosedClient(t *testing.T) {
	bridge := newFakeBridge(t)
	client, err := Dial(context.Background(), bridge.url(), nil)
	if err != nil {
		t.Fatal(err)
	}
	client.Close()

	select {
	case <-client.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client not done after close")
	}
	if err := client.Publish("/x", struct{}{}); err != ErrClosed {
		t.Errorf("expected ErrClosed but %v", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	bridge := newFakeBridge(t)
	client := dialTest(t, bridge)

	odom := make(chan struct{}, 1)
	other := make(chan struct{}, 1)
	if err := client.Subscribe("/odom", "nav_msgs/Odometry", func([]byte) { odom <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	if err := client.Subscribe("/other", "std_msgs/Empty", func([]byte) { other <- struct{}{} }); err != nil {
		t.Fatal(err)
	}

	if err := client.Unsubscribe("/odom"); err != nil {
		t.Fatal(err)
	}
	frame := bridge.next(t, "unsubscribe")
	if topic, _ := jsonparser.GetString(frame, "topic"); topic != "/odom" {
		t.Errorf("unsubscribed from %q", topic)
	}
	if id, _ := jsonparser.GetString(frame, "id"); !strings.HasPrefix(id, "unsubscribe") {
		t.Errorf("unexpected id %q", id)
	}

	// Frames are dispatched in order, so once /other is seen the /odom frame
	// before it has been dropped.
	bridge.push(t, `{"op":"publish","topic":"/odom","msg":{}}`)
	bridge.push(t, `{"op":"publish","topic":"/other","msg":{}}`)
	select {
	case <-other:
	case <-time.After(2 * time.Second):
		t.Fatal("no message on /other")
	}
	select {
	case <-odom:
		t.Error("handler ran after unsubscribe")
	default:
	}
}

func TestAdvertiseOnce(t *testing.T) {
	bridge := newFakeBridge(t)
	client := dialTest(t, bridge)

	for i := 0; i < 2; i++ {
		if err := client.Advertise("/goal", "geometry_msgs/PoseStamped"); err != nil {
			t.Fatal(err)
		}
	}
	if err := client.Publish("/goal", struct{}{}); err != nil {
		t.Fatal(err)
	}
	bridge.next(t, "publish")
	advertised := 0
	for _, frame := range bridge.received() {
		if op, _ := jsonparser.GetString(frame, "op"); op == "advertise" {
			advertised++
		}
	}
	if advertised != 1 {
		t.Errorf("advertised %d times", advertised)
	}
}

func TestAdvertiseFailureNotRemembered(t *testing.T) {
	bridge := newFakeBridge(t)
	client := dialTest(t, bridge)
	client.Close()

	if err := client.Advertise("/goal", "geometry_msgs/PoseStamped"); err != ErrClosed {
		t.Fatalf("expected ErrClosed but %v", err)
	}
	client.mutex.Lock()
	_, remembered := client.advertised["/goal"]
	client.mutex.Unlock()
	if remembered {
		t.Error("failed advertise was recorded")
	}
}
