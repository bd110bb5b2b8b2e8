package navigation

import (
	"sync"
	"testing"

	"github.com/rosenbergj/autonav/msgs/nav_msgs"
)

func TestPositionCell(t *testing.T) {
	cell := NewPositionCell()
	if cell.Received() || cell.Load() != (Position{}) {
		t.Fatal("new cell should read as the origin")
	}

	odom := &nav_msgs.Odometry{}
	odom.Pose.Pose.Position.X = 1.5
	odom.Pose.Pose.Position.Y = -2
	odom.Pose.Pose.Position.Z = 9
	cell.OnOdometry(odom)

	if !cell.Received() || cell.Load() != (Position{1.5, -2}) {
		t.Errorf("unexpected position %+v", cell.Load())
	}
	select {
	case <-cell.Updates():
	default:
		t.Error("no update notification")
	}
}

func TestPositionCellConcurrent(t *testing.T) {
	cell := NewPositionCell()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cell.Store(Position{float64(i), float64(i)})
				if p := cell.Load(); p.X != p.Y {
					t.Errorf("torn read %+v", p)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
