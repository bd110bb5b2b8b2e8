package actionlib

import (
	"fmt"
	"sync"

	"github.com/rosenbergj/autonav/ros"
)

// goalIDGenerator hands out ids of the form <node>-<count>-<sec>-<nsec>.
type goalIDGenerator struct {
	goals      int
	goalsMutex sync.Mutex
	nodeName   string
}

func newGoalIDGenerator(nodeName string) *goalIDGenerator {
	return &goalIDGenerator{
		nodeName: nodeName,
	}
}

func (g *goalIDGenerator) generateID(now ros.Time) string {
	g.goalsMutex.Lock()
	defer g.goalsMutex.Unlock()

	g.goals++
	return fmt.Sprintf("%s-%d-%d-%d", g.nodeName, g.goals, now.Sec, now.NSec)
}
