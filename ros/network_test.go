package ros

import (
	"testing"
)

func TestDetermineHost(t *testing.T) {
	cases := []struct {
		hostname, ip string
		host         string
		localOnly    bool
	}{
		{"localhost", "", "localhost", true},
		{"hostname.in.env.var", "", "hostname.in.env.var", false},
		{"hostname.in.env.var", "1.2.3.4", "hostname.in.env.var", false},
		{"", "1.2.3.4", "1.2.3.4", false},
		{"", "127.0.0.1", "127.0.0.1", true},
		{"", "::1", "::1", true},
	}
	for _, c := range cases {
		t.Setenv("ROS_HOSTNAME", c.hostname)
		t.Setenv("ROS_IP", c.ip)
		host, localOnly := determineHost()
		if host != c.host || localOnly != c.localOnly {
			t.Errorf("ROS_HOSTNAME=%q ROS_IP=%q: got (%s, %v)", c.hostname, c.ip, host, localOnly)
		}
	}

	t.Setenv("ROS_HOSTNAME", "")
	t.Setenv("ROS_IP", "")
	if host, _ := determineHost(); host == "" {
		t.Error("fallback produced an empty host")
	}
}
