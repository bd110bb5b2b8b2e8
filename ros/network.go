package ros

import (
	"net"
	"os"
	"strings"
)

// determineHost picks the address advertised to other nodes, and reports
// whether it is a loopback address.
func determineHost() (string, bool) {
	if rosHostname, ok := os.LookupEnv("ROS_HOSTNAME"); ok && rosHostname != "" {
		return rosHostname, rosHostname == "localhost"
	}
	if rosIP, ok := os.LookupEnv("ROS_IP"); ok && rosIP != "" {
		return rosIP, rosIP == "::1" || strings.HasPrefix(rosIP, "127.")
	}
	if osHostname, err := os.Hostname(); err == nil && osHostname != "localhost" {
		return osHostname, false
	}
	if addrs, err := net.InterfaceAddrs(); err == nil {
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				return ipnet.IP.String(), false
			}
		}
	}
	return "127.0.0.1", true
}
