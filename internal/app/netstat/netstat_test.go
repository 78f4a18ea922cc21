package netstat

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ipNet(s string) net.Addr {
	ip, n, _ := net.ParseCIDR(s)
	n.IP = ip
	return n
}

func TestDescribe(t *testing.T) {
	lo := Iface{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addrs: []net.Addr{ipNet("127.0.0.1/8")}}
	down := Iface{Name: "eth1", Flags: 0, Addrs: []net.Addr{ipNet("10.0.0.9/24")}}
	v6only := Iface{Name: "wlan0", Flags: net.FlagUp, Addrs: []net.Addr{ipNet("fe80::1/64")}}
	eth0 := Iface{Name: "eth0", Flags: net.FlagUp, Addrs: []net.Addr{ipNet("fe80::2/64"), ipNet("192.168.1.5/24")}}

	assert.Equal(t, "eth0 192.168.1.5", Describe([]Iface{lo, down, v6only, eth0}))
	assert.Equal(t, Disconnected, Describe([]Iface{lo, down, v6only}))
	assert.Equal(t, Disconnected, Describe(nil))
	assert.Equal(t, "eth0 10.1.2.3", Describe([]Iface{{Name: "eth0", Flags: net.FlagUp, Addrs: []net.Addr{&net.IPAddr{IP: net.ParseIP("10.1.2.3")}}}}))
}

func TestStatus(t *testing.T) {
	assert.NotEmpty(t, Status())
}
