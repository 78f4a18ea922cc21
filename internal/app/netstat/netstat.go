package netstat

import (
	"net"
)

// Disconnected - no usable interface
const Disconnected = "Disconnected"

// Iface - the subset of net.Interface the status needs
type Iface struct {
	Name  string
	Flags net.Flags
	Addrs []net.Addr
}

// Status describes the first up, non-loopback interface holding an IPv4 address,
// e.g. "eth0 192.168.1.5"
func Status() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Disconnected
	}

	list := make([]Iface, 0, len(ifaces))
	for _, i := range ifaces {
		addrs, err := i.Addrs()
		if err != nil {
			continue
		}
		list = append(list, Iface{Name: i.Name, Flags: i.Flags, Addrs: addrs})
	}
	return Describe(list)
}

// Describe picks the interface reported by Status
func Describe(ifaces []Iface) string {
	for _, i := range ifaces {
		if i.Flags&net.FlagUp == 0 || i.Flags&net.FlagLoopback != 0 {
			continue
		}
		for _, addr := range i.Addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
				return i.Name + " " + ip4.String()
			}
		}
	}
	return Disconnected
}
