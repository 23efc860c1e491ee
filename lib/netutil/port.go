package netutil

import "net"

// FreeTCPAddress asks the kernel for a free loopback port, and returns it as host:port.
// The port is released before returning, so it is free but not reserved.
func FreeTCPAddress() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()
	return listener.Addr().String(), nil
}
