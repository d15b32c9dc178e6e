//go:build !linux

package http

import (
	"fmt"
	"net"
)

// ListenTCP binds :port. The backlog is left to the platform default.
func ListenTCP(port, backlog int) (net.Listener, error) {
	if port < 0 || port > 0xffff {
		return nil, fmt.Errorf("http: invalid port %d", port)
	}
	return net.Listen("tcp", fmt.Sprintf(":%d", port))
}
