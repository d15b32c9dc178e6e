//go:build linux

package http

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// ListenTCP binds [::]:port as a dual-stack socket, like net.Listen, and
// calls listen(2) with the given backlog, which net.Listen does not expose.
// Hosts without IPv6 get an IPv4-only 0.0.0.0:port listener.
func ListenTCP(port, backlog int) (net.Listener, error) {
	if port < 0 || port > 0xffff {
		return nil, fmt.Errorf("http: invalid port %d", port)
	}
	if backlog <= 0 {
		backlog = DefaultBacklog
	}

	fd, err := listenFD(unix.AF_INET6, port, backlog)
	if errors.Is(err, unix.EAFNOSUPPORT) || errors.Is(err, unix.EADDRNOTAVAIL) {
		fd, err = listenFD(unix.AF_INET, port, backlog)
	}
	if err != nil {
		return nil, err
	}

	// FileListener dups the descriptor.
	f := os.NewFile(uintptr(fd), fmt.Sprintf("tcp-listener:%d", port))
	defer f.Close()

	return net.FileListener(f)
}

func listenFD(family, port, backlog int) (int, error) {
	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return -1, os.NewSyscallError("socket", err)
	}

	var sa unix.Sockaddr = &unix.SockaddrInet4{Port: port}
	if family == unix.AF_INET6 {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
			unix.Close(fd)
			return -1, os.NewSyscallError("setsockopt", err)
		}
		sa = &unix.SockaddrInet6{Port: port}
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, os.NewSyscallError("setsockopt", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, os.NewSyscallError("bind", err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return -1, os.NewSyscallError("listen", err)
	}
	return fd, nil
}
