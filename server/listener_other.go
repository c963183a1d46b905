//go:build !unix

package server

import (
	"net"
	"strconv"
)

// listenTCP4 非 unix 平台无法指定 backlog，退回 net.Listen
func listenTCP4(host string, port, _ int) (net.Listener, error) {
	return net.Listen("tcp4", net.JoinHostPort(host, strconv.Itoa(port)))
}
