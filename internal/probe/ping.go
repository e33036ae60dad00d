// Package probe checks the reachability of a device's recorded address.
package probe

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-ping/ping"
)

// Pinger performs ICMP reachability checks.
type Pinger struct {
	privileged bool
}

// NewPinger creates a pinger, detecting whether raw sockets are usable.
func NewPinger() *Pinger {
	privileged := os.Geteuid() == 0 || canUseRawSocket()
	return &Pinger{privileged: privileged}
}

// Ping reports whether a host answers ICMP within timeout. Without raw
// socket access it falls back to unprivileged UDP ping.
func (p *Pinger) Ping(ctx context.Context, ip string, timeout time.Duration) (bool, error) {
	pinger, err := ping.NewPinger(ip)
	if err != nil {
		return false, fmt.Errorf("creating pinger: %w", err)
	}

	pinger.Count = 1
	pinger.Timeout = timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < pinger.Timeout {
			pinger.Timeout = d
		}
	}
	pinger.SetPrivileged(p.privileged)

	// Run blocks until the count is reached or the timeout expires.
	if err := pinger.Run(); err != nil {
		return false, fmt.Errorf("pinging %s: %w", ip, err)
	}

	stats := pinger.Statistics()
	return stats.PacketsRecv > 0, nil
}

func canUseRawSocket() bool {
	conn, err := net.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
