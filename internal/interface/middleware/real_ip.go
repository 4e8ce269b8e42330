package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ProxySet is the set of peers allowed to report the client address through
// forwarding headers.
type ProxySet []*net.IPNet

// ParseProxies accepts bare IPs and CIDRs. Entries that parse as neither are
// returned in bad.
func ParseProxies(entries []string) (set ProxySet, bad []string) {
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				bad = append(bad, e)
				continue
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			set = append(set, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(e)
		if err != nil {
			bad = append(bad, e)
			continue
		}
		set = append(set, n)
	}
	return set, bad
}

// Contains reports whether ip belongs to a trusted proxy.
func (s ProxySet) Contains(ip net.IP) bool {
	for _, n := range s {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// RealIP sets the client address into Gin context (key: "real_ip").
// Forwarding headers are read only when the TCP peer is a trusted proxy:
// 1) CF-Connecting-IP
// 2) X-Forwarded-For, right-most hop that is not itself a trusted proxy
// Any other peer is taken as the client.
func RealIP(trusted ProxySet) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", trusted.resolve(c))
		c.Next()
	}
}

func (s ProxySet) resolve(c *gin.Context) string {
	peer := net.ParseIP(c.RemoteIP())
	if peer == nil {
		return c.RemoteIP()
	}
	if !s.Contains(peer) {
		return peer.String()
	}

	if cf := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); cf != nil {
		return cf.String()
	}

	client := peer
	hops := strings.Split(c.GetHeader("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := net.ParseIP(strings.TrimSpace(hops[i]))
		if hop == nil {
			break
		}
		client = hop
		if !s.Contains(hop) {
			break
		}
	}
	return client.String()
}
