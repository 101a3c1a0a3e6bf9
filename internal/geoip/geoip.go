// Package geoip resolves a client's country of origin from its remote
// address using a MaxMind GeoIP2/GeoLite2 database.
//
// Lookups are best-effort: callers are expected to swallow errors and
// proceed without a country hint, since failing to geolocate must never
// affect the connection.
package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Resolver answers country lookups against a MaxMind mmdb file.
// It is safe for concurrent use.
type Resolver struct {
	reader *geoip2.Reader
}

// Open opens the mmdb database at path.
func Open(path string) (*Resolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %s: %w", path, err)
	}
	return &Resolver{reader: reader}, nil
}

// Close releases the underlying database.
func (r *Resolver) Close() error {
	return r.reader.Close()
}

// Country returns the ISO 3166-1 alpha-2 country code for addr.
// addr may be a bare IP or an "ip:port" pair as delivered by the host.
func (r *Resolver) Country(addr string) (string, error) {
	ip := net.ParseIP(hostFromAddr(addr))
	if ip == nil {
		return "", fmt.Errorf("invalid remote address %q", addr)
	}

	record, err := r.reader.Country(ip)
	if err != nil {
		return "", fmt.Errorf("geoip lookup: %w", err)
	}
	if record.Country.IsoCode == "" {
		return "", fmt.Errorf("no country for address %q", addr)
	}
	return record.Country.IsoCode, nil
}

func hostFromAddr(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
