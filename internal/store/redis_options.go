package store

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const upstashRESPPort = "6379"

// RedisOptions builds client options from a store endpoint and credential.
//
// The endpoint may be a redis:// or rediss:// URL, an https:// URL of a hosted
// Redis (served over TLS on the standard port), or a bare host:port. A non-empty
// token overrides any password in the URL. timeout bounds dialing and every
// read and write; zero keeps the go-redis defaults.
func RedisOptions(endpoint, token string, timeout time.Duration) (*redis.Options, error) {
	var (
		opts *redis.Options
		err  error
	)

	switch {
	case strings.HasPrefix(endpoint, "redis://"), strings.HasPrefix(endpoint, "rediss://"):
		opts, err = redis.ParseURL(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
	case strings.HasPrefix(endpoint, "https://"):
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}

		host := u.Hostname()
		opts = &redis.Options{
			Addr:      net.JoinHostPort(host, upstashRESPPort),
			Username:  "default",
			TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host},
		}
	default:
		opts = &redis.Options{Addr: endpoint}
	}

	if token != "" {
		opts.Password = token
	}

	if timeout > 0 {
		opts.DialTimeout = timeout
		opts.ReadTimeout = timeout
		opts.WriteTimeout = timeout
	}

	return opts, nil
}
