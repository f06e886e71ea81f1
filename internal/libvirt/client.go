package libvirt

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/digitalocean/go-libvirt"
	"github.com/digitalocean/go-libvirt/socket/dialers"
)

const (
	// DefaultPort is the libvirtd TCP listen port used when the
	// endpoint does not carry an explicit port.
	DefaultPort = "16509"

	// defaultTimeout bounds the TCP dial to the remote daemon.
	defaultTimeout = 5 * time.Second
)

// Client wraps a go-libvirt connection to a remote libvirt daemon and
// provides the operations the reconciliation loop needs: inventory
// queries, reconfiguration, and power-on.
type Client struct {
	endpoint string
	timeout  time.Duration
	libvirt  *libvirt.Libvirt
}

// NewClient returns an unconnected Client for the given endpoint.
// The endpoint is "host" or "host:port"; a missing port defaults to 16509.
// If timeout is zero, a 5 second dial timeout is used.
//
// No connection is made here; Connect establishes (or re-verifies) it.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// Connect establishes a connection to the remote libvirt daemon, or
// verifies an existing one. An already-open connection that still
// answers a ping is reused rather than redialed.
func (c *Client) Connect(ctx context.Context) error {
	if c.libvirt != nil {
		if err := c.ping(); err == nil {
			return nil
		}
		// The previous connection went stale; drop it and redial.
		_ = c.libvirt.Disconnect()
		c.libvirt = nil
	}

	type result struct {
		l   *libvirt.Libvirt
		err error
	}
	resultCh := make(chan result, 1)

	go func() {
		l, err := c.dial()
		resultCh <- result{l: l, err: err}
	}()

	select {
	case <-ctx.Done():
		// The dial may still succeed after cancellation; its result is
		// abandoned, so drain it and hang up instead of leaking it.
		go func() {
			if res := <-resultCh; res.l != nil {
				_ = res.l.Disconnect()
			}
		}()
		return fmt.Errorf("connection cancelled: %w", ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return res.err
		}
		c.libvirt = res.l
		return nil
	}
}

// dial opens a fresh connection to the remote daemon.
func (c *Client) dial() (*libvirt.Libvirt, error) {
	host, port, err := net.SplitHostPort(c.endpoint)
	if err != nil {
		host = c.endpoint
		port = DefaultPort
	}

	dialer := dialers.NewRemote(host,
		dialers.UsePort(port),
		dialers.WithRemoteTimeout(c.timeout),
	)

	l := libvirt.NewWithDialer(dialer)
	if err := l.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to libvirt at %s:%s: %w", host, port, err)
	}

	return l, nil
}

// Close closes the libvirt connection and releases resources.
// It is safe to call Close multiple times.
func (c *Client) Close() error {
	if c.libvirt == nil {
		return nil
	}

	l := c.libvirt
	c.libvirt = nil
	if err := l.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect from libvirt: %w", err)
	}

	return nil
}

// Ping verifies the connection is still alive by calling a simple libvirt API.
func (c *Client) Ping() error {
	return c.ping()
}

func (c *Client) ping() error {
	if c.libvirt == nil {
		return fmt.Errorf("client not connected")
	}

	// Try to get libvirt version as a ping test
	if _, err := c.libvirt.ConnectGetLibVersion(); err != nil {
		return fmt.Errorf("libvirt connection is dead: %w", err)
	}

	return nil
}

// Libvirt returns the underlying go-libvirt client for direct API access.
// This should be used sparingly; prefer higher-level methods on Client.
func (c *Client) Libvirt() *libvirt.Libvirt {
	return c.libvirt
}

// Endpoint returns the remote endpoint this client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}
