package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/client"
	"github.com/opentracing/opentracing-go"

	"github.com/openinbox/inboxd/internal/tracing"
)

// connectMailbox establishes a connection to the configured IMAP server
func (s *IMAPService) connectMailbox(ctx context.Context) (*client.Client, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.connectMailbox")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("server", s.cfg.Server)
	span.SetTag("port", s.cfg.Port)
	span.SetTag("tls", s.cfg.TLS)

	serverAddr := fmt.Sprintf("%s:%d", s.cfg.Server, s.cfg.Port)

	dialer := &net.Dialer{
		Timeout:   CONNECT_TIMEOUT,
		KeepAlive: 30 * time.Second,
	}

	var c *client.Client
	var err error

	if s.cfg.TLS {
		tlsConfig := &tls.Config{
			ServerName: s.cfg.Server,
		}
		c, err = client.DialWithDialerTLS(dialer, serverAddr, tlsConfig)
	} else {
		c, err = client.DialWithDialer(dialer, serverAddr)
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, fmt.Errorf("failed to connect to %s: %w", serverAddr, err)
	}

	c.Timeout = CONNECT_TIMEOUT
	if err := c.Login(s.cfg.Username, s.cfg.Password); err != nil {
		c.Logout()
		tracing.TraceErr(span, err)
		return nil, fmt.Errorf("failed to login as %s: %w", s.cfg.Username, err)
	}
	c.Timeout = 0

	s.log.Infof("Connected to %s as %s", serverAddr, s.cfg.Username)
	return c, nil
}

// getClient gets an existing client or creates a new one if needed
func (s *IMAPService) getClient(ctx context.Context) (*client.Client, error) {
	s.clientMutex.Lock()
	defer s.clientMutex.Unlock()

	if s.client != nil {
		if err := s.client.Noop(); err == nil {
			return s.client, nil
		}
		s.log.Warn("Existing IMAP connection is broken, reconnecting")
		s.client = nil
	}

	c, err := s.connectMailbox(ctx)
	if err != nil {
		return nil, err
	}
	s.client = c
	return c, nil
}
