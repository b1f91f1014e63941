package events

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSEmitter publishes lifecycle events to a NATS server, one subject
// per task and event type (retry.task.<id>.<type>).
type NATSEmitter struct {
	conn   *nats.Conn
	config NATSConfig
}

// NATSConfig holds NATS connection configuration.
type NATSConfig struct {
	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	URL string

	// Name is the client name for identification.
	Name string

	// Token for token-based auth.
	Token string

	// User and Password for basic auth.
	User     string
	Password string

	// ReconnectWait is the time to wait between reconnection attempts.
	ReconnectWait time.Duration

	// MaxReconnects is the maximum number of reconnection attempts.
	// -1 = unlimited
	MaxReconnects int

	// ConnectTimeout for initial connection.
	ConnectTimeout time.Duration
}

// DefaultNATSConfig returns configuration with sensible defaults.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:            nats.DefaultURL,
		ReconnectWait:  2 * time.Second,
		MaxReconnects:  -1, // Unlimited
		ConnectTimeout: 5 * time.Second,
	}
}

// NewNATSEmitter connects to NATS and returns an emitter.
func NewNATSEmitter(cfg NATSConfig) (*NATSEmitter, error) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}

	conn, err := nats.Connect(cfg.URL, buildNATSOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NATSEmitter{
		conn:   conn,
		config: cfg,
	}, nil
}

// NewNATSEmitterFromConn creates an emitter from an existing connection.
func NewNATSEmitterFromConn(conn *nats.Conn, cfg NATSConfig) *NATSEmitter {
	return &NATSEmitter{
		conn:   conn,
		config: cfg,
	}
}

// buildNATSOptions constructs NATS connection options from config.
func buildNATSOptions(cfg NATSConfig) []nats.Option {
	opts := []nats.Option{
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.Timeout(cfg.ConnectTimeout),
	}

	if cfg.Name != "" {
		opts = append(opts, nats.Name(cfg.Name))
	}

	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	if cfg.User != "" {
		opts = append(opts, nats.UserInfo(cfg.User, cfg.Password))
	}

	return opts
}

// Emit publishes the event as JSON to its subject.
func (n *NATSEmitter) Emit(e Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if n.conn.IsClosed() {
		return ErrClosed
	}

	data, err := e.Marshal()
	if err != nil {
		return err
	}

	if err := n.conn.Publish(e.Subject(), data); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

// Close shuts down the NATS connection.
func (n *NATSEmitter) Close() error {
	n.conn.Close()
	return nil
}

// Conn returns the underlying NATS connection for advanced use.
func (n *NATSEmitter) Conn() *nats.Conn {
	return n.conn
}
