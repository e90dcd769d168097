package notify

import (
	"fmt"
	"time"

	"sanisip/internal/logger"

	"github.com/cenkalti/backoff/v4"
	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	defaultClientID   = "sanisip-dashboard"
	defaultMaxRetries = 5
	defaultMaxElapsed = 10 * time.Second
	publishTimeout    = 5 * time.Second
	connectTimeout    = 5 * time.Second
)

// Config describes the broker connection.
type Config struct {
	Broker     string // e.g. tcp://localhost:1883
	ClientID   string
	Topic      string
	MaxRetries int
	MaxElapsed time.Duration
}

// MQTTPublisher publishes to a real broker.
type MQTTPublisher struct {
	client paho.Client
	topic  string
}

var _ Publisher = (*MQTTPublisher)(nil)

// NewMQTTPublisher connects to the broker, retrying with exponential backoff.
func NewMQTTPublisher(cfg Config, log *logger.Logger) (*MQTTPublisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker is not configured")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = defaultClientID
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = defaultMaxElapsed
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.MaxElapsed

	client := paho.NewClient(opts)
	if err := connectWithRetry(client, backoff.WithMaxRetries(bo, uint64(cfg.MaxRetries-1)), cfg.Broker, log); err != nil {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect to broker %s: %w", cfg.Broker, err)
	}

	if log != nil {
		log.Infow("mqtt_connected", "broker", cfg.Broker, "topic", cfg.Topic)
	}
	return &MQTTPublisher{client: client, topic: cfg.Topic}, nil
}

// connectWithRetry reuses one client across attempts so a failed attempt
// leaves no reconnecting client behind.
func connectWithRetry(client paho.Client, bo backoff.BackOff, broker string, log *logger.Logger) error {
	return backoff.Retry(func() error {
		token := client.Connect()
		if !token.WaitTimeout(connectTimeout) {
			return fmt.Errorf("connection timeout")
		}
		if err := token.Error(); err != nil {
			if log != nil {
				log.Infow("mqtt_connect_retry", "broker", broker, "err", err)
			}
			return err
		}
		return nil
	}, bo)
}

// PublishStatus sends the event with QoS 1, retained so late subscribers see the verdict.
func (p *MQTTPublisher) PublishStatus(event StatusEvent) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := p.client.Publish(p.topic, 1, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
