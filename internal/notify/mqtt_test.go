package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	paho "github.com/eclipse/paho.mqtt.golang"
)

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Error() error                   { return t.err }

func (t doneToken) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

// flakyClient fails the first failN Connect calls.
type flakyClient struct {
	paho.Client // unused methods panic

	failN    int
	connects int
}

func (c *flakyClient) Connect() paho.Token {
	c.connects++
	if c.connects <= c.failN {
		return doneToken{err: errors.New("connection refused")}
	}
	return doneToken{}
}

func TestConnectWithRetry_ReusesClient(t *testing.T) {
	c := &flakyClient{failN: 2}
	bo := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 4)

	if err := connectWithRetry(c, bo, "tcp://broker:1883", nil); err != nil {
		t.Fatalf("connectWithRetry: %v", err)
	}
	if c.connects != 3 {
		t.Fatalf("Connect calls = %d, want 3 on the same client", c.connects)
	}
}

func TestConnectWithRetry_GivesUp(t *testing.T) {
	c := &flakyClient{failN: 100}
	bo := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)

	if err := connectWithRetry(c, bo, "tcp://broker:1883", nil); err == nil {
		t.Fatal("expected an error after retries are exhausted")
	}
	if c.connects != 3 {
		t.Fatalf("Connect calls = %d, want 1 attempt + 2 retries", c.connects)
	}
}
