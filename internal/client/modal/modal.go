// Package modal carries confirmation requests from list items to the dialog
// that owns them, and executes the confirmed action.
package modal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

type Kind string

const KindDeleteMessage Kind = "deleteMessage"

// Command is a request to open a confirmation dialog.
type Command struct {
	Kind   Kind
	APIURL string
	Query  map[string]string
}

type Dispatcher interface {
	Dispatch(cmd Command)
}

var ErrBusFull = errors.New("modal bus full")

// Bus is a buffered command channel. Dispatch never blocks; a command is
// dropped when a previous one is still waiting to be shown.
type Bus struct {
	ch     chan Command
	logger *zap.SugaredLogger
}

func NewBus(buffer int, logger *zap.Logger) *Bus {
	if buffer < 1 {
		buffer = 1
	}
	return &Bus{ch: make(chan Command, buffer), logger: logger.Sugar()}
}

func (b *Bus) Dispatch(cmd Command) {
	select {
	case b.ch <- cmd:
	default:
		b.logger.Warnw("Modal command dropped", "kind", cmd.Kind, "error", ErrBusFull)
	}
}

func (b *Bus) Commands() <-chan Command {
	return b.ch
}

// BuildURL appends query to base with keys in sorted order.
func BuildURL(base string, query map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse url %q: %w", base, err)
	}
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type DeleteMessageConfirmer struct {
	client Doer
	token  string
	logger *zap.SugaredLogger
}

func NewDeleteMessageConfirmer(client Doer, token string, logger *zap.Logger) *DeleteMessageConfirmer {
	if client == nil {
		client = http.DefaultClient
	}
	return &DeleteMessageConfirmer{client: client, token: token, logger: logger.Sugar()}
}

// Confirm issues DELETE <APIURL>?<Query> for a deleteMessage command.
func (d *DeleteMessageConfirmer) Confirm(ctx context.Context, cmd Command) error {
	if cmd.Kind != KindDeleteMessage {
		return fmt.Errorf("unexpected modal kind %q", cmd.Kind)
	}

	target, err := BuildURL(cmd.APIURL, cmd.Query)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to delete message: %s", strings.TrimSpace(resp.Status))
	}
	d.logger.Debugw("Message deleted", "url", target)
	return nil
}

// Run shows every deleteMessage command to ask and executes the confirmed ones until ctx ends.
func (d *DeleteMessageConfirmer) Run(ctx context.Context, bus *Bus, ask func(Command) bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-bus.Commands():
			if cmd.Kind != KindDeleteMessage || !ask(cmd) {
				continue
			}
			if err := d.Confirm(ctx, cmd); err != nil {
				d.logger.Warnw("Delete confirmation failed", "error", err)
			}
		}
	}
}
