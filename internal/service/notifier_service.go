package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/nats-io/nats.go"
)

type NotifierInterface interface {
	ApplicationSubmitted(ctx context.Context, app *model.JobApplication) error
}

// NATSNotifier publishes an event for every stored application so other
// systems (mailers, chat hooks) can react without polling the table.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

func NewNATSNotifier(cfg *config.NATSConfig) (*NATSNotifier, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name("careers"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSNotifier{conn: conn, subject: cfg.Subject}, nil
}

func (n *NATSNotifier) ApplicationSubmitted(ctx context.Context, app *model.JobApplication) error {
	data, err := json.Marshal(SubmittedEvent(app))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.conn.Publish(n.subject, data)
}

func (n *NATSNotifier) Close() {
	n.conn.Drain()
}

type NoopNotifier struct{}

func (NoopNotifier) ApplicationSubmitted(ctx context.Context, app *model.JobApplication) error {
	return nil
}

func SubmittedEvent(app *model.JobApplication) dto.SubmittedEvent {
	return dto.SubmittedEvent{
		ID:               app.ID.String(),
		Name:             app.Name,
		Email:            app.Email,
		CurrentResidence: app.CurrentResidence,
		HasCV:            app.CV().Present(),
		HasCoverLetter:   app.HasCoverLetter(),
		CreatedAt:        app.CreatedAt,
	}
}
