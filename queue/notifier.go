package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/models"
	otellogger "github.com/octabyte/bm-social/otel/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// PostNotifier publishes a post.created event for every post the client
// creates. Publishing failures are logged and otherwise ignored.
type PostNotifier struct {
	publisher Publisher
	conn      *Connection
	now       func() time.Time
}

func NewPostNotifier(publisher Publisher) *PostNotifier {
	return &PostNotifier{publisher: publisher, now: time.Now}
}

// DialPostNotifier connects to the broker at uri and publishes to the
// durable queue named queueName through the default exchange.
func DialPostNotifier(uri, queueName string) (*PostNotifier, error) {
	conn, err := NewConnection(ConnectionConfig{
		URI: uri,
		QueueConfig: &Config{
			Name:    queueName,
			Type:    QueueTypeClassic,
			Durable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	n := NewPostNotifier(NewPublisher(conn.Ch, PublishConfig{
		RoutingKey:   queueName,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
	}))
	n.conn = conn
	return n, nil
}

func (n *PostNotifier) PostCreated(ctx context.Context, post models.Post) {
	if err := n.publish(ctx, post); err != nil {
		otellogger.ErrorCtx(ctx, "failed to publish post event", err, zap.Int64("post_id", post.ID))
	}
}

func (n *PostNotifier) publish(ctx context.Context, post models.Post) error {
	body, err := json.Marshal(models.PostEvent{
		Name:       enums.EventPostCreated,
		Data:       post,
		OccurredAt: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return n.publisher.Publish(ctx, body)
}

func (n *PostNotifier) Close() error {
	err := n.publisher.Close()
	if n.conn != nil {
		err = errors.Join(err, n.conn.Close())
	}
	return err
}
