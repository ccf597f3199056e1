// Package amqp publishes budget alerts to a RabbitMQ exchange so downstream
// consumers (mailers, push gateways) can deliver them out of process.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
)

const publishTimeout = 5 * time.Second

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// One queue catches every alert kind; consumers filter on the routing key.
	if err := c.channel.QueueBind(c.queueName, "budget.*", c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (c *Client) BudgetAlert(ctx context.Context, user *ledger.User, d budget.OverallDecision) error {
	body, err := NewOverallAlertMessage(user, d).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := c.publish(ctx, RouteOverall, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "published overall budget alert",
		"user_id", user.ID,
		"state", d.State.String(),
		"exchange", c.exchangeName,
	)

	return nil
}

func (c *Client) CategoryAlert(ctx context.Context, user *ledger.User, d budget.CategoryDecision) error {
	body, err := NewCategoryAlertMessage(user, d).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := c.publish(ctx, RouteCategory, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "published category budget alert",
		"user_id", user.ID,
		"category", d.Budget.Category,
		"exchange", c.exchangeName,
	)

	return nil
}

func (c *Client) BalanceAlert(ctx context.Context, user *ledger.User, d budget.BalanceDecision) error {
	body, err := NewBalanceAlertMessage(user, d).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := c.publish(ctx, RouteBalance, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "published low balance alert",
		"user_id", user.ID,
		"card_id", d.CardID,
		"exchange", c.exchangeName,
	)

	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}

	if c.conn != nil {
		return c.conn.Close()
	}

	return nil
}
