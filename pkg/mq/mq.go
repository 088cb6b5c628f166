// Package mq RabbitMQ消息发布
//
// 发布者声明一个持久化的topic交换机，消息体为JSON，投递模式为持久化。
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrClosed 发布者已关闭
var ErrClosed = errors.New("mq: publisher closed")

// Channel 发布所需的amqp.Channel子集
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher 消息发布者，并发安全
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
	appID    string
	closed   bool
}

// Options 发布者配置
type Options struct {
	URL          string
	Exchange     string
	ExchangeType string // 默认topic
	AppID        string
}

// NewPublisher 连接RabbitMQ并声明交换机
func NewPublisher(opts Options) (*Publisher, error) {
	if opts.ExchangeType == "" {
		opts.ExchangeType = amqp.ExchangeTopic
	}

	conn, err := amqp.Dial(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		opts.Exchange,
		opts.ExchangeType,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", opts.Exchange, err)
	}

	p := NewPublisherWithChannel(ch, opts.Exchange, opts.AppID)
	p.conn = conn
	return p, nil
}

// NewPublisherWithChannel 基于已有channel创建发布者
func NewPublisherWithChannel(ch Channel, exchange, appID string) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		appID:    appID,
	}
}

// Exchange 交换机名称
func (p *Publisher) Exchange() string {
	return p.exchange
}

// Publish 以JSON发布消息
// amqp channel不支持并发发布，这里串行化
func (p *Publisher) Publish(ctx context.Context, routingKey, messageID string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			AppId:        p.appID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// Close 关闭channel和连接，可重复调用
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
