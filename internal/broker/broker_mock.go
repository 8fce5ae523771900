package broker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
)

// MockChannel is a mock implementation of Channel for testing.
type MockChannel struct {
	mock.Mock
}

var _ Channel = &MockChannel{} // Compile-time check

// Qos implements the Channel interface.
func (m *MockChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	return m.Called(prefetchCount, prefetchSize, global).Error(0)
}

// QueueDeclare implements the Channel interface.
func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, _ amqp.Table) (amqp.Queue, error) {
	args := m.Called(name, durable, autoDelete, exclusive, noWait)
	return amqp.Queue{Name: name}, args.Error(0)
}

// Consume implements the Channel interface.
func (m *MockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	args := m.Called(queue, autoAck)
	ch, _ := args.Get(0).(chan amqp.Delivery)
	return ch, args.Error(1)
}

// PublishWithContext implements the Channel interface.
func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, msg).Error(0)
}

// Close implements the Channel interface.
func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

// MockAcknowledger records how deliveries were settled.
type MockAcknowledger struct {
	mock.Mock
}

var _ amqp.Acknowledger = &MockAcknowledger{} // Compile-time check

// Ack implements the amqp.Acknowledger interface.
func (m *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	return m.Called(tag, multiple).Error(0)
}

// Nack implements the amqp.Acknowledger interface.
func (m *MockAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	return m.Called(tag, multiple, requeue).Error(0)
}

// Reject implements the amqp.Acknowledger interface.
func (m *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	return m.Called(tag, requeue).Error(0)
}
