package app

import (
	"context"
	"fmt"

	"github.com/allisson/gatekeeper/internal/audit"
	"github.com/allisson/gatekeeper/internal/database"
	outboxRepository "github.com/allisson/gatekeeper/internal/outbox/repository"
	outboxUseCase "github.com/allisson/gatekeeper/internal/outbox/usecase"
)

// Audit backends accepted by AUDIT_PUBLISHER and OUTBOX_PUBLISHER.
const (
	publisherLog    = "log"
	publisherRedis  = "redis"
	publisherKafka  = "kafka"
	publisherOutbox = "outbox"
	publisherNone   = "none"
)

type auditComponents struct {
	outboxRepository component[outboxUseCase.OutboxEventRepository]
	kafkaPublisher   component[*audit.KafkaPublisher]
	notifier         component[audit.Notifier]
	outboxUseCase    component[outboxUseCase.UseCase]
}

// OutboxRepository returns the outbox event repository for the configured driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	return c.audit.outboxRepository.get(func() (outboxUseCase.OutboxEventRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
		case database.DriverMySQL:
			return outboxRepository.NewMySQLOutboxEventRepository(db), nil
		case database.DriverSQLite:
			return outboxRepository.NewSQLiteOutboxEventRepository(db), nil
		default:
			return nil, unsupportedDriver(c.config.DBDriver)
		}
	})
}

// Notifier returns the audit notifier used by request handlers. Every backend
// except "none" is driven by an AsyncNotifier flushed during Shutdown.
func (c *Container) Notifier() (audit.Notifier, error) {
	return c.audit.notifier.get(func() (audit.Notifier, error) {
		var publisher audit.Publisher

		switch c.config.AuditPublisher {
		case publisherNone:
			return audit.NopNotifier{}, nil
		case publisherOutbox:
			outboxRepo, err := c.OutboxRepository()
			if err != nil {
				return nil, err
			}
			publisher = audit.NewOutboxPublisher(outboxRepo)
		default:
			p, err := c.publisher(c.config.AuditPublisher)
			if err != nil {
				return nil, err
			}
			publisher = p
		}

		notifier := audit.NewAsyncNotifier(publisher, c.config.AuditQueueSize, c.Logger())
		c.onShutdown("audit notifier", notifier.Close)
		return notifier, nil
	})
}

// OutboxUseCase returns the relay worker forwarding outbox rows to
// OUTBOX_PUBLISHER.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	return c.audit.outboxUseCase.get(func() (outboxUseCase.UseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, err
		}
		outboxRepo, err := c.OutboxRepository()
		if err != nil {
			return nil, err
		}
		publisher, err := c.publisher(c.config.OutboxPublisher)
		if err != nil {
			return nil, fmt.Errorf("failed to get outbox relay publisher: %w", err)
		}

		return outboxUseCase.NewOutboxUseCase(
			outboxUseCase.Config{
				Interval:   c.config.OutboxInterval,
				BatchSize:  c.config.OutboxBatchSize,
				MaxRetries: c.config.OutboxMaxRetries,
			},
			txManager,
			outboxRepo,
			audit.NewRelayProcessor(publisher),
			c.Logger(),
		), nil
	})
}

// publisher builds a direct delivery backend. The outbox is not one of them:
// it only stores events for a later relay.
func (c *Container) publisher(kind string) (audit.Publisher, error) {
	switch kind {
	case publisherLog:
		return audit.NewLogPublisher(c.Logger()), nil
	case publisherRedis:
		client, err := c.Redis()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis for audit publisher: %w", err)
		}
		return audit.NewRedisPublisher(client, c.config.AuditRedisChannelPrefix), nil
	case publisherKafka:
		return c.kafkaPublisher()
	default:
		return nil, fmt.Errorf("unsupported audit publisher: %s", kind)
	}
}

// kafkaPublisher is shared by the notifier and the relay so a process never
// holds two writers for the same topic.
func (c *Container) kafkaPublisher() (*audit.KafkaPublisher, error) {
	return c.audit.kafkaPublisher.get(func() (*audit.KafkaPublisher, error) {
		brokers := c.config.KafkaBrokers()
		if len(brokers) == 0 {
			return nil, fmt.Errorf("no kafka brokers configured")
		}

		publisher := audit.NewKafkaPublisher(audit.NewKafkaWriter(brokers, c.config.AuditKafkaTopic))
		c.onShutdown("kafka writer", func(context.Context) error { return publisher.Close() })
		return publisher, nil
	})
}
