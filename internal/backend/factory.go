package backend

import (
	"context"
	"errors"
	"fmt"

	"hostel/internal/events"
	"hostel/internal/events/amqp"
	"hostel/internal/events/kafka"
	"hostel/internal/ledger"
	"hostel/internal/ledger/memory"
	"hostel/internal/log"
	"hostel/internal/services"
	"hostel/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend builds a fresh session: repository, publisher and service.
// A publisher that cannot connect is logged and replaced by a no-op one so
// the session still works offline.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	repo, closeRepo, err := f.createRepository(ctx, config)
	if err != nil {
		return nil, err
	}
	publisher, closePublisher := f.createPublisher(config)

	opts := []services.Option{
		services.WithPublisher(publisher),
		services.WithLogger(f.logger),
		services.WithSession(config.Session),
	}
	if config.TaxRate != nil {
		opts = append(opts, services.WithTaxRate(*config.TaxRate))
	}
	svc := services.NewLedgerService(ledger.New(repo), opts...)

	f.logger.Info("Initialized ledger session",
		log.FieldBackend, config.Type,
		log.FieldSession, config.Session,
		"events", config.Events)

	return &BackendResult{
		Service: svc,
		Cleanup: func() error {
			var errs []error
			if closePublisher != nil {
				if err := closePublisher(); err != nil {
					errs = append(errs, fmt.Errorf("events: %w", err))
				}
			}
			if closeRepo != nil {
				if err := closeRepo(); err != nil {
					errs = append(errs, fmt.Errorf("storage: %w", err))
				}
			}
			return errors.Join(errs...)
		},
	}, nil
}

func (f *DefaultFactory) createRepository(ctx context.Context, config Config) (ledger.Repository, CleanupFunc, error) {
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		return repo, repo.Close, nil
	case MemoryBackend:
		return memory.New(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createPublisher(config Config) (events.Publisher, CleanupFunc) {
	switch config.Events {
	case AMQPEvents:
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", log.FieldError, err)
			return events.Nop{}, nil
		}
		f.logger.Info("Initialized AMQP client",
			"exchange", config.AMQPExchange,
			"queue", config.AMQPQueue)
		return client, client.Close
	case KafkaEvents:
		p := kafka.NewPublisher(config.KafkaBrokers, config.KafkaTopic)
		f.logger.Info("Initialized Kafka publisher", "topic", config.KafkaTopic)
		return p, p.Close
	default:
		return events.Nop{}, nil
	}
}
