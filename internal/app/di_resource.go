package app

import (
	"fmt"

	bookHTTP "github.com/allisson/gatekeeper/internal/book/http"
	bookRepository "github.com/allisson/gatekeeper/internal/book/repository"
	bookUseCase "github.com/allisson/gatekeeper/internal/book/usecase"
	"github.com/allisson/gatekeeper/internal/database"
	resourceDomain "github.com/allisson/gatekeeper/internal/resource/domain"
	resourceHTTP "github.com/allisson/gatekeeper/internal/resource/http"
)

type resourceComponents struct {
	bookRepository component[bookUseCase.BookRepository]
	bookUseCase    component[bookUseCase.BookUseCase]
	registry       component[*resourceDomain.Registry]
	dispatcher     component[*resourceHTTP.Dispatcher]
}

// BookRepository returns the book repository for the configured driver.
func (c *Container) BookRepository() (bookUseCase.BookRepository, error) {
	return c.resource.bookRepository.get(func() (bookUseCase.BookRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for book repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return bookRepository.NewPostgreSQLBookRepository(db), nil
		case database.DriverMySQL:
			return bookRepository.NewMySQLBookRepository(db), nil
		case database.DriverSQLite:
			return bookRepository.NewSQLiteBookRepository(db), nil
		default:
			return nil, unsupportedDriver(c.config.DBDriver)
		}
	})
}

// BookUseCase returns the book use case wrapped with metrics.
func (c *Container) BookUseCase() (bookUseCase.BookUseCase, error) {
	return c.resource.bookUseCase.get(func() (bookUseCase.BookUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, err
		}
		repo, err := c.BookRepository()
		if err != nil {
			return nil, err
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := bookUseCase.NewBookUseCase(txManager, repo)
		return bookUseCase.NewBookUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// Registry returns the resource registry with every exposed resource registered.
// New resources are added here.
func (c *Container) Registry() (*resourceDomain.Registry, error) {
	return c.resource.registry.get(func() (*resourceDomain.Registry, error) {
		books, err := c.BookUseCase()
		if err != nil {
			return nil, err
		}

		registry := resourceDomain.NewRegistry()
		if err := registry.Register(bookHTTP.ResourceName, bookHTTP.NewResourceHandle(books)); err != nil {
			return nil, err
		}
		return registry, nil
	})
}

// Dispatcher returns the generic resource dispatcher.
func (c *Container) Dispatcher() (*resourceHTTP.Dispatcher, error) {
	return c.resource.dispatcher.get(func() (*resourceHTTP.Dispatcher, error) {
		notifier, err := c.Notifier()
		if err != nil {
			return nil, err
		}
		return resourceHTTP.NewDispatcher(notifier, c.Logger(), c.config.AuditReadsEnabled), nil
	})
}
