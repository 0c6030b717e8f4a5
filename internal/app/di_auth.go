package app

import (
	"fmt"

	authHTTP "github.com/allisson/gatekeeper/internal/auth/http"
	authRepository "github.com/allisson/gatekeeper/internal/auth/repository"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	"github.com/allisson/gatekeeper/internal/database"
)

// Replay store backends.
const (
	replayStoreMemory = "memory"
	replayStoreRedis  = "redis"
)

type authComponents struct {
	userRepository component[authUseCase.UserRepository]
	roleRepository component[authUseCase.RoleRepository]
	replayStore    component[authService.ReplayStore]
	tokenService   component[authService.TokenService]
	authUseCase    component[authUseCase.AuthUseCase]
	userUseCase    component[authUseCase.UserUseCase]
	roleUseCase    component[authUseCase.RoleUseCase]
	authHandler    component[*authHTTP.AuthHandler]
	adminHandler   component[*authHTTP.AdminHandler]
}

// UserRepository returns the user repository for the configured driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	return c.auth.userRepository.get(func() (authUseCase.UserRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return authRepository.NewPostgreSQLUserRepository(db), nil
		case database.DriverMySQL:
			return authRepository.NewMySQLUserRepository(db), nil
		case database.DriverSQLite:
			return authRepository.NewSQLiteUserRepository(db), nil
		default:
			return nil, unsupportedDriver(c.config.DBDriver)
		}
	})
}

// RoleRepository returns the role repository for the configured driver.
func (c *Container) RoleRepository() (authUseCase.RoleRepository, error) {
	return c.auth.roleRepository.get(func() (authUseCase.RoleRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for role repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return authRepository.NewPostgreSQLRoleRepository(db), nil
		case database.DriverMySQL:
			return authRepository.NewMySQLRoleRepository(db), nil
		case database.DriverSQLite:
			return authRepository.NewSQLiteRoleRepository(db), nil
		default:
			return nil, unsupportedDriver(c.config.DBDriver)
		}
	})
}

// ReplayStore returns the store tracking consumed single-use tokens.
func (c *Container) ReplayStore() (authService.ReplayStore, error) {
	return c.auth.replayStore.get(func() (authService.ReplayStore, error) {
		switch c.config.AuthReplayStore {
		case replayStoreMemory, "":
			return authService.NewMemoryReplayStore(c.config.AuthReplayCacheSize, c.config.AuthTokenExpiration), nil
		case replayStoreRedis:
			client, err := c.Redis()
			if err != nil {
				return nil, fmt.Errorf("failed to get redis for replay store: %w", err)
			}
			return authService.NewRedisReplayStore(client), nil
		default:
			return nil, fmt.Errorf("unsupported replay store: %s", c.config.AuthReplayStore)
		}
	})
}

// TokenService returns the token signer. The replay store is only built when
// single-use tokens are enabled.
func (c *Container) TokenService() (authService.TokenService, error) {
	return c.auth.tokenService.get(func() (authService.TokenService, error) {
		if err := c.config.Validate(); err != nil {
			return nil, err
		}

		var replayStore authService.ReplayStore
		if c.config.AuthSingleUseTokens {
			store, err := c.ReplayStore()
			if err != nil {
				return nil, err
			}
			replayStore = store
		}

		return authService.NewTokenService(authService.TokenConfig{
			Secret:     []byte(c.config.AuthSecret),
			Expiration: c.config.AuthTokenExpiration,
			SingleUse:  c.config.AuthSingleUseTokens,
		}, replayStore), nil
	})
}

// AuthUseCase returns the authentication use case wrapped with metrics.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	return c.auth.authUseCase.get(func() (authUseCase.AuthUseCase, error) {
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, err
		}
		roleRepo, err := c.RoleRepository()
		if err != nil {
			return nil, err
		}
		tokenService, err := c.TokenService()
		if err != nil {
			return nil, fmt.Errorf("failed to get token service for auth use case: %w", err)
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := authUseCase.NewAuthUseCase(
			userRepo,
			authUseCase.NewCapabilityResolver(roleRepo),
			authService.NewPasswordService(),
			tokenService,
		)
		return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// UserUseCase returns the user management use case wrapped with metrics.
func (c *Container) UserUseCase() (authUseCase.UserUseCase, error) {
	return c.auth.userUseCase.get(func() (authUseCase.UserUseCase, error) {
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, err
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := authUseCase.NewUserUseCase(userRepo, authService.NewPasswordService())
		return authUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// RoleUseCase returns the role management use case.
func (c *Container) RoleUseCase() (authUseCase.RoleUseCase, error) {
	return c.auth.roleUseCase.get(func() (authUseCase.RoleUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, err
		}
		roleRepo, err := c.RoleRepository()
		if err != nil {
			return nil, err
		}
		return authUseCase.NewRoleUseCase(txManager, roleRepo), nil
	})
}

// AuthHandler returns the signup, signin and key handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	return c.auth.authHandler.get(func() (*authHTTP.AuthHandler, error) {
		authUC, err := c.AuthUseCase()
		if err != nil {
			return nil, err
		}
		userUC, err := c.UserUseCase()
		if err != nil {
			return nil, err
		}
		return authHTTP.NewAuthHandler(authUC, userUC, c.Logger()), nil
	})
}

// AdminHandler returns the administrative handler.
func (c *Container) AdminHandler() (*authHTTP.AdminHandler, error) {
	return c.auth.adminHandler.get(func() (*authHTTP.AdminHandler, error) {
		userUC, err := c.UserUseCase()
		if err != nil {
			return nil, err
		}
		roleUC, err := c.RoleUseCase()
		if err != nil {
			return nil, err
		}
		return authHTTP.NewAdminHandler(userUC, roleUC, c.Logger()), nil
	})
}
