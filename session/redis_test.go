package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/octabyte/bm-social/db/redis"
	"github.com/octabyte/bm-social/enums"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	client    *goredis.Client
}

func (s *RedisStoreTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping redis container tests in short mode")
	}
	s.ctx = context.Background()

	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: tContainer.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "6379")
	s.Require().NoError(err)

	client, err := redis.NewRedisClient(s.ctx, redis.Config{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	s.Require().NoError(err)
	s.client = client
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RedisStoreTestSuite) TestRoundTrip() {
	store := NewRedisStore(s.client, "round-trip")

	_, err := store.Load(s.ctx)
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(store.Save(s.ctx, testSession))
	loaded, err := store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(testSession, loaded)

	token, err := s.client.HGet(s.ctx, redisKeyPrefix+"round-trip", enums.SessionKeyToken).Result()
	s.Require().NoError(err)
	s.Equal(testSession.Token, token)

	s.Require().NoError(store.Clear(s.ctx))
	_, err = store.Load(s.ctx)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreTestSuite) TestProfilesAreIsolated() {
	first := NewRedisStore(s.client, "first")
	second := NewRedisStore(s.client, "second")

	s.Require().NoError(first.Save(s.ctx, testSession))
	_, err := second.Load(s.ctx)
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(first.Clear(s.ctx))
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}
