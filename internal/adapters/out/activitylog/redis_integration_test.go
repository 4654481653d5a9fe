package activitylog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marketplace/internal/adapters/out/activitylog"
	"marketplace/internal/core/domain/model/activity"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisLogIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func (suite *RedisLogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)
	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *RedisLogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *RedisLogIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisLogIntegrationTestSuite) TestAppendTrimsToCapacity() {
	ctx := context.Background()
	log := activitylog.NewRedisLog(suite.client, "", 3)
	for i := 1; i <= 5; i++ {
		suite.Require().NoError(log.Append(ctx, activity.NewEntry(activity.TypeBuyback, fmt.Sprintf("entry %d", i), time.Now())))
	}

	length, err := suite.client.LLen(ctx, activitylog.DefaultKey).Result()
	suite.Require().NoError(err)
	suite.Equal(int64(3), length)

	recent, err := log.Recent(ctx, 0)
	suite.Require().NoError(err)
	suite.Equal([]string{"entry 5", "entry 4", "entry 3"}, descriptions(recent))
}

func (suite *RedisLogIntegrationTestSuite) TestRoundTripsEntry() {
	ctx := context.Background()
	log := activitylog.NewRedisLog(suite.client, "test:activity", 10)
	entry := activity.NewEntry(activity.TypeSeller, "Seller bought 2 books", time.Now())
	suite.Require().NoError(log.Append(ctx, entry))

	recent, err := log.Recent(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(recent, 1)
	suite.True(entry.ID.IsEqual(recent[0].ID))
	suite.Equal(entry.Type, recent[0].Type)
	suite.True(entry.At.Equal(recent[0].At))
}

func (suite *RedisLogIntegrationTestSuite) TestEmptyLog() {
	recent, err := activitylog.NewRedisLog(suite.client, "", 0).Recent(context.Background(), 5)
	suite.Require().NoError(err)
	suite.Empty(recent)
}

func TestRedisLogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisLogIntegrationTestSuite))
}
