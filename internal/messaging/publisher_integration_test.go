package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"choicefiction/internal/messaging"
	"choicefiction/internal/models"

	"github.com/docker/docker/client"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		t.Skipf("Docker client init error: %v", err)
	}
	defer cli.Close()
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Skipf("Docker daemon is not accessible: %v", err)
	}
}

func TestRabbitMQStoryPublisher_Integration(t *testing.T) {
	requireDocker(t)
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx,
		"rabbitmq:3-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.AmqpURL(ctx)
	require.NoError(t, err)

	logger := zap.NewNop()
	conn, err := messaging.Connect(ctx, url, 5, time.Second, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	const queue = "story_events_test"
	pub, err := messaging.NewRabbitMQStoryPublisher(conn, queue, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	chapterID := uuid.New()
	event := models.StoryEvent{
		Type:      models.StoryEventChapter,
		StoryID:   uuid.New(),
		UserID:    uuid.New(),
		ChapterID: &chapterID,
	}
	require.NoError(t, pub.PublishStoryEvent(ctx, event))

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	var msg amqp.Delivery
	require.Eventually(t, func() bool {
		var ok bool
		msg, ok, err = ch.Get(queue, true)
		return err == nil && ok
	}, 10*time.Second, 100*time.Millisecond)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, models.StoryEventChapter, msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var got models.StoryEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, event.StoryID, got.StoryID)
	assert.Equal(t, event.UserID, got.UserID)
	require.NotNil(t, got.ChapterID)
	assert.Equal(t, chapterID, *got.ChapterID)
	assert.False(t, got.OccurredAt.IsZero(), "publisher stamps the event time")
}
