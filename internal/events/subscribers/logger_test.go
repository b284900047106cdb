package subscribers_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/settling/internal/board"
	"github.com/mitchelldurbincs/settling/internal/events"
	"github.com/mitchelldurbincs/settling/internal/events/subscribers"
	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
	"github.com/mitchelldurbincs/settling/internal/testutil"
)

func TestLoggerSubscriber(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("test-logger", testutil.NopLogger(), zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeBoardCreated))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	vertex := geometry.At(hex.NewCube(1, 1, -2), 4)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, line map[string]any)
	}{
		{
			name:  "BoardCreatedEvent",
			event: events.NewBoardCreatedEvent("board-1", 37, 9, hex.NewCube(-2, 0, 2)),
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, float64(37), line["tiles"])
				assert.Equal(t, float64(9), line["ports"])
				assert.Equal(t, "(-2, 0, 2)", line["robber"])
			},
		},
		{
			name:  "RoadPlacedEvent",
			event: events.NewRoadPlacedEvent("board-1", "alice", geometry.At(hex.Origin, 0)),
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, "alice", line["player"])
				assert.Equal(t, "(0, 0, 0):0", line["edge"])
			},
		},
		{
			name:  "TownPlacedEvent",
			event: events.NewTownPlacedEvent("board-1", "alice", vertex, true),
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, "(1, 1, -2):4", line["vertex"])
				assert.Equal(t, true, line["initial"])
			},
		},
		{
			name:  "CityUpgradedEvent",
			event: events.NewCityUpgradedEvent("board-1", "alice", vertex),
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, "alice", line["player"])
				assert.Equal(t, "(1, 1, -2):4", line["vertex"])
			},
		},
		{
			name:  "RobberMovedEvent",
			event: events.NewRobberMovedEvent("board-1", hex.NewCube(-2, 0, 2), hex.Origin),
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, "(-2, 0, 2)", line["from"])
				assert.Equal(t, "(0, 0, 0)", line["to"])
			},
		},
		{
			name:  "PlacementRejectedEvent",
			event: events.NewPlacementRejectedEvent("board-1", "bob", "add road", "(0, 0, 0):0", errors.New("road exists")),
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, "bob", line["player"])
				assert.Equal(t, "add road", line["op"])
				assert.Equal(t, "road exists", line["reason"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, buf := testutil.BufferLogger()
			logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

			logSub.HandleEvent(tc.event)

			lines := testutil.LogLines(t, buf)
			require.Len(t, lines, 1)
			line := lines[0]
			assert.Equal(t, "Board event", line["message"])
			assert.Equal(t, "info", line["level"])
			assert.Equal(t, tc.event.Type(), line["event_type"])
			assert.Equal(t, "board-1", line["board_id"])
			assert.Equal(t, "event_logger", line["subscriber"])
			tc.check(t, line)
		})
	}
}

func TestLoggerSubscriberFilter(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("filtered", testutil.NopLogger(), zerolog.DebugLevel)

	logSub.SetEventFilter([]string{events.TypeRobberMoved})
	assert.True(t, logSub.InterestedIn(events.TypeRobberMoved))
	assert.False(t, logSub.InterestedIn(events.TypeRoadPlaced))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeRoadPlaced))
}

func TestLoggerSubscriberLevelsAndDevMode(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	logSub := subscribers.NewLoggerSubscriber("dev", logger, zerolog.WarnLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewRoadPlacedEvent("board-2", "carol", geometry.At(hex.Origin, 3)))

	lines := testutil.LogLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])

	data, ok := lines[0]["event_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "road.placed", data["type"])
	assert.Equal(t, "carol", data["Player"])
}

func TestLoggerSubscriberOnBus(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("bus-logger", logger, zerolog.InfoLevel))

	b := testutil.StandardBoard(t, board.WithPublisher(bus))
	require.NoError(t, b.AddRoad(hex.Origin, 0, "alice"))

	lines := testutil.LogLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, events.TypeBoardCreated, lines[0]["event_type"])
	assert.Equal(t, events.TypeRoadPlaced, lines[1]["event_type"])
	assert.Equal(t, b.ID(), lines[1]["board_id"])
}
