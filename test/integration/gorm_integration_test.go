package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/repository/specification"
	"ai-travelmate-be/internal/repository/unitofwork"
	"ai-travelmate-be/pkg/database"
	"ai-travelmate-be/pkg/nlu"
	"ai-travelmate-be/pkg/store"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.DestinationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Session Repository", func(t *testing.T) {
		count, err := uow.ChatSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Session count: %d", count)
	})

	t.Run("Check Destination Repository", func(t *testing.T) {
		count, err := uow.DestinationRepository().Count(context.Background(), specification.ActiveDestinations{})
		assert.NoError(t, err)
		t.Logf("Active destination count: %d", count)
	})

	t.Run("Check Transactional Chat Turn", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		sessionId := uuid.New()
		session := &entity.ChatSession{
			Id:       sessionId,
			UserId:   userId,
			Title:    "integration test session",
			IsActive: true,
		}

		err := uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		// Transaction Test: persist a turn and roll it back
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		messages := []*entity.ChatMessage{
			{
				Id:             uuid.New(),
				ChatSessionId:  sessionId,
				Sender:         entity.SenderUser,
				Content:        "suggest some beach destinations",
				DetectedIntent: nlu.IntentSearch,
				Confidence:     0.92,
			},
			{
				Id:            uuid.New(),
				ChatSessionId: sessionId,
				Sender:        entity.SenderBot,
				Content:       "Here are some destinations you might like.",
			},
		}
		err = uow.ChatMessageRepository().CreateBatch(ctx, messages)
		assert.NoError(t, err)

		sctx := store.NewContext()
		state := &entity.ConversationState{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Context:       sctx,
			LastIntent:    string(nlu.IntentSearch),
		}
		err = uow.ConversationStateRepository().Upsert(ctx, state)
		assert.NoError(t, err)

		// Upsert again to exercise the conflict path
		state.LastIntent = string(nlu.IntentBudget)
		err = uow.ConversationStateRepository().Upsert(ctx, state)
		assert.NoError(t, err)

		got, err := uow.ConversationStateRepository().FindBySessionId(ctx, sessionId)
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, string(nlu.IntentBudget), got.LastIntent)
			assert.NotNil(t, got.Context)
		}

		count, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: sessionId})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)

		// Rollback via defer; cleanup the session row created outside the tx
		_ = uow.ChatSessionRepository().Delete(context.Background(), sessionId)
	})
}
