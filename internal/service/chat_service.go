package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-travelmate-be/internal/constant"
	"ai-travelmate-be/internal/dto"
	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/pkg/logger"
	"ai-travelmate-be/internal/repository/memory"
	"ai-travelmate-be/internal/repository/specification"
	"ai-travelmate-be/internal/repository/unitofwork"
	"ai-travelmate-be/pkg/nlu"
	"ai-travelmate-be/pkg/nlu/engine"
	"ai-travelmate-be/pkg/nlu/reference"
	"ai-travelmate-be/pkg/nlu/safety"
	"ai-travelmate-be/pkg/nlu/topic"
	"ai-travelmate-be/pkg/search"
	"ai-travelmate-be/pkg/store"
	"ai-travelmate-be/pkg/weather"

	"github.com/google/uuid"
)

// IChatService is the conversational core: one SendChat call is one full
// dialogue turn.
type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	SendFeedback(ctx context.Context, userId uuid.UUID, req *dto.SendFeedbackRequest) (*dto.SendFeedbackResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	nluEngine  *engine.Engine
	detector   *topic.Detector
	resolver   *reference.Resolver
	planner    *search.Planner
	contexts   *memory.ContextRepository
	weather    *weather.Client
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	nluEngine *engine.Engine,
	planner *search.Planner,
	contexts *memory.ContextRepository,
	weatherClient *weather.Client,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		nluEngine:  nluEngine,
		detector:   topic.NewDetector(),
		resolver:   reference.NewResolver(),
		planner:    planner,
		contexts:   contexts,
		weather:    weatherClient,
		publisher:  publisher,
		logger:     log,
	}
}

func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "New trip"
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:            s.Id,
			Title:         s.Title,
			IsActive:      s.IsActive,
			TotalMessages: s.TotalMessages,
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return response, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, &dto.GetChatHistoryResponse{
			Id:             msg.Id,
			Sender:         msg.Sender,
			Content:        msg.Content,
			DetectedIntent: string(msg.DetectedIntent),
			Confidence:     msg.Confidence,
			CreatedAt:      msg.CreatedAt,
		})
	}
	return response, nil
}

func (cs *chatService) RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.verifySession(ctx, uow, userId, req.Id)
	if err != nil {
		return err
	}

	session.Title = strings.TrimSpace(req.Title)
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationStateRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.contexts.Delete(sessionId.String())
	return nil
}

// SendChat runs one dialogue turn end to end: understand, act, respond,
// persist, announce.
func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	started := time.Now()
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.resolveSession(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}

	sessionKey := session.Id.String()
	cs.contexts.Acquire(sessionKey)
	defer cs.contexts.Release(sessionKey)

	sctx, err := cs.loadContext(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	result := cs.nluEngine.Process(ctx, req.Message, sctx)

	reply, err := cs.respond(ctx, uow, req.Message, result, sctx)
	if err != nil {
		return nil, err
	}

	responseTimeMs := int(time.Since(started).Milliseconds())
	now := time.Now()

	userMessage := &entity.ChatMessage{
		Id:               uuid.New(),
		ChatSessionId:    session.Id,
		Sender:           entity.SenderUser,
		Content:          req.Message,
		DetectedIntent:   result.Intent,
		DetectedEntities: &result.Entities,
		Confidence:       result.Confidence,
		CreatedAt:        now,
	}
	botMessage := &entity.ChatMessage{
		Id:             uuid.New(),
		ChatSessionId:  session.Id,
		Sender:         entity.SenderBot,
		Content:        reply.Text,
		ResponseTimeMs: responseTimeMs,
		CreatedAt:      now.Add(1 * time.Millisecond),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().CreateBatch(ctx, []*entity.ChatMessage{userMessage, botMessage}); err != nil {
		return nil, err
	}

	state := &entity.ConversationState{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Context:       sctx,
		LastIntent:    string(result.Intent),
		CreatedAt:     now,
	}
	if err := uow.ConversationStateRepository().Upsert(ctx, state); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.contexts.Save(sessionKey, sctx)
	cs.nluEngine.ReinforceTurn(req.Message, result.Intent)
	cs.publishTurnCompleted(ctx, session.Id, userMessage.Id, botMessage.Id, result, responseTimeMs)

	return &dto.SendChatResponse{
		ChatSessionId:  session.Id,
		UserMessageId:  userMessage.Id,
		BotMessageId:   botMessage.Id,
		Intent:         string(result.Intent),
		Confidence:     result.Confidence,
		Source:         string(result.Source),
		ResponseType:   reply.ResponseType,
		Text:           reply.Text,
		Destinations:   reply.Destinations,
		Weather:        reply.Weather,
		Suggestions:    reply.Suggestions,
		AutoExpanded:   reply.AutoExpanded,
		ResponseTimeMs: responseTimeMs,
	}, nil
}

// SendFeedback feeds an explicit user verdict back into the learned-pattern
// store. Positive feedback reinforces, negative forgets, corrections
// relearn under the right intent.
func (cs *chatService) SendFeedback(ctx context.Context, userId uuid.UUID, req *dto.SendFeedbackRequest) (*dto.SendFeedbackResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, req.ChatSessionId); err != nil {
		return nil, err
	}

	message, err := uow.ChatMessageRepository().FindOne(ctx,
		specification.ByID{ID: req.MessageId},
		specification.ByChatSessionID{ChatSessionID: req.ChatSessionId},
	)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, fmt.Errorf("message not found")
	}

	correct := nlu.Intent(req.CorrectIntent)
	if req.Feedback == engine.FeedbackCorrection && !correct.Valid() {
		return nil, fmt.Errorf("correction feedback requires a valid correct_intent")
	}

	cs.nluEngine.LearnFromInteraction(message.Content, message.DetectedIntent, req.Feedback, correct)

	cs.logger.Info("chat", "Feedback recorded", map[string]interface{}{
		"session_id": req.ChatSessionId,
		"message_id": req.MessageId,
		"feedback":   req.Feedback,
	})

	learned := req.Feedback != engine.FeedbackNegative
	return &dto.SendFeedbackResponse{
		Learned: learned,
		Message: "Thanks! I'll use that to improve.",
	}, nil
}

// turnReply is everything the responder decided for one turn.
type turnReply struct {
	ResponseType string
	Text         string
	Destinations []dto.DestinationCardDTO
	Weather      *dto.WeatherSnapshotDTO
	Suggestions  []string
	AutoExpanded bool
}

// respond routes the classified utterance to the action that builds the
// reply. Unsafe turns never reach the catalog.
func (cs *chatService) respond(ctx context.Context, uow unitofwork.UnitOfWork, message string, result *nlu.Result, sctx *store.Context) (*turnReply, error) {
	if !result.IsSafe {
		remediation := safety.Remediate(result.SafetyIssues)
		return &turnReply{
			ResponseType: dto.ResponseTypeRemediation,
			Text:         remediation.Message,
		}, nil
	}

	switch result.Intent {
	case nlu.IntentGreeting:
		return &turnReply{
			ResponseType: dto.ResponseTypeText,
			Text:         constant.GreetingReply,
			Suggestions:  constant.SuggestionsAfterGreeting,
		}, nil

	case nlu.IntentFarewell:
		return &turnReply{
			ResponseType: dto.ResponseTypeText,
			Text:         constant.FarewellReply,
		}, nil

	case nlu.IntentReference:
		return cs.respondReference(ctx, uow, message, sctx)

	case nlu.IntentSearch, nlu.IntentRecommendation:
		return cs.respondSearch(ctx, uow, message, result, sctx)

	case nlu.IntentBudget, nlu.IntentDuration:
		return cs.respondRefinement(ctx, uow, message, result, sctx)

	case nlu.IntentWeather:
		return cs.respondWeather(ctx, uow, result, sctx)

	case nlu.IntentBookmark:
		return cs.respondBookmark(ctx, uow, result, sctx)

	case nlu.IntentAttractions, nlu.IntentRestaurants, nlu.IntentAccommodations,
		nlu.IntentSafety, nlu.IntentMoreInfo, nlu.IntentTripPlanning:
		return cs.respondDetail(ctx, uow, result, sctx)

	default:
		return &turnReply{
			ResponseType: dto.ResponseTypeText,
			Text:         constant.GeneralChatReply,
			Suggestions:  constant.SuggestionsAfterGreeting,
		}, nil
	}
}

// respondSearch lets the topic detector arbitrate between starting over and
// narrowing down before any catalog call runs.
func (cs *chatService) respondSearch(ctx context.Context, uow unitofwork.UnitOfWork, message string, result *nlu.Result, sctx *store.Context) (*turnReply, error) {
	decision := cs.detector.Detect(message, result.Entities, sctx)

	switch decision.Action {
	case topic.ActionConfirm:
		return &turnReply{
			ResponseType: dto.ResponseTypeTopicConfirm,
			Text:         constant.TopicConfirmReply,
			Suggestions:  constant.SuggestionsAfterTopicConfirm,
		}, nil

	case topic.ActionClear:
		sctx.Clear(true)
		fallthrough

	case topic.ActionFresh:
		if decision.TargetTopic != "" {
			sctx.SetTopic(decision.TargetTopic)
		}
		outcome, err := cs.planner.FreshSearch(ctx, message, result.Entities, sctx)
		if err != nil {
			return nil, err
		}
		return cs.searchReply(ctx, uow, outcome, dto.ResponseTypeRecommendations, constant.SuggestionsAfterSearch)

	case topic.ActionRefine:
		outcome, err := cs.planner.Refine(ctx, message, result.Entities, sctx)
		if err != nil {
			return nil, err
		}
		return cs.searchReply(ctx, uow, outcome, dto.ResponseTypeRefinement, constant.SuggestionsAfterRefinement)

	default: // continue
		if sctx.HasActiveResults() && result.Entities.HasConstraint() {
			outcome, err := cs.planner.Refine(ctx, message, result.Entities, sctx)
			if err != nil {
				return nil, err
			}
			return cs.searchReply(ctx, uow, outcome, dto.ResponseTypeRefinement, constant.SuggestionsAfterRefinement)
		}
		outcome, err := cs.planner.FreshSearch(ctx, message, result.Entities, sctx)
		if err != nil {
			return nil, err
		}
		return cs.searchReply(ctx, uow, outcome, dto.ResponseTypeRecommendations, constant.SuggestionsAfterSearch)
	}
}

func (cs *chatService) respondRefinement(ctx context.Context, uow unitofwork.UnitOfWork, message string, result *nlu.Result, sctx *store.Context) (*turnReply, error) {
	outcome, err := cs.planner.Refine(ctx, message, result.Entities, sctx)
	if err != nil {
		return nil, err
	}
	if outcome.Action == "none" {
		return &turnReply{
			ResponseType: dto.ResponseTypeText,
			Text:         constant.GeneralChatReply,
		}, nil
	}
	responseType := dto.ResponseTypeRefinement
	if outcome.Action == "fresh" {
		responseType = dto.ResponseTypeRecommendations
	}
	return cs.searchReply(ctx, uow, outcome, responseType, constant.SuggestionsAfterRefinement)
}

// respondReference resolves "the first one" / "that place" against the
// active result list, then routes the resolved place by what the utterance
// asks about it. A miss answers with the list it could not pick from.
func (cs *chatService) respondReference(ctx context.Context, uow unitofwork.UnitOfWork, message string, sctx *store.Context) (*turnReply, error) {
	resolution, found := cs.resolver.Resolve(message, sctx)
	if !found {
		cards, err := cs.loadCards(ctx, uow, sctx.ActiveSearch.CurrentResultIDs)
		if err != nil {
			return nil, err
		}
		return &turnReply{
			ResponseType: dto.ResponseTypeClarification,
			Text:         constant.ReferenceMissReply,
			Destinations: cards,
		}, nil
	}

	destination, err := uow.DestinationRepository().FindOne(ctx, specification.ByID{ID: resolution.ID})
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return &turnReply{
			ResponseType: dto.ResponseTypeClarification,
			Text:         constant.ReferenceMissReply,
		}, nil
	}

	sctx.UpdateLocation(destination.Id, destination.Name, store.InteractionDiscussed)

	switch referenceSubIntent(message) {
	case nlu.IntentWeather:
		return cs.weatherReply(ctx, destination)
	case nlu.IntentBookmark:
		return cs.bookmarkReply(sctx, destination), nil
	default:
		return cs.detailReply(destination), nil
	}
}

// referenceSubIntent reads what the user wants done with the place a
// reference points at: "what's the weather at the first one" answers
// weather, not a generic card. The save check runs before the trip one
// because "bookmark" contains "book".
func referenceSubIntent(message string) nlu.Intent {
	lower := strings.ToLower(message)
	switch {
	case hasAnyPhrase(lower, "weather", "temperature", "climate", "rain"):
		return nlu.IntentWeather
	case hasAnyPhrase(lower, "tell me", "more about", "details", "information"):
		return nlu.IntentMoreInfo
	case hasAnyPhrase(lower, "save", "bookmark", "shortlist"):
		return nlu.IntentBookmark
	case hasAnyPhrase(lower, "plan", "trip", "itinerary", "book"):
		return nlu.IntentTripPlanning
	default:
		return nlu.IntentMoreInfo
	}
}

func hasAnyPhrase(lower string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// respondWeather answers for a named place, or the one under discussion.
func (cs *chatService) respondWeather(ctx context.Context, uow unitofwork.UnitOfWork, result *nlu.Result, sctx *store.Context) (*turnReply, error) {
	destination, err := cs.targetDestination(ctx, uow, result, sctx)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return &turnReply{
			ResponseType: dto.ResponseTypeText,
			Text:         "Which place would you like the weather for?",
		}, nil
	}

	sctx.UpdateLocation(destination.Id, destination.Name, store.InteractionAskedAbout)

	return cs.weatherReply(ctx, destination)
}

// weatherReply builds the weather answer for an already resolved place.
func (cs *chatService) weatherReply(ctx context.Context, destination *entity.Destination) (*turnReply, error) {
	if cs.weather == nil || !cs.weather.Enabled() {
		return &turnReply{
			ResponseType: dto.ResponseTypeDetail,
			Text:         constant.WeatherUnavailableReply,
			Destinations: []dto.DestinationCardDTO{toCard(destination)},
		}, nil
	}

	conditions, err := cs.weather.Current(ctx, destination.Latitude, destination.Longitude)
	if err != nil {
		cs.logger.Warn("chat", "Weather lookup failed", map[string]interface{}{
			"destination": destination.Name,
			"error":       err.Error(),
		})
		return &turnReply{
			ResponseType: dto.ResponseTypeDetail,
			Text:         constant.WeatherUnavailableReply,
			Destinations: []dto.DestinationCardDTO{toCard(destination)},
		}, nil
	}

	return &turnReply{
		ResponseType: dto.ResponseTypeDetail,
		Text: fmt.Sprintf("Right now in %s: %s, %.0f°C (feels like %.0f°C).",
			destination.Name, conditions.Description, conditions.Temperature, conditions.FeelsLike),
		Destinations: []dto.DestinationCardDTO{toCard(destination)},
		Weather: &dto.WeatherSnapshotDTO{
			Condition: conditions.Description,
			TempC:     conditions.Temperature,
		},
		Suggestions: constant.SuggestionsAfterDetail,
	}, nil
}

// respondDetail covers category questions about a place: attractions,
// restaurants, stays, safety, planning.
func (cs *chatService) respondDetail(ctx context.Context, uow unitofwork.UnitOfWork, result *nlu.Result, sctx *store.Context) (*turnReply, error) {
	destination, err := cs.targetDestination(ctx, uow, result, sctx)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return &turnReply{
			ResponseType: dto.ResponseTypeText,
			Text:         "Which destination are you asking about?",
		}, nil
	}

	sctx.UpdateLocation(destination.Id, destination.Name, store.InteractionAskedAbout)

	return cs.detailReply(destination), nil
}

func (cs *chatService) detailReply(destination *entity.Destination) *turnReply {
	return &turnReply{
		ResponseType: dto.ResponseTypeDetail,
		Text:         cs.detailText(destination),
		Destinations: []dto.DestinationCardDTO{toCard(destination)},
		Suggestions:  constant.SuggestionsAfterDetail,
	}
}

// respondBookmark shortlists a place. There is no saved-places table; the
// selection marker in location memory is what references and ranking read.
func (cs *chatService) respondBookmark(ctx context.Context, uow unitofwork.UnitOfWork, result *nlu.Result, sctx *store.Context) (*turnReply, error) {
	destination, err := cs.targetDestination(ctx, uow, result, sctx)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return &turnReply{
			ResponseType: dto.ResponseTypeText,
			Text:         "Which place should I save for you?",
		}, nil
	}
	return cs.bookmarkReply(sctx, destination), nil
}

func (cs *chatService) bookmarkReply(sctx *store.Context, destination *entity.Destination) *turnReply {
	sctx.UpdateLocation(destination.Id, destination.Name, store.InteractionSelected)
	return &turnReply{
		ResponseType: dto.ResponseTypeText,
		Text:         fmt.Sprintf("Noted! I'll keep %s in mind for this trip.", destination.Name),
		Destinations: []dto.DestinationCardDTO{toCard(destination)},
		Suggestions:  constant.SuggestionsAfterDetail,
	}
}

// targetDestination picks the place a category question is about: named in
// the utterance first, otherwise the last one discussed.
func (cs *chatService) targetDestination(ctx context.Context, uow unitofwork.UnitOfWork, result *nlu.Result, sctx *store.Context) (*entity.Destination, error) {
	if len(result.Entities.Locations) > 0 {
		return uow.DestinationRepository().FindOne(ctx,
			specification.ByNameLike{Name: result.Entities.Locations[0]},
			specification.ActiveDestinations{},
		)
	}
	if last := sctx.LastDiscussed(); last != nil {
		return uow.DestinationRepository().FindOne(ctx, specification.ByID{ID: last.ID})
	}
	return nil, nil
}

func (cs *chatService) searchReply(ctx context.Context, uow unitofwork.UnitOfWork, outcome *search.Outcome, responseType string, suggestions []string) (*turnReply, error) {
	cards, err := cs.loadCards(ctx, uow, search.IDs(outcome.Destinations))
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Here are %d places that match:", len(cards))
	switch {
	case len(cards) == 0:
		text = constant.NoResultsReply
		suggestions = constant.SuggestionsAfterGreeting
	case outcome.AutoExpanded:
		text = constant.RelaxedResultsReply
	}

	return &turnReply{
		ResponseType: responseType,
		Text:         text,
		Destinations: cards,
		Suggestions:  suggestions,
		AutoExpanded: outcome.AutoExpanded,
	}, nil
}

// loadCards hydrates planner ids into full cards, preserving planner order.
func (cs *chatService) loadCards(ctx context.Context, uow unitofwork.UnitOfWork, ids []uuid.UUID) ([]dto.DestinationCardDTO, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := uow.DestinationRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Destination, len(rows))
	for _, d := range rows {
		byId[d.Id] = d
	}

	cards := make([]dto.DestinationCardDTO, 0, len(ids))
	for _, id := range ids {
		if d, ok := byId[id]; ok {
			cards = append(cards, toCard(d))
		}
	}
	return cards, nil
}

func (cs *chatService) detailText(d *entity.Destination) string {
	if d.Description != "" {
		return fmt.Sprintf("%s — %s Typical trip: %d days, budget ₹%d–₹%d.",
			d.Name, d.Description, d.TypicalDurationDays, d.BudgetRangeMin, d.BudgetRangeMax)
	}
	return fmt.Sprintf("%s in %s. Typical trip: %d days, budget ₹%d–₹%d.",
		d.Name, d.State, d.TypicalDurationDays, d.BudgetRangeMin, d.BudgetRangeMax)
}

func toCard(d *entity.Destination) dto.DestinationCardDTO {
	return dto.DestinationCardDTO{
		Id:              d.Id,
		Name:            d.Name,
		State:           d.State,
		Description:     d.Description,
		Tags:            d.Tags,
		BudgetRangeMin:  d.BudgetRangeMin,
		BudgetRangeMax:  d.BudgetRangeMax,
		DurationDays:    d.TypicalDurationDays,
		SafetyRating:    d.SafetyRating,
		PopularityScore: d.PopularityScore,
	}
}

// resolveSession loads the target session or lazily creates one titled
// after the opening message.
func (cs *chatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req *dto.SendChatRequest) (*entity.ChatSession, error) {
	if req.ChatSessionId != uuid.Nil {
		return cs.verifySession(ctx, uow, userId, req.ChatSessionId)
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     sessionTitle(req.Message),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// sessionTitleLimit caps lazily derived session titles, in runes.
const sessionTitleLimit = 60

// sessionTitle derives a title from the opening message. Truncation counts
// runes so a multi-byte character is never split mid-sequence.
func sessionTitle(message string) string {
	title := strings.TrimSpace(message)
	runes := []rune(title)
	if len(runes) > sessionTitleLimit {
		return string(runes[:sessionTitleLimit])
	}
	return title
}

func (cs *chatService) verifySession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}
	return session, nil
}

// loadContext checks hot memory first, then the durable state row, then
// starts fresh.
func (cs *chatService) loadContext(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*store.Context, error) {
	if sctx, found := cs.contexts.Get(sessionId.String()); found {
		return sctx, nil
	}

	state, err := uow.ConversationStateRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if state != nil && state.Context != nil {
		return state.Context, nil
	}
	return store.NewContext(), nil
}

func (cs *chatService) publishTurnCompleted(ctx context.Context, sessionId, userMessageId, botMessageId uuid.UUID, result *nlu.Result, responseTimeMs int) {
	if cs.publisher == nil {
		return
	}

	payload := dto.TurnCompletedMessage{
		ChatSessionId:  sessionId,
		UserMessageId:  userMessageId,
		BotMessageId:   botMessageId,
		Intent:         string(result.Intent),
		Source:         string(result.Source),
		Confidence:     result.Confidence,
		ResponseTimeMs: responseTimeMs,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		cs.logger.Error("chat", "Failed to marshal turn event", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := cs.publisher.Publish(ctx, data); err != nil {
		cs.logger.Warn("chat", "Failed to publish turn event", map[string]interface{}{"error": err.Error()})
	}
}
