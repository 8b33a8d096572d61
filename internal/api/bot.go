package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	app "bpa-inspection/internal/application"
	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// Inspector операции обработчика инспекции, доступные оператору
type Inspector interface {
	TestConnection(ctx context.Context) bool
	Start(ctx context.Context) string
	Stop(ctx context.Context) string
	Status() entity.Status
}

// ModeSwitcher переключает обработчик между симуляцией и производством
type ModeSwitcher interface {
	SwitchMode(ctx context.Context, simulation bool) bool
}

// Deps зависимости бота
type Deps struct {
	Inspector Inspector
	Modes     ModeSwitcher // nil: переключение режима недоступно
	Registry  port.Registry
	Cars      port.CarRepository
	Operators *app.OperatorService
	Allowed   func(chatID int64) bool // nil: разрешены все чаты
}

// sender отправка сообщений, реализуется *tgbotapi.BotAPI
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot представляет Telegram-бота оператора линии
type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender
	deps   Deps
	log    zerolog.Logger

	mu        sync.Mutex
	lastState entity.HandlerState
}

// NewBot создаёт нового бота
func NewBot(token string, deps Deps, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := newBot(api, deps, log)
	b.api = api
	b.log.Info().Str("account", api.Self.UserName).Msg("authorized")
	return b, nil
}

func newBot(s sender, deps Deps, log zerolog.Logger) *Bot {
	return &Bot{
		sender:    s,
		deps:      deps,
		log:       log.With().Str("component", "telegram").Logger(),
		lastState: entity.StateInactive,
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	if b.deps.Allowed != nil && !b.deps.Allowed(msg.Chat.ID) {
		b.log.Warn().Int64("chat", msg.Chat.ID).Msg("message from unknown chat ignored")
		return
	}

	operator, err := b.deps.Operators.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user", msg.From.ID).Msg("failed to get operator")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, b.execute(ctx, operator, msg.Command(), msg.CommandArguments()))
		return
	}

	// Текст как ответ на запрос AutoID
	text := strings.TrimSpace(msg.Text)
	switch operator.State {
	case entity.StateAwaitingPlanID:
		b.sendMessage(msg.Chat.ID, b.execute(ctx, operator, cmdPlan, text))
	case entity.StateAwaitingResponseID:
		b.sendMessage(msg.Chat.ID, b.execute(ctx, operator, cmdResponse, text))
	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("failed to send message")
	}
}
