package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bpa-inspection/internal/domain/entity"
)

// Команды бота
const (
	cmdStart       = "start"
	cmdHelp        = "help"
	cmdCheck       = "check"
	cmdActivate    = "activate"
	cmdDeactivate  = "deactivate"
	cmdStatus      = "status"
	cmdPlan        = "plan"
	cmdResponse    = "response"
	cmdCars        = "cars"
	cmdAssign      = "assign"
	cmdSubscribe   = "subscribe"
	cmdUnsubscribe = "unsubscribe"
	cmdCancel      = "cancel"
	cmdMode        = "mode"
)

const (
	msgStart = `👋 Привет! Я бот обработчика инспекции BPA.

🚗 Я слежу за RFID-считывателем линии, запрашиваю снимок у камеры и записываю результат в реестр AAS.

📋 Команды:
/status — состояние обработчика
/activate — запустить обработчик
/deactivate — остановить обработчик
/help — справка`

	msgHelp = `ℹ️ Команды:

/check — проверить связь с OPC UA и MQTT
/activate — запустить обработчик
/deactivate — остановить обработчик
/status — состояние обработчика
/mode [sim|prod] — режим обработчика
/plan <AutoID> — план инспекции из реестра
/response <AutoID> — последний ответ инспекции
/cars — таблица автомобилей
/assign <AutoID> <RFID> — назначить метку
/subscribe — уведомления о циклах инспекции
/unsubscribe — отключить уведомления
/cancel — отменить текущую операцию`

	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgCancelled      = "❌ Операция отменена."
	msgAskPlanID      = "🔎 Отправьте AutoID автомобиля для плана инспекции."
	msgAskResponseID  = "🔎 Отправьте AutoID автомобиля для ответа инспекции."
	msgNoPlan         = "⚠️ План инспекции для %s не найден."
	msgNoResponse     = "⚠️ Ответ инспекции для %s не найден."
	msgNoCars         = "Таблица автомобилей пуста."
	msgAssignUsage    = "Использование: /assign <AutoID> <RFID>"
	msgAssigned       = "✅ Метка %s назначена автомобилю %s."
	msgSubscribed     = "🔔 Уведомления о циклах инспекции включены."
	msgUnsubscribed   = "🔕 Уведомления отключены."
	msgInternalError  = "⚠️ Внутренняя ошибка, попробуйте позже."
	msgModeUsage      = "Использование: /mode sim или /mode prod"
	msgModeUnchanged  = "Режим уже выбран: %s."
	msgModeSwitched   = "🔁 Режим: %s. Обработчик остановлен, запустите его командой /activate."
	msgModeDisabled   = "Переключение режима недоступно."
)

// execute выполняет команду оператора и возвращает текст ответа
func (b *Bot) execute(ctx context.Context, operator *entity.Operator, command, args string) string {
	args = strings.TrimSpace(args)
	ops := b.deps.Operators

	switch command {
	case cmdStart:
		if _, err := ops.Cancel(ctx, operator.ID, operator.ChatID); err != nil {
			return b.internalError(err)
		}
		return msgStart

	case cmdHelp:
		return msgHelp

	case cmdCancel:
		if _, err := ops.Cancel(ctx, operator.ID, operator.ChatID); err != nil {
			return b.internalError(err)
		}
		return msgCancelled

	case cmdCheck:
		ok := b.deps.Inspector.TestConnection(ctx)
		return formatCheck(ok, b.deps.Inspector.Status())

	case cmdActivate:
		return "▶️ " + b.deps.Inspector.Start(ctx)

	case cmdDeactivate:
		return "⏹ " + b.deps.Inspector.Stop(ctx)

	case cmdStatus:
		return formatStatus(b.deps.Inspector.Status(), b.deps.Registry.Healthy())

	case cmdPlan:
		if args == "" {
			return b.ask(ctx, operator, entity.StateAwaitingPlanID, msgAskPlanID)
		}
		b.reset(ctx, operator)
		plan, err := b.deps.Registry.GetInspectionPlan(ctx, args)
		if err != nil {
			return fmt.Sprintf(msgNoPlan, args)
		}
		return formatJSON(args, plan)

	case cmdResponse:
		if args == "" {
			return b.ask(ctx, operator, entity.StateAwaitingResponseID, msgAskResponseID)
		}
		b.reset(ctx, operator)
		resp, err := b.deps.Registry.GetInspectionResponse(ctx, args)
		if err != nil {
			return fmt.Sprintf(msgNoResponse, args)
		}
		return formatJSON(args, resp)

	case cmdMode:
		return b.switchMode(ctx, args)

	case cmdCars:
		return formatCars(b.deps.Cars.List(ctx))

	case cmdAssign:
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return msgAssignUsage
		}
		if err := b.deps.Cars.SetRFID(ctx, fields[0], fields[1]); err != nil {
			return "⚠️ " + err.Error()
		}
		return fmt.Sprintf(msgAssigned, fields[1], fields[0])

	case cmdSubscribe, cmdUnsubscribe:
		on := command == cmdSubscribe
		if _, err := ops.SetSubscribed(ctx, operator.ID, operator.ChatID, on); err != nil {
			return b.internalError(err)
		}
		if on {
			return msgSubscribed
		}
		return msgUnsubscribed

	default:
		return msgUnknownCommand
	}
}

func (b *Bot) switchMode(ctx context.Context, args string) string {
	if args == "" {
		return "Режим: " + modeLabel(b.deps.Inspector.Status().Simulation)
	}
	if b.deps.Modes == nil {
		return msgModeDisabled
	}

	var simulation bool
	switch strings.ToLower(args) {
	case "sim", "simulation":
		simulation = true
	case "prod", "production":
		simulation = false
	default:
		return msgModeUsage
	}

	if !b.deps.Modes.SwitchMode(ctx, simulation) {
		return fmt.Sprintf(msgModeUnchanged, modeLabel(simulation))
	}
	return fmt.Sprintf(msgModeSwitched, modeLabel(simulation))
}

func (b *Bot) ask(ctx context.Context, operator *entity.Operator, state entity.OperatorState, prompt string) string {
	if _, err := b.deps.Operators.SetState(ctx, operator.ID, operator.ChatID, state); err != nil {
		return b.internalError(err)
	}
	return prompt
}

func (b *Bot) reset(ctx context.Context, operator *entity.Operator) {
	if operator.State == entity.StateMainMenu {
		return
	}
	if _, err := b.deps.Operators.Cancel(ctx, operator.ID, operator.ChatID); err != nil {
		b.log.Warn().Err(err).Int64("user", operator.ID).Msg("failed to reset operator state")
	}
}

func (b *Bot) internalError(err error) string {
	b.log.Error().Err(err).Msg("operator command failed")
	return msgInternalError
}

func formatCheck(ok bool, status entity.Status) string {
	if ok {
		return "✅ OPC UA и MQTT доступны."
	}
	return fmt.Sprintf("❌ Связь не установлена: %s.", status.Label())
}

func formatStatus(status entity.Status, registryHealthy bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Обработчик: %s\n", status.State)
	fmt.Fprintf(&sb, "OPC UA: %s\n", status.Source)
	fmt.Fprintf(&sb, "MQTT: %s\n", status.Bridge)
	fmt.Fprintf(&sb, "AAS: %s\n", entity.ConnectionOf(registryHealthy))
	fmt.Fprintf(&sb, "Режим: %s\n", modeLabel(status.Simulation))
	fmt.Fprintf(&sb, "Последний AutoID: %s", status.LatestAutoID)
	return sb.String()
}

func modeLabel(simulation bool) string {
	if simulation {
		return "симуляция"
	}
	return "производство"
}

func formatJSON(autoID string, v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("⚠️ %s: %v", autoID, err)
	}
	return fmt.Sprintf("📄 %s\n%s", autoID, raw)
}

func formatCars(cars []entity.Car) string {
	if len(cars) == 0 {
		return msgNoCars
	}

	var sb strings.Builder
	sb.WriteString("🚗 Автомобили:")
	for _, car := range cars {
		rfid := car.RFID
		if rfid == "" {
			rfid = "—"
		}
		fmt.Fprintf(&sb, "\n%s (%s): %s", car.Name, car.AutoID, rfid)
	}
	return sb.String()
}
