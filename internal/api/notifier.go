package telegram

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// PublishCycle сообщает подписанным операторам итог цикла инспекции.
func (b *Bot) PublishCycle(ctx context.Context, report *entity.CycleReport) {
	b.notify(ctx, formatCycle(report))
}

// PublishStatus сообщает подписанным операторам о смене состояния обработчика.
func (b *Bot) PublishStatus(ctx context.Context, status entity.Status) {
	b.mu.Lock()
	changed := status.State != b.lastState
	b.lastState = status.State
	b.mu.Unlock()

	if !changed {
		return
	}
	b.notify(ctx, fmt.Sprintf("ℹ️ Обработчик: %s", status.State))
}

func (b *Bot) notify(ctx context.Context, text string) {
	chats, err := b.deps.Operators.Subscribers(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to list subscribers")
		return
	}
	for _, chatID := range chats {
		b.sendMessage(chatID, text)
	}
}

func formatCycle(report *entity.CycleReport) string {
	var sb strings.Builder
	if report.Passed() {
		sb.WriteString("✅ ")
	} else {
		sb.WriteString("⚠️ ")
	}
	fmt.Fprintf(&sb, "Цикл инспекции %s: %s", report.AutoID, report.Outcome)
	if report.Error != "" {
		fmt.Fprintf(&sb, "\n%s", report.Error)
	}
	if report.Response == nil {
		return sb.String()
	}

	for _, class := range slices.Sorted(maps.Keys(report.Response.Classes)) {
		checks := report.Response.Classes[class]
		for _, check := range slices.Sorted(maps.Keys(checks)) {
			fmt.Fprintf(&sb, "\n%s.%s: %s", class, check, checkLabel(checks[check]))
		}
	}
	return sb.String()
}

func checkLabel(v *bool) string {
	switch {
	case v == nil:
		return "?"
	case *v:
		return "да"
	default:
		return "нет"
	}
}

// Проверка реализации интерфейса
var _ port.EventPublisher = (*Bot)(nil)
