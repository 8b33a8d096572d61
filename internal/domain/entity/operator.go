package entity

// OperatorState состояние оператора в диалоге с ботом
type OperatorState string

const (
	StateMainMenu           OperatorState = "main_menu"            // В главном меню
	StateAwaitingPlanID     OperatorState = "awaiting_plan_id"     // Ожидание AutoID для плана инспекции
	StateAwaitingResponseID OperatorState = "awaiting_response_id" // Ожидание AutoID для ответа инспекции
)

// Operator представляет оператора линии в Telegram
type Operator struct {
	ID         int64         // Telegram User ID
	ChatID     int64         // Telegram Chat ID
	State      OperatorState // Текущее состояние диалога
	Subscribed bool          // Получать уведомления о циклах инспекции
}

// NewOperator создаёт оператора с начальным состоянием
func NewOperator(userID, chatID int64) *Operator {
	return &Operator{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние диалога
func (o *Operator) SetState(state OperatorState) {
	o.State = state
}

// SetSubscribed включает или выключает уведомления
func (o *Operator) SetSubscribed(on bool) {
	o.Subscribed = on
}
