package entity

import "time"

// CycleOutcome итог одного цикла инспекции
type CycleOutcome string

const (
	OutcomeCompleted  CycleOutcome = "completed"   // ответ записан в реестр
	OutcomeNoPlan     CycleOutcome = "no_plan"     // план инспекции не получен
	OutcomeNoCallback CycleOutcome = "no_callback" // обработчик плана не зарегистрирован
	OutcomeWriteFail  CycleOutcome = "write_failed"
)

// CycleReport описывает один цикл: метка → план → ответ камеры → запись в реестр.
type CycleReport struct {
	ID         string          `json:"id"`
	Tag        string          `json:"tag"`
	AutoID     string          `json:"autoId"`
	Plan       *InspectionPlan `json:"plan,omitempty"`
	Response   *ResponsePlan   `json:"response,omitempty"`
	Outcome    CycleOutcome    `json:"outcome"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
}

// Duration возвращает длительность цикла.
func (r *CycleReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Passed сообщает, прошли ли все проверки ответа.
// Значения null считаются непроверенными и не валят результат.
func (r *CycleReport) Passed() bool {
	if r.Response == nil || r.Outcome != OutcomeCompleted {
		return false
	}
	for _, checks := range r.Response.Classes {
		for _, v := range checks {
			if v != nil && !*v {
				return false
			}
		}
	}
	return true
}
