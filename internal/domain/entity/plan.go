package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Expectation допустимые значения одной проверки из плана инспекции.
// В JSON это bool, null или массив из bool/null.
type Expectation struct {
	Values []*bool
}

// Expect собирает ожидание из списка значений, nil означает "неизвестно".
func Expect(values ...*bool) Expectation {
	return Expectation{Values: values}
}

// AllowsUnknown сообщает, допускает ли план значение null для проверки.
func (e Expectation) AllowsUnknown() bool {
	for _, v := range e.Values {
		if v == nil {
			return true
		}
	}
	return false
}

func (e *Expectation) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var values []*bool
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return fmt.Errorf("%w: expectation %s: %v", ErrDecode, trimmed, err)
		}
		e.Values = values
		return nil
	}

	var v *bool
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("%w: expectation %s: %v", ErrDecode, trimmed, err)
	}
	e.Values = []*bool{v}
	return nil
}

func (e Expectation) MarshalJSON() ([]byte, error) {
	if e.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.Values)
}

// InspectionPlan план инспекции автомобиля: класс компонента → проверка → ожидание.
type InspectionPlan struct {
	Classes map[string]map[string]Expectation `json:"Inspection_Plan"`
}

// DecodeInspectionPlan разбирает вложение Inspection_Plan из реестра.
func DecodeInspectionPlan(data []byte) (*InspectionPlan, error) {
	var plan InspectionPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("%w: inspection plan: %v", ErrDecode, err)
	}
	if plan.Classes == nil {
		return nil, fmt.Errorf("%w: inspection plan has no Inspection_Plan section", ErrDecode)
	}
	return &plan, nil
}

// ResponsePlan результат инспекции в форме плана: класс → проверка → true/false/null.
type ResponsePlan struct {
	Classes map[string]map[string]*bool `json:"Response_Plan"`
}

// DecodeResponsePlan разбирает вложение Response_Placeholder из реестра.
func DecodeResponsePlan(data []byte) (*ResponsePlan, error) {
	var plan ResponsePlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("%w: response plan: %v", ErrDecode, err)
	}
	if plan.Classes == nil {
		return nil, fmt.Errorf("%w: response plan has no Response_Plan section", ErrDecode)
	}
	return &plan, nil
}

// Bool возвращает указатель на значение.
func Bool(v bool) *bool {
	return &v
}
