package entity

import "strings"

// Канонические имена проверок
const (
	CheckInPlace         = "in_place"
	CheckFreeOfDamage    = "free_of_damage"
	CheckHasCorrectColor = "has_correct_color" // камера цвет не сообщает
)

var canonicalChecks = []string{CheckInPlace, CheckFreeOfDamage, CheckHasCorrectColor}

// CanonicalCheck приводит имя проверки из плана к каноническому.
// Неизвестные имена возвращаются как есть.
func CanonicalCheck(check string) string {
	for _, c := range canonicalChecks {
		if strings.Contains(check, c) {
			return c
		}
	}
	return check
}

// TranslateFunc переводит имя класса из плана в ключ ответа камеры.
type TranslateFunc func(className string) (string, bool)

// BuildResponsePlan заполняет план ответа по плану инспекции и результату камеры.
// Если камера проверку не покрывает, ставится null, когда план его допускает, иначе false.
func BuildResponsePlan(plan *InspectionPlan, simplified SimplifiedResponse, translate TranslateFunc) *ResponsePlan {
	out := &ResponsePlan{Classes: make(map[string]map[string]*bool)}
	if plan == nil {
		return out
	}

	for className, checks := range plan.Classes {
		cameraKey, known := "", false
		if translate != nil {
			cameraKey, known = translate(className)
		}

		result := make(map[string]*bool, len(checks))
		for check, expectation := range checks {
			if known {
				if v, ok := simplified.Value(cameraKey, CanonicalCheck(check)); ok {
					result[check] = Bool(v)
					continue
				}
			}

			if expectation.AllowsUnknown() {
				result[check] = nil
			} else {
				result[check] = Bool(false)
			}
		}
		out.Classes[className] = result
	}

	return out
}
