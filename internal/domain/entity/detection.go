package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultConfidenceThreshold порог уверенности, выше которого компонент считается на месте
const DefaultConfidenceThreshold = 0.6

// Detection одно срабатывание детектора камеры.
// В JSON кодируется массивом [confidence, free_of_damage, class_id].
type Detection struct {
	Confidence   float64
	FreeOfDamage bool
	ClassID      int
}

func (d *Detection) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: detection: %v", ErrDecode, err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("%w: detection must have 3 fields, got %d", ErrDecode, len(raw))
	}

	if err := json.Unmarshal(raw[0], &d.Confidence); err != nil {
		return fmt.Errorf("%w: detection confidence: %v", ErrDecode, err)
	}
	if err := json.Unmarshal(raw[1], &d.FreeOfDamage); err != nil {
		return fmt.Errorf("%w: detection free_of_damage: %v", ErrDecode, err)
	}

	// Камера может прислать id класса как 0 или 0.0
	var classID float64
	if err := json.Unmarshal(raw[2], &classID); err != nil {
		return fmt.Errorf("%w: detection class_id: %v", ErrDecode, err)
	}
	d.ClassID = int(classID)
	return nil
}

func (d Detection) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Confidence, d.FreeOfDamage, d.ClassID})
}

// CameraResponse ответ сервиса камеры на топике результата.
type CameraResponse struct {
	Classes    map[string]string `json:"classes"`    // id класса → имя класса
	Detections []Detection       `json:"detections"` // срабатывания в порядке камеры
}

// DecodeCameraResponse разбирает JSON ответа камеры.
func DecodeCameraResponse(data []byte) (*CameraResponse, error) {
	var resp CameraResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: camera response: %v", ErrDecode, err)
	}
	return &resp, nil
}

// ClassStatus упрощённый результат камеры по одному классу.
type ClassStatus struct {
	ClassID      int  `json:"class_id"`
	InPlace      bool `json:"in_place"`
	FreeOfDamage bool `json:"free_of_damage"`
}

// SimplifiedResponse результат камеры по именам классов.
type SimplifiedResponse map[string]ClassStatus

// Simplify сводит срабатывания камеры к статусу по каждому классу.
// Для класса учитывается последнее срабатывание, срабатывания неизвестных классов пропускаются.
func Simplify(resp *CameraResponse, threshold float64) SimplifiedResponse {
	out := make(SimplifiedResponse)
	if resp == nil {
		return out
	}

	for _, d := range resp.Detections {
		name, ok := resp.Classes[strconv.Itoa(d.ClassID)]
		if !ok {
			continue
		}
		out[name] = ClassStatus{
			ClassID:      d.ClassID,
			InPlace:      d.Confidence > threshold,
			FreeOfDamage: d.FreeOfDamage,
		}
	}
	return out
}

// Value возвращает значение канонической проверки для ключа камеры.
// Второй результат false, если камера такую проверку не сообщает.
func (s SimplifiedResponse) Value(cameraKey, check string) (bool, bool) {
	status, ok := s[cameraKey]
	if !ok {
		return false, false
	}

	switch check {
	case CheckInPlace:
		return status.InPlace, true
	case CheckFreeOfDamage:
		return status.FreeOfDamage, true
	default:
		return false, false
	}
}
