package entity

import "strings"

// Car связывает модель автомобиля, RFID-метку и идентификатор оболочки AAS.
type Car struct {
	Name   string // название модели
	RFID   string // метка считывателя, может быть пустой
	AutoID string // idShort оболочки в реестре
}

// NormalizeAutoID приводит идентификатор к виду для сравнения без учёта регистра и "_".
func NormalizeAutoID(autoID string) string {
	return strings.ToLower(strings.ReplaceAll(autoID, "_", ""))
}

// CarNameFromAutoID строит название модели из идентификатора для новых записей.
func CarNameFromAutoID(autoID string) string {
	return strings.ReplaceAll(autoID, "_", " ")
}
