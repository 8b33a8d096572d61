package entity

import (
	"regexp"
	"strings"
)

// NoAutoID значение последнего идентификатора, если метку распознать не удалось
const NoAutoID = "None"

// tagPattern находит RFID-метку считывателя в строке значения
var tagPattern = regexp.MustCompile(`ANT.*`)

// ParseTag извлекает RFID-метку из сырого значения узла OPC UA.
// Из многострочного значения берётся только первая строка.
func ParseTag(raw string) (string, bool) {
	if raw == "" || raw == NoAutoID {
		return "", false
	}

	line := raw
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	line = strings.TrimRight(line, "\r")

	tag := tagPattern.FindString(line)
	if tag == "" {
		return "", false
	}
	return tag, true
}
