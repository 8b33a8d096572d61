package opcua

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gopcua/opcua/ua"
)

// Путь к переменной считывателя
const (
	SimulationNodePath = "2:RFID-Reader_Data/2:RFID-Reader_Data"
	ProductionNodePath = "2:DeviceSet/3:PLC_1/3:DataBlocksGlobal/3:GDB_OPC-UA/3:RFID-Reader/3:Data"
)

// IsNodeID сообщает, задан ли узел в виде NodeId, а не пути просмотра.
func IsNodeID(node string) bool {
	return strings.HasPrefix(node, "ns=") || strings.HasPrefix(node, "i=")
}

// ParseBrowsePath разбирает путь вида "2:Folder/3:Variable" в квалифицированные имена.
// Без префикса пространства имён используется ns=0.
func ParseBrowsePath(path string) ([]*ua.QualifiedName, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return nil, fmt.Errorf("empty browse path")
	}

	parts := strings.Split(path, "/")
	names := make([]*ua.QualifiedName, 0, len(parts))
	for _, part := range parts {
		var ns uint16
		name := part
		if prefix, rest, ok := strings.Cut(part, ":"); ok {
			n, err := strconv.ParseUint(prefix, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("invalid namespace in %q: %w", part, err)
			}
			ns, name = uint16(n), rest
		}
		if name == "" {
			return nil, fmt.Errorf("empty segment in browse path %q", path)
		}
		names = append(names, &ua.QualifiedName{NamespaceIndex: ns, Name: name})
	}
	return names, nil
}

// DefaultNodePath возвращает путь узла для режима работы.
func DefaultNodePath(simulation bool) string {
	if simulation {
		return SimulationNodePath
	}
	return ProductionNodePath
}
