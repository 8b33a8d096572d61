package storage

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// carFile формат cars_config.json: {модель: [{"RFID": ...}, {"AutoID": ...}]}
type carFile map[string][]map[string]*string

// MemoryCarRepository таблица автомобилей в памяти.
// Изменения в файл не записываются.
type MemoryCarRepository struct {
	mu   sync.RWMutex
	cars map[string]*entity.Car // ключ: название модели
}

// NewMemoryCarRepository создаёт таблицу из готового списка
func NewMemoryCarRepository(cars ...entity.Car) *MemoryCarRepository {
	r := &MemoryCarRepository{cars: make(map[string]*entity.Car, len(cars))}
	for _, car := range cars {
		car := car
		r.cars[car.Name] = &car
	}
	return r
}

// LoadCarRepository читает таблицу автомобилей из файла.
// JSON разбирается как YAML.
func LoadCarRepository(path string) (*MemoryCarRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cars config: %w", err)
	}
	return ParseCars(data)
}

// ParseCars разбирает содержимое cars_config.json
func ParseCars(data []byte) (*MemoryCarRepository, error) {
	var file carFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse cars config: %w", err)
	}

	cars := make([]entity.Car, 0, len(file))
	for name, entries := range file {
		car := entity.Car{Name: name}
		for _, entry := range entries {
			if v, ok := entry["RFID"]; ok && v != nil {
				car.RFID = *v
			}
			if v, ok := entry["AutoID"]; ok && v != nil {
				car.AutoID = *v
			}
		}
		cars = append(cars, car)
	}
	return NewMemoryCarRepository(cars...), nil
}

// AutoID возвращает идентификатор оболочки по RFID-метке
func (r *MemoryCarRepository) AutoID(ctx context.Context, rfid string) (string, bool) {
	if rfid == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, car := range r.cars {
		if car.RFID == rfid && car.AutoID != "" {
			return car.AutoID, true
		}
	}
	return "", false
}

// CarName возвращает название модели по идентификатору
func (r *MemoryCarRepository) CarName(ctx context.Context, autoID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, car := range r.cars {
		if car.AutoID == autoID {
			return car.Name, true
		}
	}
	return "", false
}

// List возвращает копию таблицы, отсортированную по названию
func (r *MemoryCarRepository) List(ctx context.Context) []entity.Car {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Car, 0, len(r.cars))
	for _, car := range r.cars {
		out = append(out, *car)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Merge добавляет автомобили для идентификаторов, которых ещё нет в таблице.
// Сравнение без учёта регистра и "_".
func (r *MemoryCarRepository) Merge(ctx context.Context, autoIDs []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	known := make(map[string]struct{}, len(r.cars))
	for _, car := range r.cars {
		known[entity.NormalizeAutoID(car.AutoID)] = struct{}{}
	}

	added := 0
	for _, autoID := range autoIDs {
		key := entity.NormalizeAutoID(autoID)
		if strings.TrimSpace(autoID) == "" {
			continue
		}
		if _, ok := known[key]; ok {
			continue
		}
		name := entity.CarNameFromAutoID(autoID)
		r.cars[name] = &entity.Car{Name: name, AutoID: autoID}
		known[key] = struct{}{}
		added++
	}
	return added
}

// SetRFID назначает метку автомобилю с данным идентификатором
func (r *MemoryCarRepository) SetRFID(ctx context.Context, autoID, rfid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, car := range r.cars {
		if car.AutoID == autoID {
			car.RFID = rfid
			return nil
		}
	}
	return fmt.Errorf("auto id %q is not in cars table", autoID)
}

// Проверка реализации интерфейса
var _ port.CarRepository = (*MemoryCarRepository)(nil)
