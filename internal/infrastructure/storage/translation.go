package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"bpa-inspection/internal/domain/port"
)

const reloadDebounce = 200 * time.Millisecond

// TranslationTable переводит классы плана инспекции в ключи ответа камеры.
type TranslationTable struct {
	path string
	log  zerolog.Logger

	mu      sync.RWMutex
	entries map[string]string
}

// NewTranslationTable создаёт таблицу из готового словаря
func NewTranslationTable(entries map[string]string) *TranslationTable {
	t := &TranslationTable{entries: make(map[string]string, len(entries)), log: zerolog.Nop()}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// LoadTranslationTable читает inspection_plan_response_config.json
func LoadTranslationTable(path string, log zerolog.Logger) (*TranslationTable, error) {
	t := &TranslationTable{
		path: path,
		log:  log.With().Str("component", "translation").Logger(),
	}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload перечитывает файл таблицы. При ошибке текущие записи сохраняются.
func (t *TranslationTable) Reload() error {
	if t.path == "" {
		return nil
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read translation table: %w", err)
	}

	entries := make(map[string]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse translation table: %w", err)
	}

	t.mu.Lock()
	t.entries = entries
	t.mu.Unlock()

	t.log.Info().Int("entries", len(entries)).Str("path", t.path).Msg("translation table loaded")
	return nil
}

// CameraKey возвращает ключ камеры для класса плана
func (t *TranslationTable) CameraKey(className string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	key, ok := t.entries[className]
	return key, ok
}

// Len возвращает число записей
func (t *TranslationTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Watch перечитывает таблицу при изменении файла, пока не отменён ctx.
func (t *TranslationTable) Watch(ctx context.Context) error {
	if t.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Каталог, чтобы пережить замену файла редактором
	dir := filepath.Dir(t.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(t.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := t.Reload(); err != nil {
					t.log.Error().Err(err).Msg("failed to reload translation table")
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			t.log.Warn().Err(err).Msg("watch error")
		}
	}
}

// Проверка реализации интерфейса
var _ port.Translator = (*TranslationTable)(nil)
