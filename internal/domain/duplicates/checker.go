package duplicates

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"safetyportal/normalization/algorithms"
)

// numericTolerance числовые поля считаются равными, если отличаются меньше чем на эту величину
const numericTolerance = 0.01

// Recorder принимает события проверки для метрик
type Recorder interface {
	DuplicateFound(entity string)
	DuplicateCheckFailed(entity string)
}

type noopRecorder struct{}

func (noopRecorder) DuplicateFound(string)       {}
func (noopRecorder) DuplicateCheckFailed(string) {}

// Config параметры политики поиска дубликатов
type Config struct {
	// Threshold сходство текстовых полей должно быть строго больше порога
	Threshold float64
	// Strict ошибка чтения существующих записей прерывает вставку вместо пропуска проверки
	Strict bool
}

// DefaultConfig порог 0.85, ошибка чтения пропускает проверку
func DefaultConfig() Config {
	return Config{Threshold: algorithms.DefaultDuplicateThreshold}
}

// Rule описывает сравниваемые поля записи типа T.
// Text и Numeric должны возвращать значения в одном и том же порядке для любых записей
type Rule[T any] struct {
	Entity  string
	Text    func(T) []string
	Numeric func(T) []float64
	ID      func(T) int64
}

// Lister читает все существующие записи сущности
type Lister[T any] func(ctx context.Context) ([]T, error)

// Policy проверка перед вставкой: запись-кандидат сравнивается со всеми существующими.
// Проверка и последующая вставка не атомарны, параллельные вставки могут обе пройти проверку
type Policy[T any] struct {
	rule     Rule[T]
	config   Config
	recorder Recorder
	logger   *slog.Logger
}

// NewPolicy создает политику для сущности. recorder и logger могут быть nil
func NewPolicy[T any](rule Rule[T], config Config, recorder Recorder, logger *slog.Logger) *Policy[T] {
	if config.Threshold <= 0 || config.Threshold > 1 {
		config.Threshold = algorithms.DefaultDuplicateThreshold
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy[T]{rule: rule, config: config, recorder: recorder, logger: logger}
}

// Threshold возвращает действующий порог сходства
func (p *Policy[T]) Threshold() float64 {
	return p.config.Threshold
}

// Check возвращает *ConflictError для первой совпавшей записи, дальше просмотр не идет.
// Если список прочитать не удалось, по умолчанию проверка считается пройденной
func (p *Policy[T]) Check(ctx context.Context, candidate T, list Lister[T]) error {
	existing, err := list(ctx)
	if err != nil {
		p.recorder.DuplicateCheckFailed(p.rule.Entity)
		if p.config.Strict {
			return fmt.Errorf("%w: %s: %v", ErrCheckFailed, p.rule.Entity, err)
		}
		p.logger.WarnContext(ctx, "duplicate check skipped: failed to list existing records",
			"entity", p.rule.Entity,
			"error", err,
		)
		return nil
	}

	for _, record := range existing {
		if !p.Matches(candidate, record) {
			continue
		}

		p.recorder.DuplicateFound(p.rule.Entity)
		conflict := &ConflictError{Entity: p.rule.Entity, Existing: record}
		if p.rule.ID != nil {
			conflict.ExistingID = p.rule.ID(record)
		}
		p.logger.InfoContext(ctx, "duplicate record rejected",
			"entity", p.rule.Entity,
			"existing_id", conflict.ExistingID,
		)
		return conflict
	}
	return nil
}

// Matches сообщает, считаются ли две записи дубликатами:
// все текстовые поля похожи сильнее порога и все числовые равны с точностью до 0.01
func (p *Policy[T]) Matches(a, b T) bool {
	if p.rule.Text != nil {
		textA, textB := p.rule.Text(a), p.rule.Text(b)
		if len(textA) != len(textB) {
			return false
		}
		for i := range textA {
			if !algorithms.IsSimilar(textA[i], textB[i], p.config.Threshold) {
				return false
			}
		}
	}

	if p.rule.Numeric != nil {
		numA, numB := p.rule.Numeric(a), p.rule.Numeric(b)
		if len(numA) != len(numB) {
			return false
		}
		for i := range numA {
			if math.Abs(numA[i]-numB[i]) >= numericTolerance {
				return false
			}
		}
	}

	return true
}
