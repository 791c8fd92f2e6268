package idgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

// Generator produces unique, time-ordered int64 ids. Message ids come from
// here so later ids always sort after earlier ones.
type Generator interface {
	NextId() (int64, error)
}

// SonyflakeGenerator implements Generator using sonyflake
type SonyflakeGenerator struct {
	sf *sonyflake.Sonyflake
}

// NewSonyflakeGenerator creates a new SonyflakeGenerator
func NewSonyflakeGenerator(machineId uint16) (*SonyflakeGenerator, error) {
	st := sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MachineID: func() (uint16, error) {
			return machineId, nil
		},
	}

	sf, err := sonyflake.New(st)
	if err != nil {
		return nil, fmt.Errorf("failed to create sonyflake: %w", err)
	}

	return &SonyflakeGenerator{sf: sf}, nil
}

// NextId generates a new unique id
func (g *SonyflakeGenerator) NextId() (int64, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return 0, fmt.Errorf("failed to generate id: %w", err)
	}
	return int64(id), nil
}

// Global default generator
var (
	defaultGenerator Generator
	once             sync.Once
	initErr          error
)

// SetDefaultGenerator sets the default id generator
func SetDefaultGenerator(gen Generator) {
	defaultGenerator = gen
}

// GetDefaultGenerator returns the default id generator.
// If not set, creates a SonyflakeGenerator with machineId 1.
func GetDefaultGenerator() (Generator, error) {
	once.Do(func() {
		if defaultGenerator == nil {
			defaultGenerator, initErr = NewSonyflakeGenerator(1)
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return defaultGenerator, nil
}

// NextId generates a new id using the default generator
func NextId() (int64, error) {
	gen, err := GetDefaultGenerator()
	if err != nil {
		return 0, err
	}
	return gen.NextId()
}
