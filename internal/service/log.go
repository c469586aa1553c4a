package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"scooter/internal/domain"
)

// PassengersLogFile is the name of the passenger export inside the log directory.
const PassengersLogFile = "passengers.csv"

// PassengersLogOperation names the export in operation records and traces.
const PassengersLogOperation = "passengers_csv"

var passengersLogHeader = []string{"id", "name", "surname", "created_at"}

// LogService writes passenger exports to disk.
type LogService struct {
	dir    string
	delay  time.Duration
	logger *zap.Logger
}

// NewLogService creates a new LogService writing into dir. A non-zero delay
// is waited before every export.
func NewLogService(dir string, delay time.Duration, logger *zap.Logger) *LogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogService{
		dir:    dir,
		delay:  delay,
		logger: logger,
	}
}

// Path returns the location of the passenger export.
func (s *LogService) Path() string {
	return filepath.Join(s.dir, PassengersLogFile)
}

// Export writes every passenger as a CSV row and returns the file path.
// The file is replaced atomically so readers never see a partial export.
func (s *LogService) Export(ctx context.Context, passengers []*domain.Passenger) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, PassengersLogFile+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writePassengers(tmp, passengers); err != nil {
		tmp.Close()
		return "", err
	}
	// CreateTemp opens the file 0600; the export is served to clients.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to set export permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	path := s.Path()
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to publish export: %w", err)
	}

	s.logger.Debug("passenger export written",
		zap.String("path", path),
		zap.Int("passengers", len(passengers)),
	)
	return path, nil
}

func writePassengers(f *os.File, passengers []*domain.Passenger) error {
	w := csv.NewWriter(f)
	if err := w.Write(passengersLogHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range passengers {
		row := []string{p.ID, p.Name, p.Surname, p.CreatedAt.UTC().Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write passenger %s: %w", p.ID, err)
		}
	}
	w.Flush()
	return w.Error()
}
