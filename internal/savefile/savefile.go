// Package savefile writes party member records to save files.
package savefile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ebtoolkit/internal/game/character"
)

// ErrSaveNotSupported is returned when a record cannot be fully encoded yet.
// It wraps the encoder's *character.UnsupportedFieldError.
var ErrSaveNotSupported = errors.New("save encoding not yet supported")

// ErrEmptyParty is returned when there are no members to encode.
var ErrEmptyParty = errors.New("party has no members")

// Service encodes party members into save data.
type Service struct {
	encoder *character.RecordEncoder
	logger  *zap.Logger
}

// NewService returns a Service.
//
// Precondition: encoder and logger must be non-nil.
func NewService(encoder *character.RecordEncoder, logger *zap.Logger) *Service {
	return &Service{encoder: encoder, logger: logger}
}

// EncodeAll encodes members to w in order, stopping at the first failure.
//
// Postcondition: an empty party yields ErrEmptyParty and writes nothing.
// An encoder result matching character.ErrNotYetEncodable is
// returned wrapped in ErrSaveNotSupported; any other failure is returned
// wrapped with the member index. w is never closed.
func (s *Service) EncodeAll(ctx context.Context, w io.Writer, members []*character.PartyMember) error {
	if len(members) == 0 {
		return ErrEmptyParty
	}
	for i, pm := range members {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.encoder.Encode(w, pm)
		if errors.Is(err, character.ErrNotYetEncodable) {
			s.logger.Warn("party member record incomplete",
				zap.Int("index", i),
				zap.String("name", pm.Name),
				zap.Error(err),
			)
			return fmt.Errorf("%w: member %d (%s): %w", ErrSaveNotSupported, i, pm.Name, err)
		}
		if err != nil {
			return fmt.Errorf("encoding member %d (%s): %w", i, pm.Name, err)
		}
		s.logger.Debug("party member encoded", zap.Int("index", i), zap.String("name", pm.Name))
	}
	return nil
}

// WriteFile encodes members into a new file at path.
//
// Postcondition: on success the file holds every record. On any failure the
// file is closed and removed so no truncated save is left behind.
func (s *Service) WriteFile(ctx context.Context, path string, members []*character.PartyMember) (err error) {
	if len(members) == 0 {
		return ErrEmptyParty
	}
	start := time.Now()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("creating save file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing save file: %w", cerr)
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil {
				s.logger.Error("removing incomplete save file", zap.String("path", path), zap.Error(rerr))
			}
		}
	}()

	bw := bufio.NewWriter(f)
	if err = s.EncodeAll(ctx, bw, members); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flushing save file: %w", err)
	}
	s.logger.Info("save file written",
		zap.String("path", path),
		zap.Int("members", len(members)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
