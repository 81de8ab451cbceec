package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"tactics-server/internal/domain"
)

var ErrBadJournal = errors.New("not a journal file")

// Load reads a journal written by Save.
func (s *JournalService) Load(path string) (*domain.Journal, error) {
	return LoadFile(path)
}

// LoadFile reads a journal from any path.
func LoadFile(path string) (*domain.Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

// preallocActions bounds the capacity taken on trust from a header.
const preallocActions = 1024

func readBinary(r io.Reader) (*domain.Journal, error) {
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic %q: %w", header.Magic[:], ErrBadJournal)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("negative action count: %w", ErrBadJournal)
	}

	matchID := make([]byte, header.MatchIDLen)
	if _, err := io.ReadFull(r, matchID); err != nil {
		return nil, fmt.Errorf("failed to read match id: %w", err)
	}

	j := &domain.Journal{
		MatchID:   string(matchID),
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Actions:   make([]domain.JournalAction, 0, min(int(header.ActionCount), preallocActions)),
	}

	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.JournalAction{
			Round:  int(ah.Round),
			Unit:   domain.UnitID(ah.Unit),
			Action: domain.ActionType(ah.ActionType),
		}
		if ah.PayloadLen > 0 {
			act.Payload = make(json.RawMessage, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		j.Actions = append(j.Actions, act)
	}

	return j, nil
}
