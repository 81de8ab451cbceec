package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tactics-server/internal/domain"
)

const (
	MagicHeader string = `TCJL` // 4 bytes
	Version1    uint32 = 1

	maxMatchIDLen = 255
	maxPayloadLen = 65535
)

// JournalFileHeader is the fixed part of the file header. binary.Write can
// write it in one go: only arrays and numbers. The match id follows it.
type JournalFileHeader struct {
	Magic       [4]byte // 4
	Version     uint32  // 4
	Seed        uint64  // 8
	Timestamp   int64   // 8
	ActionCount int32   // 4
	MatchIDLen  uint8   // 1
}

// ActionHeader precedes each record; the payload bytes follow it.
type ActionHeader struct {
	Round      int32  // 4
	ActionType uint8  // 1
	Unit       int32  // 4
	PayloadLen uint16 // 2
}

// JournalService stores journals as files in Dir.
type JournalService struct {
	Dir string
}

func NewJournalService(dir string) (*JournalService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &JournalService{Dir: dir}, nil
}

// Save writes j to a new file and returns its path.
func (s *JournalService) Save(j *domain.Journal) (string, error) {
	filename := fmt.Sprintf("journal_%s_%d.tcjl", j.MatchID, j.Timestamp)
	path := filepath.Join(s.Dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, j); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, j *domain.Journal) error {
	matchID := []byte(j.MatchID)
	if len(matchID) > maxMatchIDLen {
		return fmt.Errorf("match id too long: %d", len(matchID))
	}

	header := JournalFileHeader{
		Version:     Version1,
		Seed:        j.Seed,
		Timestamp:   j.Timestamp,
		ActionCount: int32(len(j.Actions)),
		MatchIDLen:  uint8(len(matchID)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(matchID); err != nil {
		return fmt.Errorf("failed to write match id: %w", err)
	}

	for i, act := range j.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > maxPayloadLen {
			return fmt.Errorf("action %d: payload too long: %d", i, payloadLen)
		}

		actHeader := ActionHeader{
			Round:      int32(act.Round),
			ActionType: uint8(act.Action),
			Unit:       int32(act.Unit),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return fmt.Errorf("action %d: %w", i, err)
			}
		}
	}

	return nil
}
