package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
)

// AddLog appends a line to the match log and pushes it to clients.
func (m *Match) AddLog(text, logType string) {
	entry := api.LogEntry{
		ID:        fmt.Sprintf("%s_%d", m.ID, len(m.Logs)),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	}
	m.Logs = append(m.Logs, entry)
	m.broadcast(domain.EventLog, entry)

	logger.Log.WithFields(logrus.Fields{
		"match":     m.ID,
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}
