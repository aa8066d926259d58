package migration

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vibequest/vibequest/vibequest/database/models"
)

// Migrator imports player balances and session history from the retired
// Mongo tracker into Postgres. It reads either a live Mongo database or raw
// BSON dump files under dataDir.
type Migrator struct {
	pgDB      *bun.DB
	dataDir   string
	batchSize int
	stats     MigrationStats

	// Optional direct Mongo access
	mongoDB *mongo.Database
}

func NewMigrator(pgDB *bun.DB, dataDir string) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		dataDir:   dataDir,
		batchSize: 1000,
		stats: MigrationStats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
	}
}

// SetBatchSize overrides the default batch size for inserts (useful for poolers/timeouts)
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// UseMongo switches the migrator to read from a live Mongo database instead
// of BSON dumps.
func (m *Migrator) UseMongo(client *mongo.Client, dbName string) {
	m.mongoDB = client.Database(dbName)
}

// MigrateAll runs every migration in dependency order.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	if m.mongoDB != nil {
		if err := m.MigratePlayersFromMongo(ctx); err != nil {
			return fmt.Errorf("player migration failed: %w", err)
		}
		if err := m.MigrateSessionsFromMongo(ctx); err != nil {
			return fmt.Errorf("session migration failed: %w", err)
		}
	} else {
		if err := m.MigratePlayers(ctx); err != nil {
			return fmt.Errorf("player migration failed: %w", err)
		}
		if err := m.MigrateSessions(ctx); err != nil {
			return fmt.Errorf("session migration failed: %w", err)
		}
	}

	m.stats.EndTime = time.Now()
	m.logSummary()
	return nil
}

// MigratePlayersFromMongo migrates players from live Mongo.
func (m *Migrator) MigratePlayersFromMongo(ctx context.Context) error {
	if m.mongoDB == nil {
		return nil
	}
	col := m.mongoDB.Collection("players")
	cur, err := col.Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query players: %w", err)
	}
	defer cur.Close(ctx)

	var players []LegacyPlayer
	for cur.Next(ctx) {
		var lp LegacyPlayer
		if err := cur.Decode(&lp); err == nil {
			players = append(players, lp)
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	return m.processPlayers(ctx, players)
}

// MigrateSessionsFromMongo migrates sessions from live Mongo.
func (m *Migrator) MigrateSessionsFromMongo(ctx context.Context) error {
	if m.mongoDB == nil {
		return nil
	}
	col := m.mongoDB.Collection("sessions")
	cur, err := col.Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query sessions: %w", err)
	}
	defer cur.Close(ctx)

	var sessions []LegacySession
	for cur.Next(ctx) {
		var ls LegacySession
		if err := cur.Decode(&ls); err == nil {
			sessions = append(sessions, ls)
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	return m.processSessions(ctx, sessions)
}

// MigratePlayers migrates players from the players.bson dump.
func (m *Migrator) MigratePlayers(ctx context.Context) error {
	var players []LegacyPlayer
	err := m.processBSONFile(ctx, filepath.Join(m.dataDir, "players.bson"), func(doc []byte) error {
		var lp LegacyPlayer
		if err := bson.Unmarshal(doc, &lp); err != nil {
			return err
		}
		players = append(players, lp)
		return nil
	})
	if err != nil {
		return err
	}
	return m.processPlayers(ctx, players)
}

// MigrateSessions migrates sessions from the sessions.bson dump.
func (m *Migrator) MigrateSessions(ctx context.Context) error {
	var sessions []LegacySession
	err := m.processBSONFile(ctx, filepath.Join(m.dataDir, "sessions.bson"), func(doc []byte) error {
		var ls LegacySession
		if err := bson.Unmarshal(doc, &ls); err != nil {
			return err
		}
		sessions = append(sessions, ls)
		return nil
	})
	if err != nil {
		return err
	}
	return m.processSessions(ctx, sessions)
}

func (m *Migrator) processPlayers(ctx context.Context, legacyPlayers []LegacyPlayer) error {
	stats := m.tableStats("players")

	var batch []*models.Player
	for _, lp := range legacyPlayers {
		stats.Processed++
		if lp.ExternalID == "" {
			m.skip(stats, "missing external_id", lp)
			continue
		}
		batch = append(batch, convertPlayer(lp))
		if len(batch) >= m.batchSize {
			if err := m.batchInsertPlayers(ctx, batch); err != nil {
				return err
			}
			stats.Successful += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := m.batchInsertPlayers(ctx, batch); err != nil {
			return err
		}
		stats.Successful += len(batch)
	}

	slog.Info("Player migration completed",
		"processed", stats.Processed,
		"successful", stats.Successful,
		"skipped", stats.Skipped)
	return nil
}

func (m *Migrator) processSessions(ctx context.Context, legacySessions []LegacySession) error {
	stats := m.tableStats("sessions")

	var batch []*models.ActivityRecord
	for _, ls := range legacySessions {
		stats.Processed++
		if ls.SessionID == 0 || ls.PlayerID == "" {
			m.skip(stats, "missing session_id or player_id", ls)
			continue
		}
		record, err := convertSession(ls)
		if err != nil {
			m.skip(stats, fmt.Sprintf("conversion failed: %v", err), ls)
			continue
		}
		batch = append(batch, record)
		if len(batch) >= m.batchSize {
			if err := m.batchInsertSessions(ctx, batch); err != nil {
				return err
			}
			stats.Successful += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := m.batchInsertSessions(ctx, batch); err != nil {
			return err
		}
		stats.Successful += len(batch)
	}

	slog.Info("Session migration completed",
		"processed", stats.Processed,
		"successful", stats.Successful,
		"skipped", stats.Skipped)
	return nil
}

func (m *Migrator) batchInsertPlayers(ctx context.Context, players []*models.Player) error {
	startTime := time.Now()

	_, err := m.pgDB.NewInsert().
		Model(&players).
		On("CONFLICT (external_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("vibe_energy = EXCLUDED.vibe_energy").
		Set("experience = EXCLUDED.experience").
		Set("code_essence = EXCLUDED.code_essence").
		Set("gold = EXCLUDED.gold").
		Set("consecutive_days = EXCLUDED.consecutive_days").
		Set("last_check_in_date = EXCLUDED.last_check_in_date").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert player batch: %w", err)
	}

	slog.Info("Batch insert of players completed", "count", len(players), "took", time.Since(startTime))
	return nil
}

func (m *Migrator) batchInsertSessions(ctx context.Context, records []*models.ActivityRecord) error {
	_, err := m.pgDB.NewInsert().
		Model(&records).
		On("CONFLICT (session_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert session batch: %w", err)
	}
	return nil
}

func (m *Migrator) processBSONFile(ctx context.Context, filePath string, processDoc func([]byte) error) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		slog.Warn("BSON file not found, skipping", "path", filePath)
		return nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open BSON file %s: %w", filePath, err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	fileSize := fileInfo.Size()
	if fileSize == 0 {
		slog.Warn("BSON file is empty, skipping", "path", filePath)
		return nil
	}

	reader := bufio.NewReader(file)
	docCount := 0
	bytesRead := int64(0)

	for bytesRead < fileSize {
		// Each BSON document starts with an int32 length
		lengthBytes := make([]byte, 4)
		n, err := io.ReadFull(reader, lengthBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read document length at byte %d: %w", bytesRead, err)
		}
		bytesRead += int64(n)

		length := int32(binary.LittleEndian.Uint32(lengthBytes))
		if length <= 4 || length > 16*1024*1024 {
			return fmt.Errorf("invalid document length: %d at byte position %d", length, bytesRead-4)
		}

		// The length includes the 4 bytes of the length itself
		docBytes := make([]byte, length-4)
		n, err = io.ReadFull(reader, docBytes)
		if err != nil {
			return fmt.Errorf("failed to read document bytes at byte %d: %w", bytesRead, err)
		}
		bytesRead += int64(n)

		fullDocBytes := append(lengthBytes, docBytes...)
		if err := processDoc(fullDocBytes); err != nil {
			slog.Warn("Failed to process document, continuing",
				"doc", docCount+1,
				"path", filePath,
				"error", err)
			continue
		}
		docCount++
	}

	slog.Info("BSON file processed", "path", filePath, "documents", docCount)
	return nil
}

func (m *Migrator) tableStats(name string) *TableStats {
	if ts, ok := m.stats.Tables[name]; ok {
		return ts
	}
	ts := &TableStats{TableName: name}
	m.stats.Tables[name] = ts
	return ts
}

func (m *Migrator) skip(stats *TableStats, reason string, record interface{}) {
	stats.Skipped++
	m.stats.TotalSkipped++
	data, _ := json.Marshal(record)
	stats.SkippedRecords = append(stats.SkippedRecords, SkippedRecord{
		Reason:    reason,
		Data:      string(data),
		Timestamp: time.Now(),
	})
}

// Stats returns the accumulated migration statistics.
func (m *Migrator) Stats() MigrationStats {
	return m.stats
}

func (m *Migrator) logSummary() {
	for name, ts := range m.stats.Tables {
		m.stats.TotalProcessed += ts.Processed
		slog.Info("Migration table summary",
			"table", name,
			"processed", ts.Processed,
			"successful", ts.Successful,
			"skipped", ts.Skipped)
	}
	slog.Info("Migration finished", "took", m.stats.EndTime.Sub(m.stats.StartTime))
}
