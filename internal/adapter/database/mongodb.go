package database

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os/exec"

	"github.com/wvsbeta/dumpkeeper/internal/config"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

type MongoDBDatabase struct {
	config *config.DatabaseConfig
}

func NewMongoDB(cfg *config.DatabaseConfig) *MongoDBDatabase {
	return &MongoDBDatabase{config: cfg}
}

// Dump writes a mongodump archive to out (--archive without a path streams
// to stdout).
func (m *MongoDBDatabase) Dump(ctx context.Context, out io.Writer) (domain.DumpStatus, error) {
	args := []string{
		fmt.Sprintf("--uri=%s", m.uri()),
		"--archive",
	}
	args = append(args, m.config.Args...)

	return runDump(ctx, out, nil, binaryOr(m.config.Binary, "mongodump"), args...)
}

func (m *MongoDBDatabase) uri() string {
	u := url.URL{
		Scheme: "mongodb",
		User:   url.UserPassword(m.config.Username, m.config.Password),
		Host:   fmt.Sprintf("%s:%d", m.config.Host, portOr(m.config.Port, 27017)),
		Path:   "/" + m.config.Database,
	}
	if m.config.AuthDatabase != "" {
		u.RawQuery = url.Values{"authSource": {m.config.AuthDatabase}}.Encode()
	}
	return u.String()
}

func (m *MongoDBDatabase) GetName() string {
	return m.config.Database
}

func (m *MongoDBDatabase) GetType() string {
	return "mongodb"
}

func (m *MongoDBDatabase) Ping(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, clientPath(m.config.Binary, "mongosh"), m.uri(), "--quiet", "--eval", "db.runCommand({ ping: 1 })")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}

	return nil
}
