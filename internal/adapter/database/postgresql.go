package database

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/wvsbeta/dumpkeeper/internal/config"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

type PostgreSQLDatabase struct {
	config *config.DatabaseConfig
}

func NewPostgreSQL(cfg *config.DatabaseConfig) *PostgreSQLDatabase {
	return &PostgreSQLDatabase{config: cfg}
}

// Dump writes a plain SQL dump, so the output keeps the .sql shape of the
// other dumps in the backup directory.
func (p *PostgreSQLDatabase) Dump(ctx context.Context, out io.Writer) (domain.DumpStatus, error) {
	args := append(p.connArgs(), "--format=plain", "--no-password")
	args = append(args, p.config.Args...)
	args = append(args, p.config.Database)

	return runDump(ctx, out, p.env(), binaryOr(p.config.Binary, "pg_dump"), args...)
}

func (p *PostgreSQLDatabase) connArgs() []string {
	return []string{
		fmt.Sprintf("--host=%s", p.config.Host),
		fmt.Sprintf("--port=%d", portOr(p.config.Port, 5432)),
		fmt.Sprintf("--username=%s", p.config.Username),
	}
}

func (p *PostgreSQLDatabase) env() []string {
	return append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", p.config.Password))
}

func (p *PostgreSQLDatabase) GetName() string {
	return p.config.Database
}

func (p *PostgreSQLDatabase) GetType() string {
	return "postgresql"
}

func (p *PostgreSQLDatabase) Ping(ctx context.Context) error {
	args := append(p.connArgs(), "--dbname="+p.config.Database, "-c", "SELECT 1")

	cmd := exec.CommandContext(ctx, clientPath(p.config.Binary, "psql"), args...)
	cmd.Env = p.env()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("postgresql ping failed: %w", err)
	}

	return nil
}
