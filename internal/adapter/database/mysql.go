package database

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/wvsbeta/dumpkeeper/internal/config"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

type MySQLDatabase struct {
	config *config.DatabaseConfig
}

func NewMySQL(cfg *config.DatabaseConfig) *MySQLDatabase {
	return &MySQLDatabase{config: cfg}
}

func (m *MySQLDatabase) Dump(ctx context.Context, out io.Writer) (domain.DumpStatus, error) {
	args := append(m.connArgs(),
		"--single-transaction",
		"--quick",
		"--routines",
		"--triggers",
		"--events",
	)
	args = append(args, m.config.Args...)
	args = append(args, "--databases", m.config.Database)

	return runDump(ctx, out, nil, binaryOr(m.config.Binary, "mysqldump"), args...)
}

func (m *MySQLDatabase) connArgs() []string {
	args := []string{
		fmt.Sprintf("--host=%s", m.config.Host),
		fmt.Sprintf("--port=%d", portOr(m.config.Port, 3306)),
		fmt.Sprintf("--user=%s", m.config.Username),
	}
	if m.config.Password != "" {
		args = append(args, fmt.Sprintf("--password=%s", m.config.Password))
	}
	return args
}

func (m *MySQLDatabase) GetName() string {
	return m.config.Database
}

func (m *MySQLDatabase) GetType() string {
	return "mysql"
}

func (m *MySQLDatabase) Ping(ctx context.Context) error {
	args := append(m.connArgs(), "-e", "SELECT 1")

	cmd := exec.CommandContext(ctx, clientPath(m.config.Binary, "mysql"), args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}

	return nil
}
