package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wvsbeta/dumpkeeper/internal/config"
)

func TestLogger(t *testing.T) {
	Convey("Given the Logger package", t, func() {
		Convey("New function", func() {
			Convey("When creating a logger with console output only", func() {
				logger, err := New(config.AppConfig{LogLevel: "info"})

				Convey("It should create a logger successfully", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)
					So(func() { logger.Info("Test log") }, ShouldNotPanic)
				})
			})

			Convey("When creating a logger with a log file", func() {
				logFile := filepath.Join(t.TempDir(), "logs", "dumpkeeper.log")

				logger, err := New(config.AppConfig{Name: "dumpkeeper", LogLevel: "debug", LogFile: logFile})

				Convey("It should write JSON lines to the file", func() {
					So(err, ShouldBeNil)

					logger.Debugf("dumped %s", "rsvp_202401010900.sql")
					logger.Close()

					content, err := os.ReadFile(logFile)
					So(err, ShouldBeNil)
					So(string(content), ShouldContainSubstring, `"msg":"dumped rsvp_202401010900.sql"`)
					So(string(content), ShouldContainSubstring, `"logger":"dumpkeeper"`)
				})
			})

			Convey("When the level filters out debug lines", func() {
				logFile := filepath.Join(t.TempDir(), "info.log")

				logger, err := New(config.AppConfig{LogLevel: "warn", LogFile: logFile})
				So(err, ShouldBeNil)

				logger.Info("hidden")
				logger.Warn("shown")
				logger.Close()

				Convey("Only the warning should be written", func() {
					content, err := os.ReadFile(logFile)
					So(err, ShouldBeNil)
					So(strings.Contains(string(content), "hidden"), ShouldBeFalse)
					So(string(content), ShouldContainSubstring, "shown")
				})
			})

			Convey("When creating a logger with an invalid log level", func() {
				logger, err := New(config.AppConfig{LogLevel: "invalid"})

				Convey("It should default to Info level and create a logger", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)
					So(func() { logger.Debug("Test debug log") }, ShouldNotPanic)
				})
			})

			Convey("When the log directory cannot be created", func() {
				blocker := filepath.Join(t.TempDir(), "file")
				So(os.WriteFile(blocker, []byte("x"), 0644), ShouldBeNil)

				logger, err := New(config.AppConfig{LogFile: filepath.Join(blocker, "sub", "test.log")})

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "failed to create log directory")
					So(logger, ShouldBeNil)
				})
			})
		})

		Convey("Nop logger", func() {
			So(func() { Nop().Errorf("ignored %d", 1) }, ShouldNotPanic)
		})
	})
}
