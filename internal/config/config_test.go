package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfig(dir, content string) string {
	path := filepath.Join(dir, "config.yaml")
	So(os.WriteFile(path, []byte(content), 0644), ShouldBeNil)
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a config file", t, func() {
		tempDir := t.TempDir()

		Convey("When only the drive folder is set", func() {
			path := writeConfig(tempDir, "upload:\n  folder_id: folder-123\n")
			cfg, err := Load(path)

			Convey("It should fill in the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.App.Name, ShouldEqual, "dumpkeeper")
				So(cfg.Database.Type, ShouldEqual, "mysql")
				So(cfg.Database.Database, ShouldEqual, "rsvp")
				So(cfg.Database.FailOnError, ShouldBeTrue)
				So(cfg.Backup.Prefix, ShouldEqual, "rsvp")
				So(cfg.Backup.Extension, ShouldEqual, ".sql")
				So(cfg.Backup.Retention, ShouldEqual, 72*time.Hour)
				So(cfg.Backup.AgeSource, ShouldEqual, "mtime")
				So(cfg.Upload.Type, ShouldEqual, "gdrive")
				So(cfg.Upload.FolderID, ShouldEqual, "folder-123")
				So(cfg.Upload.Gate.Mode, ShouldEqual, "interval")
				So(cfg.Upload.Gate.Interval, ShouldEqual, 24*time.Hour)
				So(cfg.Upload.Gate.Hour, ShouldEqual, 9)
				So(cfg.Upload.Gate.Minute, ShouldEqual, 0)
				So(cfg.Schedule, ShouldEqual, "0 0 9 * * *")
			})
		})

		Convey("When durations and the clock gate are configured", func() {
			path := writeConfig(tempDir, `
backup:
  dir: /var/backups/rsvp
  retention: 96h
  age_source: name
upload:
  folder_id: folder-123
  gate:
    mode: clock
    hour: 21
    minute: 30
`)
			cfg, err := Load(path)

			Convey("It should parse them", func() {
				So(err, ShouldBeNil)
				So(cfg.Backup.Dir, ShouldEqual, "/var/backups/rsvp")
				So(cfg.Backup.Retention, ShouldEqual, 96*time.Hour)
				So(cfg.Backup.AgeSource, ShouldEqual, "name")
				So(cfg.Upload.Gate.Mode, ShouldEqual, "clock")
				So(cfg.Upload.Gate.Hour, ShouldEqual, 21)
				So(cfg.Upload.Gate.Minute, ShouldEqual, 30)
			})
		})

		Convey("When an environment variable overrides a value", func() {
			t.Setenv("DUMPKEEPER_DATABASE_PASSWORD", "s3cret")
			path := writeConfig(tempDir, "upload:\n  enabled: false\n")
			cfg, err := Load(path)

			Convey("It should take the environment value", func() {
				So(err, ShouldBeNil)
				So(cfg.Database.Password, ShouldEqual, "s3cret")
			})
		})

		Convey("When the environment sets keys the file and defaults leave empty", func() {
			t.Setenv("DUMPKEEPER_UPLOAD_ACCESS_KEY", "AKIA")
			t.Setenv("DUMPKEEPER_UPLOAD_SECRET_KEY", "shh")
			t.Setenv("DUMPKEEPER_UPLOAD_ENDPOINT", "http://minio:9000")
			t.Setenv("DUMPKEEPER_DATABASE_BINARY", "/opt/mysql/bin/mysqldump")
			t.Setenv("DUMPKEEPER_NOTIFY_TELEGRAM_BOT_TOKEN", "123:abc")
			path := writeConfig(tempDir, "upload:\n  type: s3\n  region: eu-west-1\n  bucket: rsvp-backups\n")
			cfg, err := Load(path)

			Convey("It should still pick them up", func() {
				So(err, ShouldBeNil)
				So(cfg.Upload.AccessKey, ShouldEqual, "AKIA")
				So(cfg.Upload.SecretKey, ShouldEqual, "shh")
				So(cfg.Upload.Endpoint, ShouldEqual, "http://minio:9000")
				So(cfg.Database.Binary, ShouldEqual, "/opt/mysql/bin/mysqldump")
				So(cfg.Notify.Telegram.BotToken, ShouldEqual, "123:abc")
			})
		})

		Convey("When the folder id only comes from the environment", func() {
			t.Setenv("DUMPKEEPER_UPLOAD_FOLDER_ID", "folder")
			path := writeConfig(tempDir, "backup:\n  dir: .\n")
			cfg, err := Load(path)

			Convey("The gdrive upload should validate", func() {
				So(err, ShouldBeNil)
				So(cfg.Upload.FolderID, ShouldEqual, "folder")
			})
		})

		Convey("When gdrive upload has no folder", func() {
			path := writeConfig(tempDir, "backup:\n  dir: .\n")
			_, err := Load(path)

			Convey("It should fail validation", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "upload.folder_id is required")
			})
		})

		Convey("When the file does not exist", func() {
			_, err := Load(filepath.Join(tempDir, "missing.yaml"))

			Convey("It should return a read error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "failed to read config")
			})
		})
	})
}

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Type: "mysql", Database: "rsvp"},
		Backup: BackupConfig{
			Dir:       ".",
			Prefix:    "rsvp",
			Extension: ".sql",
			Retention: 72 * time.Hour,
			AgeSource: "mtime",
		},
		Upload: UploadConfig{
			Enabled:         true,
			Type:            "gdrive",
			CredentialsFile: "creds.json",
			FolderID:        "folder",
			Gate:            GateConfig{Mode: "clock", Hour: 9},
		},
	}
}

func TestValidate(t *testing.T) {
	Convey("Given a valid config", t, func() {
		cfg := validConfig()
		So(cfg.Validate(), ShouldBeNil)

		Convey("An unknown database type is rejected", func() {
			cfg.Database.Type = "oracle"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A prefix with a path separator is rejected", func() {
			cfg.Backup.Prefix = "../rsvp"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("An extension without a dot is rejected", func() {
			cfg.Backup.Extension = "sql"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A zero retention is rejected", func() {
			cfg.Backup.Retention = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("An unknown age source is rejected", func() {
			cfg.Backup.AgeSource = "ctime"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A clock gate outside the day is rejected", func() {
			cfg.Upload.Gate.Hour = 24
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Upload.Gate.Hour = 9
			cfg.Upload.Gate.Minute = 60
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("An interval gate needs a state file", func() {
			cfg.Upload.Gate = GateConfig{Mode: "interval", Interval: time.Hour}
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Upload.Gate.StateFile = "state.json"
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("S3 needs a bucket and region", func() {
			cfg.Upload.Type = "s3"
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Upload.Bucket = "backups"
			cfg.Upload.Region = "eu-west-1"
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("Upload settings are ignored when upload is disabled", func() {
			cfg.Upload = UploadConfig{Enabled: false}
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("Telegram needs a token and chat id", func() {
			cfg.Notify.Telegram.Enabled = true
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Notify.Telegram.BotToken = "token"
			cfg.Notify.Telegram.ChatID = 42
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}
