package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clubops/rosterd/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"ROSTERD_CONFIG",
		"ROSTERD_ADDR",
		"ROSTERD_LOG_LEVEL",
		"ROSTERD_DB_PATH",
		"ROSTERD_DEFAULT_STATUS",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Teams, convey.ShouldHaveLength, 6)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("ROSTERD_ADDR", ":8080")
			_ = os.Setenv("ROSTERD_DB_PATH", "/tmp/roster.db")
			_ = os.Setenv("ROSTERD_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/roster.db")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Teams, convey.ShouldHaveLength, 6) // untouched
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			content := "addr: \":7070\"\nteams:\n  - A Grade\n  - B Grade\ndefault_status: \"\"\n"
			convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("ROSTERD_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values layer over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.Teams, convey.ShouldResemble, []string{"A Grade", "B Grade"})
			})
		})

		convey.Convey("When env overrides a file value", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("ROSTERD_CONFIG", path)
			_ = os.Setenv("ROSTERD_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()
			_ = os.Setenv("ROSTERD_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading fails with a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given invalid configuration values", t, func() {
		ctx := context.Background()

		convey.Convey("When addr is empty", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("ROSTERD_CONFIG", path)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the default status is not in the status list", func() {
			clearConfigEnvVars()
			_ = os.Setenv("ROSTERD_DEFAULT_STATUS", "Ghosted")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the team list is emptied", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(path, []byte("teams: []\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("ROSTERD_CONFIG", path)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
