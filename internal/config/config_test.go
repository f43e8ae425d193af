package config_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/orangehat/meetcal/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigDefaults(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then the defaults are sane", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Timezone, convey.ShouldEqual, "Local")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.DefaultAgendaDays, convey.ShouldEqual, 7)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 100)
			convey.So(cfg.FeedRefreshCron, convey.ShouldEqual, "@every 30m")
			convey.So(cfg.FeedHorizonDays, convey.ShouldEqual, 120)
			convey.So(len(cfg.Feeds), convey.ShouldEqual, 0)
		})
	})
}

func TestConfigLocation(t *testing.T) {
	convey.Convey("Given timezone resolution", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When the timezone is Local", func() {
			loc, err := cfg.Location()
			convey.So(err, convey.ShouldBeNil)
			convey.So(loc, convey.ShouldEqual, time.Local)
		})

		convey.Convey("When the timezone is empty", func() {
			cfg.Timezone = ""
			loc, err := cfg.Location()
			convey.So(err, convey.ShouldBeNil)
			convey.So(loc, convey.ShouldEqual, time.Local)
		})

		convey.Convey("When the timezone is a valid IANA name", func() {
			cfg.Timezone = "Asia/Bangkok"
			loc, err := cfg.Location()
			convey.So(err, convey.ShouldBeNil)
			convey.So(loc.String(), convey.ShouldEqual, "Asia/Bangkok")
		})

		convey.Convey("When the timezone is garbage", func() {
			cfg.Timezone = "Mars/Olympus_Mons"
			_, err := cfg.Location()
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
