package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/orangehat/meetcal/internal/adapters/http/api"
	"github.com/orangehat/meetcal/internal/adapters/http/swagger"
	app "github.com/orangehat/meetcal/internal/app"
	"github.com/orangehat/meetcal/internal/config"
	"github.com/orangehat/meetcal/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("MEETCAL_ADDR", ":8080")
			_ = os.Setenv("MEETCAL_QUEUE_SIZE", "1000")
			_ = os.Setenv("MEETCAL_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("MEETCAL_ADDR")
				_ = os.Unsetenv("MEETCAL_QUEUE_SIZE")
				_ = os.Unsetenv("MEETCAL_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(8),
					app.WithQueueSize(2000),
					app.WithDedupeSize(1000),
					app.WithAgendaDays(14),
					app.WithLocation(time.UTC),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New(app.WithLocation(time.UTC))
			ctx := context.Background()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)

			apiServer := api.NewServer(svc, svc, 100)
			apiServer.Register(ctx, mux)

			convey.Convey("Then the server should be constructible with timeouts", func() {
				srv := &http.Server{
					Addr:              ":0",
					Handler:           mux,
					ReadTimeout:       readTimeout,
					WriteTimeout:      writeTimeout,
					IdleTimeout:       idleTimeout,
					ReadHeaderTimeout: readHeaderTimeout,
				}
				convey.So(srv, convey.ShouldNotBeNil)
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
			})
		})

		convey.Convey("When updating system metrics", func() {
			convey.Convey("Then it should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}
