package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryosure/internal/logger"
	"cryosure/internal/sensorsim"
	"cryosure/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

// Local stand-in for the remote sensor API. Settings come from SIM_* env vars.
func main() {
	v := viper.New()
	v.SetEnvPrefix("SIM")
	v.AutomaticEnv()
	v.SetDefault("port", "8090")
	v.SetDefault("device_id", "cryosure-sensor-01")
	v.SetDefault("interval", "5s")
	v.SetDefault("anomaly_probability", sensorsim.DefaultAnomalyProbability)
	v.SetDefault("seed", time.Now().UnixNano())
	v.SetDefault("log_level", logger.InfoLevel)

	log := logger.Get(v.GetString("log_level"), logger.ConsoleFormat)

	tick, err := time.ParseDuration(v.GetString("interval"))
	if err != nil || tick <= 0 {
		log.Fatalw("invalid SIM_INTERVAL", "value", v.GetString("interval"), "err", err)
	}

	gen := sensorsim.NewGenerator(v.GetString("device_id"), v.GetFloat64("anomaly_probability"), v.GetUint64("seed"))
	sim := sensorsim.New(gen, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx, tick)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	sim.Routes(r)

	srv := &server.Server{}
	go func() {
		log.Infow("sim_listening", "addr", server.Addr(v.GetString("port")), "tick", tick)
		if err := srv.Run(v.GetString("port"), r); err != nil {
			log.Fatalw("error starting simulator", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("simulator_shutdown_failed", "err", err)
	}
}
