package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AscendTech4H/iqclaw/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.GlobalString("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	if c.GlobalIsSet("serial") {
		cfg.Serial.Device = c.GlobalString("serial")
	}
	if c.GlobalIsSet("http") {
		cfg.HTTP.Addr = c.GlobalString("http")
	}
	return cfg, cfg.Validate()
}

func main() {
	app := cli.NewApp()
	app.Name = "bottomside"
	app.Usage = "run the drive and claw controller on the robot"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to YAML config",
		},
		cli.StringFlag{
			Name:  "serial",
			Value: "/dev/ttyACM0",
			Usage: "serial port for the brain",
		},
		cli.StringFlag{
			Name:  "http",
			Value: ":8080",
			Usage: "http server listening address",
		},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		brain, err := ConnectBrain(cfg.Serial)
		if err != nil {
			return err
		}
		defer brain.Close()
		log.Printf("Brain connected on %s", cfg.Serial.Device)

		reg := prometheus.NewRegistry()
		bot := newRobot(cfg, brain, newMetrics(reg))

		//start web server
		srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: bot.handler(reg)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to serve: %q", err.Error())
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		bot.run(ctx)
		log.Println("Shutting down")
		return srv.Close()
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
