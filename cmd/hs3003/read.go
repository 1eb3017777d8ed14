package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"gopkg.in/yaml.v3"

	"github.com/melastmohican/hs3003"
	"github.com/melastmohican/hs3003/adapter"
	"github.com/melastmohican/hs3003/cmd/hs3003/console"
	periphi2c "github.com/melastmohican/hs3003/i2c"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "trigger a measurement and print temperature and humidity",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Usage:   "bus adapter: mcp2221, periph or nanopi",
			Value:   "mcp2221",
		},
		&cli.StringFlag{
			Name:  "device",
			Usage: "bus selector for the adapter (periph bus name, gobot bus number)",
		},
		&cli.StringFlag{
			Name:  "addr",
			Usage: "sensor I2C address",
			Value: "0x44",
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "keep reading until interrupted",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "delay between reads in watch mode",
			Value: 2 * time.Second,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: text or yaml",
			Value:   "text",
		},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))

		bus, err := openBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		addr, err := parseAddress(c.String("addr"))
		if err != nil {
			return console.Exit(1, "invalid sensor address: %s", console.Red(err))
		}
		sensor := hs3003.NewWithAddress(bus, addr)

		for {
			m, err := sensor.Read(ctx, hs3003.TimerDelay{})
			if err != nil {
				// transient bus errors are the caller's problem; in watch
				// mode we keep going on the next tick
				if !c.Bool("watch") {
					return console.Exit(1, "error reading sensor: %s", console.Red(err))
				}
				console.Errorf("error reading sensor: %s", console.Red(err))
			} else if err = printMeasurement(c.String("format"), m); err != nil {
				return console.Exit(1, "encoding error: %s", console.Red(err))
			}
			if !c.Bool("watch") {
				return nil
			}
			time.Sleep(c.Duration("interval"))
		}
	},
}

func openBus(c *cli.Context) (hs3003.I2CBus, error) {
	switch c.String("adapter") {
	case "mcp2221":
		mcp2221 := adapter.NewMCP2221()
		err := mcp2221.Init()
		if err != nil {
			return nil, err
		}
		return mcp2221, nil
	case "periph":
		return periphi2c.NewGenericBus(c.String("device"))
	case "nanopi":
		npi := nanopi.NewNeoAdaptor()
		err := npi.I2cBusAdaptor.Connect()
		if err != nil {
			return nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		if dev := c.String("device"); dev != "" {
			busID, err := strconv.Atoi(dev)
			if err != nil {
				return nil, fmt.Errorf("invalid gobot bus number %q: %w", dev, err)
			}
			return adapter.NewGobotBus(npi, busID), nil
		}
		return adapter.NewGobotBus(npi), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
	}
}

func parseAddress(raw string) (byte, error) {
	addr, err := strconv.ParseUint(strings.TrimPrefix(raw, "0x"), 16, 7)
	if err != nil {
		return 0, err
	}
	return byte(addr), nil
}

func printMeasurement(format string, m hs3003.Measurement) error {
	switch format {
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(m)
	default:
		console.Printf("%s  %s\n%s %s\n",
			console.PictoThermometer, console.White(m.Temperature),
			console.PictoHumidity, console.White(m.Humidity))
		return nil
	}
}
