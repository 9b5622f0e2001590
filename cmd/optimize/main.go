package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wyfcoding/industrytracker/internal/procurement/domain"
)

// problemFile 离线求解输入。订单簿中的卖单需按价格升序排好。
type problemFile struct {
	Demands     map[string]float64 `json:"demands"`
	Ores        []oreInput         `json:"ores"`
	OrderBook   map[int64][]tier   `json:"order_book"`
	MaxOreTypes int                `json:"max_ore_types"`
}

type oreInput struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	BatchSize   int64              `json:"batch_size"`
	BatchYields map[string]float64 `json:"batch_yields"`
}

type tier struct {
	OrderID      int64   `json:"order_id"`
	Price        float64 `json:"price"`
	VolumeRemain int64   `json:"volume_remain"`
}

func main() {
	app := &cli.App{
		Name:  "optimize",
		Usage: "solve a procurement plan from a JSON problem file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "path to the problem JSON file",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "max-ore-types",
				Usage: "override the ore type limit from the problem file",
			},
			&cli.DurationFlag{
				Name:  "time-limit",
				Usage: "solver wall clock limit",
				Value: 30 * time.Second,
			},
			&cli.Float64Flag{
				Name:  "gap",
				Usage: "relative optimality gap tolerance",
				Value: 0.001,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("read problem file: %w", err)
	}

	var problem problemFile
	if err := json.Unmarshal(data, &problem); err != nil {
		return fmt.Errorf("parse problem file: %w", err)
	}
	if len(problem.Demands) == 0 {
		return fmt.Errorf("problem file has no demands")
	}

	ores := make([]domain.Ore, 0, len(problem.Ores))
	for _, o := range problem.Ores {
		ores = append(ores, domain.Ore{
			ID:          o.ID,
			Name:        o.Name,
			BatchSize:   o.BatchSize,
			BatchYields: o.BatchYields,
		})
	}
	book := make(domain.OrderBook, len(problem.OrderBook))
	for typeID, tiers := range problem.OrderBook {
		converted := make([]domain.OrderTier, 0, len(tiers))
		for _, t := range tiers {
			converted = append(converted, domain.OrderTier{
				OrderID:      t.OrderID,
				Price:        t.Price,
				VolumeRemain: t.VolumeRemain,
			})
		}
		book[typeID] = converted
	}

	maxOreTypes := problem.MaxOreTypes
	if c.IsSet("max-ore-types") {
		maxOreTypes = c.Int("max-ore-types")
	}
	if maxOreTypes <= 0 {
		maxOreTypes = len(problem.Demands)
	}

	backend := domain.NewHighsBackend()
	backend.MaxDuration = c.Duration("time-limit")
	backend.GapRelative = c.Float64("gap")

	plan := domain.NewOptimizer(backend).Optimize(context.Background(), problem.Demands, ores, book, maxOreTypes)

	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if plan.Status != domain.PlanOK {
		return cli.Exit("no feasible plan found", 2)
	}
	return nil
}
