package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/fleetdesk/fleetplan/pkg/application/dto"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func capacityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "sector",
			Aliases: []string{"s"},
			Value:   string(entities.SectorStandard),
			Usage:   "Sector (food, standard, heavy)",
		},
		&cli.StringFlag{
			Name:  "scenario",
			Value: string(entities.ScenarioNormal),
			Usage: "Market scenario (pessimistic, normal, optimistic)",
		},
		&cli.StringFlag{
			Name:  "rate",
			Usage: "Annual growth rate override in percent, clamped to the allowed range",
		},
		&cli.IntFlag{
			Name:  "horizon",
			Usage: "Projection horizon in months (default from tables)",
		},
		&cli.IntFlag{
			Name:  "months",
			Usage: "Amortization horizon in months (default from tables)",
		},
		&cli.StringFlag{
			Name:    "profit",
			Usage:   "Monthly net profit per added vehicle pair",
			EnvVars: []string{"MONTHLY_NET_PROFIT"},
		},
		&cli.StringFlag{
			Name:    "rental",
			Usage:   "Monthly rental cost of the equivalent capacity",
			EnvVars: []string{"MONTHLY_RENTAL_COST"},
		},
	}
}

func partsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "category",
			Usage: "Only analyze parts in this category",
		},
		&cli.Int64Flag{
			Name:  "supplier",
			Usage: "Only analyze parts from this supplier id",
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "Operating region for the playbook (e.g. marmara, black-sea)",
		},
		&cli.StringFlag{
			Name:  "cargo",
			Usage: "Cargo type for the playbook (standard, heavy, refrigerated)",
		},
		&cli.StringFlag{
			Name:  "scenario-id",
			Usage: "Playbook scenario id; matched by region and cargo when empty",
		},
		&cli.StringFlag{
			Name:  "inflation",
			Value: "0",
			Usage: "Annual inflation in percent",
		},
		&cli.StringFlag{
			Name:  "exchange-rate",
			Value: "0",
			Usage: "Local currency per USD",
		},
	}
}

func capacityRequest(c *cli.Context) (dto.CapacityRequest, error) {
	req := dto.CapacityRequest{
		Sector:             c.String("sector"),
		Scenario:           c.String("scenario"),
		HorizonMonths:      c.Int("horizon"),
		AmortizationMonths: c.Int("months"),
	}
	var err error
	if req.RateOverride, err = optionalDecimal(c, "rate"); err != nil {
		return req, err
	}
	if req.MonthlyNetProfit, err = optionalDecimal(c, "profit"); err != nil {
		return req, err
	}
	if req.MonthlyRentalCost, err = optionalDecimal(c, "rental"); err != nil {
		return req, err
	}
	return req, nil
}

func partsRequest(c *cli.Context) (dto.PartsRequest, error) {
	req := dto.PartsRequest{
		Category:   c.String("category"),
		Region:     c.String("region"),
		CargoType:  c.String("cargo"),
		ScenarioID: c.String("scenario-id"),
	}
	if c.IsSet("supplier") {
		supplier := c.Int64("supplier")
		req.SupplierID = &supplier
	}
	var err error
	if req.InflationPercent, err = decimalFlag(c, "inflation"); err != nil {
		return req, err
	}
	if req.ExchangeRate, err = decimalFlag(c, "exchange-rate"); err != nil {
		return req, err
	}
	return req, nil
}

func capacityCommand() *cli.Command {
	return &cli.Command{
		Name:  "capacity",
		Usage: "Project sector demand and price the purchase that closes the capacity gap",
		Flags: capacityFlags(),
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			req, err := capacityRequest(c)
			if err != nil {
				return err
			}
			result, err := rt.orchestrator.AnalyzeCapacity(c.Context, req)
			if err != nil {
				return err
			}
			return render(c, result)
		}),
	}
}

func partsCommand() *cli.Command {
	return &cli.Command{
		Name:  "parts",
		Usage: "Classify spare-parts stock risk and run the regional playbook",
		Flags: partsFlags(),
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			req, err := partsRequest(c)
			if err != nil {
				return err
			}
			result, err := rt.orchestrator.AnalyzeParts(c.Context, req)
			if err != nil {
				return err
			}
			return render(c, result)
		}),
	}
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Check a proposed part purchase against the optimal stock band",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "part-id",
				Usage:    "Part id",
				Required: true,
			},
			&cli.Int64Flag{
				Name:     "quantity",
				Aliases:  []string{"q"},
				Usage:    "Units to buy",
				Required: true,
			},
		},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			result, err := rt.orchestrator.SimulateAcquisition(c.Context, dto.AcquisitionRequest{
				PartID:   entities.PartID(c.Int64("part-id")),
				Quantity: entities.Quantity(c.Int64("quantity")),
			})
			if err != nil {
				return err
			}
			return render(c, result)
		}),
	}
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Run the capacity and spare-parts analyses against one reference date",
		Flags: append(capacityFlags(), partsFlags()...),
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			capacityReq, err := capacityRequest(c)
			if err != nil {
				return err
			}
			partsReq, err := partsRequest(c)
			if err != nil {
				return err
			}
			result, err := rt.orchestrator.AnalyzeDashboard(c.Context, dto.DashboardRequest{
				Capacity: capacityReq,
				Parts:    partsReq,
			})
			if err != nil {
				return err
			}
			return render(c, result)
		}),
	}
}

func sectorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sectors",
		Usage: "List the sectors known to the record store",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			sectors, err := rt.orchestrator.Sectors(c.Context)
			if err != nil {
				return err
			}
			return render(c, sectors)
		}),
	}
}
