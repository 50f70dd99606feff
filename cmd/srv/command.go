package main

import "github.com/urfave/cli/v2"

// NewApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Immigrant Voices"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Used to start the daily cron jobs that recompute trending scores and community stats.`,
		},
		{
			Action: server.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "recount-follows",
					Usage: "Rebuild the denormalized follow counters",
				},
			},
			Category:    "Database",
			Description: `Used to create the database schema and apply versioned migrations.`,
		},
	}

	s.app = app
}
