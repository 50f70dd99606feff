package main

import (
	"github.com/immigrant-voices/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cliCtx *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	if cliCtx.Bool("recount-follows") {
		return migration.RecountFollows(s.ctx)
	}

	return nil
}
