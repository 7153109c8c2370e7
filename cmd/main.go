package main

import (
	"os"

	"maintenance_diagnosis/internal/cli"
)

// @title        Maintenance Diagnosis API
// @version      1.0
// @description  Rule based maintenance diagnosis of machine sensor readings.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
