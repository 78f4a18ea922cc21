package cmd

/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

import (
	"context"
	"os"

	"github.com/francois-poidevin/flightboard/internal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Allow to start the board",
	Long: `Poll the ADS-B feed around the board location (parameter) and cycle the
	flight code and route of the nearest aircraft on the configured display.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Initialize config
		initConfig()

		errExec := internal.Execute(ctx, log, *conf)
		if errExec != nil {
			log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": errExec,
			}).Error("Error in Execute processing")
			os.Exit(1)
		}
	},
}

func init() {
	startCmd.Flags().String("location", "-33.9429,151.2562", "board location 'lat,lon'")
	startCmd.Flags().Int("width", 12, "number of characters of the board")
	startCmd.Flags().String("displayType", "STDOUT", "set the display type (STDOUT|FILE|DB|TERMINAL)")
	startCmd.Flags().String("feed", "http://raspberrypi:8080/data/aircraft.json", "ADS-B aircraft.json url")

	for key, flag := range map[string]string{
		"flightboard.location":    "location",
		"flightboard.width":       "width",
		"flightboard.displaytype": "displayType",
		"flightboard.adsb.url":    "feed",
	} {
		if err := viper.BindPFlag(key, startCmd.Flags().Lookup(flag)); err != nil {
			log.WithFields(logrus.Fields{
				"flag": flag,
			}).Error("Unable to bind flag")
		}
	}
}
