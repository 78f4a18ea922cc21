package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/structs"
	defaults "github.com/mcuadros/go-defaults"
	toml "github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

var configNewAsEnvFlag bool

// -----------------------------------------------------------------------------

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the flightboard configuration",
}

var configNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Initialize a default configuration",
	Run: func(cmd *cobra.Command, args []string) {
		defaults.SetDefaults(conf)

		if !configNewAsEnvFlag {
			btes, err := toml.Marshal(*conf)
			if err != nil {
				log.WithFields(logrus.Fields{
					"err": err,
				}).Fatal("Error during configuration export")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(btes))
		} else {
			for _, line := range exportLines(asEnvVariables(conf, envPrefix, true)) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		}
	},
}

func init() {
	configNewCmd.Flags().BoolVar(&configNewAsEnvFlag, "env", false, "print environment variables instead of TOML")
	configCmd.AddCommand(configNewCmd)
}

// exportLines - sorted shell export statements
func exportLines(m map[string]string) []string {
	keys := []string{}
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("export %s=\"%s\"", k, m[k]))
	}
	return lines
}

// asEnvVariables lists the environment variable names of a struct and their values
func asEnvVariables(o interface{}, prefix string, skipCommented bool) map[string]string {
	r := map[string]string{}
	prefix = strings.ToUpper(prefix)
	delim := "_"
	if prefix == "" {
		delim = ""
	}
	fields := structs.Fields(o)
	for _, f := range fields {
		if skipCommented {
			tag := f.Tag("commented")
			if tag != "" {
				if commented, err := strconv.ParseBool(tag); err == nil && commented {
					continue
				}
			}
		}
		if structs.IsStruct(f.Value()) {
			rf := asEnvVariables(f.Value(), prefix+delim+f.Name(), skipCommented)
			for k, v := range rf {
				r[k] = v
			}
		} else {
			r[prefix+"_"+strings.ToUpper(f.Name())] = fmt.Sprintf("%v", f.Value())
		}
	}
	return r
}
