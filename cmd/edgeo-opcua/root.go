// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	endpoint   string
	timeout    int
	verbose    bool
	configFile string
	username   string
	password   string
)

var rootCmd = &cobra.Command{
	Use:   "edgeo-opcua",
	Short: "OPC UA attribute monitor",
	Long: `Monitor OPC UA node attributes through server-side subscriptions and
forward every change to the console, NATS, a CBOR journal or websocket clients.

Examples:
  edgeo-opcua monitor -e opc.tcp://localhost:4840 -n "ns=2;i=1"
  edgeo-opcua monitor --config monitor.yaml
  edgeo-opcua nodeid "ns=2;s=Tank.Level"
  edgeo-opcua value encode --type Int32 42
  edgeo-opcua journal events.cbor`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "opc.tcp://localhost:4840", "OPC UA server endpoint URL")
	rootCmd.PersistentFlags().IntVarP(&timeout, "timeout", "t", 10000, "Request timeout in milliseconds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Monitor configuration file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "User name for session activation")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "Password for session activation")

	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("username", rootCmd.PersistentFlags().Lookup("username"))
	viper.BindPFlag("password", rootCmd.PersistentFlags().Lookup("password"))

	// Add subcommands
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(nodeIDCmd)
	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	viper.SetEnvPrefix("OPCUA")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
