/*
Copyright © 2024 Universidad del Valle - Oficina de Planeación
Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.
THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	configDir  = ".workload-harvester"
	configName = "config.toml"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "workload-harvester",
	Short: "workload-harvester: harvests teacher-workload pages into a tabular sink",
	Long: `workload-harvester is a nightly batch tool that reads teacher-workload
HTML pages from an institutional portal, one page per (national id, academic
period), and materialises the parsed activities into a tabular database
partitioned by period.`,
	Example: `  # Harvest one period
  workload-harvester run --period 2024-1
  # Generate shell completion for Bash
  workload-harvester completion bash`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
// Execute runs the root command. Exit status follows the scheduler
// contract: 0 when at least one id produced rows, 2 when every id failed,
// 1 for anything catastrophic (unreadable config, catalogue unavailable,
// sink unreachable).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("%v\n", err)
		if errors.Is(err, errAllIDsFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.workload-harvester/config.toml)")
}
