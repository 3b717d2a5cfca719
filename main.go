package main

import "github.com/univalle/workload-harvester/cmd"

func main() {
	cmd.Execute()
}
