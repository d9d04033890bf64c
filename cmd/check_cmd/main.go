package main

import "github.com/revolux/nagplug/pkg/cmdcheck"

func main() {
	cmdcheck.NewRunner().Run()
}
