package main

import "github.com/revolux/nagplug/pkg/jsoncheck"

func main() {
	jsoncheck.NewRunner().Run()
}
