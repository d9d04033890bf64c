package main

import "github.com/revolux/nagplug/pkg/envcheck"

func main() {
	envcheck.NewRunner().Run()
}
