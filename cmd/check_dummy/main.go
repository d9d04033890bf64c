package main

import "github.com/revolux/nagplug/pkg/dummycheck"

func main() {
	dummycheck.NewRunner().Run()
}
