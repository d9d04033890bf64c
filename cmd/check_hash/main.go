package main

import "github.com/revolux/nagplug/pkg/hashcheck"

func main() {
	hashcheck.NewRunner().Run()
}
