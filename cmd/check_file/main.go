package main

import "github.com/revolux/nagplug/pkg/filecheck"

func main() {
	filecheck.NewRunner().Run()
}
