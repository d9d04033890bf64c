package main

import "github.com/revolux/nagplug/pkg/tcpcheck"

func main() {
	tcpcheck.NewRunner().Run()
}
