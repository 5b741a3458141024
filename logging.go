package main

import (
	"github.com/Arideno/graphics-engine/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("graphics-engine")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
