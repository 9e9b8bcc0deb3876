package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/audix/cmd/common"
	"github.com/gigurra/audix/cmd/list"
	"github.com/gigurra/audix/cmd/play"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[play.Params]{
		Use:         "audix",
		Short:       "Terminal playlist audio player",
		Long:        play.Long,
		Version:     appVersion(),
		ParamEnrich: common.DefaultParamEnricher(),
		SubCmds: []*cobra.Command{
			play.Cmd(),
			list.Cmd(),
		},
		RunFunc: play.RunFunc,
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
