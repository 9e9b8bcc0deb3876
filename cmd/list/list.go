package list

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/audix/cmd/common"
	"github.com/gigurra/audix/cmd/play/playlist"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Params struct {
	Dir string `pos:"true" help:"Directory to scan."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "list",
		Short:       "List the playable tracks in a directory",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "list: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Run prints the playlist for params.Dir in natural order.
func Run(params *Params, out io.Writer) error {
	tracks, err := playlist.Scan(params.Dir)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "Ext", "Path"})

	for i, track := range tracks {
		rel, err := filepath.Rel(params.Dir, track.Path)
		if err != nil {
			rel = track.Path
		}
		t.AppendRow(table.Row{i + 1, track.Name(), track.Ext(), rel})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d tracks", len(tracks)), "", ""})

	t.Render()
	return nil
}
