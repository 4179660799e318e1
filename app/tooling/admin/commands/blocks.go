package commands

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block [number|hash|latest|pending]",
	Short: "Print a block by number, hash, latest, or pending.",
	Args:  cobra.ExactArgs(1),
	Run:   blockRun,
}

func init() {
	rootCmd.AddCommand(blockCmd)
}

func blockRun(cmd *cobra.Command, args []string) {
	var url string
	switch arg := args[0]; {
	case arg == "latest":
		url = fmt.Sprintf("%s/v1/block/latest", publicURL)
	case arg == "pending":
		url = fmt.Sprintf("%s/v1/block/pending", publicURL)
	case strings.HasPrefix(arg, "0x"):
		url = fmt.Sprintf("%s/v1/block/hash/%s", publicURL, arg)
	default:
		url = fmt.Sprintf("%s/v1/block/number/%s", publicURL, arg)
	}

	var blk map[string]any
	if err := get(url, &blk); err != nil {
		log.Fatal(err)
	}

	if err := printJSON(blk); err != nil {
		log.Fatal(err)
	}
}
