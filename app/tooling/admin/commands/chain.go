package commands

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var heightCmd = &cobra.Command{
	Use:   "height",
	Short: "Print the current chain height.",
	Run:   heightRun,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the node status.",
	Run:   statusRun,
}

var stateUpdateCmd = &cobra.Command{
	Use:   "stateupdate [number]",
	Short: "Print the state update for a block number.",
	Args:  cobra.ExactArgs(1),
	Run:   stateUpdateRun,
}

var produceCmd = &cobra.Command{
	Use:   "produce",
	Short: "Force production of the next block.",
	Run:   produceRun,
}

func init() {
	rootCmd.AddCommand(heightCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stateUpdateCmd)
	rootCmd.AddCommand(produceCmd)
}

func heightRun(cmd *cobra.Command, args []string) {
	var resp map[string]any
	if err := get(fmt.Sprintf("%s/v1/chain/height", publicURL), &resp); err != nil {
		log.Fatal(err)
	}

	if err := printJSON(resp); err != nil {
		log.Fatal(err)
	}
}

func statusRun(cmd *cobra.Command, args []string) {
	var resp map[string]any
	if err := get(fmt.Sprintf("%s/v1/node/status", privateURL), &resp); err != nil {
		log.Fatal(err)
	}

	if err := printJSON(resp); err != nil {
		log.Fatal(err)
	}
}

func stateUpdateRun(cmd *cobra.Command, args []string) {
	var resp map[string]any
	if err := get(fmt.Sprintf("%s/v1/state/update/%s", publicURL, args[0]), &resp); err != nil {
		log.Fatal(err)
	}

	if err := printJSON(resp); err != nil {
		log.Fatal(err)
	}
}

func produceRun(cmd *cobra.Command, args []string) {
	resp, err := http.Post(fmt.Sprintf("%s/v1/node/block/produce", privateURL), "application/json", &bytes.Buffer{})
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("node responded with status %s", resp.Status)
	}

	fmt.Println("block production requested")
}
