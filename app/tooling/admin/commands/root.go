// Package commands contains the admin tooling commands.
package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	publicURL  string
	privateURL string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&publicURL, "url", "u", "http://localhost:8080", "Public url of the node.")
	rootCmd.PersistentFlags().StringVarP(&privateURL, "private-url", "p", "http://localhost:9080", "Private url of the node.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Inspect and drive a running node",
}

// Execute runs the selected command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// get performs a GET against the node and decodes the JSON response into
// the provided value.
func get(url string, val any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node responded with status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(val)
}

// printJSON writes the value to stdout in indented form.
func printJSON(val any) error {
	data, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
