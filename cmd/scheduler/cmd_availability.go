package main

import (
	"io"
	"strconv"

	"github.com/Freeeeeet/interview_scheduler/internal/app"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	availabilityCandidate string
	availabilityEmployees string
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Print hours free for a candidate and all given employees",
	Example: "  scheduler availability --candidate 1 --employees 2,3\n" +
		"  scheduler availability --employees 2",
	RunE: runAvailability,
}

func init() {
	availabilityCmd.Flags().StringVar(&availabilityCandidate, "candidate", "", "candidate id")
	availabilityCmd.Flags().StringVar(&availabilityEmployees, "employees", "", "comma separated employee ids")
	rootCmd.AddCommand(availabilityCmd)
}

func runAvailability(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx := cmd.Context()

	storage, err := app.NewStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	svc := buildServices(ctx, storage)
	defer svc.closeCache()

	hours, err := svc.slots.Availability(ctx, availabilityCandidate, availabilityEmployees)
	if err != nil {
		return err
	}

	renderHours(cmd.OutOrStdout(), hours)
	return nil
}

func renderHours(w io.Writer, hours []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Hour"})
	table.SetAutoFormatHeaders(false)

	for i, hour := range hours {
		table.Append([]string{strconv.Itoa(i + 1), hour})
	}
	table.SetFooter([]string{"", strconv.Itoa(len(hours)) + " total"})

	table.Render()
}
