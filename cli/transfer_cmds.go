package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"mealcart/domain"

	"github.com/spf13/cobra"
)

// decodeLines reads a JSON array of cart lines, an exported snapshot, or
// NDJSON with one line per row
func decodeLines(b []byte) ([]domain.CartLine, error) {
	btrim := bytes.TrimSpace(b)
	if len(btrim) == 0 {
		return nil, errors.New("empty file")
	}

	var lines []domain.CartLine

	// JSON array
	if btrim[0] == '[' {
		if err := json.Unmarshal(btrim, &lines); err != nil {
			return nil, err
		}
		return lines, nil
	}

	// snapshot written by export
	var snap domain.Snapshot
	if err := json.Unmarshal(btrim, &snap); err == nil && len(snap.Lines) > 0 {
		ids := make([]string, 0, len(snap.Lines))
		for id := range snap.Lines {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			l := snap.Lines[id]
			if l.ID == "" {
				l.ID = id
			}
			lines = append(lines, l)
		}
		return lines, nil
	}

	// NDJSON or single JSON object
	scanner := bufio.NewScanner(bytes.NewReader(btrim))
	for scanner.Scan() {
		row := bytes.TrimSpace(scanner.Bytes())
		if len(row) == 0 {
			continue
		}
		var l domain.CartLine
		if err := json.Unmarshal(row, &l); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func init() {
	// import
	var importFile string
	importCmd := &cobra.Command{
		Use:   "import --file <file>",
		Short: "Import cart lines from JSON or NDJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if importFile == "" {
				return errors.New("--file required")
			}
			b, err := os.ReadFile(importFile)
			if err != nil {
				return err
			}
			lines, err := decodeLines(b)
			if err != nil {
				return err
			}
			t, err := shop.Import(cmd.Context(), lines)
			printTotals(t)
			return err
		},
	}
	importCmd.Flags().StringVar(&importFile, "file", "", "input file")
	rootCmd.AddCommand(importCmd)

	// export
	var exportFile string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export the cart snapshot to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			b, err := json.MarshalIndent(shop.Snapshot(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(exportFile, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "exported %d lines to %s\n", len(shop.Lines()), exportFile)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	rootCmd.AddCommand(exportCmd)
}
