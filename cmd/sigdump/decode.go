package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe/file"
	"github.com/hupe1980/signalsafe/record"
)

type decodedRecord struct {
	Seq       uint64 `json:"seq"`
	Signal    string `json:"signal"`
	Seconds   int64  `json:"seconds"`
	Nanos     int64  `json:"nanos"`
	Truncated bool   `json:"truncated,omitempty"`
	Message   string `json:"message"`
}

func newDecodeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Print the records of a binary dump file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decode(cmd.OutOrStdout(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per record")

	return cmd
}

func decode(w io.Writer, path string, asJSON bool) error {
	var f file.File
	defer f.Destroy()

	if err := guard("open "+path, func() { f.OpenExisting(path, file.ReadOnly) }); err != nil {
		return err
	}

	buf := make([]byte, record.Size(record.MaxMessageSize))
	enc := json.NewEncoder(w)

	for count := 0; ; count++ {
		var (
			rec record.Record
			err error
		)
		if ferr := guard("read "+path, func() { rec, err = record.ReadNext(&f, buf) }); ferr != nil {
			return ferr
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", count, err)
		}

		out := decodedRecord{
			Seq:       rec.Seq,
			Signal:    unix.SignalName(unix.Signal(rec.Signal)),
			Seconds:   rec.Time.Seconds,
			Nanos:     rec.Time.Nanoseconds,
			Truncated: rec.Truncated(),
			Message:   string(rec.Message),
		}
		if out.Signal == "" {
			out.Signal = fmt.Sprintf("%d", rec.Signal)
		}

		if asJSON {
			if err := enc.Encode(out); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%d %s %d.%09d %s\n", out.Seq, out.Signal, out.Seconds, out.Nanos, out.Message); err != nil {
			return err
		}
	}
}
