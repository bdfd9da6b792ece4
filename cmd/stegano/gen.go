package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/stegolab/stegano/payload"
)

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	var (
		bits = fs.Int("bits", 0, "Payload size in bits")
		text = fs.Bool("text", false, "Generate printable characters instead of raw bits")
		out  = fs.String("out", "", "Write the payload to this file instead of stdout")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *bits <= 0 {
		return errors.New("gen: -bits must be positive")
	}

	var (
		data []byte
		err  error
	)
	if *text {
		data, err = payload.Text(*bits)
	} else {
		data, err = payload.Bits(*bits)
	}
	if err != nil {
		return err
	}

	if *out != "" {
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			return err
		}
		printSuccess("Wrote %d bytes (%d bits) to %s", len(data), len(data)*8, *out)
		return nil
	}
	if *text {
		fmt.Fprintf(stdout, "%s\n", data)
	} else {
		fmt.Fprintf(stdout, "%s\n", hex.EncodeToString(data))
	}
	return nil
}
