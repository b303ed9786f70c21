package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherkit/internal/cipher"
	"github.com/RowanDark/cipherkit/internal/logging"
)

func newDetectCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		decode bool
	)
	cmd := &cobra.Command{
		Use:   "detect [TEXT...]",
		Short: "guess whether text is plaintext, Caesar or polyalphabetic",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.inputText(args)
			if err != nil {
				return err
			}

			var (
				detections []cipher.DetectionResult
				decoded    []cipher.DecodeResult
			)
			if decode {
				decoded, err = cipher.DecodeAll(cmd.Context(), []byte(text))
				for _, d := range decoded {
					detections = append(detections, d.Detection)
				}
			} else {
				detections, err = cipher.NewClassicalDetector().Detect(cmd.Context(), []byte(text))
			}
			if err != nil {
				return err
			}

			encodings := make([]string, 0, len(detections))
			for _, d := range detections {
				encodings = append(encodings, d.Encoding)
			}
			a.emit(logging.AuditEvent{
				EventType: logging.EventDetectionCompleted,
				Operation: "detect",
				Decision:  logging.DecisionSuccess,
				Metadata:  map[string]any{"encodings": encodings},
			})

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				if decode {
					return enc.Encode(decoded)
				}
				return enc.Encode(detections)
			}

			if len(detections) == 0 {
				fmt.Fprintln(a.stdout, "no confident detection")
				return nil
			}
			var table bytes.Buffer
			tw := tabwriter.NewWriter(&table, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENCODING\tCONFIDENCE\tOPERATION\tREASONING")
			for _, d := range detections {
				fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", d.Encoding, d.Confidence, describeOperation(d), d.Reasoning)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			// Row 1 is the most confident detection.
			for i, line := range strings.SplitAfter(table.String(), "\n") {
				if i == 1 {
					line = a.painter.best.Sprint(line)
				}
				fmt.Fprint(a.stdout, line)
			}
			for _, d := range decoded {
				if d.Success {
					fmt.Fprintf(a.stdout, "%s: %s\n", d.Detection.Encoding, d.Decoded)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&decode, "decode", false, "also run each suggested operation")
	return cmd
}

func describeOperation(d cipher.DetectionResult) string {
	if len(d.Params) == 0 {
		return d.Operation
	}
	return d.Operation + ":" + formatParams(d.Params)
}
