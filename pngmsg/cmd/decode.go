package cmd

import (
	"fmt"
	"os"

	"pngmsg-tools/go/pkg/logbowl"
	"pngmsg-tools/go/pkg/png"

	"github.com/spf13/cobra"
)

var decodeZstd bool

// DecodeMessage returns the text stored in the first chunk of the given type.
// A missing chunk is reported with ok == false and a nil error.
func DecodeMessage(log logbowl.Logger, inputPath, chunkType string, decompress bool) (msg string, ok bool, err error) {
	if _, err := png.ParseChunkType(chunkType); err != nil {
		return "", false, fmt.Errorf("invalid chunk type %q: %w", chunkType, err)
	}

	f, err := readPNGFile(log, inputPath)
	if err != nil {
		return "", false, err
	}
	chunk, found := f.ChunkByType(chunkType)
	if !found {
		log.Info("chunk", "lookup", "notfound", "No chunk of this type", "type", chunkType, "path", inputPath)
		return "", false, nil
	}

	if !decompress {
		msg, err = chunk.DataString()
		if err != nil {
			return "", false, err
		}
		return msg, true, nil
	}

	data, err := decompressPayload(log, chunk.Data())
	if err != nil {
		return "", false, err
	}
	msg, err = payloadText(data)
	if err != nil {
		return "", false, fmt.Errorf("%w: decompressed %s chunk", err, chunkType)
	}
	return msg, true, nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <input.png> <chunk_type>",
	Short: "Prints the message stored in the first chunk of a type.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		msg, ok, err := DecodeMessage(log, args[0], args[1], decodeZstd)
		if err != nil {
			log.Error("message", "decode", "error", "Failed to decode message", "error", err)
			os.Exit(1)
		}
		if !ok {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Secret message was: %s\n", msg)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVar(&decodeZstd, "zstd", false, "Decompress the payload with zstd before printing it.")
}
