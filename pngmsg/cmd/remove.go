package cmd

import (
	"fmt"
	"os"

	"pngmsg-tools/go/pkg/logbowl"
	"pngmsg-tools/go/pkg/png"

	"github.com/spf13/cobra"
)

var removeOutPath string

// RemoveChunk removes the first chunk of the given type and rewrites the file,
// in place unless outputPath is set.
func RemoveChunk(log logbowl.Logger, inputPath, chunkType, outputPath string) (*png.Chunk, error) {
	if _, err := png.ParseChunkType(chunkType); err != nil {
		return nil, fmt.Errorf("invalid chunk type %q: %w", chunkType, err)
	}
	f, err := readPNGFile(log, inputPath)
	if err != nil {
		return nil, err
	}
	removed, err := f.RemoveChunk(chunkType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}
	log.Info("chunk", "remove", "success", "Removed chunk", "type", chunkType, "length", removed.Length())

	if outputPath == "" {
		outputPath = inputPath
	}
	if err := writePNGFile(log, outputPath, f); err != nil {
		return nil, err
	}
	return removed, nil
}

var removeCmd = &cobra.Command{
	Use:   "remove <input.png> <chunk_type>",
	Short: "Removes the first chunk of a type from a PNG file.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		removed, err := RemoveChunk(log, args[0], args[1], removeOutPath)
		if err != nil {
			log.Error("chunk", "remove", "error", "Failed to remove chunk", "error", err)
			os.Exit(1)
		}
		if msg, err := removed.DataString(); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed chunk %s: %s\n", removed.Type(), msg)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed chunk %s (%d bytes of binary data)\n", removed.Type(), removed.Length())
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVarP(&removeOutPath, "out", "o", "", "Write the result here instead of rewriting the input file.")
}
