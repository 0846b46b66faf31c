package cmd

import (
	"fmt"
	"io"
	"os"

	"pngmsg-tools/go/pkg/logbowl"
	"pngmsg-tools/go/pkg/png"

	"github.com/spf13/cobra"
)

var printExcludePatterns []string

// PrintChunks writes a chunk listing for every file in paths to w. It stops at
// the first file that cannot be read or parsed.
func PrintChunks(log logbowl.Logger, w io.Writer, paths []string) error {
	for _, path := range paths {
		f, err := readPNGFile(log, path)
		if err != nil {
			return err
		}
		chunks := f.Chunks()
		fmt.Fprintf(w, "PNG File: %s\n", path)
		fmt.Fprintf(w, "  Size: %d bytes, %d chunks\n", f.EncodedLen(), len(chunks))
		for i, c := range chunks {
			fmt.Fprintf(w, "  %3d  %s  %10d bytes  crc 0x%08x  %s\n", i, c.Type(), c.Length(), c.CRC(), png.Flags(c.Type()))
		}
		log.Debug("png", "print", "success", "Listed chunks", "path", path, "chunks", len(chunks))
	}
	return nil
}

var printCmd = &cobra.Command{
	Use:   "print <input.png|glob>...",
	Short: "Lists the chunks of one or more PNG files.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := ExpandInputs(log, args, printExcludePatterns)
		if err != nil {
			log.Error("glob", "expand", "error", "Failed to resolve inputs", "error", err)
			os.Exit(1)
		}
		if len(paths) == 0 {
			log.Warn("glob", "expand", "skip", "All inputs were excluded")
			return
		}
		if err := PrintChunks(log, cmd.OutOrStdout(), paths); err != nil {
			log.Error("png", "print", "error", "Failed to print chunks", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().StringArrayVar(&printExcludePatterns, "exclude", []string{}, "Glob patterns of files to skip.")
}
